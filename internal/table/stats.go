package table

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/strider/internal/parallel"
)

// ColumnStats summarizes the non-missing values of a numeric column.
type ColumnStats struct {
	Count   int // Non-missing values
	Missing int
	Min     float64
	Max     float64
	Mean    float64
	StdDev  float64 // Unbiased; NaN with fewer than two values
}

// Stats computes the summary of every column of t, one column per task.
// t must support concurrent reads unless cfg is parallel.Sequential():
// Memory, Matrix and mapped files do, Encoded views do not.
func Stats(t Table[float64], cfg parallel.Config) ([]ColumnStats, error) {
	out := make([]ColumnStats, t.Width())
	err := parallel.ForErr(t.Width(), func(j int) error {
		col, err := Column(t, j)
		if err != nil {
			return err
		}
		out[j] = summarize(col)
		return nil
	}, cfg)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func summarize(col []float64) ColumnStats {
	s := ColumnStats{Min: Missing, Max: Missing, Mean: Missing, StdDev: Missing}
	values := col[:0:0]
	for _, v := range col {
		if IsMissing(v) {
			s.Missing++
			continue
		}
		values = append(values, v)
	}
	s.Count = len(values)
	if s.Count == 0 {
		return s
	}
	s.Min, s.Max = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
	}
	if s.Count == 1 {
		s.Mean = values[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	return s
}
