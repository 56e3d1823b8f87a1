package tokenizer

import (
	"fmt"
	"strings"
)

// Words splits text on whitespace and maps every word to an id.
//
// A fixed vocabulary maps unseen words to the unknown id (or fails when
// there is none). A growing vocabulary assigns the next id to a word the
// first time it is seen and never renumbers it.
type Words struct {
	vocab   map[string]int32 // word -> ID
	reverse []string         // ID -> word
	unk     int32
	grow    bool
}

// NewWords creates a fixed-vocabulary tokenizer. Words absent from vocab
// encode to unk; pass -1 to make them an error instead.
func NewWords(vocab []string, unk int32) *Words {
	w := &Words{
		vocab:   make(map[string]int32, len(vocab)),
		reverse: make([]string, 0, len(vocab)),
		unk:     unk,
	}
	for _, word := range vocab {
		w.add(word)
	}
	return w
}

// NewGrowingWords creates a tokenizer whose vocabulary grows on first sight.
func NewGrowingWords() *Words {
	return &Words{
		vocab: make(map[string]int32),
		unk:   -1,
		grow:  true,
	}
}

func (w *Words) add(word string) int32 {
	if id, ok := w.vocab[word]; ok {
		return id
	}
	id := int32(len(w.reverse)) //nolint:gosec // G115: vocabularies stay far below 2^31.
	w.vocab[word] = id
	w.reverse = append(w.reverse, word)
	return id
}

// Encode converts text to token IDs.
func (w *Words) Encode(text string) ([]int32, error) {
	words := strings.Fields(text)
	tokens := make([]int32, 0, len(words))
	for _, word := range words {
		id, ok := w.vocab[word]
		switch {
		case ok:
		case w.grow:
			id = w.add(word)
		case w.unk >= 0:
			id = w.unk
		default:
			return nil, fmt.Errorf("tokenizer: word %q not in vocabulary", word)
		}
		tokens = append(tokens, id)
	}
	return tokens, nil
}

// Decode joins the words of the given ids with single spaces.
func (w *Words) Decode(tokens []int32) (string, error) {
	parts := make([]string, len(tokens))
	for i, id := range tokens {
		if id < 0 || int(id) >= len(w.reverse) {
			return "", fmt.Errorf("%w: %d", ErrUnknownToken, id)
		}
		parts[i] = w.reverse[id]
	}
	return strings.Join(parts, " "), nil
}

// VocabSize returns the number of known words.
func (w *Words) VocabSize() int {
	return len(w.reverse)
}

// Name returns "words".
func (w *Words) Name() string {
	return "words"
}
