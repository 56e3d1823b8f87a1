package tokenizer

import "errors"

// ErrUnknownToken is returned when decoding an id that has no entry in the
// vocabulary.
var ErrUnknownToken = errors.New("tokenizer: unknown token id")

// Tokenizer is the interface table columns use to encode text cells.
type Tokenizer interface {
	// Encode converts text to token IDs.
	Encode(text string) ([]int32, error)

	// Decode converts token IDs back to text.
	Decode(tokens []int32) (string, error)

	// VocabSize returns the current vocabulary size.
	VocabSize() int

	// Name returns the tokenizer name.
	Name() string
}

// ByName returns the tokenizer called name: "words" for a growing word
// vocabulary, otherwise the tiktoken encoding of that name.
func ByName(name string) (Tokenizer, error) {
	if name == "words" {
		return NewGrowingWords(), nil
	}
	tok, err := NewTikToken(name)
	if err != nil {
		return nil, err
	}
	return tok, nil
}
