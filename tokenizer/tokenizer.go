// Package tokenizer provides the text tokenizers used by tokens columns.
//
// Supported tokenizers:
//   - TikToken: OpenAI BPE encodings (cl100k_base, p50k_base, r50k_base)
//   - Words: whitespace word vocabulary, fixed or growing on first sight
//
// Example usage:
//
//	import "github.com/born-ml/strider/tokenizer"
//
//	tok := tokenizer.NewGrowingWords()
//	st.SetTokenizer(tok)
package tokenizer

import (
	"github.com/born-ml/strider/internal/tokenizer"
)

// Tokenizer is the core interface for text tokenization.
type Tokenizer = tokenizer.Tokenizer

// ErrUnknownToken is returned when decoding an id outside the vocabulary.
var ErrUnknownToken = tokenizer.ErrUnknownToken

// NewTikToken creates a new TikToken tokenizer with the specified encoding.
//
// Supported encodings: "cl100k_base" (GPT-4), "p50k_base" (GPT-3).
func NewTikToken(encodingName string) (Tokenizer, error) {
	tok, err := tokenizer.NewTikToken(encodingName)
	if err != nil {
		return nil, err
	}
	return tok, nil
}

// NewWords creates a fixed-vocabulary word tokenizer. Unknown words encode
// to unk, or fail when unk is negative.
func NewWords(vocab []string, unk int32) Tokenizer {
	return tokenizer.NewWords(vocab, unk)
}

// NewGrowingWords creates a word tokenizer that assigns ids on first sight.
func NewGrowingWords() Tokenizer {
	return tokenizer.NewGrowingWords()
}

// ByName returns "words" as a growing word tokenizer, any other name as
// the tiktoken encoding of that name.
func ByName(name string) (Tokenizer, error) {
	return tokenizer.ByName(name)
}
