// Package tokenizer turns free text cells into sequences of token ids.
//
// Tables use a tokenizer for columns declared with the tokens field type:
// the value of such a cell is the vector of its token ids instead of a
// single number.
//
// Two implementations are provided:
//   - TikToken: OpenAI BPE encodings (cl100k_base, p50k_base, r50k_base)
//   - Words: whitespace word vocabulary, fixed or growing on first sight
//
// Example usage:
//
//	tok, err := tokenizer.NewTikToken("cl100k_base")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ids, err := tok.Encode("Hello, world!")
//	if err != nil {
//	    log.Fatal(err)
//	}
package tokenizer
