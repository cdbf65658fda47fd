// Package tokenizer turns text into index tensors for nn.Embedding.
//
// Two tokenizers are provided:
//   - TikToken: OpenAI BPE encodings (cl100k_base, p50k_base, r50k_base)
//     through github.com/pkoukk/tiktoken-go
//   - ByteLevel: one token per UTF-8 byte, vocabulary of 256, no downloads
//
// Example usage:
//
//	tok := tokenizer.NewByteLevel()
//	ids, err := tokenizer.Indices(tok, "hello")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	embed := nn.NewEmbedding(tok.VocabSize(), 16)
//	vectors, err := embed.Forward(nn.Eval, ids) // [5, 16]
package tokenizer

import (
	"fmt"

	"github.com/born-ml/sprout/internal/tensor"
)

// Tokenizer is the core interface for text tokenization.
type Tokenizer interface {
	// Encode converts text to token IDs.
	Encode(text string) ([]int32, error)

	// Decode converts token IDs back to text.
	Decode(tokens []int32) (string, error)

	// VocabSize returns the total vocabulary size.
	VocabSize() int
}

// Indices encodes text and returns the token ids as an [n] float32 tensor
// suitable as Embedding input. Ids are kept as-is even when they exceed a
// particular embedding table; Embedding maps those to zero rows.
func Indices(tok Tokenizer, text string) (*tensor.Tensor, error) {
	ids, err := tok.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("indices: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("indices: %w: text produced no tokens", tensor.ErrInvalidShape)
	}

	data := make([]float32, len(ids))
	for i, id := range ids {
		data[i] = float32(id)
	}
	return tensor.FromSlice(data, tensor.Shape{len(ids)})
}
