// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tokenizer turns text into index tensors for nn.Embedding.
//
// Supported tokenizers:
//   - TikToken: OpenAI BPE encodings (cl100k_base, p50k_base, r50k_base)
//   - ByteLevel: one token per byte, offline
//
// Example usage:
//
//	import "github.com/born-ml/sprout/tokenizer"
//
//	tok, err := tokenizer.NewTikToken("cl100k_base")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ids, err := tokenizer.Indices(tok, "Hello, world!")
package tokenizer

import (
	"github.com/born-ml/sprout/internal/tensor"
	"github.com/born-ml/sprout/internal/tokenizer"
)

// Tokenizer is the interface implemented by all tokenizers.
type Tokenizer = tokenizer.Tokenizer

// TikToken wraps an OpenAI BPE encoding.
type TikToken = tokenizer.TikToken

// ByteLevel maps each byte to its own token.
type ByteLevel = tokenizer.ByteLevel

// NewTikToken creates a TikToken tokenizer for the named encoding.
func NewTikToken(encoding string) (*TikToken, error) {
	return tokenizer.NewTikToken(encoding)
}

// NewByteLevel creates a byte-level tokenizer.
func NewByteLevel() *ByteLevel {
	return tokenizer.NewByteLevel()
}

// Indices encodes text into an [n] float32 tensor of token ids.
func Indices(tok Tokenizer, text string) (*tensor.Tensor, error) {
	return tokenizer.Indices(tok, text)
}
