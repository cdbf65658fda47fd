package tokenizer

import "fmt"

// ByteVocabSize is the vocabulary size of ByteLevel.
const ByteVocabSize = 256

// ByteLevel maps every UTF-8 byte of the input to its own token.
// It needs no vocabulary files, which makes it the offline default.
type ByteLevel struct{}

// NewByteLevel creates a byte-level tokenizer.
func NewByteLevel() *ByteLevel {
	return &ByteLevel{}
}

// Encode returns one token per byte of text.
func (b *ByteLevel) Encode(text string) ([]int32, error) {
	tokens := make([]int32, len(text))
	for i := 0; i < len(text); i++ {
		tokens[i] = int32(text[i])
	}
	return tokens, nil
}

// Decode reassembles bytes. Token ids outside [0, 256) are an error.
func (b *ByteLevel) Decode(tokens []int32) (string, error) {
	buf := make([]byte, len(tokens))
	for i, tok := range tokens {
		if tok < 0 || tok >= ByteVocabSize {
			return "", fmt.Errorf("byte level: token %d at position %d out of range", tok, i)
		}
		buf[i] = byte(tok)
	}
	return string(buf), nil
}

// VocabSize returns ByteVocabSize.
func (b *ByteLevel) VocabSize() int {
	return ByteVocabSize
}
