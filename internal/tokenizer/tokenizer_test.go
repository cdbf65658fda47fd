package tokenizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/sprout/internal/nn"
	"github.com/born-ml/sprout/internal/tensor"
	"github.com/born-ml/sprout/internal/tokenizer"
)

func TestByteLevel_Roundtrip(t *testing.T) {
	tok := tokenizer.NewByteLevel()
	assert.Equal(t, 256, tok.VocabSize())

	for _, text := range []string{"", "abc", "Hello 世界!"} {
		tokens, err := tok.Encode(text)
		require.NoError(t, err)
		assert.Len(t, tokens, len(text))

		decoded, err := tok.Decode(tokens)
		require.NoError(t, err)
		assert.Equal(t, text, decoded)
	}
}

func TestByteLevel_Encode(t *testing.T) {
	tokens, err := tokenizer.NewByteLevel().Encode("AB")
	require.NoError(t, err)
	assert.Equal(t, []int32{65, 66}, tokens)
}

func TestByteLevel_DecodeOutOfRange(t *testing.T) {
	tok := tokenizer.NewByteLevel()
	_, err := tok.Decode([]int32{65, 300})
	assert.Error(t, err)
	_, err = tok.Decode([]int32{-1})
	assert.Error(t, err)
}

func TestIndices(t *testing.T) {
	x, err := tokenizer.Indices(tokenizer.NewByteLevel(), "hi")
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2}, x.Shape)
	assert.Equal(t, []float32{104, 105}, x.Data)

	_, err = tokenizer.Indices(tokenizer.NewByteLevel(), "")
	assert.ErrorIs(t, err, tensor.ErrInvalidShape)
}

func TestIndicesFeedEmbedding(t *testing.T) {
	// A table smaller than the vocabulary leaves out-of-range ids as zero rows.
	embed := nn.NewEmbedding(100, 3)
	x, err := tokenizer.Indices(tokenizer.NewByteLevel(), "\xc8\x01")
	require.NoError(t, err)

	out, err := embed.Forward(nn.Eval, x)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, out.Shape)
	assert.Equal(t, []float32{0, 0, 0}, out.Data[0:3])
	assert.Equal(t, embed.Weight.Tensor().Data[3:6], out.Data[3:6])
}
