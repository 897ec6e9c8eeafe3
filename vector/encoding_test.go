package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeEmbedding_RoundTrip(t *testing.T) {
	orig := []float32{0.0, 1.5, -2.25, 3.75}

	b, err := EncodeEmbedding(orig)
	require.NoError(t, err)
	assert.Len(t, b, 16)

	decoded, err := DecodeEmbedding(b)
	require.NoError(t, err)
	assert.Equal(t, orig, decoded)
}

func TestEncodeDecodeEmbedding_Empty(t *testing.T) {
	b, err := EncodeEmbedding(nil)
	require.NoError(t, err)
	assert.Empty(t, b)

	vec, err := DecodeEmbedding(nil)
	require.NoError(t, err)
	assert.Empty(t, vec)
}

func TestDecodeEmbedding_InvalidLength(t *testing.T) {
	_, err := DecodeEmbedding([]byte{1, 2, 3})
	assert.Error(t, err)
}
