package vector

import (
	"encoding/binary"
	"fmt"
	"math"
)

const float32Size = 4

// EncodeEmbedding packs vec into the BLOB layout of the document table:
// raw little-endian float32 values, no header. An empty vector encodes to nil.
func EncodeEmbedding(vec []float32) ([]byte, error) {
	if len(vec) == 0 {
		return nil, nil
	}
	b := make([]byte, 0, len(vec)*float32Size)
	for _, v := range vec {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
	}
	return b, nil
}

// DecodeEmbedding is the inverse of EncodeEmbedding.
func DecodeEmbedding(blob []byte) ([]float32, error) {
	if len(blob) == 0 {
		return nil, nil
	}
	if len(blob)%float32Size != 0 {
		return nil, fmt.Errorf("vector: embedding blob of %d bytes is not a float32 array", len(blob))
	}
	vec := make([]float32, len(blob)/float32Size)
	for d := range vec {
		vec[d] = math.Float32frombits(binary.LittleEndian.Uint32(blob[d*float32Size:]))
	}
	return vec, nil
}
