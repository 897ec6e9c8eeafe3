package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEuclidean(t *testing.T) {
	testCases := []struct {
		name   string
		a, b   []float32
		expect float32
	}{
		{name: "3-4-5", a: []float32{0, 0}, b: []float32{3, 4}, expect: 5},
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, expect: 0},
		{name: "symmetric", a: []float32{3, 4}, b: []float32{0, 0}, expect: 5},
		{name: "one dimension", a: []float32{-2}, b: []float32{2}, expect: 4},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expect, Euclidean(tc.a, tc.b), 1e-6)
		})
	}
}

func TestL2Distance(t *testing.T) {
	d, err := L2Distance([]float32{0, 0}, []float32{3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 5, d, 1e-6)

	_, err = L2Distance([]float32{0, 0}, []float32{1})
	assert.Error(t, err)

	d, err = L2Distance(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestClone(t *testing.T) {
	orig := []float32{1, 2}
	cp := Clone(orig)
	cp[0] = 9
	assert.Equal(t, float32(1), orig[0])
	assert.Nil(t, Clone(nil))
	assert.Equal(t, 2, Entry{ID: "a", Vector: orig}.Dimension())
}
