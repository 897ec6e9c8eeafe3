package engine

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/vecstore/vector"
)

func encode(t *testing.T, v ...float32) []byte {
	t.Helper()
	b, err := vector.EncodeEmbedding(v)
	require.NoError(t, err)
	return b
}

func TestVecL2(t *testing.T) {
	require.NoError(t, RegisterVectorFunctions())
	require.NoError(t, RegisterVectorFunctions())

	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	t.Run("distance", func(t *testing.T) {
		var dist float64
		err := db.QueryRow(`SELECT vec_l2(?, ?)`, encode(t, 0, 0), encode(t, 3, 4)).Scan(&dist)
		require.NoError(t, err)
		assert.InDelta(t, 5.0, dist, 1e-6)
	})

	t.Run("null operand", func(t *testing.T) {
		var dist sql.NullFloat64
		err := db.QueryRow(`SELECT vec_l2(NULL, ?)`, encode(t, 1)).Scan(&dist)
		require.NoError(t, err)
		assert.False(t, dist.Valid)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		var dist float64
		err := db.QueryRow(`SELECT vec_l2(?, ?)`, encode(t, 1, 2), encode(t, 1)).Scan(&dist)
		assert.Error(t, err)
	})

	t.Run("not a blob", func(t *testing.T) {
		var dist float64
		err := db.QueryRow(`SELECT vec_l2('abc', ?)`, encode(t, 1)).Scan(&dist)
		assert.Error(t, err)
	})

	t.Run("order by distance", func(t *testing.T) {
		_, err := db.Exec(`CREATE TABLE docs(id TEXT, embedding BLOB)`)
		require.NoError(t, err)
		for id, v := range map[string][]float32{"far": {9, 9}, "near": {1, 0}, "mid": {3, 3}} {
			_, err := db.Exec(`INSERT INTO docs VALUES (?, ?)`, id, encode(t, v...))
			require.NoError(t, err)
		}
		rows, err := db.Query(`SELECT id FROM docs ORDER BY vec_l2(embedding, ?) LIMIT 2`, encode(t, 0, 0))
		require.NoError(t, err)
		defer rows.Close()
		var ids []string
		for rows.Next() {
			var id string
			require.NoError(t, rows.Scan(&id))
			ids = append(ids, id)
		}
		require.NoError(t, rows.Err())
		assert.Equal(t, []string{"near", "mid"}, ids)
	})
}
