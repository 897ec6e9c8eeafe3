package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/vecstore/engine"
	"github.com/viant/vecstore/index"
	"github.com/viant/vecstore/store"
	"github.com/viant/vecstore/vector"
)

func openSource(t *testing.T) (*Source, *sql.DB) {
	t.Helper()
	db, err := engine.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	src, err := New(context.Background(), db, "")
	require.NoError(t, err)
	return src, db
}

func collect(t *testing.T, src *Source) []Document {
	t.Helper()
	var docs []Document
	require.NoError(t, src.Scan(context.Background(), func(d Document) error {
		docs = append(docs, d)
		return nil
	}))
	return docs
}

func TestNew(t *testing.T) {
	db, err := engine.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	src, err := New(ctx, db, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultTable, src.Table())

	_, err = New(ctx, db, "docs; DROP TABLE documents")
	assert.Error(t, err)

	_, err = New(ctx, nil, "docs")
	assert.Error(t, err)

	again, err := New(ctx, db, DefaultTable)
	require.NoError(t, err)
	n, err := again.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSource_PutScan(t *testing.T) {
	src, _ := openSource(t)
	ctx := context.Background()

	require.NoError(t, src.Put(ctx, []Document{
		{ID: "a", Content: "alpha", Meta: `{"lang":"en"}`, Embedding: []float32{1, 2}},
		{ID: "b", Content: "no vector"},
		{ID: "c", Embedding: []float32{3, 4}},
	}))

	docs := collect(t, src)
	require.Len(t, docs, 2)
	assert.Equal(t, Document{ID: "a", Content: "alpha", Meta: `{"lang":"en"}`, Embedding: []float32{1, 2}}, docs[0])
	assert.Equal(t, "c", docs[1].ID)

	n, err := src.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// upsert keeps the original position
	require.NoError(t, src.Put(ctx, []Document{{ID: "a", Embedding: []float32{9, 9}}}))
	docs = collect(t, src)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, []float32{9, 9}, docs[0].Embedding)
	assert.Empty(t, docs[0].Content)

	require.NoError(t, src.Remove(ctx, "a"))
	require.NoError(t, src.Remove(ctx, "a"))
	docs = collect(t, src)
	require.Len(t, docs, 1)
	assert.Equal(t, "c", docs[0].ID)

	assert.Error(t, src.Put(ctx, []Document{{Content: "missing id"}}))
}

func TestSource_ScanStops(t *testing.T) {
	src, _ := openSource(t)
	ctx := context.Background()
	require.NoError(t, src.Put(ctx, []Document{
		{ID: "a", Embedding: []float32{1}},
		{ID: "b", Embedding: []float32{2}},
	}))

	stop := errors.New("stop")
	seen := 0
	err := src.Scan(ctx, func(Document) error {
		seen++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, seen)
}

func TestSource_ScanInvalidBlob(t *testing.T) {
	src, db := openSource(t)
	_, err := db.Exec(`INSERT INTO documents(id, embedding) VALUES ('bad', X'010203')`)
	require.NoError(t, err)
	assert.Error(t, src.Scan(context.Background(), func(Document) error { return nil }))
}

func TestLoad(t *testing.T) {
	src, _ := openSource(t)
	ctx := context.Background()

	docs := make([]Document, 0, 23)
	for n := 0; n < 23; n++ {
		docs = append(docs, Document{ID: fmt.Sprintf("doc-%02d", n), Embedding: []float32{float32(n), 0}})
	}
	require.NoError(t, src.Put(ctx, docs))

	for _, kind := range []index.Kind{index.KindLinear, index.KindBallTree} {
		t.Run(string(kind), func(t *testing.T) {
			s, err := store.New(store.WithIndex(kind), store.WithLeafSize(3))
			require.NoError(t, err)

			n, err := Load(ctx, src, s, 5)
			require.NoError(t, err)
			assert.Equal(t, 23, n)
			assert.Equal(t, 23, s.Len())

			ids, err := s.Query([]float32{10.2, 0}, 3)
			require.NoError(t, err)
			assert.Equal(t, []string{"doc-10", "doc-11", "doc-09"}, ids)
		})
	}
}

func TestLoad_DimensionMismatch(t *testing.T) {
	src, _ := openSource(t)
	ctx := context.Background()
	require.NoError(t, src.Put(ctx, []Document{
		{ID: "a", Embedding: []float32{1, 1}},
		{ID: "b", Embedding: []float32{2, 2}},
		{ID: "c", Embedding: []float32{3, 3, 3}},
	}))

	s, err := store.New()
	require.NoError(t, err)
	n, err := Load(ctx, src, s, 2)
	assert.ErrorIs(t, err, store.ErrDimensionMismatch)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, s.Len())
}

func TestLoad_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "docs.db")

	db, err := engine.Open(path)
	require.NoError(t, err)
	src, err := New(ctx, db, "notes")
	require.NoError(t, err)
	require.NoError(t, src.Put(ctx, []Document{{ID: "x", Embedding: []float32{0.5}}}))
	require.NoError(t, db.Close())

	db, err = engine.Open(path)
	require.NoError(t, err)
	defer db.Close()
	src, err = New(ctx, db, "notes")
	require.NoError(t, err)

	var entries []vector.Entry
	n, err := Load(ctx, src, inserterFunc(func(batch []vector.Entry) error {
		entries = append(entries, batch...)
		return nil
	}), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []vector.Entry{{ID: "x", Vector: []float32{0.5}}}, entries)
}

type inserterFunc func([]vector.Entry) error

func (f inserterFunc) InsertBatch(entries []vector.Entry) error { return f(entries) }
