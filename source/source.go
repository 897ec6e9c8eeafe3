package source

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/viant/vecstore/vector"
)

// DefaultTable is the document table used when none is configured.
const DefaultTable = "documents"

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Document is one row of the document table.
type Document struct {
	ID        string
	Content   string
	Meta      string
	Embedding []float32
}

// Entry returns the id/vector pair fed to a store.
func (d Document) Entry() vector.Entry {
	return vector.Entry{ID: d.ID, Vector: d.Embedding}
}

// Source reads and writes documents in a SQLite table.
type Source struct {
	db    *sql.DB
	table string
}

// New returns a Source over table, creating the table when missing.
func New(ctx context.Context, db *sql.DB, table string) (*Source, error) {
	if db == nil {
		return nil, fmt.Errorf("source: db is nil")
	}
	if table == "" {
		table = DefaultTable
	}
	if !identifier.MatchString(table) {
		return nil, fmt.Errorf("source: invalid table name %q", table)
	}
	s := &Source{db: db, table: table}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Table returns the table name.
func (s *Source) Table() string { return s.table }

func (s *Source) ensureSchema(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    id TEXT PRIMARY KEY,
    content TEXT,
    meta TEXT,
    embedding BLOB
)`, s.table)
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("source: creating table %s: %w", s.table, err)
	}
	return nil
}

// Put upserts docs in one transaction. An existing id keeps its rowid, so
// Scan order is first-insert order.
func (s *Source) Put(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s(id, content, meta, embedding) VALUES(?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET content = excluded.content, meta = excluded.meta, embedding = excluded.embedding`, s.table))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range docs {
		if d.ID == "" {
			return fmt.Errorf("source: document id must be set")
		}
		emb, err := vector.EncodeEmbedding(d.Embedding)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, d.ID, d.Content, d.Meta, emb); err != nil {
			return fmt.Errorf("source: put %q: %w", d.ID, err)
		}
	}
	return tx.Commit()
}

// Remove deletes the document with the given id; absent ids are ignored.
func (s *Source) Remove(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.table), id)
	return err
}

// Count returns the number of rows, including rows without an embedding.
func (s *Source) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.table)).Scan(&n)
	return n, err
}

// Scan calls fn for every document with a non-empty embedding in rowid
// order. An error from fn stops the scan and is returned.
func (s *Source) Scan(ctx context.Context, fn func(Document) error) error {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT id, content, meta, embedding FROM %s ORDER BY rowid`, s.table))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			d             Document
			content, meta sql.NullString
			blob          []byte
		)
		if err := rows.Scan(&d.ID, &content, &meta, &blob); err != nil {
			return err
		}
		if len(blob) == 0 {
			continue
		}
		if d.Embedding, err = vector.DecodeEmbedding(blob); err != nil {
			return fmt.Errorf("source: document %q: %w", d.ID, err)
		}
		d.Content, d.Meta = content.String, meta.String
		if err := fn(d); err != nil {
			return err
		}
	}
	return rows.Err()
}
