package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/viant/vecstore/source"
)

const importLongDesc = `Import documents from a JSON Lines file into the SQLite document table.

Each line is an object with an "id", a numeric "vector" array and optional
"content" and "meta" fields; meta is stored as raw JSON. Existing ids are
replaced. Blank lines are skipped.

Example:
  {"id": "doc-1", "vector": [0.1, 0.2], "content": "hello", "meta": {"lang": "en"}}`

const maxLineSize = 16 << 20

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.jsonl>",
		Short: "Import JSONL documents into SQLite",
		Long:  importLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			docs, err := readDocuments(f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			src, closeDB, err := a.openSource(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			if err := src.Put(cmd.Context(), docs); err != nil {
				return fmt.Errorf("importing documents: %w", err)
			}
			a.logger.Info("import completed", "documents", len(docs), "table", src.Table())
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d documents into %s\n", len(docs), src.Table())
			return nil
		},
	}
}

// readDocuments parses every non-blank line of r. Lines are decoded in
// parallel; the result keeps file order.
func readDocuments(r io.Reader) ([]source.Document, error) {
	var lines []string
	var numbers []int
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		numbers = append(numbers, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	docs := make([]source.Document, len(lines))
	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for j := range lines {
		g.Go(func() error {
			doc, err := parseDocument(lines[j])
			if err != nil {
				return fmt.Errorf("line %d: %w", numbers[j], err)
			}
			docs[j] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func parseDocument(line string) (source.Document, error) {
	if !gjson.Valid(line) {
		return source.Document{}, fmt.Errorf("invalid JSON")
	}
	fields := gjson.GetMany(line, "id", "vector", "content", "meta")
	id, vec, content, meta := fields[0], fields[1], fields[2], fields[3]

	if id.Type != gjson.String || id.String() == "" {
		return source.Document{}, fmt.Errorf("missing string id")
	}
	if !vec.IsArray() {
		return source.Document{}, fmt.Errorf("document %q: vector must be an array", id.String())
	}
	values := vec.Array()
	embedding := make([]float32, len(values))
	for d, v := range values {
		if v.Type != gjson.Number {
			return source.Document{}, fmt.Errorf("document %q: vector[%d] is not a number", id.String(), d)
		}
		embedding[d] = float32(v.Float())
	}

	doc := source.Document{ID: id.String(), Content: content.String(), Embedding: embedding}
	if meta.Exists() {
		doc.Meta = meta.Raw
	}
	return doc, nil
}
