package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/viant/vecstore/config"
	"github.com/viant/vecstore/index"
	"github.com/viant/vecstore/source"
	"github.com/viant/vecstore/store"
)

type queryCommander struct {
	vector string
	id     string
	batch  int
}

const queryLongDesc = `Load the document table into an in-memory store and print the k nearest
documents to a query vector.

The query is either a literal vector (--vector 0.1,0.2) or the stored vector of
an existing document (--id doc-1).`

func newQueryCmd(a *app) *cobra.Command {
	cmder := &queryCommander{}
	d := config.NewDefaultConfig()

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Find the k nearest documents",
		Long:  queryLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd, a)
		},
	}
	cmd.Flags().StringVar(&cmder.vector, "vector", "", "comma separated query vector")
	cmd.Flags().StringVar(&cmder.id, "id", "", "use the vector of this document as the query")
	cmd.Flags().IntVar(&cmder.batch, "batch", source.DefaultBatchSize, "entries per insert batch while loading")
	cmd.Flags().Int("k", d.Query.K, "number of neighbors")
	cmd.Flags().String("index", d.Index.Kind, "index kind: linear or balltree")
	cmd.Flags().Int("leaf-size", d.Index.LeafSize, "ball-tree leaf capacity")
	cmd.MarkFlagsMutuallyExclusive("vector", "id")
	cmd.MarkFlagsOneRequired("vector", "id")
	return cmd
}

func (c *queryCommander) run(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()
	src, closeDB, err := a.openSource(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	opts, err := a.storeOptions()
	if err != nil {
		return err
	}
	s, err := store.New(opts...)
	if err != nil {
		return err
	}
	loaded, err := source.Load(ctx, src, s, c.batch)
	if err != nil {
		return fmt.Errorf("loading %s: %w", src.Table(), err)
	}
	a.logger.Debug("documents loaded", "count", loaded, "dimension", s.Dimension())

	query, err := c.query(s)
	if err != nil {
		return err
	}
	matches, err := s.Search(query, a.cfg.Query.K)
	if err != nil {
		return err
	}
	renderMatches(cmd.OutOrStdout(), matches)
	return nil
}

func (c *queryCommander) query(s *store.Store) ([]float32, error) {
	if c.id != "" {
		return s.Get(c.id)
	}
	return parseVector(c.vector)
}

func parseVector(text string) ([]float32, error) {
	parts := strings.Split(text, ",")
	vec := make([]float32, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid vector component %q: %w", p, err)
		}
		vec = append(vec, float32(v))
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("empty query vector")
	}
	return vec, nil
}

func renderMatches(w io.Writer, matches []index.Match) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"rank", "id", "distance"})
	for n, m := range matches {
		tw.Append([]string{
			strconv.Itoa(n + 1),
			m.ID,
			strconv.FormatFloat(float64(m.Distance), 'f', 6, 32),
		})
	}
	tw.Render()
}
