package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"runtime"
	"slices"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/viant/vecstore/config"
	"github.com/viant/vecstore/index"
	"github.com/viant/vecstore/store"
	"github.com/viant/vecstore/vector"
)

type benchCommander struct {
	entries     int
	dimension   int
	clusters    int
	spread      float64
	queries     int
	concurrency int
	seed        uint64
}

type benchResult struct {
	kind       index.Kind
	insert     time.Duration
	firstQuery time.Duration
	queries    time.Duration
	ids        [][]string
}

const benchLongDesc = `Compare the linear and ball-tree backends on clustered random data.

Both stores receive the same entries and answer the same queries concurrently.
The command fails when any query returns different ids on the two backends.`

func newBenchCmd(a *app) *cobra.Command {
	cmder := &benchCommander{}
	d := config.NewDefaultConfig()

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark and cross-check the index backends",
		Long:  benchLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd, a)
		},
	}
	cmd.Flags().IntVar(&cmder.entries, "n", 10000, "number of entries")
	cmd.Flags().IntVar(&cmder.dimension, "dim", 16, "vector dimension")
	cmd.Flags().IntVar(&cmder.clusters, "clusters", 16, "number of clusters")
	cmd.Flags().Float64Var(&cmder.spread, "spread", 1, "cluster standard deviation")
	cmd.Flags().IntVar(&cmder.queries, "queries", 500, "number of queries")
	cmd.Flags().IntVar(&cmder.concurrency, "concurrency", runtime.NumCPU(), "concurrent queries")
	cmd.Flags().Uint64Var(&cmder.seed, "seed", 1, "random seed")
	cmd.Flags().Int("k", d.Query.K, "number of neighbors")
	cmd.Flags().Int("leaf-size", d.Index.LeafSize, "ball-tree leaf capacity")
	return cmd
}

func (c *benchCommander) run(cmd *cobra.Command, a *app) error {
	if c.entries < 1 || c.dimension < 1 || c.clusters < 1 || c.queries < 1 {
		return fmt.Errorf("n, dim, clusters and queries must be positive")
	}
	r := rand.New(rand.NewPCG(c.seed, c.seed^0x9e3779b97f4a7c15))
	entries, queries := c.generate(r)
	a.logger.Info("bench data generated",
		"entries", len(entries), "dimension", c.dimension, "clusters", c.clusters, "queries", len(queries))

	k := a.cfg.Query.K
	var results []*benchResult
	var tree *store.Store
	for _, kind := range []index.Kind{index.KindLinear, index.KindBallTree} {
		opts, err := a.storeOptions(store.WithIndex(kind))
		if err != nil {
			return err
		}
		s, err := store.New(opts...)
		if err != nil {
			return err
		}
		res, err := c.measure(cmd, s, entries, queries, k)
		if err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
		results = append(results, res)
		if kind == index.KindBallTree {
			tree = s
		}
	}

	mismatches := 0
	for q := range queries {
		if !slices.Equal(results[0].ids[q], results[1].ids[q]) {
			mismatches++
		}
	}

	out := cmd.OutOrStdout()
	renderBench(out, results, len(entries), len(queries))
	if err := renderTreeStats(out, tree, queries, k); err != nil {
		return err
	}
	if mismatches > 0 {
		return fmt.Errorf("%d of %d queries differ between backends", mismatches, len(queries))
	}
	fmt.Fprintf(out, "all %s queries agree\n", humanize.Comma(int64(len(queries))))
	return nil
}

// generate draws entries around random cluster centers; queries come from the
// same distribution.
func (c *benchCommander) generate(r *rand.Rand) ([]vector.Entry, [][]float32) {
	centers := make([][]float32, c.clusters)
	for j := range centers {
		centers[j] = make([]float32, c.dimension)
		for d := range centers[j] {
			centers[j][d] = float32(r.Float64()*20 - 10)
		}
	}
	sample := func() []float32 {
		center := centers[r.IntN(len(centers))]
		v := make([]float32, c.dimension)
		for d := range v {
			v[d] = center[d] + float32(r.NormFloat64()*c.spread)
		}
		return v
	}

	entries := make([]vector.Entry, c.entries)
	for j := range entries {
		entries[j] = vector.Entry{ID: uuid.NewString(), Vector: sample()}
	}
	queries := make([][]float32, c.queries)
	for j := range queries {
		queries[j] = sample()
	}
	return entries, queries
}

func (c *benchCommander) measure(cmd *cobra.Command, s *store.Store, entries []vector.Entry, queries [][]float32, k int) (*benchResult, error) {
	res := &benchResult{kind: s.Kind(), ids: make([][]string, len(queries))}

	started := time.Now()
	if err := s.InsertBatch(entries); err != nil {
		return nil, err
	}
	res.insert = time.Since(started)

	// the first query pays for the ball-tree build
	started = time.Now()
	if _, err := s.Query(queries[0], k); err != nil {
		return nil, err
	}
	res.firstQuery = time.Since(started)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(1, c.concurrency))
	started = time.Now()
	for q := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ids, err := s.Query(queries[q], k)
			if err != nil {
				return err
			}
			res.ids[q] = ids
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	res.queries = time.Since(started)
	return res, nil
}

func renderBench(w io.Writer, results []*benchResult, entries, queries int) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"index", "entries", "insert", "first query", "queries", "throughput"})
	for _, res := range results {
		qps := float64(queries) / res.queries.Seconds()
		tw.Append([]string{
			string(res.kind),
			humanize.Comma(int64(entries)),
			res.insert.Round(time.Microsecond).String(),
			res.firstQuery.Round(time.Microsecond).String(),
			res.queries.Round(time.Microsecond).String(),
			humanize.SIWithDigits(qps, 2, "q/s"),
		})
	}
	tw.Render()
}

// renderTreeStats replays the queries and averages the per-query counters.
func renderTreeStats(w io.Writer, s *store.Store, queries [][]float32, k int) error {
	var visited, pruned, distances float64
	var shape struct{ nodes, leaves, depth int }
	for _, q := range queries {
		_, st, err := s.SearchWithStats(q, k)
		if err != nil {
			return err
		}
		if st == nil {
			return nil
		}
		visited += float64(st.Visited) / float64(st.Nodes)
		pruned += float64(st.Pruned)
		distances += float64(st.Distances) / float64(s.Len())
		shape.nodes, shape.leaves, shape.depth = st.Nodes, st.Leaves, st.Depth
	}
	n := float64(len(queries))

	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"nodes", "leaves", "depth", "visited", "pruned / query", "distances / entries"})
	tw.Append([]string{
		humanize.Comma(int64(shape.nodes)),
		humanize.Comma(int64(shape.leaves)),
		strconv.Itoa(shape.depth),
		fmt.Sprintf("%.1f%%", 100*visited/n),
		fmt.Sprintf("%.1f", pruned/n),
		fmt.Sprintf("%.1f%%", 100*distances/n),
	})
	tw.Render()
	return nil
}
