package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mycok/uGraph/computer"
	"github.com/mycok/uGraph/computer/programs/coloring"
	"github.com/mycok/uGraph/computer/programs/pagerank"
	"github.com/mycok/uGraph/computer/programs/shortestpath"
	"github.com/mycok/uGraph/graph"
	"github.com/mycok/uGraph/graph/store/memory"
	"github.com/mycok/uGraph/graph/toy"
	"github.com/mycok/uGraph/traversal"
)

// options holds the flags shared by every command.
type options struct {
	dataset   string
	chainSize int
	workers   int
	logLevel  string
	dirty     bool
}

func newRootCmd(logger *logrus.Entry) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Run traversals and vertex programs over a sample property graph",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := logrus.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}

			logger.Logger.SetLevel(level)

			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.dataset, "graph", "modern", "sample graph to load: modern or chain")
	flags.IntVar(&opts.chainSize, "chain-size", 5, "number of vertices of the chain graph")
	flags.IntVar(&opts.workers, "workers", 4, "graph computer workers")
	flags.StringVar(&opts.logLevel, "log-level", "warning", "log level")
	flags.BoolVar(&opts.dirty, "dirty", false, "let vertices observe writes made during the current superstep")

	rootCmd.AddCommand(
		newTraverseCmd(opts, logger),
		newPageRankCmd(opts, logger),
		newShortestPathCmd(opts, logger),
		newColorCmd(opts, logger),
	)

	return rootCmd
}

func newTraverseCmd(opts *options, logger *logrus.Entry) *cobra.Command {
	var (
		start    []string
		hops     []string
		has      []string
		valueKey string
		index    []string
	)

	cmd := &cobra.Command{
		Use:   "traverse",
		Short: "Walk the graph and print the reached elements or property values",
		Example: `  ugraph traverse --has name=marko --out knows --values name
  ugraph traverse --index name --has name=josh --out created`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := loadGraph(opts)
			if err != nil {
				return err
			}

			for _, key := range index {
				if err = g.CreateKeyIndex(graph.VertexKind, key); err != nil {
					return err
				}
			}

			t := traversal.New(g, traversal.WithLogger(logger)).V(start...)
			for _, cond := range has {
				key, value, err := parseCondition(cond)
				if err != nil {
					return err
				}

				t = t.Has(key, value)
			}

			for _, label := range hops {
				t = t.Out(label)
			}

			if valueKey != "" {
				t = t.Values(valueKey)
			}

			results, err := t.ToList()
			if err != nil {
				return err
			}

			for _, res := range results {
				fmt.Fprintln(cmd.OutOrStdout(), res)
			}

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&start, "start", nil, "ids of the start vertices; all vertices when empty")
	cmd.Flags().StringArrayVar(&has, "has", nil, "key=value condition on the start vertices")
	cmd.Flags().StringArrayVar(&hops, "out", nil, "follow out edges with this label, repeatable")
	cmd.Flags().StringVar(&valueKey, "values", "", "print this property instead of the elements")
	cmd.Flags().StringSliceVar(&index, "index", nil, "vertex property keys to index before traversing")

	return cmd
}

func newPageRankCmd(opts *options, logger *logrus.Entry) *cobra.Command {
	var cfg pagerank.Config

	cmd := &cobra.Command{
		Use:   "pagerank",
		Short: "Compute PageRank scores of every vertex",
		RunE: func(cmd *cobra.Command, _ []string) error {
			prog, err := pagerank.NewProgram(cfg)
			if err != nil {
				return err
			}

			res, err := compute(cmd, opts, logger, prog)
			if err != nil {
				return err
			}

			scores := pagerank.Scores(res)
			for _, id := range sortedIDs(res) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.4f\n", id, scores[id])
			}

			return nil
		},
	}

	cmd.Flags().Float64Var(&cfg.DampingFactor, "damping", 0.85, "damping factor")
	cmd.Flags().Float64Var(&cfg.MinSADForConvergence, "min-sad", 0.001, "convergence threshold")
	cmd.Flags().StringSliceVar(&cfg.EdgeLabels, "labels", nil, "edge labels to follow; all when empty")

	return cmd
}

func newShortestPathCmd(opts *options, logger *logrus.Entry) *cobra.Command {
	var (
		cfg        shortestpath.Config
		dest       string
		undirected bool
	)

	cmd := &cobra.Command{
		Use:   "shortest-path",
		Short: "Compute the distance of every vertex from a source vertex",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if undirected {
				cfg.Direction = graph.Both
			}

			prog, err := shortestpath.NewProgram(cfg)
			if err != nil {
				return err
			}

			res, err := compute(cmd, opts, logger, prog)
			if err != nil {
				return err
			}

			ids := []string{dest}
			if dest == "" {
				ids = sortedIDs(res)
			}

			for _, id := range ids {
				path, cost, err := shortestpath.PathTo(res, id)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\tunreachable\n", id)

					continue
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%g\t%s\n", id, cost, strings.Join(path, "->"))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.Source, "source", "1", "id of the source vertex")
	cmd.Flags().StringVar(&dest, "dest", "", "only print the path to this vertex")
	cmd.Flags().StringVar(&cfg.WeightKey, "weight", "weight", "edge property holding the weight")
	cmd.Flags().BoolVar(&undirected, "undirected", false, "follow edges in both directions")

	return cmd
}

func newColorCmd(opts *options, logger *logrus.Entry) *cobra.Command {
	var cfg coloring.Config

	cmd := &cobra.Command{
		Use:   "color",
		Short: "Color the vertices so that no two neighbors share a color",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := compute(cmd, opts, logger, coloring.NewProgram(cfg))
			if err != nil {
				return err
			}

			colors, numOfColors := coloring.Colors(res)
			for _, id := range sortedIDs(res) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", id, colors[id])
			}

			logger.WithField("colors", numOfColors).Info("graph colored")

			return nil
		},
	}

	cmd.Flags().Uint64Var(&cfg.Seed, "seed", 0, "seed deciding which vertex picks a color first")
	cmd.Flags().StringSliceVar(&cfg.EdgeLabels, "labels", nil, "edge labels connecting vertices; all when empty")

	return cmd
}

func compute(cmd *cobra.Command, opts *options, logger *logrus.Entry, prog computer.VertexProgram) (*computer.Result, error) {
	g, err := loadGraph(opts)
	if err != nil {
		return nil, err
	}

	comp, err := computer.New(g, computer.Config{
		Workers:    opts.workers,
		Logger:     logger,
		Registerer: prometheus.NewRegistry(),
	})
	if err != nil {
		return nil, err
	}

	isolation := computer.IsolationBSP
	if opts.dirty {
		isolation = computer.IsolationDirtyBSP
	}

	return comp.Compute(cmd.Context(), prog, isolation, nil)
}

func loadGraph(opts *options) (*memory.InMemoryGraph, error) {
	g := memory.NewInMemoryGraph()

	switch opts.dataset {
	case "modern":
		return g, toy.LoadModern(g)
	case "chain":
		return g, toy.LoadKnowsChain(g, opts.chainSize)
	default:
		return nil, fmt.Errorf("unknown sample graph %q", opts.dataset)
	}
}

// parseCondition splits key=value. Numeric values are compared as numbers.
func parseCondition(cond string) (string, interface{}, error) {
	key, raw, found := strings.Cut(cond, "=")
	if !found || key == "" {
		return "", nil, fmt.Errorf("invalid condition %q, expected key=value", cond)
	}

	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return key, n, nil
	}

	if b, err := strconv.ParseBool(raw); err == nil {
		return key, b, nil
	}

	return key, raw, nil
}

func sortedIDs(res *computer.Result) []string {
	ids := make([]string, 0, len(res.Values))
	for id := range res.Values {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}
