package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/cours-de-latin/wordnet"
	"github.com/cours-de-latin/wordnet/internal/storeuri"
	"github.com/cours-de-latin/wordnet/similarity"
)

type synsetRow struct {
	Name       string   `json:"name" yaml:"name"`
	POS        string   `json:"pos" yaml:"pos"`
	Lemmas     []string `json:"lemmas" yaml:"lemmas"`
	Definition string   `json:"definition" yaml:"definition"`
}

func (a *app) lookupCommand() *cobra.Command {
	var pos string
	cmd := &cobra.Command{
		Use:   "lookup LEMMA",
		Short: "List the synsets of a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			var found []*wordnet.Synset
			if pos == "" {
				found = d.SynsetsAnyPOS(args[0])
			} else {
				p, ok := wordnet.ParsePartOfSpeech(pos)
				if !ok {
					return fmt.Errorf("unknown part of speech %q", pos)
				}
				found = d.Synsets(args[0], p)
			}
			if len(found) == 0 {
				return fmt.Errorf("no synsets for %q", args[0])
			}

			rows := make([]synsetRow, 0, len(found))
			for _, s := range found {
				row := synsetRow{Name: s.Name(), POS: s.POS.String(), Definition: s.Definition}
				for _, l := range s.Lemmas {
					row.Lemmas = append(row.Lemmas, l.String())
				}
				rows = append(rows, row)
			}
			return a.render(cmd.OutOrStdout(), rows, func(t *tablewriter.Table) {
				t.Header("Synset", "POS", "Definition")
				for _, r := range rows {
					t.Append(r.Name, r.POS, r.Definition)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&pos, "pos", "p", "", "part of speech (n, v, a, r, s)")
	return cmd
}

type scoreRow struct {
	Measure string  `json:"measure" yaml:"measure"`
	A       string  `json:"a" yaml:"a"`
	B       string  `json:"b" yaml:"b"`
	Score   float64 `json:"score" yaml:"score"`
}

func (a *app) similarityCommand() *cobra.Command {
	var measures []string
	var icFile string
	cmd := &cobra.Command{
		Use:   "similarity A B",
		Short: "Score two synsets, named like dog.n.01",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, src, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			s1, s2, err := synsetArgs(d, args)
			if err != nil {
				return err
			}
			env := similarity.Env{Dict: d}
			if icFile != "" {
				if env.IC, err = d.LoadInformationContent(cmd.Context(), src, icFile); err != nil {
					return err
				}
			}

			reg := similarity.NewRegistry()
			var rows []scoreRow
			for _, name := range measures {
				m, err := reg.New(name, env)
				if err != nil {
					return err
				}
				rows = append(rows, scoreRow{Measure: name, A: s1.Name(), B: s2.Name(), Score: m.Similarity(s1, s2)})
			}
			return a.render(cmd.OutOrStdout(), rows, func(t *tablewriter.Table) {
				t.Header("Measure", "Score")
				for _, r := range rows {
					t.Append(r.Measure, strconv.FormatFloat(r.Score, 'f', 4, 64))
				}
			})
		},
	}
	cmd.Flags().StringSliceVarP(&measures, "measure", "m", []string{"path"}, "measures to compute")
	cmd.Flags().StringVar(&icFile, "ic", "", "information content file in the dictionary store")
	return cmd
}

type pathRow struct {
	Shortest  int        `json:"shortest" yaml:"shortest"`
	Longest   int        `json:"longest" yaml:"longest"`
	Subsumers []string   `json:"subsumers" yaml:"subsumers"`
	PathsA    [][]string `json:"paths_a" yaml:"paths_a"`
	PathsB    [][]string `json:"paths_b" yaml:"paths_b"`
}

func (a *app) pathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path A B",
		Short: "Show hypernym paths and the lowest common hypernyms of two synsets",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			s1, s2, err := synsetArgs(d, args)
			if err != nil {
				return err
			}
			row := pathRow{
				Shortest:  wordnet.ShortestPathDistance(d, s1, s2),
				Longest:   wordnet.LongestPathDistance(d, s1, s2),
				Subsumers: names(wordnet.LowestCommonHypernyms(d, s1, s2)),
			}
			for _, p := range wordnet.ParentPaths(d, s1) {
				row.PathsA = append(row.PathsA, names(p))
			}
			for _, p := range wordnet.ParentPaths(d, s2) {
				row.PathsB = append(row.PathsB, names(p))
			}
			return a.render(cmd.OutOrStdout(), row, func(t *tablewriter.Table) {
				t.Header("Property", "Value")
				t.Append("shortest", strconv.Itoa(row.Shortest))
				t.Append("longest", strconv.Itoa(row.Longest))
				t.Append("subsumers", fmt.Sprint(row.Subsumers))
				for _, p := range row.PathsA {
					t.Append("path "+s1.Name(), fmt.Sprint(p))
				}
				for _, p := range row.PathsB {
					t.Append("path "+s2.Name(), fmt.Sprint(p))
				}
			})
		},
	}
}

type statsRow struct {
	POS      string `json:"pos" yaml:"pos"`
	Synsets  int    `json:"synsets" yaml:"synsets"`
	Lemmas   int    `json:"lemmas" yaml:"lemmas"`
	MaxDepth int    `json:"max_depth" yaml:"max_depth"`
}

func (a *app) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count synsets and lemmas per part of speech",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			order := []wordnet.PartOfSpeech{wordnet.Noun, wordnet.Verb, wordnet.Adjective, wordnet.AdjectiveSatellite, wordnet.Adverb}
			counts := make(map[wordnet.PartOfSpeech]*statsRow, len(order))
			for _, p := range order {
				counts[p] = &statsRow{POS: p.String(), MaxDepth: d.MaxDepth(p)}
			}
			for _, s := range d.All() {
				if r, ok := counts[s.POS]; ok {
					r.Synsets++
					r.Lemmas += len(s.Lemmas)
				}
			}
			rows := make([]statsRow, 0, len(order))
			for _, p := range order {
				rows = append(rows, *counts[p])
			}
			return a.render(cmd.OutOrStdout(), rows, func(t *tablewriter.Table) {
				t.Header("POS", "Synsets", "Lemmas", "Max depth")
				for _, r := range rows {
					t.Append(r.POS, strconv.Itoa(r.Synsets), strconv.Itoa(r.Lemmas), strconv.Itoa(r.MaxDepth))
				}
			})
		},
	}
}

func (a *app) copyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "copy SRC DST",
		Short: "Read a dictionary and write it to another location",
		Long: `Read the dictionary at SRC and write it to DST with freshly computed
offsets. Either side may be any store URI, so copy also converts between
storage backends and compression codecs.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			start := time.Now()
			src, err := storeuri.Open(ctx, args[0])
			if err != nil {
				return err
			}
			dst, err := storeuri.Open(ctx, args[1])
			if err != nil {
				return err
			}
			d, err := wordnet.Load(ctx, src, wordnet.WithLogger(a.logger()))
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			if err := d.Write(ctx, dst); err != nil {
				return fmt.Errorf("write %s: %w", args[1], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "copied %d synsets to %s in %s\n", d.Len(), args[1], time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}

func synsetArgs(d *wordnet.Dictionary, args []string) (*wordnet.Synset, *wordnet.Synset, error) {
	out := make([]*wordnet.Synset, 2)
	for i, name := range args[:2] {
		if out[i] = d.SynsetByName(name); out[i] == nil {
			return nil, nil, fmt.Errorf("synset %q not found", name)
		}
	}
	return out[0], out[1], nil
}

func names(list []*wordnet.Synset) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.Name())
	}
	return out
}
