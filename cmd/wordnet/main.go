// Command wordnet queries and converts WordNet dictionaries from the
// command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cours-de-latin/wordnet"
	"github.com/cours-de-latin/wordnet/internal/storeuri"
	"github.com/cours-de-latin/wordnet/store"
)

type app struct {
	dict    string
	output  string
	verbose bool
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "wordnet",
		Short: "Query and convert WordNet dictionaries",
		Long: `Look up synsets, score their similarity and walk their hypernym paths
in a WordNet dictionary, or copy a dictionary between stores.

Dictionary locations are directories or store URIs such as
s3://bucket/prefix, minio://host/bucket/prefix or dir:///path?compression=zstd.`,
		SilenceUsage: true,
	}

	def := os.Getenv("WORDNET_DICT")
	if def == "" {
		def = "dict"
	}
	root.PersistentFlags().StringVar(&a.dict, "dict", def, "dictionary location")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "table", "output format (table, json, yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log loading progress")

	root.AddCommand(
		a.lookupCommand(),
		a.similarityCommand(),
		a.pathCommand(),
		a.statsCommand(),
		a.copyCommand(),
	)
	return root
}

func (a *app) logger() *wordnet.Logger {
	if a.verbose {
		return wordnet.NewTextLogger(slog.LevelDebug)
	}
	return wordnet.NoopLogger()
}

// load opens the --dict location and reads the dictionary from it.
func (a *app) load(ctx context.Context) (*wordnet.Dictionary, store.Store, error) {
	src, err := storeuri.Open(ctx, a.dict)
	if err != nil {
		return nil, nil, err
	}
	d, err := wordnet.Load(ctx, src, wordnet.WithLogger(a.logger()))
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", a.dict, err)
	}
	return d, src, nil
}

// render writes v as JSON or YAML, or calls table for the table format.
func (a *app) render(w io.Writer, v any, table func(t *tablewriter.Table)) error {
	switch a.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	case "table", "":
		t := tablewriter.NewWriter(w)
		table(t)
		return t.Render()
	}
	return fmt.Errorf("unknown output format %q", a.output)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
