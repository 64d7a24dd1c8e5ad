package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/lrxzhy/TEES/corpus"
	"github.com/lrxzhy/TEES/example"
	"github.com/lrxzhy/TEES/exampleio"
	"github.com/lrxzhy/TEES/features"
	"github.com/lrxzhy/TEES/idset"
	"github.com/lrxzhy/TEES/internal/config"
	"github.com/lrxzhy/TEES/internal/observability"
)

// buildFlags maps command-line flags onto config keys.
var buildFlags = map[string]string{
	"styles":       "builder.styles",
	"types":        "builder.types",
	"lengths":      "builder.path_lengths",
	"workers":      "builder.workers",
	"seed":         "builder.random_seed",
	"ontology":     "builder.ontology_file",
	"parse":        "builder.parse",
	"tokenization": "builder.tokenization",
	"format":       "output.format",
	"output":       "output.path",
	"idsets":       "output.idset_db",
}

func newBuildCommand(v *viper.Viper) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "build --input corpus.xml [--output examples.svm]",
		Short: "Build classifier examples for every token pair of a corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				return err
			}

			return runBuild(cmd.Context(), cfg, input, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "", "interaction XML corpus")
	f.StringSlice("styles", nil, "style tags (directed, headsOnly, binary, subset, no_dependency, no_linear, random, normalize, ontology, degenerate)")
	f.StringSlice("types", nil, "interaction types to keep (default all)")
	f.IntSlice("lengths", nil, "path lengths that get real features (default all)")
	f.Int("workers", 1, "sentences built in parallel")
	f.Uint64("seed", 0, "seed of the random-feature style")
	f.String("ontology", "", "TOML entity-type ontology for the ontology style")
	f.String("parse", "", "parser name to read dependencies from")
	f.String("tokenization", "", "tokenizer name to read tokens from")
	f.String("format", "svmlight", "output format (svmlight, jsonl)")
	f.StringP("output", "o", "", "output file (default stdout)")
	f.String("idsets", "", "SQLite file holding feature and class id sets")
	_ = cmd.MarkFlagRequired("input")

	for flag, key := range buildFlags {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}

	return cmd
}

// runBuild loads the corpus, builds the examples and writes them.
func runBuild(ctx context.Context, cfg *config.Config, input string, stdout io.Writer) error {
	runID := ulid.Make().String()
	logger := observability.GetLogger().With(zap.String("run", runID))

	styles, err := example.ParseStyles(cfg.Builder.Styles)
	if err != nil {
		return err
	}
	styles.Types = cfg.Builder.Types
	if len(cfg.Builder.PathLengths) > 0 {
		styles.PathLengths = cfg.Builder.PathLengths
	}

	opts := []example.Option{
		example.WithLogger(logger),
		example.WithRandomSeed(cfg.Builder.RandomSeed),
	}
	if styles.Ontology && cfg.Builder.OntologyFile != "" {
		ont, err := features.LoadOntology(cfg.Builder.OntologyFile)
		if err != nil {
			return err
		}
		opts = append(opts, example.WithOntology(ont))
	}

	var store *idset.SQLiteStore
	if cfg.Output.IDSetDB != "" {
		store, err = idset.NewSQLiteStore(cfg.Output.IDSetDB)
		if err != nil {
			return err
		}
		defer store.Close()
		reused, err := loadIDSets(ctx, store)
		if err != nil {
			return err
		}
		opts = append(opts, reused...)
		if len(reused) > 0 {
			logger.Info("Reusing stored id sets", zap.String("db", cfg.Output.IDSetDB))
		}
	}

	b, err := example.New(styles, opts...)
	if err != nil {
		return err
	}

	sents, err := corpus.Load(input,
		corpus.WithParse(cfg.Builder.Parse),
		corpus.WithTokenization(cfg.Builder.Tokenization),
		corpus.WithLogger(logger))
	if err != nil {
		return err
	}
	graphs := make([]example.SentenceGraph, len(sents))
	for i, s := range sents {
		graphs[i] = s
	}

	records, err := b.BuildCorpus(ctx, graphs, cfg.Builder.Workers)
	if err != nil {
		return err
	}
	if err := writeRecords(cfg.Output, records, stdout); err != nil {
		return err
	}

	if store != nil {
		b.FeatureSet().Freeze()
		if err := store.Save(ctx, idset.FeatureSetName, b.FeatureSet()); err != nil {
			return err
		}
		if err := store.Save(ctx, idset.ClassSetName, b.ClassSet()); err != nil {
			return err
		}
	}
	logger.Info("Build finished",
		zap.String("input", input),
		zap.Int("examples", len(records)),
		zap.Int("features", b.FeatureSet().Len()))

	return nil
}

// loadIDSets returns builder options for the id sets found in store.
func loadIDSets(ctx context.Context, store *idset.SQLiteStore) ([]example.Option, error) {
	var opts []example.Option
	feats, err := store.Load(ctx, idset.FeatureSetName)
	switch {
	case err == nil:
		opts = append(opts, example.WithFeatureSet(feats))
	case !errors.Is(err, idset.ErrSetNotFound):
		return nil, err
	}
	classes, err := store.Load(ctx, idset.ClassSetName)
	switch {
	case err == nil:
		opts = append(opts, example.WithClassSet(classes))
	case !errors.Is(err, idset.ErrSetNotFound):
		return nil, err
	}

	return opts, nil
}

func writeRecords(out config.OutputConfig, records []example.Record, stdout io.Writer) (err error) {
	dst := stdout
	if out.Path != "" && out.Path != "-" {
		f, ferr := os.Create(out.Path)
		if ferr != nil {
			return fmt.Errorf("create output: %w", ferr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		dst = f
	}
	w, err := exampleio.New(out.Format, dst)
	if err != nil {
		return err
	}

	return exampleio.WriteAll(w, records)
}
