package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/viant/vecstore/config"
	"github.com/viant/vecstore/engine"
	"github.com/viant/vecstore/logger"
	"github.com/viant/vecstore/source"
	"github.com/viant/vecstore/store"
)

const rootLongDesc = `vecstore keeps document embeddings in SQLite and answers k-nearest
neighbor queries from an in-memory index (linear scan or ball tree).

Configuration is read from --config (TOML), then VECSTORE_* environment
variables, then flags:
  vecstore import docs.jsonl
  vecstore query --vector 0.1,0.2,0.3 --k 10 --index balltree
  vecstore bench --n 20000 --dim 32`

// flagKeys maps flag names to config keys; a flag is bound only on commands
// that register it.
var flagKeys = map[string]string{
	"debug":     "log.debug",
	"json":      "log.json",
	"pretty":    "log.pretty",
	"index":     "index.kind",
	"leaf-size": "index.leaf_size",
	"sqlite":    "source.sqlite_path",
	"table":     "source.table",
	"k":         "query.k",
}

// app carries the state shared by subcommands once flags are parsed.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	d := config.NewDefaultConfig()

	cmd := &cobra.Command{
		Use:           "vecstore",
		Short:         "In-memory k-NN over SQLite-stored embeddings",
		Long:          rootLongDesc,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "path to a TOML config file")
	flags.BoolP("debug", "d", d.Log.Debug, "enable debug logging")
	flags.Bool("json", d.Log.JSON, "log as JSON")
	flags.Bool("pretty", d.Log.Pretty, "colorized human-readable logs")
	flags.String("sqlite", d.Source.SQLitePath, "SQLite database path")
	flags.String("table", d.Source.Table, "document table name")

	cmd.AddCommand(newImportCmd(a))
	cmd.AddCommand(newQueryCmd(a))
	cmd.AddCommand(newBenchCmd(a))
	return cmd
}

func (a *app) load(cmd *cobra.Command) error {
	v, err := config.NewViper(a.configPath)
	if err != nil {
		return err
	}
	bindFlags(v, cmd)
	if a.cfg, err = config.FromViper(v); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.logger = logger.New(
		logger.WithDebug(a.cfg.Log.Debug),
		logger.WithJSON(a.cfg.Log.JSON),
		logger.WithPretty(a.cfg.Log.Pretty),
		logger.WithWriter(cmd.ErrOrStderr()),
	)
	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

func (a *app) storeOptions(extra ...store.Option) ([]store.Option, error) {
	opts, err := a.cfg.StoreOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, store.WithLogger(a.logger))
	return append(opts, extra...), nil
}

// openSource opens the configured database and document table. The returned
// closer releases the database.
func (a *app) openSource(ctx context.Context) (*source.Source, func() error, error) {
	db, err := engine.Open(a.cfg.Source.SQLitePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", a.cfg.Source.SQLitePath, err)
	}
	src, err := source.New(ctx, db, a.cfg.Source.Table)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return src, db.Close, nil
}
