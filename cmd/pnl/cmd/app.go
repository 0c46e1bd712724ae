package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"
	"github.com/rustyeddy/pnl/config"
	"github.com/rustyeddy/pnl/internal/logger"
	"github.com/rustyeddy/pnl/report"
	"github.com/rustyeddy/pnl/storage"
	"github.com/rustyeddy/pnl/store"
	"github.com/spf13/cobra"
)

// app bundles what a command needs: the trade store and output settings.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	kv    storage.KV
	store *store.Store
	money report.Money
	out   io.Writer
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		cfg, err = config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	cfg.ApplyEnv()

	if dataDir != "" {
		cfg.Storage.Dir = dataDir
		cfg.Storage.DBPath = filepath.Join(dataDir, "pnl.sqlite")
	}
	if storageType != "" {
		cfg.Storage.Type = storageType
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func openKV(cfg config.StorageConfig) (storage.KV, error) {
	switch cfg.Type {
	case "sqlite":
		if err := mkdirFor(cfg.DBPath); err != nil {
			return nil, err
		}
		return storage.NewSQLite(cfg.DBPath)
	default:
		return storage.NewFile(cfg.Dir)
	}
}

func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty}, cmd.ErrOrStderr())

	money, err := report.NewMoney(cfg.Display.Currency)
	if err != nil {
		return nil, err
	}

	kv, err := openKV(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Type, err)
	}
	log.Debug().Str("storage", cfg.Storage.Type).Msg("storage opened")

	st := store.Open(kv, store.WithLogger(log))
	if !st.Synced() {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: stored trades could not be read; the next change will replace them")
	}

	return &app{
		cfg:   cfg,
		log:   log,
		kv:    kv,
		store: st,
		money: money,
		out:   cmd.OutOrStdout(),
	}, nil
}

func (a *app) Close() error {
	return a.kv.Close()
}

// render prints Markdown, styled for the terminal unless --plain is set.
func (a *app) render(md string) error {
	if plain {
		_, err := fmt.Fprint(a.out, md)
		return err
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	styled, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	_, err = fmt.Fprint(a.out, styled)
	return err
}

func mkdirFor(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}
