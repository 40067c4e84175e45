package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/mayores/internal/accounts"
	"github.com/cleared-dev/mayores/internal/config"
	"github.com/cleared-dev/mayores/internal/logging"
	"github.com/cleared-dev/mayores/internal/store"
)

// project is an opened project directory: its configuration, logger,
// database and account catalog.
type project struct {
	dir     string
	cfg     *config.Config
	logger  *slog.Logger
	db      *store.DB
	catalog *accounts.Catalog
}

func openProject(cmd *cobra.Command, dir string) (*project, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.Resolve(absDir)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return nil, err
	}

	db, err := store.Open(cfg.Store.DBPath)
	if err != nil {
		return nil, err
	}
	catalog, err := loadCatalog(cmd.Context(), db.Catalog(), cfg.Store.CatalogPath)
	if err != nil {
		db.Close()
		return nil, err
	}
	catalog.SetStore(db.Catalog())

	logger.Debug("project opened",
		"dir", absDir,
		"db", cfg.Store.DBPath,
		"accounts", catalog.Len())
	return &project{dir: absDir, cfg: cfg, logger: logger, db: db, catalog: catalog}, nil
}

// loadCatalog reads the shared catalog from the database, seeding it from
// the project's catalog file when the database has none.
func loadCatalog(ctx context.Context, cs *store.CatalogStore, csvPath string) (*accounts.Catalog, error) {
	entries, err := cs.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		return accounts.NewCatalog(entries), nil
	}

	fromFile, err := accounts.Load(csvPath)
	if errors.Is(err, fs.ErrNotExist) {
		fromFile = accounts.NewCatalog(accounts.DefaultCatalog())
	} else if err != nil {
		return nil, err
	}
	if err := cs.Seed(ctx, fromFile.All()); err != nil {
		return nil, err
	}
	return fromFile, nil
}

func (p *project) close() {
	if err := p.db.Close(); err != nil {
		p.logger.Warn("closing database", "err", err)
	}
}

// syncCatalogFile rewrites the catalog file after the catalog changed.
func (p *project) syncCatalogFile() error {
	if p.cfg.Store.CatalogPath == "" {
		return nil
	}
	return p.catalog.Save(p.cfg.Store.CatalogPath)
}
