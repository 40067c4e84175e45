package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/mayores/internal/accounts"
	"github.com/cleared-dev/mayores/internal/config"
	"github.com/cleared-dev/mayores/internal/store"
)

func newInitCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new mayores project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runInit(cmd *cobra.Command, dir, name string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	// Write mayores.yaml.
	cfg := config.Default(name)
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write the starter catalog file.
	catalog := accounts.NewCatalog(accounts.DefaultCatalog())
	if err := catalog.Save(filepath.Join(dir, cfg.Store.CatalogPath)); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}

	// Create the database and seed the shared catalog.
	db, err := store.Open(filepath.Join(dir, cfg.Store.DBPath))
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Catalog().Seed(cmd.Context(), catalog.All()); err != nil {
		return err
	}

	// Write .gitignore.
	gitignore := "*.db\n*.db-wal\n*.db-shm\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized mayores project at %s (%d accounts)\n", dir, catalog.Len())
	return nil
}
