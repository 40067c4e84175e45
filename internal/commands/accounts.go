package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/mayores/internal/accounts"
	"github.com/cleared-dev/mayores/internal/model"
)

func newAccountsCommand(repoDir *string) *cobra.Command {
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account catalog operations",
	}
	accountsCmd.AddCommand(
		newAccountsListCommand(repoDir),
		newAccountsClassifyCommand(repoDir),
		newAccountsAddCommand(repoDir),
		newAccountsReclassifyCommand(repoDir),
	)
	return accountsCmd
}

func newAccountsListCommand(repoDir *string) *cobra.Command {
	var class string
	var custom bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the account catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, *repoDir)
			if err != nil {
				return err
			}
			defer p.close()

			entries := p.catalog.All()
			switch {
			case custom:
				entries = p.catalog.Custom()
			case class != "":
				c := model.ParseClassification(class)
				if !c.Valid() {
					return fmt.Errorf("%w: %q", accounts.ErrInvalidClassification, class)
				}
				entries = p.catalog.ByClassification(c)
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "CUENTA\tCLASIFICACIÓN\tDESCRIPCIÓN")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Classification, e.Description)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&class, "class", "", "only accounts of this classification")
	cmd.Flags().BoolVar(&custom, "custom", false, "only accounts added while entering data")

	return cmd
}

func newAccountsClassifyCommand(repoDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <name>",
		Short: "Look up the classification of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, *repoDir)
			if err != nil {
				return err
			}
			defer p.close()

			class, isNew := p.catalog.Classify(args[0])
			if isNew {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: cuenta nueva, requiere clasificación (%s, %s o %s)\n",
					args[0], model.ClassAsset, model.ClassLiability, model.ClassCapital)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], class)
			return nil
		},
	}
}

func newAccountsAddCommand(repoDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <classification>",
		Short: "Add an account to the catalog",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, *repoDir)
			if err != nil {
				return err
			}
			defer p.close()

			added, err := p.catalog.Commit(cmd.Context(), args[0], model.ParseClassification(args[1]))
			if err != nil {
				return err
			}
			if !added {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already in catalog\n", args[0])
				return nil
			}
			if err := p.syncCatalogFile(); err != nil {
				return err
			}
			p.logger.Info("account added", "account", args[0], "class", model.ParseClassification(args[1]))
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", args[0])
			return nil
		},
	}
}

func newAccountsReclassifyCommand(repoDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reclassify <name> <classification>",
		Short: "Change the classification of an existing account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, *repoDir)
			if err != nil {
				return err
			}
			defer p.close()

			class := model.ParseClassification(args[1])
			if err := p.catalog.Reclassify(cmd.Context(), args[0], class); err != nil {
				return err
			}
			if err := p.syncCatalogFile(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], class)
			return nil
		},
	}
}
