package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/japaniel/alifba/pkg/content"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import [pack]",
		Short: "Import a content pack into the database",
		Long:  "Validates a content pack (a JSON file or a directory of per-table files) and stores it in the database, replacing records with the same id.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var p *content.Pack
			var err error
			if len(args) == 1 {
				p, err = content.Load(args[0])
			} else {
				p, err = a.pack(ctx)
			}
			if err != nil {
				return fmt.Errorf("load content: %w", err)
			}
			conn, err := a.db()
			if err != nil {
				return err
			}
			st, err := content.NewImporter(conn, a.log).Import(ctx, p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s into %s\n", st, a.cfg.Database.Path)
			return nil
		},
	}
}
