package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	var show bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run install migrations against the definition store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := loadApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			results, err := a.module.Install(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, result := range results {
				status := "up to date"
				if result.Applied() {
					status = "applied"
				}
				_, _ = fmt.Fprintf(out, "%s: %d -> %d (%s)\n", result.Feature, result.From, result.To, status)
			}
			if !show {
				return nil
			}

			parts, err := a.store.ListPartDefinitions(ctx)
			if err != nil {
				return err
			}
			types, err := a.store.ListTypeDefinitions(ctx)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"parts": parts, "types": types})
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "print the resulting definitions as JSON")
	return cmd
}
