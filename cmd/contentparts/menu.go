package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	contentparts "github.com/goliatone/go-contentparts"
	"github.com/goliatone/go-contentparts/pkg/navigation"
	"github.com/goliatone/go-contentparts/pkg/security"
)

func newMenuCmd(opts *rootOptions) *cobra.Command {
	var (
		grants []string
		locale string
	)
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Print the admin menu",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var extra []contentparts.Option
			if cmd.Flags().Changed("grant") {
				extra = append(extra, contentparts.WithAuthorizer(grantedOnly(grants)))
			}
			a, err := loadApp(ctx, cmd, opts, extra...)
			if err != nil {
				return err
			}
			defer a.Close()

			if locale == "" {
				locale = a.cfg.Locale
			}
			items, err := a.module.AdminMenu(navigation.WithLocale(ctx, locale))
			if err != nil {
				return err
			}
			printMenu(cmd.OutOrStdout(), items, 0)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&grants, "grant", nil, "permission names granted to the caller (all when omitted)")
	cmd.Flags().StringVar(&locale, "locale", "", "caption locale")
	return cmd
}

func grantedOnly(names []string) security.Authorizer {
	granted := make(map[string]bool, len(names))
	for _, name := range names {
		granted[strings.TrimSpace(name)] = true
	}
	return security.AuthorizerFunc(func(_ context.Context, p security.Permission) bool {
		return granted[p.Name]
	})
}

func printMenu(out io.Writer, items []navigation.MenuItem, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, item := range items {
		if item.Href != "" {
			_, _ = fmt.Fprintf(out, "%s- %s -> %s\n", indent, item.Text, item.Href)
		} else {
			_, _ = fmt.Fprintf(out, "%s- %s\n", indent, item.Text)
		}
		printMenu(out, item.Items, depth+1)
	}
}
