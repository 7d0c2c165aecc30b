package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contentparts/pkg/binding/prompt"
	"github.com/goliatone/go-contentparts/pkg/content"
	"github.com/goliatone/go-contentparts/pkg/contentpermissions"
	"github.com/goliatone/go-contentparts/pkg/parts/widgetstyling"
)

// newPromptDriver is replaced in tests.
var newPromptDriver = func(*cobra.Command) prompt.Driver {
	return prompt.SurveyDriver{}
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	var (
		itemPath    string
		contentType string
		output      string
		html        bool
	)
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the parts of a content item interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			item, err := loadItem(itemPath, contentType)
			if err != nil {
				return err
			}

			a, err := loadApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			updater := prompt.NewUpdater(newPromptDriver(cmd),
				prompt.WithChoices(contentpermissions.PartName+".Roles", a.offeredRoles()...))
			views, err := a.module.UpdateEditors(ctx, item, updater)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			state := updater.ModelState()
			if !state.IsValid() {
				for _, key := range state.Keys() {
					for _, msg := range state.Errors(key) {
						_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", key, msg)
					}
				}
			}

			payload, err := json.MarshalIndent(item, "", "  ")
			if err != nil {
				return err
			}
			if output != "" {
				if err := os.WriteFile(output, append(payload, '\n'), 0o644); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "item written to %s\n", output)
			} else {
				_, _ = fmt.Fprintln(out, string(payload))
			}

			if html {
				rendered, err := a.module.RenderEditors(ctx, views)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, rendered)
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&itemPath, "item", "", "content item JSON file (a new item is created when omitted)")
	flags.StringVar(&contentType, "type", "Widget", "content type of a new item")
	flags.StringVarP(&output, "output", "o", "", "write the updated item to a file")
	flags.BoolVar(&html, "html", false, "print the rendered editors")
	return cmd
}

func loadItem(path, contentType string) (*content.ContentItem, error) {
	if path == "" {
		item := content.New(contentType)
		if err := item.Apply(widgetstyling.PartName, widgetstyling.Part{}); err != nil {
			return nil, err
		}
		if err := item.Apply(contentpermissions.PartName, contentpermissions.Part{}); err != nil {
			return nil, err
		}
		return item, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var item content.ContentItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("parse item %s: %w", path, err)
	}
	return &item, nil
}
