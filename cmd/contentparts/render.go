package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var (
		file       string
		model      string
		shortcodes bool
		sanitized  bool
		encode     bool
	)
	cmd := &cobra.Command{
		Use:   "render [template]",
		Short: "Render a template string with the view helpers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src, err := templateSource(file, args)
			if err != nil {
				return err
			}
			var data any
			if model != "" {
				if err := json.Unmarshal([]byte(model), &data); err != nil {
					return fmt.Errorf("parse --model: %w", err)
				}
			}

			a, err := loadApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			h := a.module.Helpers
			var out string
			if shortcodes {
				out, err = h.LiquidShortcodes(ctx, src, data)
			} else {
				out, err = h.Liquid(ctx, src, data)
			}
			if err != nil {
				return err
			}
			if sanitized {
				out = h.SanitizedRawHTML(ctx, out)
			}
			if encode {
				out = h.B64Encode(out)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&file, "file", "", "read the template from a file")
	flags.StringVar(&model, "model", "", "JSON model exposed as Model")
	flags.BoolVar(&shortcodes, "shortcodes", false, "expand shortcodes after rendering")
	flags.BoolVar(&sanitized, "sanitize", false, "sanitize the rendered HTML")
	flags.BoolVar(&encode, "b64", false, "base64-encode the final output")
	return cmd
}

func templateSource(file string, args []string) (string, error) {
	switch {
	case file != "" && len(args) > 0:
		return "", errors.New("pass a template argument or --file, not both")
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case len(args) == 1:
		return args[0], nil
	default:
		return "", errors.New("a template argument or --file is required")
	}
}
