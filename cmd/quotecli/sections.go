package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"quoteapi/internal/config"
	"quoteapi/internal/extract"
	"quoteapi/internal/section"
)

func sectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections FILE",
		Short: "Show how a quote file would be split for report mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			cfg := config.Load()
			res, err := extract.Extract(filepath.Base(path), mime.TypeByExtension(filepath.Ext(path)), data, extract.Options{
				MaxInputTokens: cfg.Analyzer.MaxInputTokens,
				MinTextChars:   cfg.Analyzer.MinTextChars,
				MinPDFChars:    cfg.Analyzer.MinPDFChars,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s, %d characters", filepath.Base(path), res.Kind, res.OriginalChars)
			if res.Truncated {
				fmt.Fprint(out, " (truncated)")
			}
			fmt.Fprintln(out)

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tSECTION\tPRIORITY\tOFFSET\tCHARS")
			for i, s := range section.Split(res.Text, section.DefaultMarkers()) {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", i+1, s.Name, s.Priority, s.Offset, utf8.RuneCountInString(s.Text))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			for _, w := range res.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}
			return nil
		},
	}
}
