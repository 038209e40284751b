package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"quoteapi/internal/config"
	"quoteapi/internal/llm"
	"quoteapi/internal/logging"
	"quoteapi/internal/model"
	"quoteapi/internal/service"
)

func analyzeCmd() *cobra.Command {
	var (
		location   string
		mode       string
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Run a quote file through the analysis flow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := model.Mode(strings.ToLower(strings.TrimSpace(mode)))
			if m != "" && !m.Valid() {
				return service.ErrInvalidMode
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runAnalyze(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], location, m, outputJSON)
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "Homeowner location used for price comparison")
	cmd.Flags().StringVar(&mode, "mode", "", "report or structured (default from ANALYZE_DEFAULT_MODE)")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Print the full result as JSON")

	return cmd
}

func runAnalyze(ctx context.Context, stdout, stderr io.Writer, path, location string, mode model.Mode, outputJSON bool) error {
	cfg := config.Load()
	logger := logging.New(stderr, cfg.Location(), logging.ParseLevel(cfg.LogLevel))

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	client, err := llm.NewOpenAIClient(cfg.LLM, llm.WithLogger(logger))
	if err != nil {
		return err
	}

	svc := service.NewAnalysisService(client, service.AnalysisOptionsFromConfig(cfg), logger, nil)
	res, err := svc.Analyze(ctx, service.AnalyzeInput{
		Upload: model.Upload{
			Filename:    filepath.Base(path),
			ContentType: mime.TypeByExtension(filepath.Ext(path)),
			Size:        int64(len(data)),
			Data:        data,
		},
		Location: location,
		Mode:     mode,
	})
	if err != nil {
		if llm.IsRateLimit(err) {
			return fmt.Errorf("rate limited by the model provider, wait a minute or try a shorter file: %w", err)
		}
		return err
	}

	if outputJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"filename":     filepath.Base(path),
			"mode":         res.Mode,
			"analysis":     res.Analysis,
			"warnings":     res.Warnings,
			"started_at":   res.StartedAt,
			"completed_at": res.CompletedAt,
		})
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(stderr, "warning: %s\n", w)
	}
	if rep, ok := res.Analysis.(*model.Report); ok {
		fmt.Fprintf(stdout, "%s\n\n(%d sections analyzed, %d failed)\n",
			rep.ComprehensiveReport, rep.SectionsAnalyzed, rep.FailedSections)
		return nil
	}
	b, err := json.MarshalIndent(res.Analysis, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, string(b))
	return nil
}
