// Package service holds the quote analysis flow and the optional analysis archive.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"quoteapi/internal/config"
	"quoteapi/internal/extract"
	"quoteapi/internal/llm"
	"quoteapi/internal/model"
	"quoteapi/internal/otel"
	"quoteapi/internal/prompt"
	"quoteapi/internal/section"
)

// ErrInvalidMode is returned for a mode other than report or structured.
var ErrInvalidMode = errors.New("mode must be \"report\" or \"structured\"")

// ReportAnalysisType labels the multi-pass flow in Report.AnalysisType.
const ReportAnalysisType = "multi_pass_sections"

// ParseFailure is the structured-mode fallback when the model output is not a JSON object.
const ParseFailure = "Could not parse analysis"

// AnalyzeInput is one analysis request.
type AnalyzeInput struct {
	Upload    model.Upload
	Location  string
	Mode      model.Mode
	RequestID string
}

// AnalysisService runs an uploaded quote through extraction and the model.
type AnalysisService interface {
	// Analyze returns extraction errors wrapping the extract sentinels, ErrInvalidMode,
	// or the provider error of a call whose failure cannot be absorbed.
	Analyze(ctx context.Context, in AnalyzeInput) (*model.AnalysisResult, error)
}

// AnalysisOptions tunes the flow. Zero values take the defaults below.
type AnalysisOptions struct {
	Extract            extract.Options
	DefaultMode        model.Mode
	SectionInterval    time.Duration
	SectionConcurrency int
	SectionMaxTokens   int
	SynthesisMaxTokens int
	Markers            []section.Marker
}

// AnalysisOptionsFromConfig maps the env-driven config onto AnalysisOptions.
func AnalysisOptionsFromConfig(cfg *config.AppConfig) AnalysisOptions {
	return AnalysisOptions{
		Extract: extract.Options{
			MaxInputTokens: cfg.Analyzer.MaxInputTokens,
			MinTextChars:   cfg.Analyzer.MinTextChars,
			MinPDFChars:    cfg.Analyzer.MinPDFChars,
		},
		DefaultMode:        model.Mode(cfg.Analyzer.DefaultMode),
		SectionInterval:    cfg.Analyzer.SectionInterval(),
		SectionConcurrency: cfg.Analyzer.SectionConcurrency,
		SectionMaxTokens:   cfg.LLM.SectionMaxTokens,
		SynthesisMaxTokens: cfg.LLM.MaxTokens,
	}
}

func (o AnalysisOptions) withDefaults() AnalysisOptions {
	if !o.DefaultMode.Valid() {
		o.DefaultMode = model.ModeReport
	}
	if o.SectionConcurrency <= 0 {
		o.SectionConcurrency = 1
	}
	if o.SectionMaxTokens <= 0 {
		o.SectionMaxTokens = 1500
	}
	if o.SynthesisMaxTokens <= 0 {
		o.SynthesisMaxTokens = 4000
	}
	if len(o.Markers) == 0 {
		o.Markers = section.DefaultMarkers()
	}
	return o
}

type analysisService struct {
	client   llm.Client
	opts     AnalysisOptions
	logger   *slog.Logger
	archiver Archiver
}

// NewAnalysisService wires the flow. archiver may be nil to disable archiving.
func NewAnalysisService(client llm.Client, opts AnalysisOptions, logger *slog.Logger, archiver Archiver) AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &analysisService{
		client:   client,
		opts:     opts.withDefaults(),
		logger:   logger,
		archiver: archiver,
	}
}

func (s *analysisService) Analyze(ctx context.Context, in AnalyzeInput) (*model.AnalysisResult, error) {
	mode := in.Mode
	if mode == "" {
		mode = s.opts.DefaultMode
	}
	if !mode.Valid() {
		return nil, ErrInvalidMode
	}

	ctx, span := otel.Tracer("quoteapi/service").Start(ctx, "analysis.Analyze")
	defer span.End()
	span.SetAttributes(
		attribute.String("quote.filename", in.Upload.Filename),
		attribute.Int64("quote.size", in.Upload.Size),
		attribute.String("analysis.mode", string(mode)),
	)

	log := s.logger.With("request_id", in.RequestID, "filename", in.Upload.Filename, "mode", string(mode))
	started := time.Now()
	location := prompt.Location(in.Location)

	ext, err := extract.Extract(in.Upload.Filename, in.Upload.ContentType, in.Upload.Data, s.opts.Extract)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extract")
		log.Warn("extract_failed", "error", err.Error())
		return nil, err
	}
	warnings := append(ext.Warnings, extract.ContentWarnings(ext.Text)...)
	log.Info("text_extracted",
		"kind", string(ext.Kind),
		"chars", ext.OriginalChars,
		"truncated", ext.Truncated,
	)

	file := model.FileInfo{Name: in.Upload.Filename, Size: in.Upload.Size, Type: in.Upload.ContentType}

	var analysis any
	switch mode {
	case model.ModeStructured:
		analysis, err = s.structured(ctx, ext.Text, location, file, warnings)
	default:
		analysis, err = s.report(ctx, log, in.Upload.Filename, ext.Text, location)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "analyze")
		log.Error("analysis_failed", "error", err.Error(), "rate_limited", llm.IsRateLimit(err))
		return nil, err
	}

	res := &model.AnalysisResult{
		Mode:      mode,
		Analysis:  analysis,
		Warnings:  warnings,
		File:      file,
		StartedAt: started,
	}

	if s.archiver != nil {
		rec, err := s.archiver.Store(ctx, ArchiveInput{
			Upload:   in.Upload,
			Mode:     mode,
			Location: location,
			Analysis: analysis,
		})
		if err != nil {
			log.Error("archive_failed", "error", err.Error())
			res.Warnings = append(res.Warnings, "Analysis completed but could not be archived")
		} else {
			res.ID = rec.ID
		}
	}

	res.CompletedAt = time.Now()
	log.Info("analysis_complete", "duration_ms", res.CompletedAt.Sub(started).Milliseconds(), "analysis_id", res.ID)
	return res, nil
}

// structured makes one JSON-mode call. Output that is not a JSON object is returned
// wrapped with the raw text instead of failing the request.
func (s *analysisService) structured(ctx context.Context, text, location string, file model.FileInfo, warnings []string) (any, error) {
	resp, err := s.client.Complete(ctx, llm.Request{
		Purpose:   "structured",
		Messages:  prompt.Structured(text, location),
		MaxTokens: s.opts.SynthesisMaxTokens,
		JSON:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("structured analysis: %w", err)
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(resp.Content), &obj); err != nil || obj == nil {
		return map[string]any{
			"error":        ParseFailure,
			"raw_response": resp.Content,
			"file_info":    file,
		}, nil
	}
	if len(warnings) > 0 {
		obj["processing_warnings"] = warnings
	}
	return obj, nil
}

// report analyzes every section, then synthesizes one report over all of them.
// Section failures become placeholders; a synthesis failure fails the request.
func (s *analysisService) report(ctx context.Context, log *slog.Logger, filename, text, location string) (*model.Report, error) {
	sections := section.Split(text, s.opts.Markers)
	entries := s.analyzeSections(ctx, log, sections, location)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	failed := 0
	for _, e := range entries {
		if e.Failed {
			failed++
		}
	}
	log.Info("sections_analyzed", "sections", len(entries), "failed_sections", failed)

	resp, err := s.client.Complete(ctx, llm.Request{
		Purpose:   "synthesis",
		Messages:  prompt.Synthesis(filename, entries, location),
		MaxTokens: s.opts.SynthesisMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesis: %w", err)
	}

	return &model.Report{
		ComprehensiveReport: resp.Content,
		SectionAnalyses:     entries,
		SectionsAnalyzed:    len(entries),
		FailedSections:      failed,
		Location:            location,
		AnalysisType:        ReportAnalysisType,
	}, nil
}

// analyzeSections paces calls through a limiter and caps how many run at once.
// Results keep the order of sections regardless of completion order.
func (s *analysisService) analyzeSections(ctx context.Context, log *slog.Logger, sections []model.Section, location string) []model.SectionAnalysis {
	limit := rate.Inf
	if s.opts.SectionInterval > 0 {
		limit = rate.Every(s.opts.SectionInterval)
	}
	limiter := rate.NewLimiter(limit, 1)

	entries := make([]model.SectionAnalysis, len(sections))
	var g errgroup.Group
	g.SetLimit(s.opts.SectionConcurrency)

	for i, sec := range sections {
		g.Go(func() error {
			entries[i] = s.analyzeSection(ctx, log, limiter, sec, location)
			return nil
		})
	}
	_ = g.Wait()
	return entries
}

func (s *analysisService) analyzeSection(ctx context.Context, log *slog.Logger, limiter *rate.Limiter, sec model.Section, location string) model.SectionAnalysis {
	ctx, span := otel.Tracer("quoteapi/service").Start(ctx, "analysis.section")
	defer span.End()
	span.SetAttributes(attribute.String("section.name", sec.Name), attribute.Int("section.priority", sec.Priority))

	err := limiter.Wait(ctx)
	var resp *llm.Response
	if err == nil {
		resp, err = s.client.Complete(ctx, llm.Request{
			Purpose:   "section",
			Messages:  prompt.Section(sec, location),
			MaxTokens: s.opts.SectionMaxTokens,
		})
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "section")
		log.Warn("section_failed", "section", sec.Name, "error", err.Error())
		return model.SectionAnalysis{Section: sec.Name, Analysis: SectionErrorPlaceholder(err), Failed: true}
	}
	return model.SectionAnalysis{Section: sec.Name, Analysis: resp.Content}
}

// SectionErrorPlaceholder is the text that stands in for a failed section in the synthesis input.
func SectionErrorPlaceholder(err error) string {
	return "[Analysis error: " + err.Error() + "]"
}

// IsInputError reports whether err is caused by the upload or request rather than the provider.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidMode) ||
		errors.Is(err, extract.ErrEmptyFile) ||
		errors.Is(err, extract.ErrUnreadable) ||
		errors.Is(err, extract.ErrUnsupportedType) ||
		errors.Is(err, extract.ErrScannedPDF)
}
