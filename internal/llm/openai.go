package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"quoteapi/internal/config"
)

// OpenAIClient talks to an OpenAI-compatible chat-completions endpoint.
// It is safe for concurrent use.
type OpenAIClient struct {
	api         *openai.Client
	model       string
	temperature float64
	maxTokens   int
	logger      *slog.Logger
}

// Option configures an OpenAIClient.
type Option func(*openAIOptions)

type openAIOptions struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// WithHTTPClient replaces the default traced HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *openAIOptions) { o.httpClient = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *openAIOptions) { o.logger = l }
}

// NewOpenAIClient builds a client from cfg. The API key is required.
func NewOpenAIClient(cfg config.LLMConfig, opts ...Option) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("model is required")
	}

	o := openAIOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		timeout := time.Duration(cfg.TimeoutSec) * time.Second
		if timeout <= 0 {
			timeout = 120 * time.Second
		}
		o.httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	oc.HTTPClient = o.httpClient

	return &OpenAIClient{
		api:         openai.NewClientWithConfig(oc),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      o.logger,
	}, nil
}

// Complete sends req and returns the first choice. Provider failures are wrapped in ProviderError.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (*Response, error) {
	if len(req.Messages) == 0 {
		return nil, errors.New("at least one message is required")
	}

	msgs := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		msgs[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	creq := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: float32(c.temperature),
		MaxTokens:   c.maxTokens,
	}
	if req.Temperature > 0 {
		creq.Temperature = float32(req.Temperature)
	}
	if req.MaxTokens > 0 {
		creq.MaxTokens = req.MaxTokens
	}
	if req.JSON {
		creq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, creq)
	if err != nil {
		c.logger.Warn("llm_call_failed",
			"purpose", req.Purpose,
			"model", c.model,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err.Error(),
		)
		return nil, wrapProviderError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, ErrEmptyCompletion
	}

	c.logger.Debug("llm_call_complete",
		"purpose", req.Purpose,
		"model", resp.Model,
		"total_tokens", resp.Usage.TotalTokens,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Response{
		Content:      resp.Choices[0].Message.Content,
		Model:        resp.Model,
		FinishReason: string(resp.Choices[0].FinishReason),
		Usage: TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func wrapProviderError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &ProviderError{StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return &ProviderError{Err: fmt.Errorf("chat completion: %w", err)}
}
