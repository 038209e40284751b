package llm

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentedClient records call counts and latency for every Complete.
type InstrumentedClient struct {
	next     Client
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// Instrument wraps next and registers its collectors on reg.
func Instrument(next Client, reg prometheus.Registerer) (*InstrumentedClient, error) {
	ic := &InstrumentedClient{
		next: next,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llm_requests_total",
				Help: "Total number of chat-completion calls by purpose and outcome.",
			},
			[]string{"purpose", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "llm_request_duration_seconds",
				Help:    "Latency of chat-completion calls.",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
			},
			[]string{"purpose"},
		),
	}
	if err := reg.Register(ic.requests); err != nil {
		return nil, err
	}
	if err := reg.Register(ic.duration); err != nil {
		return nil, err
	}
	return ic, nil
}

// Complete delegates to the wrapped client.
func (c *InstrumentedClient) Complete(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := c.next.Complete(ctx, req)
	c.duration.WithLabelValues(req.Purpose).Observe(time.Since(start).Seconds())
	c.requests.WithLabelValues(req.Purpose, outcome(err)).Inc()
	return resp, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case IsRateLimit(err):
		return "rate_limited"
	default:
		return "error"
	}
}
