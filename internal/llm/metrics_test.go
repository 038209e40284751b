package llm_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quoteapi/internal/llm"
	"quoteapi/internal/llm/mocks"
)

func TestInstrument(t *testing.T) {
	reg := prometheus.NewRegistry()
	inner := new(mocks.MockClient)
	client, err := llm.Instrument(inner, reg)
	require.NoError(t, err)

	inner.On("Complete", mock.Anything, mock.MatchedBy(func(r llm.Request) bool { return r.Purpose == "section" })).
		Return(&llm.Response{Content: "ok"}, nil).Once()
	inner.On("Complete", mock.Anything, mock.MatchedBy(func(r llm.Request) bool { return r.Purpose == "synthesis" })).
		Return(nil, errors.New("Rate limit reached")).Once()

	_, err = client.Complete(context.Background(), llm.Request{Purpose: "section"})
	require.NoError(t, err)
	_, err = client.Complete(context.Background(), llm.Request{Purpose: "synthesis"})
	require.Error(t, err)

	expected := `
# HELP llm_requests_total Total number of chat-completion calls by purpose and outcome.
# TYPE llm_requests_total counter
llm_requests_total{outcome="rate_limited",purpose="synthesis"} 1
llm_requests_total{outcome="success",purpose="section"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "llm_requests_total"))
	assert.Equal(t, 2, testutil.CollectAndCount(reg, "llm_request_duration_seconds"))
	inner.AssertExpectations(t)

	_, err = llm.Instrument(inner, reg)
	assert.Error(t, err, "duplicate registration must fail")
}
