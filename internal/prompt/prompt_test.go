package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quoteapi/internal/llm"
	"quoteapi/internal/model"
)

func TestLocation(t *testing.T) {
	assert.Equal(t, "", Location("   "))
	assert.Equal(t, "Austin, TX", Location("  Austin, TX \n"))

	long := strings.Repeat("é", MaxLocationChars+50)
	got := Location(long)
	assert.Equal(t, MaxLocationChars, len([]rune(got)))
}

func TestStructured(t *testing.T) {
	msgs := Structured("Total: $4,200", "")
	require.Len(t, msgs, 2)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "JSON")
	assert.Equal(t, llm.RoleUser, msgs[1].Role)
	assert.Equal(t, "Total: $4,200", msgs[1].Content)

	msgs = Structured("Total: $4,200", "Denver, CO")
	assert.True(t, strings.HasPrefix(msgs[1].Content, "The homeowner is located in Denver, CO."))
	assert.True(t, strings.HasSuffix(msgs[1].Content, "Total: $4,200"))
}

func TestSection(t *testing.T) {
	msgs := Section(model.Section{Name: "Pricing", Text: "Labor $900"}, "")
	require.Len(t, msgs, 2)
	assert.Equal(t, "Section: Pricing\n\nLabor $900", msgs[1].Content)
}

func TestSynthesis(t *testing.T) {
	entries := []model.SectionAnalysis{
		{Section: "Pricing", Analysis: "fair"},
		{Section: "Warranty", Analysis: "[Analysis error: boom]", Failed: true},
		{Section: "Roofing", Analysis: "ok"},
	}
	msgs := Synthesis("quote.txt", entries, "Reno")
	require.Len(t, msgs, 2)

	user := msgs[1].Content
	assert.Contains(t, user, "Sections analyzed: 3")
	assert.Contains(t, user, "[Analysis error: boom]")
	assert.Less(t, strings.Index(user, "=== Pricing ==="), strings.Index(user, "=== Warranty ==="))
	assert.Less(t, strings.Index(user, "=== Warranty ==="), strings.Index(user, "=== Roofing ==="))
}
