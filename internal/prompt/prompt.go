// Package prompt builds the chat messages sent to the model for each analysis step.
package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"quoteapi/internal/llm"
	"quoteapi/internal/model"
)

// MaxLocationChars caps the location hint embedded in prompts.
const MaxLocationChars = 200

const structuredSystem = "You are a home services quote analysis expert and consumer protection advocate. " +
	"Analyze the provided quote and return a detailed JSON response with insights about cost, quality, timeline, and potential issues. " +
	"IMPORTANT: Only use information that is actually present in the provided text. Do not invent details that are not explicitly stated."

const sectionSystem = "You are a home services quote analyst reviewing one section of a contractor quote. " +
	"Summarize what the section commits to, list every price, quantity, material and warranty term it states, " +
	"and flag vague wording, missing details or terms that could cost the homeowner later. " +
	"Only use information present in the section text."

const synthesisSystem = "You are a consumer protection advocate writing a final report on a home services quote. " +
	"You receive analyses of individual quote sections. Combine them into one comprehensive report with these headings: " +
	"Summary, Scope of Work, Pricing Review, Warranty and Terms, Red Flags, Questions to Ask the Contractor, Recommendation. " +
	"Where a section analysis reports an error, say that part of the quote could not be reviewed. Do not invent details."

// Location normalizes a free-text location hint: trimmed and capped at MaxLocationChars runes.
func Location(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= MaxLocationChars {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:MaxLocationChars]))
}

func locationLine(location string) string {
	if location = Location(location); location == "" {
		return ""
	}
	return fmt.Sprintf("The homeowner is located in %s. Compare prices and requirements against typical rates and regulations for that area.\n\n", location)
}

// Structured asks for a single JSON analysis of the whole quote.
func Structured(text, location string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: structuredSystem},
		{Role: llm.RoleUser, Content: locationLine(location) + text},
	}
}

// Section asks for a plain-text analysis of one quote section.
func Section(sec model.Section, location string) []llm.Message {
	var b strings.Builder
	b.WriteString(locationLine(location))
	fmt.Fprintf(&b, "Section: %s\n\n", sec.Name)
	b.WriteString(sec.Text)
	return []llm.Message{
		{Role: llm.RoleSystem, Content: sectionSystem},
		{Role: llm.RoleUser, Content: b.String()},
	}
}

// Synthesis embeds every section analysis, in order, into the final report request.
func Synthesis(filename string, entries []model.SectionAnalysis, location string) []llm.Message {
	var b strings.Builder
	b.WriteString(locationLine(location))
	fmt.Fprintf(&b, "Quote file: %s\nSections analyzed: %d\n", filename, len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "\n=== %s ===\n%s\n", e.Section, e.Analysis)
	}
	return []llm.Message{
		{Role: llm.RoleSystem, Content: synthesisSystem},
		{Role: llm.RoleUser, Content: b.String()},
	}
}
