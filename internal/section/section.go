// Package section splits quote text into named parts by searching for known headings.
// It is a best-effort heuristic: boundaries may overlap or be missed.
package section

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"quoteapi/internal/model"
)

const (
	// MinSectionChars drops marker hits that do not carry enough text to analyze.
	MinSectionChars = 150
	// ChunkChars is the window used when no marker is found.
	ChunkChars = 35000
	// FallbackSpan bounds a section that has neither a following marker nor a natural break.
	FallbackSpan = 6000
)

// Marker is a literal heading searched for in the text. Lower Priority sorts first.
type Marker struct {
	Name     string
	Literal  string
	Priority int
}

// DefaultMarkers is the fixed list used for home-services quotes, already in priority order.
func DefaultMarkers() []Marker {
	return []Marker{
		{Name: "Contract Description", Literal: "CONTRACT DESCRIPTION", Priority: 1},
		{Name: "Scope of Work", Literal: "SCOPE OF WORK", Priority: 2},
		{Name: "Pricing", Literal: "PRICING", Priority: 3},
		{Name: "Investment", Literal: "INVESTMENT", Priority: 4},
		{Name: "Payment Terms", Literal: "PAYMENT TERMS", Priority: 5},
		{Name: "Financing", Literal: "FINANCING", Priority: 6},
		{Name: "Warranty", Literal: "WARRANTY", Priority: 7},
		{Name: "Terms and Conditions", Literal: "TERMS AND CONDITIONS", Priority: 8},
		{Name: "HVAC System", Literal: "HVAC", Priority: 9},
		{Name: "Furnace", Literal: "FURNACE", Priority: 10},
		{Name: "Air Conditioning", Literal: "AIR CONDITION", Priority: 11},
		{Name: "Heat Pump", Literal: "HEAT PUMP", Priority: 12},
		{Name: "Water Heater", Literal: "WATER HEATER", Priority: 13},
		{Name: "Roofing", Literal: "ROOFING", Priority: 14},
		{Name: "Plumbing", Literal: "PLUMBING", Priority: 15},
		{Name: "Electrical", Literal: "ELECTRICAL", Priority: 16},
		{Name: "Insulation", Literal: "INSULATION", Priority: 17},
		{Name: "Windows", Literal: "WINDOWS", Priority: 18},
	}
}

var naturalBreaks = []string{"\n\n\n", "\r\n\r\n\r\n", "\n-----", "\n====="}

type hit struct {
	marker Marker
	start  int
	after  int
}

// Split returns the sections found in text, ordered by marker priority and then by offset.
//
// A section runs from its marker to the next marker found later in the text (exclusive).
// The last one ends at the first natural break, or FallbackSpan characters after its start.
// Sections shorter than MinSectionChars are dropped. When nothing survives, the text is
// chunked into ChunkChars windows instead.
func Split(text string, markers []Marker) []model.Section {
	ordered := make([]Marker, len(markers))
	copy(ordered, markers)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Priority < ordered[j].Priority })

	upper := asciiUpper(text)
	taken := make(map[int]bool)
	var hits []hit
	for _, m := range ordered {
		if m.Literal == "" {
			continue
		}
		pos := strings.Index(upper, asciiUpper(m.Literal))
		if pos < 0 || taken[pos] {
			continue
		}
		taken[pos] = true
		hits = append(hits, hit{marker: m, start: pos, after: pos + len(m.Literal)})
	}

	var out []model.Section
	for _, h := range hits {
		end := nextStart(hits, h.start)
		if end < 0 {
			end = naturalEnd(text, h)
		}
		body := text[h.start:end]
		if utf8.RuneCountInString(body) < MinSectionChars {
			continue
		}
		out = append(out, model.Section{
			Name:     h.marker.Name,
			Text:     body,
			Priority: h.marker.Priority,
			Offset:   h.start,
		})
	}
	if len(out) == 0 {
		return Chunk(text, ChunkChars)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Offset < out[j].Offset
	})
	return out
}

// Chunk cuts text into consecutive windows of size characters named "Part N".
func Chunk(text string, size int) []model.Section {
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = ChunkChars
	}
	var out []model.Section
	start, n := 0, 0
	for i := range text {
		if n == size {
			out = append(out, chunkAt(text, start, i, len(out)))
			start, n = i, 0
		}
		n++
	}
	return append(out, chunkAt(text, start, len(text), len(out)))
}

func chunkAt(text string, start, end, idx int) model.Section {
	return model.Section{
		Name:     fmt.Sprintf("Part %d", idx+1),
		Text:     text[start:end],
		Priority: idx + 1,
		Offset:   start,
	}
}

func nextStart(hits []hit, after int) int {
	next := -1
	for _, h := range hits {
		if h.start > after && (next < 0 || h.start < next) {
			next = h.start
		}
	}
	return next
}

func naturalEnd(text string, h hit) int {
	end := -1
	rest := text[h.after:]
	for _, sep := range naturalBreaks {
		if i := strings.Index(rest, sep); i >= 0 && (end < 0 || h.after+i < end) {
			end = h.after + i
		}
	}
	if end >= 0 {
		return end
	}
	return runeOffset(text, h.start, FallbackSpan)
}

// runeOffset returns the byte offset n characters after start, capped at len(text).
func runeOffset(text string, start, n int) int {
	for i := range text[start:] {
		if n == 0 {
			return start + i
		}
		n--
	}
	return len(text)
}

// asciiUpper upper-cases ASCII letters only, so byte offsets match the original text.
func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
