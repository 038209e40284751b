package extract

import (
	"strings"
	"unicode/utf8"
)

var quoteKeywords = []string{"quote", "estimate", "cost", "labor", "materials", "total", "service", "$", "price"}

// ContentWarnings flags text that is probably too thin, or not a quote at all.
func ContentWarnings(text string) []string {
	var warnings []string
	n := utf8.RuneCountInString(text)
	if n < 100 {
		warnings = append(warnings, "Limited content detected - analysis may be less detailed")
	}
	if n < 200 && !hasQuoteKeyword(text) {
		warnings = append(warnings, "File may not contain a service quote - please verify correct document")
	}
	return warnings
}

func hasQuoteKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, k := range quoteKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
