package extract

import "unicode/utf8"

// CharsPerToken is the conservative characters-per-token estimate behind every input budget.
const CharsPerToken = 4

// TruncationNotice is appended to text cut at the budget.
const TruncationNotice = "\n\n[Document truncated due to length - analysis based on first portion of document]"

// Truncate keeps the first maxTokens*CharsPerToken characters of text and appends TruncationNotice.
// Text within the budget is returned unchanged. A non-positive budget disables truncation.
func Truncate(text string, maxTokens int) (string, bool) {
	if maxTokens <= 0 {
		return text, false
	}
	maxChars := maxTokens * CharsPerToken
	if utf8.RuneCountInString(text) <= maxChars {
		return text, false
	}

	cut, n := len(text), 0
	for i := range text {
		if n == maxChars {
			cut = i
			break
		}
		n++
	}
	return text[:cut] + TruncationNotice, true
}
