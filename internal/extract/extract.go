// Package extract turns an uploaded quote into plain text the model can read.
//
// Extraction never invents input: a PDF without a usable text layer fails with
// ErrScannedPDF instead of being replaced by a canned prompt.
package extract

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind is the detected document format.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
	KindHTML Kind = "html"
	KindText Kind = "text"
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrUnreadable      = errors.New("could not extract readable content")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrScannedPDF      = errors.New("pdf has no readable text layer")
)

const (
	DefaultMaxInputTokens = 25000
	DefaultMinTextChars   = 20
	DefaultMinPDFChars    = 50
)

// Options bounds what Extract accepts and how much text it keeps.
// Zero values take the package defaults.
type Options struct {
	MaxInputTokens int
	MinTextChars   int
	MinPDFChars    int
}

func (o Options) withDefaults() Options {
	if o.MaxInputTokens <= 0 {
		o.MaxInputTokens = DefaultMaxInputTokens
	}
	if o.MinTextChars <= 0 {
		o.MinTextChars = DefaultMinTextChars
	}
	if o.MinPDFChars <= 0 {
		o.MinPDFChars = DefaultMinPDFChars
	}
	return o
}

// Result is the text handed to the prompt builders.
type Result struct {
	Text          string
	Kind          Kind
	Truncated     bool
	OriginalChars int
	Warnings      []string
}

// Extract detects the format of data, pulls its text and applies the input budget.
// Returned errors wrap one of the package sentinels and name the file.
func Extract(filename, mimeType string, data []byte, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if len(data) == 0 {
		return nil, fmt.Errorf("extract %q: %w", filename, ErrEmptyFile)
	}

	kind, err := DetectKind(filename, mimeType, data)
	if err != nil {
		return nil, fmt.Errorf("extract %q: %w", filename, err)
	}

	var (
		text     string
		warnings []string
	)
	switch kind {
	case KindPDF:
		text, err = parsePDF(data)
	case KindDOCX:
		text, err = parseDOCX(data)
	case KindHTML:
		text, err = parseHTML(data)
	default:
		text, warnings = decodeText(data)
	}
	if err != nil {
		return nil, fmt.Errorf("extract %q (%s): %w: %w", filename, kind, ErrUnreadable, err)
	}

	if kind == KindPDF {
		if readableChars(text) < opts.MinPDFChars {
			return nil, fmt.Errorf("extract %q: %w", filename, ErrScannedPDF)
		}
	} else if utf8.RuneCountInString(strings.TrimSpace(text)) < opts.MinTextChars {
		return nil, fmt.Errorf("extract %q: %w", filename, ErrUnreadable)
	}

	res := &Result{
		Kind:          kind,
		OriginalChars: utf8.RuneCountInString(text),
		Warnings:      warnings,
	}
	res.Text, res.Truncated = Truncate(text, opts.MaxInputTokens)
	if res.Truncated {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"Document truncated from %d to %d characters - analysis based on first portion of document",
			res.OriginalChars, opts.MaxInputTokens*CharsPerToken))
	}
	return res, nil
}

// readableChars counts letters, digits and punctuation, ignoring whitespace and control bytes.
func readableChars(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			n++
		}
	}
	return n
}
