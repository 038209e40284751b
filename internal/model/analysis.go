// Package model contains the data carried through a single analysis request,
// plus the archived record shape used when the archive is enabled.
package model

import (
	"encoding/json"
	"time"
)

// Mode selects the analysis flow.
type Mode string

const (
	// ModeReport splits the quote into sections, analyzes each one and synthesizes a report.
	ModeReport Mode = "report"
	// ModeStructured sends the whole quote once and expects a JSON object back.
	ModeStructured Mode = "structured"
)

// Valid reports whether m names a known flow.
func (m Mode) Valid() bool {
	return m == ModeReport || m == ModeStructured
}

// Upload is an uploaded quote file held in memory for the duration of one request.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// Section is a named slice of the extracted quote text.
type Section struct {
	Name     string `json:"name"`
	Text     string `json:"-"`
	Priority int    `json:"priority"`
	Offset   int    `json:"offset"`
}

// SectionAnalysis is the model output for one section. Failed entries carry
// a placeholder in Analysis instead of being dropped.
type SectionAnalysis struct {
	Section  string `json:"section"`
	Analysis string `json:"analysis"`
	Failed   bool   `json:"failed,omitempty"`
}

// Report is the analysis payload of the multi-pass flow.
type Report struct {
	ComprehensiveReport string            `json:"comprehensive_report"`
	SectionAnalyses     []SectionAnalysis `json:"section_analyses"`
	SectionsAnalyzed    int               `json:"sections_analyzed"`
	FailedSections      int               `json:"failed_sections"`
	Location            string            `json:"location,omitempty"`
	AnalysisType        string            `json:"analysis_type"`
}

// FileInfo echoes the uploaded file's metadata.
type FileInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// AnalysisResult is what the service hands back to transport layers.
// Analysis is either a *Report or a decoded JSON object.
type AnalysisResult struct {
	ID          string
	Mode        Mode
	Analysis    any
	Warnings    []string
	File        FileInfo
	StartedAt   time.Time
	CompletedAt time.Time
}

// Record is an archived analysis. StoragePath points at the original upload in object storage.
type Record struct {
	ID          string          `json:"id"`
	Filename    string          `json:"filename"`
	StoragePath string          `json:"storage_path"`
	Size        int64           `json:"size"`
	ContentType string          `json:"content_type"`
	Mode        Mode            `json:"mode"`
	Location    string          `json:"location,omitempty"`
	Analysis    json.RawMessage `json:"analysis,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
