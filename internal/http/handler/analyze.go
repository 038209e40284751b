package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"quoteapi/internal/extract"
	"quoteapi/internal/llm"
	"quoteapi/internal/model"
	"quoteapi/internal/service"
)

var supportedFormats = []string{"Text files (.txt)", "PDF documents", "Word documents (.docx)", "Web pages (.html)"}

var uploadTips = []string{
	"For best results, use clear text files",
	"PDFs work well if they contain selectable text",
	"Scanned documents may have limited text extraction",
	"Large files are automatically truncated to prevent rate limit issues",
}

type fileTypeGuidance struct {
	SupportedFormats []string `json:"supported_formats"`
	Tips             []string `json:"tips"`
}

type rateLimitInfo struct {
	Suggestion string `json:"suggestion"`
}

// analyzeError is the failure body of POST /api/analyze.
type analyzeError struct {
	OK               bool              `json:"ok"`
	Error            string            `json:"error"`
	Code             string            `json:"code"`
	Details          string            `json:"details,omitempty"`
	Suggestions      []string          `json:"suggestions,omitempty"`
	FileTypeGuidance *fileTypeGuidance `json:"file_type_guidance,omitempty"`
	RateLimitInfo    *rateLimitInfo    `json:"rate_limit_info,omitempty"`
	RequestID        string            `json:"request_id"`
}

// analyzeResponse is the success body of POST /api/analyze.
type analyzeResponse struct {
	OK          bool       `json:"ok"`
	Analysis    any        `json:"analysis"`
	Filename    string     `json:"filename"`
	Filesize    int64      `json:"filesize"`
	Mode        model.Mode `json:"mode"`
	Warnings    []string   `json:"warnings,omitempty"`
	AnalysisID  string     `json:"analysis_id,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt time.Time  `json:"completed_at"`
	DurationMS  int64      `json:"duration_ms"`
	RequestID   string     `json:"request_id"`
}

// Analyze handles POST /api/analyze.
//
// @Summary     Analyze a home-services quote
// @Tags        analyze
// @Accept      multipart/form-data
// @Produce     json
// @Param       file     formData file   true  "Quote document (.txt, .pdf, .docx, .html)"
// @Param       location formData string false "Homeowner location, e.g. city and state"
// @Param       mode     formData string false "report (default) or structured"
// @Success     200 {object} analyzeResponse
// @Failure     400 {object} analyzeError
// @Failure     413 {object} errorPayload
// @Failure     429 {object} analyzeError
// @Failure     500 {object} analyzeError
// @Router      /api/analyze [post]
func Analyze(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := requestIDFromCtx(c)

		fh, err := c.FormFile("file")
		if err != nil {
			return writeInputError(c, "NO_FILE", "No file provided", nil)
		}

		mode := model.Mode(strings.ToLower(strings.TrimSpace(c.FormValue("mode"))))
		if mode != "" && !mode.Valid() {
			return writeInputError(c, "INVALID_MODE", service.ErrInvalidMode.Error(), nil)
		}

		data, err := readUpload(fh)
		if err != nil {
			return writeInputError(c, "FILE_READ_ERROR",
				fmt.Sprintf("Failed to read file: %s. Please try a different file format.", fh.Filename), nil)
		}

		res, err := svc.Analyze(c.UserContext(), service.AnalyzeInput{
			Upload: model.Upload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Size:        fh.Size,
				Data:        data,
			},
			Location:  c.FormValue("location"),
			Mode:      mode,
			RequestID: rid,
		})
		if err != nil {
			return writeAnalyzeError(c, fh.Filename, err)
		}

		return c.JSON(analyzeResponse{
			OK:          true,
			Analysis:    res.Analysis,
			Filename:    fh.Filename,
			Filesize:    fh.Size,
			Mode:        res.Mode,
			Warnings:    res.Warnings,
			AnalysisID:  res.ID,
			StartedAt:   res.StartedAt,
			CompletedAt: res.CompletedAt,
			DurationMS:  res.CompletedAt.Sub(res.StartedAt).Milliseconds(),
			RequestID:   rid,
		})
	}
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func writeInputError(c *fiber.Ctx, code, msg string, suggestions []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(analyzeError{
		Error:       msg,
		Code:        code,
		Suggestions: suggestions,
		FileTypeGuidance: &fileTypeGuidance{
			SupportedFormats: supportedFormats,
			Tips:             uploadTips,
		},
		RequestID: requestIDFromCtx(c),
	})
}

// writeAnalyzeError maps a service error to 400, 429 or 500.
func writeAnalyzeError(c *fiber.Ctx, filename string, err error) error {
	switch {
	case errors.Is(err, extract.ErrEmptyFile):
		return writeInputError(c, "EMPTY_FILE", "File appears to be empty. Please select a valid file with content.", nil)
	case errors.Is(err, extract.ErrScannedPDF):
		return writeInputError(c, "SCANNED_PDF",
			fmt.Sprintf("%s appears to be a scanned or image-only PDF with no selectable text.", filename),
			[]string{
				"Export the quote from the original software as a text-based PDF",
				"Copy the quote text into a .txt file and upload that instead",
			})
	case errors.Is(err, extract.ErrUnsupportedType):
		return writeInputError(c, "UNSUPPORTED_TYPE",
			fmt.Sprintf("%s is not a supported file type.", filename),
			[]string{"Save legacy .doc files as .docx or .txt before uploading"})
	case errors.Is(err, extract.ErrUnreadable):
		return writeInputError(c, "UNREADABLE_CONTENT",
			fmt.Sprintf("Could not extract readable content from %s. Please try uploading as a text file (.txt) or ensure the file contains readable text.", filename), nil)
	case errors.Is(err, service.ErrInvalidMode):
		return writeInputError(c, "INVALID_MODE", err.Error(), nil)
	case llm.IsRateLimit(err):
		return c.Status(fiber.StatusTooManyRequests).JSON(analyzeError{
			Error:   "Rate limit exceeded. Please wait a moment and try again with a smaller file.",
			Code:    "RATE_LIMITED",
			Details: "Try uploading a shorter document or wait 60 seconds before retrying.",
			RateLimitInfo: &rateLimitInfo{
				Suggestion: "For large documents, consider copying just the essential quote information into a text file.",
			},
			RequestID: requestIDFromCtx(c),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(analyzeError{
			Error:     "Analysis failed",
			Code:      "ANALYSIS_FAILED",
			Details:   "Check the model API configuration and try again",
			RequestID: requestIDFromCtx(c),
		})
	}
}
