package extract

import (
	"bytes"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

var (
	magicPDF  = []byte("%PDF-")
	magicZIP  = []byte{'P', 'K', 0x03, 0x04}
	magicOLE  = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	bomUTF8   = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16L = []byte{0xFF, 0xFE}
	bomUTF16B = []byte{0xFE, 0xFF}
)

// DetectKind picks a parser from the declared MIME type, magic bytes and file extension, in that order.
func DetectKind(filename, mimeType string, data []byte) (Kind, error) {
	mt, _, _ := mime.ParseMediaType(mimeType)
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case mt == "application/pdf" || bytes.HasPrefix(data, magicPDF):
		return KindPDF, nil
	case mt == docxMIME || (bytes.HasPrefix(data, magicZIP) && ext == ".docx"):
		return KindDOCX, nil
	case mt == "text/html" || ext == ".html" || ext == ".htm":
		return KindHTML, nil
	case hasBOM(data):
		return KindText, nil
	case bytes.HasPrefix(data, magicOLE):
		return "", fmt.Errorf("%w: legacy Word (.doc) documents cannot be read, save the quote as .docx, .pdf or .txt", ErrUnsupportedType)
	case ext == ".pdf":
		return KindPDF, nil
	case ext == ".docx":
		return KindDOCX, nil
	}

	if nulRatio(data) > 0.02 {
		return "", fmt.Errorf("%w: binary content", ErrUnsupportedType)
	}
	if bytes.Contains(bytes.ToLower(data), []byte("<html")) {
		return KindHTML, nil
	}
	return KindText, nil
}

func hasBOM(data []byte) bool {
	return bytes.HasPrefix(data, bomUTF8) || bytes.HasPrefix(data, bomUTF16L) || bytes.HasPrefix(data, bomUTF16B)
}

func nulRatio(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}
	return float64(bytes.Count(data, []byte{0})) / float64(len(data))
}
