package extract

import (
	"archive/zip"
	"bytes"
	"compress/zlib"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleQuote = `ACME Heating & Cooling - Service Quote
Replace 3-ton AC condenser and evaporator coil.
Labor: $2,400  Materials: $5,100  Permit: $150
Total: $7,650`

func makePDF(content string, compress bool) []byte {
	stream := []byte(content)
	filter := ""
	if compress {
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		_, _ = zw.Write(stream)
		_ = zw.Close()
		stream = buf.Bytes()
		filter = " /Filter /FlateDecode"
	}
	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj\n")
	fmt.Fprintf(&b, "4 0 obj << /Length %d%s >> stream\n", len(stream), filter)
	b.Write(stream)
	b.WriteString("\nendstream endobj\ntrailer << /Root 1 0 R >>\n%%EOF")
	return b.Bytes()
}

func makeDOCX(paras ...string) []byte {
	buf := bytes.NewBuffer(nil)
	zw := zip.NewWriter(buf)
	w, _ := zw.Create("word/document.xml")
	var body strings.Builder
	for _, p := range paras {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body.String() + `</w:body></w:document>`))
	_ = zw.Close()
	return buf.Bytes()
}

func TestExtract_EmptyFile(t *testing.T) {
	_, err := Extract("quote.txt", "text/plain", nil, Options{})
	assert.ErrorIs(t, err, ErrEmptyFile)
	assert.Contains(t, err.Error(), "quote.txt")
}

func TestExtract_TextBelowMinimum(t *testing.T) {
	_, err := Extract("note.txt", "text/plain", []byte("   too short   "), Options{})
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestExtract_ShortTextIsByteIdentical(t *testing.T) {
	in := sampleQuote + "\r\n  trailing spaces  \r\n"
	res, err := Extract("quote.txt", "text/plain", []byte(in), Options{})
	require.NoError(t, err)
	assert.Equal(t, in, res.Text)
	assert.False(t, res.Truncated)
	assert.Equal(t, KindText, res.Kind)
	assert.Empty(t, res.Warnings)
}

func TestExtract_TruncatesLongText(t *testing.T) {
	in := strings.Repeat("Labor and materials $100. ", 200)
	res, err := Extract("quote.txt", "text/plain", []byte(in), Options{MaxInputTokens: 100})
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	assert.Equal(t, in[:400]+TruncationNotice, res.Text)
	assert.Equal(t, utf8.RuneCountInString(in), res.OriginalChars)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "truncated")
}

func TestExtract_PDF(t *testing.T) {
	content := "BT /F1 12 Tf 40 700 Td (ACME Heating Service Quote) Tj 0 -14 Td [(Total: ) -250 ($7,650 incl. labor and materials)] TJ ET"

	for _, compress := range []bool{false, true} {
		t.Run(fmt.Sprintf("compressed=%v", compress), func(t *testing.T) {
			res, err := Extract("quote.pdf", "application/pdf", makePDF(content, compress), Options{})
			require.NoError(t, err)
			assert.Equal(t, KindPDF, res.Kind)
			assert.Contains(t, res.Text, "ACME Heating Service Quote")
			assert.Contains(t, res.Text, "Total: $7,650 incl. labor and materials")
		})
	}
}

func TestExtract_ScannedPDFFails(t *testing.T) {
	content := "q 612 0 0 792 0 0 cm /Im0 Do Q"
	_, err := Extract("scan.pdf", "application/pdf", makePDF(content, true), Options{})
	assert.ErrorIs(t, err, ErrScannedPDF)
	assert.Contains(t, err.Error(), "scan.pdf")
}

func TestExtract_PDFMimeWithoutHeader(t *testing.T) {
	_, err := Extract("fake.pdf", "application/pdf", []byte(sampleQuote), Options{})
	assert.ErrorIs(t, err, ErrUnreadable)
	assert.Contains(t, err.Error(), "invalid pdf header")
}

func TestExtract_DOCX(t *testing.T) {
	data := makeDOCX("Roof Replacement Estimate", "Tear-off and install architectural shingles", "Total $12,400")
	res, err := Extract("roof.docx", "", data, Options{})
	require.NoError(t, err)
	assert.Equal(t, KindDOCX, res.Kind)
	assert.Equal(t, "Roof Replacement Estimate\nTear-off and install architectural shingles\nTotal $12,400", res.Text)
}

func TestExtract_HTML(t *testing.T) {
	html := `<html><head><script>ignore()</script></head><body><h1>Plumbing Quote</h1><p>Replace water heater, total $1,850 including labor.</p></body></html>`
	res, err := Extract("quote.html", "text/html", []byte(html), Options{})
	require.NoError(t, err)
	assert.Equal(t, KindHTML, res.Kind)
	assert.Contains(t, res.Text, "# Plumbing Quote")
	assert.NotContains(t, res.Text, "ignore()")
}

func TestExtract_LegacyDoc(t *testing.T) {
	data := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 64)...)
	_, err := Extract("quote.doc", "application/msword", data, Options{})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		mimeType string
		data     []byte
		want     Kind
		wantErr  bool
	}{
		{name: "pdf by mime", filename: "a.bin", mimeType: "application/pdf", data: []byte("x"), want: KindPDF},
		{name: "pdf by magic", filename: "a", data: []byte("%PDF-1.7"), want: KindPDF},
		{name: "docx by magic and ext", filename: "a.docx", data: []byte{'P', 'K', 3, 4}, want: KindDOCX},
		{name: "html by ext", filename: "a.htm", data: []byte("hi"), want: KindHTML},
		{name: "html sniffed", filename: "a", data: []byte("<HTML><body>x</body>"), want: KindHTML},
		{name: "utf16 text", filename: "a.txt", data: []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, want: KindText},
		{name: "plain text", filename: "a.txt", mimeType: "text/plain; charset=utf-8", data: []byte("hello"), want: KindText},
		{name: "binary", filename: "a.bin", data: []byte{0, 0, 0, 1, 2}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectKind(tt.filename, tt.mimeType, tt.data)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeText(t *testing.T) {
	t.Run("utf16 with bom", func(t *testing.T) {
		raw := []byte{0xFF, 0xFE, 'Q', 0, 'u', 0, 'o', 0, 't', 0, 'e', 0}
		got, warnings := decodeText(raw)
		assert.Equal(t, "Quote", got)
		assert.Empty(t, warnings)
	})

	t.Run("windows-1252 fallback", func(t *testing.T) {
		got, warnings := decodeText([]byte("Caf\xe9 service"))
		assert.Equal(t, "Café service", got)
		assert.Len(t, warnings, 1)
	})
}

func TestTruncate(t *testing.T) {
	t.Run("within budget unchanged", func(t *testing.T) {
		in := strings.Repeat("a", 40)
		got, cut := Truncate(in, 10)
		assert.False(t, cut)
		assert.Equal(t, in, got)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		in := strings.Repeat("é", 12)
		got, cut := Truncate(in, 2)
		assert.True(t, cut)
		assert.Equal(t, strings.Repeat("é", 8)+TruncationNotice, got)
	})

	t.Run("disabled budget", func(t *testing.T) {
		got, cut := Truncate("abc", 0)
		assert.False(t, cut)
		assert.Equal(t, "abc", got)
	})
}

func TestContentWarnings(t *testing.T) {
	assert.Equal(t, []string{
		"Limited content detected - analysis may be less detailed",
		"File may not contain a service quote - please verify correct document",
	}, ContentWarnings("Dear neighbour, see you at the barbecue."))

	assert.Equal(t, []string{
		"Limited content detected - analysis may be less detailed",
	}, ContentWarnings("Furnace estimate: $4,000"))

	assert.Empty(t, ContentWarnings(strings.Repeat("x", 250)))
}

func TestUnescapePDF(t *testing.T) {
	assert.Equal(t, "(a)\tb\\c", unescapePDF([]byte(`\(a\)\tb\\c`)))
	assert.Equal(t, "A", unescapePDF([]byte(`\101`)))
}
