package extract

import (
	"bytes"
	"compress/zlib"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var (
	reStream = regexp.MustCompile(`(?s)stream\r?\n(.*?)\r?\nendstream`)
	// reShow matches a literal string shown with Tj, or a TJ array.
	reShow    = regexp.MustCompile(`(?s)\(((?:\\.|[^\\()])*)\)\s*Tj|\[((?:\\.|[^\]])*)\]\s*TJ`)
	reLiteral = regexp.MustCompile(`(?s)\(((?:\\.|[^\\()])*)\)`)
)

const maxInflatedStream = 16 << 20

// parsePDF reads the text-showing operators of every content stream. Flate-compressed streams
// are inflated first. Layout, fonts and encodings beyond plain literals are ignored.
func parsePDF(raw []byte) (string, error) {
	if !bytes.HasPrefix(bytes.TrimLeft(raw, "\r\n\t "), magicPDF) {
		return "", errors.New("invalid pdf header")
	}

	var b strings.Builder
	streams := reStream.FindAllSubmatch(raw, -1)
	if len(streams) == 0 {
		collectText(&b, raw)
	}
	for _, s := range streams {
		body := s[1]
		if inflated, err := inflate(body); err == nil {
			body = inflated
		}
		collectText(&b, body)
	}
	return strings.TrimSpace(b.String()), nil
}

func inflate(body []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(io.LimitReader(zr, maxInflatedStream))
}

func collectText(b *strings.Builder, content []byte) {
	for _, m := range reShow.FindAllSubmatch(content, -1) {
		if m[1] != nil {
			b.WriteString(unescapePDF(m[1]))
		} else {
			for _, lit := range reLiteral.FindAllSubmatch(m[2], -1) {
				b.WriteString(unescapePDF(lit[1]))
			}
		}
		b.WriteByte('\n')
	}
}

// unescapePDF resolves the backslash escapes of a PDF literal string.
func unescapePDF(s []byte) string {
	if !bytes.ContainsRune(s, '\\') {
		return string(s)
	}
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			out.WriteByte(c)
			continue
		}
		i++
		switch e := s[i]; e {
		case 'n':
			out.WriteByte('\n')
		case 'r':
			out.WriteByte('\r')
		case 't':
			out.WriteByte('\t')
		case 'b':
			out.WriteByte('\b')
		case 'f':
			out.WriteByte('\f')
		case '\r', '\n':
			// line continuation
		default:
			if e >= '0' && e <= '7' {
				j := i
				for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
					j++
				}
				v, _ := strconv.ParseUint(string(s[i:j]), 8, 8)
				out.WriteByte(byte(v))
				i = j - 1
				continue
			}
			out.WriteByte(e)
		}
	}
	return out.String()
}
