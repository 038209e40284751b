package extract

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeText returns valid UTF-8 input untouched. Byte-order marks select UTF-8/UTF-16 decoding;
// anything else that is not valid UTF-8 is read as Windows-1252.
func decodeText(raw []byte) (string, []string) {
	if hasBOM(raw) {
		out, _, err := transform.Bytes(xunicode.BOMOverride(transform.Nop), raw)
		if err == nil {
			return string(out), nil
		}
	}
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw), nil
	}
	return string(out), []string{"Text was not valid UTF-8 and was decoded as Windows-1252"}
}
