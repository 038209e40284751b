package extract

import (
	md "github.com/JohannesKaufmann/html-to-markdown"
)

// parseHTML converts a saved web quote into Markdown, which keeps headings and tables readable.
func parseHTML(raw []byte) (string, error) {
	conv := md.NewConverter("", true, nil).Remove("script", "style", "noscript")
	return conv.ConvertString(string(raw))
}
