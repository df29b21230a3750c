package postservice

import "regexp"

var scriptTagPattern = regexp.MustCompile(`(?i)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)

// sanitizeContent strips script tags from the Markdown body before it is
// stored.
func sanitizeContent(markdown string) string {
	return scriptTagPattern.ReplaceAllString(markdown, "")
}
