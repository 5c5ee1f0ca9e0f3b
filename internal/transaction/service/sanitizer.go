// Package service provides transaction-level services such as description
// sanitization.
package service

import (
	"regexp"
	"strings"
)

// EmptyDescription is the fallback for absent or fully-stripped descriptions.
const EmptyDescription = "-"

var (
	scriptBlockRegex = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleBlockRegex  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	tagRegex         = regexp.MustCompile(`<[^>]*>`)
)

// SanitizeDescription strips markup from a free-text transaction description.
// Script and style blocks are removed with their contents, remaining tags are
// stripped, and the result is trimmed. There is no tag whitelist: this guards
// against stored markup injection, it is not an HTML renderer.
func SanitizeDescription(description string) string {
	if description == "" {
		return EmptyDescription
	}

	cleaned := scriptBlockRegex.ReplaceAllString(description, "")
	cleaned = styleBlockRegex.ReplaceAllString(cleaned, "")
	cleaned = tagRegex.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return EmptyDescription
	}
	return cleaned
}
