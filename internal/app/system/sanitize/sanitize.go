// Package sanitize cleans user-supplied free text before it is stored.
// Team descriptions, request messages, and board messages are plain text,
// so the strict policy strips every tag rather than allowlisting any.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text strips all HTML from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
