package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizePolicy = bluemonday.StrictPolicy()

// SanitizeText strips any HTML from free-text input before persistence.
func SanitizeText(s string) string {
	return strings.TrimSpace(sanitizePolicy.Sanitize(s))
}
