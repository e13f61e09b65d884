package render

import (
	"regexp"
	"strings"
)

var displayPrefix = regexp.MustCompile(`^(https?://)?(www\.)?`)

// FormatURL returns a link target for a user-entered URL, adding https:// when
// no http(s) scheme is present.
func FormatURL(u string) string {
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return "https://" + u
}

// DisplayURL strips the scheme and a leading "www." for link text.
func DisplayURL(u string) string {
	return displayPrefix.ReplaceAllString(u, "")
}
