package services

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const excerptLength = 150

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// MakeExcerpt derives a markup-free preview from post content: tags are
// stripped, whitespace collapsed, and the result truncated to 150 characters
// with an ellipsis when anything was cut. Stripping happens before
// truncation so a tag cut in half can never leak into the excerpt.
func MakeExcerpt(content string) string {
	plain := htmlTagPattern.ReplaceAllString(content, " ")
	// A stray bracket outside a complete tag survives the pattern above.
	plain = strings.NewReplacer("<", " ", ">", " ").Replace(plain)
	plain = strings.Join(strings.Fields(plain), " ")

	runes := []rune(plain)
	if len(runes) <= excerptLength {
		return plain
	}
	return strings.TrimRight(string(runes[:excerptLength]), " ") + "..."
}

// ParseTags splits a comma-separated tag string into an ordered list,
// trimming whitespace and dropping empty entries.
func ParseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// DefaultProfileImage returns the deterministic avatar URL for a username.
func DefaultProfileImage(username string) string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", url.QueryEscape(username))
}
