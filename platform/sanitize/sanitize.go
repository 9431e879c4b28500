// Package sanitize cleans user-provided text before it is stored.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRegex = regexp.MustCompile(`[ \t\f\v]+`)
	blankLinesRegex = regexp.MustCompile(`\n{3,}`)

	entityReplacer = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&quot;", "\"",
		"&#39;", "'",
	)
)

// StripHTML removes HTML tags, decodes common entities and strips again so
// encoded tags cannot survive.
func StripHTML(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, "")
	result = entityReplacer.Replace(result)
	result = htmlTagRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Text sanitizes free text such as listing descriptions and inquiry
// messages: HTML is stripped, runs of spaces collapse to one and more than
// one blank line collapses to a single blank line.
func Text(s string) string {
	result := StripHTML(strings.ReplaceAll(s, "\r\n", "\n"))
	result = whitespaceRegex.ReplaceAllString(result, " ")
	result = blankLinesRegex.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// Line sanitizes a single-line field such as a name or label.
func Line(s string) string {
	return strings.Join(strings.Fields(StripHTML(s)), " ")
}

// Lines applies Line to every element and drops the ones left empty.
func Lines(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if cleaned := Line(v); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// TextPtr is a helper for optional string pointers
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	result := Text(*s)
	return &result
}
