package helpers

import "strings"

// Slugify derives a URL-safe slug from a company display name:
// lowercase, non-alphanumerics stripped (spaces and hyphens kept),
// whitespace runs become single hyphens, hyphen runs collapse, and
// leading/trailing hyphens are trimmed.
func Slugify(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '-':
			b.WriteRune(r)
		}
	}

	slug := strings.Join(strings.Fields(b.String()), "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}
