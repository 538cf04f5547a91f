// Package validation contains input validation helpers shared by the
// service layer.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	slugRegex        = regexp.MustCompile(`^[a-z0-9-]+$`)
	nonAlphanumRegex = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify derives a URL slug from a display name: lowercase, runs of
// non-alphanumeric characters collapsed to a single hyphen, leading and
// trailing hyphens stripped. Returns "" when the name has no usable
// characters.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = nonAlphanumRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ValidateSlug checks an explicitly supplied slug.
func ValidateSlug(slug string) error {
	if !slugRegex.MatchString(slug) {
		return fmt.Errorf("slug may only contain lowercase letters, numbers, and hyphens")
	}
	return nil
}

// ValidateURL accepts an empty string or a well-formed absolute http(s) URL.
func ValidateURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("must be a valid http or https URL")
	}
	return nil
}
