package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	slugRegex       = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	slugSanitize    = regexp.MustCompile(`[^a-z0-9]+`)
	slugTrimHyphens = regexp.MustCompile(`^-+|-+$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("slug", ValidSlug)
}

// ValidSlug validates lowercase hyphen-separated identifiers.
func ValidSlug(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return slugRegex.MatchString(val)
}

// Slugify derives a URL slug from a display name: lowercased, with runs of
// non-alphanumerics collapsed to single hyphens.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugSanitize.ReplaceAllString(s, "-")
	return slugTrimHyphens.ReplaceAllString(s, "")
}
