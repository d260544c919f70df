package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"kapipost/internal/models"
)

var groupSlugRegex = regexp.MustCompile(`^[a-z0-9-]{1,50}$`)

// ValidatePostText rejects posts whose text is missing or blank. The column
// itself tolerates empty strings; this rule guards the submission path only.
func ValidatePostText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("post text is required")
	}
	return nil
}

// ValidateCommentText enforces presence and the comment length bound.
func ValidateCommentText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("comment text is required")
	}
	if utf8.RuneCountInString(text) > models.MaxCommentLength {
		return fmt.Errorf("comment must not exceed %d characters", models.MaxCommentLength)
	}
	return nil
}

// ValidateGroupSlug validates group slug format. Slugs are not unique, so
// only the shape is checked here.
func ValidateGroupSlug(slug string) error {
	if !groupSlugRegex.MatchString(slug) {
		return fmt.Errorf("slug must be 1-50 characters and contain only lowercase letters, numbers, and hyphens")
	}
	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return fmt.Errorf("slug cannot start or end with a hyphen")
	}
	return nil
}
