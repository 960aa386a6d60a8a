package manifest

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"docblog/internal/extract"
	"docblog/internal/models"
	"docblog/pkg/utils"
)

// Validation errors.
var (
	ErrMissingTitle    = errors.New("article has no title")
	ErrMissingFilename = errors.New("article has no filename")
	ErrInvalidCreated  = errors.New("created is neither a YYYY-MM-DD date nor DRAFT")
	ErrInvalidUpdated  = errors.New("updated is neither a YYYY-MM-DD date nor DRAFT")
	ErrExcerptTooLong  = errors.New("excerpt exceeds maximum length")
)

const maxExcerptRunes = extract.ExcerptLength + len(utils.Ellipsis)

// Validate checks the invariants every manifest record must satisfy.
func Validate(a models.Article) error {
	if a.Title == "" {
		return ErrMissingTitle
	}

	if a.Filename == "" {
		return ErrMissingFilename
	}

	if !validDate(a.Created) {
		return fmt.Errorf("%w: %q", ErrInvalidCreated, a.Created)
	}

	if !validDate(a.Updated) {
		return fmt.Errorf("%w: %q", ErrInvalidUpdated, a.Updated)
	}

	if n := utf8.RuneCountInString(a.Excerpt); n > maxExcerptRunes {
		return fmt.Errorf("%w: %d runes", ErrExcerptTooLong, n)
	}

	return nil
}

func validDate(s string) bool {
	if s == models.Draft {
		return true
	}

	_, err := time.Parse(time.DateOnly, s)

	return err == nil
}
