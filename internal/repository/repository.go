package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned by lookups on ids that do not exist. Callers are
// expected to recover locally (404 at the API edge), never to panic.
var ErrNotFound = errors.New("record not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// likePattern builds the case-insensitive substring pattern for Search.
func likePattern(query string) string {
	return "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
}

func emptyQuery(query string) bool {
	return strings.TrimSpace(query) == ""
}
