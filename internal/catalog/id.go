package catalog

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrIDEmpty is returned when an id is empty.
	ErrIDEmpty = errors.New("id must not be empty")

	// ErrIDFormat is returned when an id does not match the required pattern.
	ErrIDFormat = errors.New("id must contain only lowercase alphanumeric characters and hyphens, and must not start or end with a hyphen")

	// ErrIDReserved is returned when a section id collides with a fixed route.
	ErrIDReserved = errors.New("id is reserved")

	idPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9\-]*[a-z0-9])?$`)

	// reservedSectionIDs collide with fixed routes under /sections/.
	reservedSectionIDs = map[string]bool{
		"start":   true,
		"history": true,
	}
)

// ValidateID checks that id is a non-empty slug. Ids appear in URLs, in
// location fragments and in data attributes, so they are kept URL-safe.
func ValidateID(id string) error {
	if id == "" {
		return ErrIDEmpty
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrIDFormat, id)
	}
	return nil
}

// ValidateSectionID is ValidateID plus the reserved route names.
func ValidateSectionID(id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	if reservedSectionIDs[id] {
		return fmt.Errorf("%w: %q", ErrIDReserved, id)
	}
	return nil
}
