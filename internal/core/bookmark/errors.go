package bookmark

import "errors"

// ErrNotFound is returned by Get when no bookmark exists for a key.
var ErrNotFound = errors.New("bookmark not found")

// IsNotFound reports whether err is a missing-bookmark error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
