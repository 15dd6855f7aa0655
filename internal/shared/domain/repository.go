package domain

import "errors"

// ErrConcurrentModification is returned when a write loses a version race
// to another process — e.g. two rebuilds saving plans for the same owner
// at the same instant, where retrying at the next version keeps failing.
var ErrConcurrentModification = errors.New("concurrent modification detected")
