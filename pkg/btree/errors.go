package btree

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidDegree is returned by New when minDegree < 2.
	ErrInvalidDegree = errors.New("btree: minimum degree must be >= 2")
	// ErrInvalidHeight is returned by New when maxHeight < 1.
	ErrInvalidHeight = errors.New("btree: max height must be >= 1")
)
