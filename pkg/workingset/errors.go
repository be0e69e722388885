package workingset

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidScaleFactor is returned by New when scaleFactor < 1.
	ErrInvalidScaleFactor = errors.New("workingset: scale factor must be >= 1")
	// ErrInvalidTreeCount is returned by New when numTrees < 1.
	ErrInvalidTreeCount = errors.New("workingset: number of trees must be >= 1")
)
