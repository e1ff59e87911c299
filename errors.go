package envoverlay

import "errors"

var (
	// ErrNilTree is returned when an overlay pass is asked to write into a
	// nil configuration tree.
	ErrNilTree = errors.New("nil configuration tree")

	// ErrEmptyPath is returned when a resolved path has no segments, for
	// example when a variable consists of the prefix alone.
	ErrEmptyPath = errors.New("empty configuration path")

	// ErrInvalidSegment is returned by tree implementations when a path
	// segment cannot address a node, such as an empty segment produced by
	// doubled underscores.
	ErrInvalidSegment = errors.New("invalid path segment")
)
