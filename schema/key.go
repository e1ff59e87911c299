package schema

import (
	"regexp"

	"github.com/librelogin/envoverlay"
)

var validKeyPathRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+(\.[A-Za-z0-9_-]+)*$`)

// Key is one registered configuration entry: a dotted path plus the
// metadata used when writing schema files. Keys carry no type information;
// the overlay engine types values from their shape alone.
type Key struct {
	path    string
	def     any
	comment string
}

// NewKey declares a configuration entry. def is the value a fresh
// configuration starts with and may be nil. comment documents the entry in
// generated schema files.
func NewKey(path string, def any, comment string) Key {
	return Key{path: path, def: def, comment: comment}
}

// Path returns the dotted tree address of the entry. It implements
// envoverlay.Key.
func (k Key) Path() string { return k.path }

// Default returns the declared default value, or nil when none was given.
func (k Key) Default() any { return k.def }

// Comment returns the human-readable description of the entry.
func (k Key) Comment() string { return k.comment }

// IsValidKeyPath reports whether path is a well-formed dotted key path:
// one or more dot-separated segments of letters, digits, hyphens, and
// underscores.
func IsValidKeyPath(path string) bool {
	return validKeyPathRegex.MatchString(path)
}

// Known widens concrete keys to the interface the overlay engine consumes.
func Known(keys ...Key) []envoverlay.Key {
	out := make([]envoverlay.Key, len(keys))
	for i, k := range keys {
		out[i] = k
	}
	return out
}
