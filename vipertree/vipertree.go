// Package vipertree adapts a viper instance to the overlay engine's tree
// contract, so applications already reading configuration through viper can
// take environment overrides in place.
package vipertree

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/librelogin/envoverlay"
)

// Tree wraps a viper instance as an envoverlay.Tree.
type Tree struct {
	v *viper.Viper
}

// New wraps v. Overlay writes land through viper.Set, taking precedence
// over values from files, bound flags, and viper's own env handling.
func New(v *viper.Viper) *Tree {
	return &Tree{v: v}
}

// Set writes value at the dotted join of path. Segments containing the "."
// separator are rejected; they would silently address a deeper key.
func (t *Tree) Set(path []string, value any) error {
	if t.v == nil {
		return envoverlay.ErrNilTree
	}
	if len(path) == 0 {
		return envoverlay.ErrEmptyPath
	}
	for _, seg := range path {
		if seg == "" || strings.Contains(seg, ".") {
			return fmt.Errorf("%w: %q", envoverlay.ErrInvalidSegment, seg)
		}
	}

	t.v.Set(strings.Join(path, "."), value)
	return nil
}
