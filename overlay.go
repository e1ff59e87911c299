package envoverlay

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// DefaultPrefix marks the environment variables consulted when Config
// leaves Prefix empty.
const DefaultPrefix = "LIBRELOGIN_"

// MaskedValue replaces secret values in log output and displays.
const MaskedValue = "****"

// secretMarkers flag resolved paths whose raw values must never reach the
// log. Matching is a substring test on the lowercased dotted path.
var secretMarkers = []string{"password", "secret", "token", "key"}

// Config configures an Overrider. The zero value reads the process
// environment under DefaultPrefix and logs through slog.Default().
type Config struct {
	// Prefix restricts the pass to variables with this leading string.
	Prefix string

	// Environ supplies the environment snapshot as "NAME=value" pairs.
	// Defaults to os.Environ; tests inject synthetic environments here.
	Environ func() []string

	// Logger receives one line per applied or failed override.
	Logger *slog.Logger
}

// Overrider applies environment-variable overrides to configuration trees.
// It is stateless between passes and safe for concurrent use as long as the
// target trees are.
type Overrider struct {
	prefix  string
	environ func() []string
	logger  *slog.Logger
}

// New creates an Overrider, filling defaults for unset Config fields.
func New(cfg Config) *Overrider {
	o := &Overrider{
		prefix:  cfg.Prefix,
		environ: cfg.Environ,
		logger:  cfg.Logger,
	}
	if o.prefix == "" {
		o.prefix = DefaultPrefix
	}
	if o.environ == nil {
		o.environ = os.Environ
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// Apply performs one overlay pass: every variable in the environment
// snapshot carrying the prefix is resolved against known, coerced, and
// written into tree. The pass is best-effort; a variable that cannot be
// resolved or written is logged at warn level, recorded in the Result, and
// the pass continues. Apply itself never fails.
//
// Variables are processed in snapshot iteration order, which is
// unspecified; when two variables resolve to the same path the last write
// wins.
func (o *Overrider) Apply(tree Tree, known []Key) Result {
	if tree == nil {
		o.logger.Warn("failed to apply environment overrides", "err", ErrNilTree)
		return Result{}
	}

	knownPaths := NewPathSet(known)

	var res Result
	for name, raw := range o.snapshot() {
		if !strings.HasPrefix(name, o.prefix) {
			continue
		}

		remainder := strings.TrimLeft(strings.TrimPrefix(name, o.prefix), "_")
		words := splitWords(remainder)

		applied, err := o.applyOne(tree, known, knownPaths, name, raw, words)
		if err != nil {
			o.logger.Warn("failed to apply env override",
				"variable", name, "words", words, "err", err)
			res.Failures = append(res.Failures, Failure{Variable: name, Words: words, Err: err})
			continue
		}

		display := raw
		if applied.Secret {
			display = MaskedValue
		}
		o.logger.Info("applied env override",
			"key", strings.Join(applied.Path, "."), "value", display)
		res.Applied = append(res.Applied, applied)
	}
	return res
}

// LoadFromEnvironment flattens the keys of the given sources and applies
// overrides with them. A source that fails to enumerate aborts the whole
// pass: nothing is written, the failure is logged at warn level, and an
// empty Result is returned, so a broken key declaration degrades override
// support instead of blocking configuration loading.
func (o *Overrider) LoadFromEnvironment(tree Tree, sources ...KeySource) Result {
	known, err := collectKeys(sources)
	if err != nil {
		o.logger.Warn("failed to apply environment overrides", "err", err)
		return Result{}
	}
	return o.Apply(tree, known)
}

func (o *Overrider) applyOne(tree Tree, known []Key, knownPaths PathSet, name, raw string, words []string) (Applied, error) {
	segments := ResolveSegments(words, knownPaths)
	if len(segments) == 0 {
		return Applied{}, ErrEmptyPath
	}

	value := Coerce(raw)
	if err := tree.Set(segments, value); err != nil {
		return Applied{}, fmt.Errorf("set %s: %w", strings.Join(segments, "."), err)
	}

	path := strings.Join(segments, ".")
	return Applied{
		Variable: name,
		Path:     segments,
		Value:    value,
		Key:      findKey(known, path),
		Secret:   IsSecretPath(path),
	}, nil
}

// snapshot parses the environment into a name-value map. Entries without a
// "=" or with an empty name are skipped; values keep any further "="
// characters.
func (o *Overrider) snapshot() map[string]string {
	environ := o.environ()
	env := make(map[string]string, len(environ))
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			continue
		}
		env[name] = value
	}
	return env
}

// splitWords lowercases and splits a variable remainder on underscores.
// Trailing empty words are dropped; interior ones, produced by doubled
// underscores, are kept and later rejected by the tree as invalid segments.
func splitWords(remainder string) []string {
	if remainder == "" {
		return nil
	}
	words := dropTrailingEmpty(strings.Split(remainder, "_"))
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return words
}

// IsSecretPath reports whether the dotted path looks like it names a
// credential. The test is a case-insensitive substring match for password,
// secret, token, or key.
func IsSecretPath(path string) bool {
	lower := strings.ToLower(path)
	for _, marker := range secretMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// findKey returns the registered key whose path equals the resolved one,
// ignoring case, or nil when the path landed through the fallback. Only
// presence is recorded; coercion stays shape-based either way.
func findKey(known []Key, path string) Key {
	for _, k := range known {
		if k != nil && strings.EqualFold(k.Path(), path) {
			return k
		}
	}
	return nil
}

func collectKeys(sources []KeySource) ([]Key, error) {
	var keys []Key
	for _, src := range sources {
		if src == nil {
			continue
		}
		ks, err := src.Keys()
		if err != nil {
			return nil, fmt.Errorf("collect keys: %w", err)
		}
		keys = append(keys, ks...)
	}
	return keys, nil
}
