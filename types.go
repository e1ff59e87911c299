package envoverlay

// Key is one registered configuration entry. Implementations carry whatever
// metadata they like (defaults, comments); the overlay only consults the
// dotted path.
type Key interface {
	// Path returns the dotted address of the entry in the configuration
	// tree, e.g. "mail.host" or "allowed-commands-while-unauthorized".
	// Case is preserved here and ignored during matching.
	Path() string
}

// KeySource enumerates the registered keys of one configuration subsystem.
// Sources are consulted at the start of an overlay pass; a source that
// fails aborts the whole pass before anything is written.
type KeySource interface {
	Keys() ([]Key, error)
}

// Tree is the mutable configuration store an overlay pass writes into.
// Implementations must accept any value Coerce can produce.
type Tree interface {
	// Set writes value at the node addressed by path, materializing
	// intermediate nodes as needed. Path segments never contain the "."
	// separator; a write it cannot perform is reported as an error and
	// skips only that variable.
	Set(path []string, value any) error
}

// Applied records one environment variable successfully written into the
// tree during an overlay pass.
type Applied struct {
	// Variable is the full environment variable name, prefix included.
	Variable string
	// Path is the resolved tree address.
	Path []string
	// Value is the coerced value written to the tree.
	Value any
	// Key is the registered key matching Path, or nil when the variable
	// addressed an unregistered path through the fallback resolution.
	Key Key
	// Secret reports that the value was masked in the log output.
	Secret bool
}

// Failure records one environment variable that could not be applied. The
// rest of the pass is unaffected.
type Failure struct {
	Variable string
	// Words is the lowercased word split of the variable name, kept for
	// diagnostics.
	Words []string
	Err   error
}

// Result aggregates the outcome of one overlay pass. A pass never fails as
// a whole; per-variable problems surface here and in the log.
type Result struct {
	Applied  []Applied
	Failures []Failure
}
