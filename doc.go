// Package envoverlay applies environment-variable overrides to hierarchical
// configuration trees.
//
// Envoverlay scans the process environment for variables carrying a
// configured prefix (LIBRELOGIN_ by default), reconstructs the dotted
// configuration path each variable addresses, coerces the raw string value
// into a typed one, and writes it into a configuration tree. The pass is
// best-effort: a variable that cannot be resolved or written is logged and
// skipped, never aborting startup.
//
// # Key Components
//
//   - Overrider: Orchestrates one overlay pass over an environment snapshot
//   - Coerce: Shape-based coercion of raw strings into bools, lists, numbers
//   - ResolveSegments: Partition search mapping variable words to tree paths
//   - Tree: Interface for the mutable configuration store being overridden
//   - KeySource: Interface enumerating the registered keys of one subsystem
//
// # Name Resolution
//
// Underscores in a variable name are ambiguous: LIBRELOGIN_A_B_C may address
// the nested key "a.b.c" or the flat hyphenated key "a-b-c". The resolver
// enumerates every contiguous grouping of the words and picks the first one
// registered in the known key set, preferring fewer groups. Unmatched names
// fall back to one segment per word.
//
// # Example Usage
//
//	overlay := envoverlay.New(envoverlay.Config{})
//
//	// Apply overrides to a tree using the registered keys.
//	result := overlay.Apply(tree, known)
//
//	// Or let key sources enumerate the schema, degrading to a no-op
//	// when a source fails.
//	result = overlay.LoadFromEnvironment(tree, mailKeys, databaseKeys)
//
// See the configtree package for a self-contained tree implementation, the
// vipertree package for a viper-backed one, and the schema package for key
// declaration and schema files.
package envoverlay
