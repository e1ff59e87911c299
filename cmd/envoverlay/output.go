package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/librelogin/envoverlay"
	"github.com/librelogin/envoverlay/schema"
)

// Formatter renders command results.
type Formatter interface {
	FormatResult(w io.Writer, res envoverlay.Result) error
	FormatKeys(w io.Writer, keys []schema.Key) error
}

// getFormatter returns the formatter selected by the output.json key.
func getFormatter() Formatter {
	if viper.GetBool("output.json") {
		return &JSONFormatter{}
	}
	return &HumanFormatter{}
}

// sortResult orders applied and failed entries by variable name. Passes
// iterate the environment snapshot in map order, so output is sorted here
// to stay diffable.
func sortResult(res envoverlay.Result) envoverlay.Result {
	applied := append([]envoverlay.Applied(nil), res.Applied...)
	sort.Slice(applied, func(i, j int) bool { return applied[i].Variable < applied[j].Variable })

	failures := append([]envoverlay.Failure(nil), res.Failures...)
	sort.Slice(failures, func(i, j int) bool { return failures[i].Variable < failures[j].Variable })

	return envoverlay.Result{Applied: applied, Failures: failures}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct{}

// FormatResult prints one line per override plus a summary.
func (f *HumanFormatter) FormatResult(w io.Writer, res envoverlay.Result) error {
	res = sortResult(res)

	maxVarLen := 0
	for i := range res.Applied {
		if len(res.Applied[i].Variable) > maxVarLen {
			maxVarLen = len(res.Applied[i].Variable)
		}
	}

	for i := range res.Applied {
		a := &res.Applied[i]
		marker := ""
		if a.Key == nil {
			marker = "  (unregistered)"
		}
		_, _ = fmt.Fprintf(w, "%-*s -> %s = %s%s\n",
			maxVarLen, a.Variable, strings.Join(a.Path, "."), displayValue(a), marker)
	}

	for i := range res.Failures {
		fl := &res.Failures[i]
		_, _ = fmt.Fprintf(w, "Error: %s - %v\n", fl.Variable, fl.Err)
	}

	_, _ = fmt.Fprintf(w, "\n%d applied, %d failed\n", len(res.Applied), len(res.Failures))
	return nil
}

// FormatKeys prints the schema as an aligned table.
func (f *HumanFormatter) FormatKeys(w io.Writer, keys []schema.Key) error {
	if len(keys) == 0 {
		_, _ = fmt.Fprintln(w, "No keys declared")
		return nil
	}

	maxPathLen := 4 // "PATH"
	for i := range keys {
		if len(keys[i].Path()) > maxPathLen {
			maxPathLen = len(keys[i].Path())
		}
	}
	if maxPathLen > 60 {
		maxPathLen = 60
	}

	_, _ = fmt.Fprintf(w, "%-*s  %-16s  %s\n", maxPathLen, "PATH", "DEFAULT", "COMMENT")
	_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
		strings.Repeat("-", maxPathLen), strings.Repeat("-", 16), strings.Repeat("-", 24))

	for i := range keys {
		k := &keys[i]
		path := k.Path()
		if len(path) > maxPathLen {
			path = path[:maxPathLen-3] + "..."
		}
		def := "-"
		if k.Default() != nil {
			def = fmt.Sprintf("%v", k.Default())
		}
		if len(def) > 16 {
			def = def[:13] + "..."
		}
		_, _ = fmt.Fprintf(w, "%-*s  %-16s  %s\n", maxPathLen, path, def, k.Comment())
	}

	_, _ = fmt.Fprintf(w, "\n%d key(s)\n", len(keys))
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

// FormatResult formats an overlay result as JSON.
func (f *JSONFormatter) FormatResult(w io.Writer, res envoverlay.Result) error {
	type jsonApplied struct {
		Variable   string `json:"variable"`
		Path       string `json:"path"`
		Value      any    `json:"value"`
		Registered bool   `json:"registered"`
		Secret     bool   `json:"secret,omitempty"`
	}
	type jsonFailure struct {
		Variable string `json:"variable"`
		Error    string `json:"error"`
	}

	res = sortResult(res)

	output := struct {
		Applied  []jsonApplied `json:"applied"`
		Failures []jsonFailure `json:"failures,omitempty"`
	}{
		Applied: make([]jsonApplied, len(res.Applied)),
	}

	for i := range res.Applied {
		a := &res.Applied[i]
		ja := jsonApplied{
			Variable:   a.Variable,
			Path:       strings.Join(a.Path, "."),
			Value:      a.Value,
			Registered: a.Key != nil,
			Secret:     a.Secret,
		}
		if a.Secret {
			ja.Value = envoverlay.MaskedValue
		}
		output.Applied[i] = ja
	}
	for _, fl := range res.Failures {
		output.Failures = append(output.Failures, jsonFailure{Variable: fl.Variable, Error: fl.Err.Error()})
	}

	return writeJSON(w, output)
}

// FormatKeys formats the schema as JSON.
func (f *JSONFormatter) FormatKeys(w io.Writer, keys []schema.Key) error {
	type jsonKey struct {
		Path    string `json:"path"`
		Default any    `json:"default,omitempty"`
		Comment string `json:"comment,omitempty"`
	}

	output := struct {
		Keys []jsonKey `json:"keys"`
	}{
		Keys: make([]jsonKey, len(keys)),
	}
	for i := range keys {
		output.Keys[i] = jsonKey{Path: keys[i].Path(), Default: keys[i].Default(), Comment: keys[i].Comment()}
	}

	return writeJSON(w, output)
}

// displayValue renders a coerced value for output, masking secrets.
func displayValue(a *envoverlay.Applied) string {
	if a.Secret {
		return envoverlay.MaskedValue
	}
	return fmt.Sprintf("%v", a.Value)
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
