package envoverlay

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	intPattern   = regexp.MustCompile(`^-?\d+$`)
	longPattern  = regexp.MustCompile(`^-?\d+L$`)
	floatPattern = regexp.MustCompile(`^-?\d+\.\d+$`)
)

// Coerce converts a raw environment value into a typed one based on its
// shape alone; registered keys carry no type metadata to consult. In order
// it recognizes booleans (true/false/yes/no/y/n/1/0, case-insensitive),
// comma-separated string lists, 32-bit integers (promoted to 64 bits on
// overflow), 64-bit integers written with a trailing L, and simple decimal
// numbers. Anything else, including numbers too large for 64 bits, comes
// back as the original string untouched. Coerce never fails.
func Coerce(raw string) any {
	trimmed := strings.TrimSpace(raw)

	if b, ok := parseBool(trimmed); ok {
		return b
	}

	if strings.Contains(trimmed, ",") {
		return splitList(trimmed)
	}

	switch {
	case intPattern.MatchString(trimmed):
		if n, err := strconv.ParseInt(trimmed, 10, 32); err == nil {
			return int(n)
		}
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return n
		}
	case longPattern.MatchString(trimmed):
		if n, err := strconv.ParseInt(strings.TrimSuffix(trimmed, "L"), 10, 64); err == nil {
			return n
		}
	case floatPattern.MatchString(trimmed):
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f
		}
	}

	return raw
}

// parseBool matches the recognized boolean spellings. It runs before the
// numeric patterns, so "1" and "0" are booleans, not integers.
func parseBool(trimmed string) (value, ok bool) {
	switch strings.ToLower(trimmed) {
	case "true", "yes", "y", "1":
		return true, true
	case "false", "no", "n", "0":
		return false, true
	}
	return false, false
}

// splitList splits a comma-separated value into trimmed items. Trailing
// empty fields are dropped, interior ones survive: "a,,b" keeps its empty
// item while "a,b," does not gain one.
func splitList(trimmed string) []string {
	parts := dropTrailingEmpty(strings.Split(trimmed, ","))
	items := make([]string, len(parts))
	for i, p := range parts {
		items[i] = strings.TrimSpace(p)
	}
	return items
}

func dropTrailingEmpty(parts []string) []string {
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
