package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/librelogin/envoverlay"
)

var (
	// ErrNotStruct is returned when a key holder is not a struct or a
	// pointer to one.
	ErrNotStruct = errors.New("key holder is not a struct")

	// ErrDuplicateKey is returned by Flatten when two sections declare the
	// same path.
	ErrDuplicateKey = errors.New("duplicate key path")
)

var keyType = reflect.TypeOf(Key{})

// Section pairs a name with a struct value whose exported Key fields
// declare the configuration entries of one subsystem.
type Section struct {
	Name   string
	Holder any
}

// Keys extracts the keys declared by the section holder. It implements
// envoverlay.KeySource.
func (s Section) Keys() ([]envoverlay.Key, error) {
	keys, err := ExtractKeys(s.Holder)
	if err != nil {
		return nil, fmt.Errorf("section %s: %w", s.Name, err)
	}
	return Known(keys...), nil
}

// visit identifies a pointed-to struct seen during a walk. The type is part
// of the key: a struct and its first field share an address.
type visit struct {
	addr uintptr
	typ  reflect.Type
}

// ExtractKeys collects every Key reachable from the exported fields of
// holder, which must be a struct or a pointer to one. Nested and embedded
// structs are walked in declaration order; []Key fields are flattened.
// Unexported fields and nil pointers are skipped, and each pointed-to
// struct is walked at most once, so holders with cyclic references are
// safe.
func ExtractKeys(holder any) ([]Key, error) {
	v := reflect.ValueOf(holder)
	seen := make(map[visit]bool)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, fmt.Errorf("extract keys: nil holder: %w", ErrNotStruct)
		}
		seen[visit{v.Pointer(), v.Type()}] = true
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("extract keys: %T: %w", holder, ErrNotStruct)
	}

	var keys []Key
	collectKeys(v, seen, &keys)
	return keys, nil
}

func collectKeys(v reflect.Value, seen map[visit]bool, keys *[]Key) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if !t.Field(i).IsExported() {
			continue
		}
		fv := v.Field(i)
		switch {
		case fv.Type() == keyType:
			*keys = append(*keys, fv.Interface().(Key))
		case fv.Kind() == reflect.Slice && fv.Type().Elem() == keyType:
			for j := 0; j < fv.Len(); j++ {
				*keys = append(*keys, fv.Index(j).Interface().(Key))
			}
		case fv.Kind() == reflect.Struct:
			collectKeys(fv, seen, keys)
		case fv.Kind() == reflect.Pointer && fv.Elem().Kind() == reflect.Struct:
			vis := visit{fv.Pointer(), fv.Type()}
			if seen[vis] {
				continue
			}
			seen[vis] = true
			collectKeys(fv.Elem(), seen, keys)
		}
	}
}

// Flatten aggregates the keys declared by every section into the known set
// for an overlay pass. Paths must be unique; comparison ignores case, the
// same way the resolver matches them.
func Flatten(sections ...Section) ([]envoverlay.Key, error) {
	seen := make(map[string]string)
	var all []envoverlay.Key
	for _, s := range sections {
		keys, err := s.Keys()
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			folded := strings.ToLower(k.Path())
			if prev, ok := seen[folded]; ok {
				return nil, fmt.Errorf("%w: %q declared by sections %s and %s",
					ErrDuplicateKey, k.Path(), prev, s.Name)
			}
			seen[folded] = s.Name
			all = append(all, k)
		}
	}
	return all, nil
}
