package konvert

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

var errFragment = errors.New("top-level value must be an array or an object")

// numberLiteral matches the number literal types of the JSON codecs.
type numberLiteral interface {
	String() string
	Float64() (float64, error)
	Int64() (int64, error)
}

// validateJSON checks that v belongs to the JSON value union.
func validateJSON(v any, fragmentsAllowed bool) error {
	rv := reflect.ValueOf(v)
	if !fragmentsAllowed && !isJSONContainer(rv) {
		return errFragment
	}
	return validateJSONValue(rv, 0)
}

func isJSONContainer(rv reflect.Value) bool {
	for rv.IsValid() && (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return false
	}

	switch rv.Kind() {
	case reflect.Map:
		return true
	case reflect.Slice, reflect.Array:
		return rv.Type().Elem().Kind() != reflect.Uint8
	}
	return false
}

func validateJSONValue(rv reflect.Value, depth int) error {
	if depth > maxDepth {
		return errTooDeep
	}
	if !rv.IsValid() {
		return nil
	}

	if rv.CanInterface() {
		if n, ok := rv.Interface().(numberLiteral); ok && rv.Kind() == reflect.String {
			if _, err := n.Float64(); err != nil {
				return fmt.Errorf("invalid number literal %q", n.String())
			}
			return nil
		}
	}

	switch rv.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("unsupported number %v", f)
		}
		return nil
	case reflect.Interface, reflect.Ptr:
		if rv.IsNil() {
			return nil
		}
		return validateJSONValue(rv.Elem(), depth+1)
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return fmt.Errorf("unsupported type %s", rv.Type())
		}
		for i := 0; i < rv.Len(); i++ {
			if err := validateJSONValue(rv.Index(i), depth+1); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("unsupported map key type %s", rv.Type().Key())
		}
		iter := rv.MapRange()
		for iter.Next() {
			if err := validateJSONValue(iter.Value(), depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	return fmt.Errorf("unsupported type %s", rv.Type())
}

func checkJSONFragment(v any, fragmentsAllowed bool) error {
	if fragmentsAllowed {
		return nil
	}
	switch v.(type) {
	case map[string]any, []any:
		return nil
	}
	return errFragment
}
