package konvert

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"time"
)

// Kind enumerates the value shapes an archive can carry.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindTime
	KindList
	KindMap
	KindRecord
)

var kindNames = map[Kind]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindInt:    "int",
	KindFloat:  "float",
	KindString: "string",
	KindBytes:  "bytes",
	KindTime:   "time",
	KindList:   "list",
	KindMap:    "map",
	KindRecord: "record",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

type (
	// Value is a node of an archivable value graph.
	Value interface {
		Kind() Kind
	}

	// Record is a domain type carried through archives by name.
	// Implementations are registered with RegisterRecord.
	Record interface {
		Value

		RecordType() string

		RecordFields() Map

		SetRecordFields(fields Map) error
	}

	Null   struct{}
	Bool   bool
	Int    int64
	Float  float64
	String string
	Bytes  []byte
	Time   time.Time
	List   []Value
	Map    map[string]Value
)

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Int) Kind() Kind    { return KindInt }
func (Float) Kind() Kind  { return KindFloat }
func (String) Kind() Kind { return KindString }
func (Bytes) Kind() Kind  { return KindBytes }
func (Time) Kind() Kind   { return KindTime }
func (List) Kind() Kind   { return KindList }
func (Map) Kind() Kind    { return KindMap }

var timeType = reflect.TypeOf(time.Time{})

// FromGo converts a native Go value into the archive value model.
func FromGo(v any) (Value, error) {
	return fromGo(reflect.ValueOf(v), 0)
}

func fromGo(rv reflect.Value, depth int) (Value, error) {
	if depth > maxDepth {
		return nil, errTooDeep
	}

	if !rv.IsValid() {
		return Null{}, nil
	}

	if rv.CanInterface() {
		switch v := rv.Interface().(type) {
		case Value:
			if isNilValue(rv) {
				return Null{}, nil
			}
			return v, nil
		case time.Time:
			return Time(v), nil
		case []byte:
			if v == nil {
				return Null{}, nil
			}
			return Bytes(v), nil
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("unsigned integer %d overflows int64", u)
		}
		return Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Interface, reflect.Ptr:
		if rv.IsNil() {
			return Null{}, nil
		}
		return fromGo(rv.Elem(), depth+1)
	case reflect.Slice:
		if rv.IsNil() {
			return Null{}, nil
		}
		fallthrough
	case reflect.Array:
		list := make(List, rv.Len())
		for i := range list {
			item, err := fromGo(rv.Index(i), depth+1)
			if err != nil {
				return nil, err
			}
			list[i] = item
		}
		return list, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("unsupported map key type %s", rv.Type().Key())
		}
		if rv.IsNil() {
			return Null{}, nil
		}
		m := make(Map, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			item, err := fromGo(iter.Value(), depth+1)
			if err != nil {
				return nil, err
			}
			m[iter.Key().String()] = item
		}
		return m, nil
	}

	return nil, fmt.Errorf("unsupported type %s", rv.Type())
}

// isNilPointer reports whether v holds a nil pointer, such as a nil *Record.
func isNilPointer(v Value) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

func isNilValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

// ToGo converts a value back to native Go form.
// Records are returned unchanged.
func ToGo(v Value) any {
	switch v := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(v)
	case Int:
		return int64(v)
	case Float:
		return float64(v)
	case String:
		return string(v)
	case Bytes:
		return []byte(v)
	case Time:
		return time.Time(v)
	case List:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = ToGo(item)
		}
		return out
	case Map:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = ToGo(item)
		}
		return out
	}
	return v
}

// Equal reports whether two value graphs are deeply equal.
// Times compare by instant; nil and empty containers are equal.
// A nil Value, typed nil pointers included, equals Null.
func Equal(a, b Value) bool {
	if a == nil || isNilPointer(a) {
		a = Null{}
	}
	if b == nil || isNilPointer(b) {
		b = Null{}
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch a := a.(type) {
	case Null:
		return true
	case Bool, Int, String:
		return a == b
	case Float:
		bf := b.(Float)
		return a == bf || (math.IsNaN(float64(a)) && math.IsNaN(float64(bf)))
	case Bytes:
		return bytes.Equal(a, b.(Bytes))
	case Time:
		return time.Time(a).Equal(time.Time(b.(Time)))
	case List:
		bl := b.(List)
		if len(a) != len(bl) {
			return false
		}
		for i := range a {
			if !Equal(a[i], bl[i]) {
				return false
			}
		}
		return true
	case Map:
		return equalMaps(a, b.(Map))
	case Record:
		br, ok := b.(Record)
		if !ok {
			return false
		}
		return a.RecordType() == br.RecordType() && equalMaps(a.RecordFields(), br.RecordFields())
	}

	return reflect.DeepEqual(a, b)
}

func equalMaps(a, b Map) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	return true
}
