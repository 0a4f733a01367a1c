package konvert

import (
	"errors"
	"fmt"
	"time"
)

const (
	archiveVersion = 1

	maxDepth = 1000
)

var (
	errUnregisteredRecord = errors.New("record type is not registered")
	errNotSecure          = errors.New("archive was not written in secure mode")
)

type (
	envelope struct {
		Version uint8 `msgpack:"v" cbor:"v"`
		Secure  bool  `msgpack:"s" cbor:"s"`
		Root    node  `msgpack:"r" cbor:"r"`
	}

	node struct {
		Kind   Kind            `msgpack:"k" cbor:"k"`
		Bool   bool            `msgpack:"b,omitempty" cbor:"b,omitempty"`
		Int    int64           `msgpack:"i,omitempty" cbor:"i,omitempty"`
		Float  float64         `msgpack:"f,omitempty" cbor:"f,omitempty"`
		String string          `msgpack:"s,omitempty" cbor:"s,omitempty"`
		Bytes  []byte          `msgpack:"y,omitempty" cbor:"y,omitempty"`
		Sec    int64           `msgpack:"t,omitempty" cbor:"t,omitempty"`
		Nsec   int64           `msgpack:"n,omitempty" cbor:"n,omitempty"`
		Type   string          `msgpack:"T,omitempty" cbor:"T,omitempty"`
		List   []node          `msgpack:"l,omitempty" cbor:"l,omitempty"`
		Map    map[string]node `msgpack:"m,omitempty" cbor:"m,omitempty"`
	}
)

func toNode(v Value, secure bool, depth int) (node, error) {
	if depth > maxDepth {
		return node{}, errTooDeep
	}
	if isNilPointer(v) {
		return node{Kind: KindNull}, nil
	}

	switch v := v.(type) {
	case nil, Null:
		return node{Kind: KindNull}, nil
	case Bool:
		return node{Kind: KindBool, Bool: bool(v)}, nil
	case Int:
		return node{Kind: KindInt, Int: int64(v)}, nil
	case Float:
		return node{Kind: KindFloat, Float: float64(v)}, nil
	case String:
		return node{Kind: KindString, String: string(v)}, nil
	case Bytes:
		return node{Kind: KindBytes, Bytes: []byte(v)}, nil
	case Time:
		t := time.Time(v)
		return node{Kind: KindTime, Sec: t.Unix(), Nsec: int64(t.Nanosecond())}, nil
	case List:
		items := make([]node, len(v))
		for i, item := range v {
			n, err := toNode(item, secure, depth+1)
			if err != nil {
				return node{}, err
			}
			items[i] = n
		}
		return node{Kind: KindList, List: items}, nil
	case Map:
		fields, err := toNodeMap(v, secure, depth)
		if err != nil {
			return node{}, err
		}
		return node{Kind: KindMap, Map: fields}, nil
	case Record:
		recordType := v.RecordType()
		if secure && !IsRecordRegistered(recordType) {
			return node{}, fmt.Errorf("%w: %s", errUnregisteredRecord, recordType)
		}
		fields, err := toNodeMap(v.RecordFields(), secure, depth)
		if err != nil {
			return node{}, err
		}
		return node{Kind: KindRecord, Type: recordType, Map: fields}, nil
	}

	return node{}, fmt.Errorf("unsupported value type %T", v)
}

func toNodeMap(m Map, secure bool, depth int) (map[string]node, error) {
	fields := make(map[string]node, len(m))
	for k, item := range m {
		n, err := toNode(item, secure, depth+1)
		if err != nil {
			return nil, err
		}
		fields[k] = n
	}
	return fields, nil
}

func fromNode(n node, secure bool, depth int) (Value, error) {
	if depth > maxDepth {
		return nil, errTooDeep
	}

	switch n.Kind {
	case KindNull:
		return Null{}, nil
	case KindBool:
		return Bool(n.Bool), nil
	case KindInt:
		return Int(n.Int), nil
	case KindFloat:
		return Float(n.Float), nil
	case KindString:
		return String(n.String), nil
	case KindBytes:
		if n.Bytes == nil {
			return Bytes{}, nil
		}
		return Bytes(n.Bytes), nil
	case KindTime:
		return Time(time.Unix(n.Sec, n.Nsec).UTC()), nil
	case KindList:
		list := make(List, len(n.List))
		for i, item := range n.List {
			v, err := fromNode(item, secure, depth+1)
			if err != nil {
				return nil, err
			}
			list[i] = v
		}
		return list, nil
	case KindMap:
		return fromNodeMap(n.Map, secure, depth)
	case KindRecord:
		fields, err := fromNodeMap(n.Map, secure, depth)
		if err != nil {
			return nil, err
		}

		factory, ok := lookupRecord(n.Type)
		if !ok {
			if secure {
				return nil, fmt.Errorf("%w: %s", errUnregisteredRecord, n.Type)
			}
			// Unknown records degrade to their fields.
			return fields, nil
		}

		record := factory()
		if err := record.SetRecordFields(fields); err != nil {
			return nil, fmt.Errorf("record %s: %w", n.Type, err)
		}
		return record, nil
	}

	return nil, fmt.Errorf("unknown value kind %d", uint8(n.Kind))
}

func fromNodeMap(fields map[string]node, secure bool, depth int) (Map, error) {
	m := make(Map, len(fields))
	for k, item := range fields {
		v, err := fromNode(item, secure, depth+1)
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	return m, nil
}

func checkEnvelope(env envelope, secure bool) error {
	if env.Version != archiveVersion {
		return fmt.Errorf("incompatible archive version %d", env.Version)
	}
	if secure && !env.Secure {
		return errNotSecure
	}
	return nil
}
