package konvert_test

import (
	"math"
	"testing"
	"time"

	"github.com/ezraisw/konvert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromGo(t *testing.T) {
	str := "ptr"
	at := time.Date(2021, 5, 4, 3, 2, 1, 0, time.UTC)

	cases := []struct {
		name     string
		input    any
		expected konvert.Value
	}{
		{name: "nil", input: nil, expected: konvert.Null{}},
		{name: "bool", input: true, expected: konvert.Bool(true)},
		{name: "int", input: 42, expected: konvert.Int(42)},
		{name: "int8", input: int8(-3), expected: konvert.Int(-3)},
		{name: "uint32", input: uint32(7), expected: konvert.Int(7)},
		{name: "float32", input: float32(0.5), expected: konvert.Float(0.5)},
		{name: "string", input: "Durian", expected: konvert.String("Durian")},
		{name: "pointer", input: &str, expected: konvert.String("ptr")},
		{name: "nil pointer", input: (*string)(nil), expected: konvert.Null{}},
		{name: "bytes", input: []byte{1, 2}, expected: konvert.Bytes{1, 2}},
		{name: "nil bytes", input: []byte(nil), expected: konvert.Null{}},
		{name: "time", input: at, expected: konvert.Time(at)},
		{name: "slice", input: []any{1, "a", nil}, expected: konvert.List{konvert.Int(1), konvert.String("a"), konvert.Null{}}},
		{name: "array", input: [2]int{1, 2}, expected: konvert.List{konvert.Int(1), konvert.Int(2)}},
		{name: "map", input: map[string]int{"a": 1}, expected: konvert.Map{"a": konvert.Int(1)}},
		{name: "value", input: konvert.String("as is"), expected: konvert.String("as is")},
		{name: "nested value", input: []any{konvert.Bool(false)}, expected: konvert.List{konvert.Bool(false)}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := konvert.FromGo(c.input)
			require.NoError(t, err)
			assert.Equal(t, c.expected, v)
		})
	}
}

func TestFromGoUnsupported(t *testing.T) {
	cases := map[string]any{
		"struct":   struct{ A int }{A: 1},
		"int key":  map[int]string{1: "one"},
		"func":     func() {},
		"channel":  make(chan int),
		"overflow": uint64(math.MaxUint64),
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := konvert.FromGo(input)
			assert.Error(t, err)
		})
	}
}

func TestToGo(t *testing.T) {
	at := time.Date(2021, 5, 4, 3, 2, 1, 0, time.UTC)

	v := konvert.Map{
		"null":  konvert.Null{},
		"bool":  konvert.Bool(true),
		"int":   konvert.Int(-1),
		"float": konvert.Float(1.5),
		"str":   konvert.String("x"),
		"bytes": konvert.Bytes{9},
		"time":  konvert.Time(at),
		"list":  konvert.List{konvert.Int(1)},
	}

	assert.Equal(t, map[string]any{
		"null":  nil,
		"bool":  true,
		"int":   int64(-1),
		"float": 1.5,
		"str":   "x",
		"bytes": []byte{9},
		"time":  at,
		"list":  []any{int64(1)},
	}, konvert.ToGo(v))

	p := &point{X: 1, Y: 2}
	assert.Same(t, p, konvert.ToGo(p))
	assert.Nil(t, konvert.ToGo(nil))
}

func TestEqual(t *testing.T) {
	at := time.Date(2021, 5, 4, 3, 2, 1, 0, time.UTC)

	assert.True(t, konvert.Equal(nil, nil))
	assert.True(t, konvert.Equal(nil, konvert.Null{}))
	assert.True(t, konvert.Equal(konvert.Null{}, (*point)(nil)))
	assert.False(t, konvert.Equal(nil, konvert.Int(0)))
	assert.True(t, konvert.Equal(konvert.Map{"a": nil}, konvert.Map{"a": konvert.Null{}}))
	assert.True(t, konvert.Equal(konvert.Float(math.NaN()), konvert.Float(math.NaN())))
	assert.False(t, konvert.Equal(konvert.Int(1), konvert.Float(1)))
	assert.True(t, konvert.Equal(konvert.Bytes(nil), konvert.Bytes{}))
	assert.True(t, konvert.Equal(konvert.Time(at), konvert.Time(at.In(time.FixedZone("X", 3600)))))
	assert.False(t, konvert.Equal(konvert.List{konvert.Int(1)}, konvert.List{konvert.Int(2)}))
	assert.False(t, konvert.Equal(konvert.Map{"a": konvert.Int(1)}, konvert.Map{"b": konvert.Int(1)}))
	assert.True(t, konvert.Equal(&point{X: 1, Y: 2}, &point{X: 1, Y: 2}))
	assert.False(t, konvert.Equal(&point{X: 1, Y: 2}, &unregisteredPoint{point{X: 1, Y: 2}}))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "record", konvert.KindRecord.String())
	assert.Equal(t, "kind(200)", konvert.Kind(200).String())
}

func TestRegisterRecordPanics(t *testing.T) {
	assert.Panics(t, func() {
		konvert.RegisterRecord("", func() konvert.Record { return new(point) })
	})
	assert.Panics(t, func() {
		konvert.RegisterRecord("konvert_test.point", func() konvert.Record { return new(point) })
	})
	assert.Panics(t, func() {
		konvert.RegisterRecord("konvert_test.nilFactory", nil)
	})
	assert.False(t, konvert.IsRecordRegistered("konvert_test.nilFactory"))
}
