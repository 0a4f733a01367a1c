package store

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/ezraisw/konvert"
)

const TransactionRecordType = "store.Transaction"

type TransactionState uint8

const (
	StatePurchasing TransactionState = iota
	StatePurchased
	StateFailed
	StateRestored
	StateDeferred
)

var stateNames = [...]string{
	StatePurchasing: "purchasing",
	StatePurchased:  "purchased",
	StateFailed:     "failed",
	StateRestored:   "restored",
	StateDeferred:   "deferred",
}

func (s TransactionState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Transaction is a persisted purchase.
type Transaction struct {
	State                         TransactionState
	ProductIdentifier             string
	UserIdentifier                string
	TransactionIdentifier         string
	OriginalTransactionIdentifier string
	TransactionTimestamp          time.Time
	OriginalTransactionTimestamp  time.Time
	TransactionReceipt            []byte
}

func init() {
	konvert.RegisterRecord(TransactionRecordType, func() konvert.Record {
		return new(Transaction)
	})
}

func (t *Transaction) Kind() konvert.Kind {
	return konvert.KindRecord
}

func (t *Transaction) RecordType() string {
	return TransactionRecordType
}

func (t *Transaction) RecordFields() konvert.Map {
	return konvert.Map{
		"state":                         konvert.Int(t.State),
		"productIdentifier":             konvert.String(t.ProductIdentifier),
		"userIdentifier":                konvert.String(t.UserIdentifier),
		"transactionIdentifier":         konvert.String(t.TransactionIdentifier),
		"originalTransactionIdentifier": konvert.String(t.OriginalTransactionIdentifier),
		"transactionTimestamp":          konvert.Time(t.TransactionTimestamp),
		"originalTransactionTimestamp":  konvert.Time(t.OriginalTransactionTimestamp),
		"transactionReceipt":            konvert.Bytes(t.TransactionReceipt),
	}
}

func (t *Transaction) SetRecordFields(fields konvert.Map) error {
	var state konvert.Int
	f := fieldReader{fields: fields}

	f.read("state", &state)
	f.read("productIdentifier", (*konvert.String)(&t.ProductIdentifier))
	f.read("userIdentifier", (*konvert.String)(&t.UserIdentifier))
	f.read("transactionIdentifier", (*konvert.String)(&t.TransactionIdentifier))
	f.read("originalTransactionIdentifier", (*konvert.String)(&t.OriginalTransactionIdentifier))
	f.read("transactionTimestamp", (*konvert.Time)(&t.TransactionTimestamp))
	f.read("originalTransactionTimestamp", (*konvert.Time)(&t.OriginalTransactionTimestamp))
	f.read("transactionReceipt", (*konvert.Bytes)(&t.TransactionReceipt))

	if f.err != nil {
		return f.err
	}
	if state < 0 || int(state) >= len(stateNames) {
		return fmt.Errorf("invalid transaction state %d", state)
	}
	t.State = TransactionState(state)

	if len(t.TransactionReceipt) == 0 {
		t.TransactionReceipt = nil
	}
	return nil
}

// JSONObject returns the transaction as a JSON object.
// Times are RFC 3339 strings and the receipt is base64.
func (t *Transaction) JSONObject() map[string]any {
	return map[string]any{
		"state":                         t.State.String(),
		"productIdentifier":             t.ProductIdentifier,
		"userIdentifier":                t.UserIdentifier,
		"transactionIdentifier":         t.TransactionIdentifier,
		"originalTransactionIdentifier": t.OriginalTransactionIdentifier,
		"transactionTimestamp":          formatTime(t.TransactionTimestamp),
		"originalTransactionTimestamp":  formatTime(t.OriginalTransactionTimestamp),
		"transactionReceipt":            base64.StdEncoding.EncodeToString(t.TransactionReceipt),
	}
}

func formatTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// fieldReader keeps the first type mismatch. Missing fields are left untouched.
type fieldReader struct {
	fields konvert.Map
	err    error
}

func (f *fieldReader) read(name string, dst any) {
	if f.err != nil {
		return
	}

	v, ok := f.fields[name]
	if !ok {
		return
	}

	switch dst := dst.(type) {
	case *konvert.Int:
		f.err = assign(name, v, dst)
	case *konvert.String:
		f.err = assign(name, v, dst)
	case *konvert.Time:
		f.err = assign(name, v, dst)
	case *konvert.Bytes:
		f.err = assign(name, v, dst)
	}
}

func assign[T konvert.Value](name string, v konvert.Value, dst *T) error {
	if _, ok := v.(konvert.Null); ok {
		return nil
	}
	typed, ok := v.(T)
	if !ok {
		return fmt.Errorf("field %s: unexpected %s value", name, v.Kind())
	}
	*dst = typed
	return nil
}
