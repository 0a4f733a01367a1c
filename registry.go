package konvert

import "sync"

var registry = struct {
	mu        sync.RWMutex
	factories map[string]func() Record
}{
	factories: make(map[string]func() Record),
}

// RegisterRecord makes a record type known to archive decoding.
// It panics if the name is empty or already registered.
func RegisterRecord(recordType string, factory func() Record) {
	if recordType == "" {
		panic("konvert: empty record type")
	}
	if factory == nil {
		panic("konvert: nil record factory for " + recordType)
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, ok := registry.factories[recordType]; ok {
		panic("konvert: record type registered twice: " + recordType)
	}
	registry.factories[recordType] = factory
}

// IsRecordRegistered reports whether the record type can be decoded in secure mode.
func IsRecordRegistered(recordType string) bool {
	_, ok := lookupRecord(recordType)
	return ok
}

func lookupRecord(recordType string) (func() Record, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	factory, ok := registry.factories[recordType]
	return factory, ok
}
