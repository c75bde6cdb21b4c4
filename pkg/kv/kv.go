// Package kv provides Store, a flat string key-value storage contract.
package kv

//spellchecker:words leveldb

// Store is a flat key-value storage engine holding string keys and values.
//
// A Store may be shared between concurrent callers; implementations are
// responsible for their own internal consistency.
// A Store does not provide transactions across keys.
type Store interface {
	// Set stores value under key, overwriting any previous value.
	Set(key, value string) error

	// Get retrieves the value stored under key.
	// The second return value indicates if the key was found.
	Get(key string) (string, bool, error)

	// Has is like Get, but returns only the second value.
	Has(key string) (bool, error)

	// Delete removes key from this store.
	// removed indicates if the key existed.
	Delete(key string) (removed bool, err error)

	// Scan calls f for every key starting with prefix, in lexicographic order.
	//
	// When any f returns a non-nil error, that error is returned immediately
	// to the caller and the scan stops.
	Scan(prefix string, f func(key string) error) error

	// DeleteKeys removes every key in keys from this store.
	// It returns the number of keys that existed and were removed.
	DeleteKeys(keys []string) (removed int, err error)

	// Count counts the number of keys in this store.
	Count() (uint64, error)

	// Close closes this store, releasing any underlying resources.
	// Calling close multiple times results in err = nil.
	Close() error
}
