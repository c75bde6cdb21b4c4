//spellchecker:words kv
package kv

//spellchecker:words runtime sync golang exp slices
import (
	"runtime"
	"sync"

	"golang.org/x/exp/slices"
)

// Memory implements Store using an in-memory map.
//
// Unlike the on-disk stores, Memory guards its map with a lock so that a
// single instance may serve concurrent callers.
// The zero value is ready to use.
type Memory struct {
	l  sync.RWMutex
	mp map[string]string
}

var (
	_ Store = (*Memory)(nil)
)

func (ims *Memory) Set(key, value string) error {
	ims.l.Lock()
	defer ims.l.Unlock()

	if ims.mp == nil {
		ims.mp = make(map[string]string)
	}
	ims.mp[key] = value
	return nil
}

// Get returns the value stored under the given key, if it exists.
func (ims *Memory) Get(key string) (string, bool, error) {
	ims.l.RLock()
	defer ims.l.RUnlock()

	value, ok := ims.mp[key]
	return value, ok, nil
}

func (ims *Memory) Has(key string) (bool, error) {
	ims.l.RLock()
	defer ims.l.RUnlock()

	_, ok := ims.mp[key]
	return ok, nil
}

// Delete removes the given key from this store.
func (ims *Memory) Delete(key string) (bool, error) {
	ims.l.Lock()
	defer ims.l.Unlock()

	_, ok := ims.mp[key]
	delete(ims.mp, key)
	return ok, nil
}

// Scan calls f for every key starting with prefix, in key order.
// Keys are snapshotted before the first call to f; f may modify this store.
func (ims *Memory) Scan(prefix string, f func(key string) error) error {
	ims.l.RLock()
	keys := make([]string, 0, len(ims.mp))
	for key := range ims.mp {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			keys = append(keys, key)
		}
	}
	ims.l.RUnlock()

	slices.Sort(keys)

	for _, key := range keys {
		if err := f(key); err != nil {
			return err
		}
	}
	return nil
}

// DeleteKeys removes the given keys from this store.
func (ims *Memory) DeleteKeys(keys []string) (removed int, err error) {
	ims.l.Lock()
	defer ims.l.Unlock()

	for _, key := range keys {
		if _, ok := ims.mp[key]; ok {
			removed++
		}
		delete(ims.mp, key)
	}
	return removed, nil
}

func (ims *Memory) Count() (uint64, error) {
	ims.l.RLock()
	defer ims.l.RUnlock()

	return uint64(len(ims.mp)), nil
}

// Close closes this store, deleting all values.
func (ims *Memory) Close() error {
	ims.l.Lock()
	defer ims.l.Unlock()

	ims.mp = nil
	runtime.GC() // re-claim all the memory if needed
	return nil
}
