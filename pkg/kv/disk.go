//spellchecker:words kv
package kv

//spellchecker:words errors github syndtr goleveldb leveldb util
import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Disk implements Store on top of a leveldb database on disk.
type Disk struct {
	DB *leveldb.DB
}

var (
	_ Store = (*Disk)(nil)
)

// OpenDisk opens a disk-backed store at path.
// If no database exists at path, a new one is created.
func OpenDisk(path string) (*Disk, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database file: %w", err)
	}
	return &Disk{DB: db}, nil
}

func (ds *Disk) Set(key, value string) error {
	if err := ds.DB.Put([]byte(key), []byte(value), nil); err != nil {
		return fmt.Errorf("failed to set value for key: %w", err)
	}
	return nil
}

// Get returns the value stored under the given key, if it exists.
func (ds *Disk) Get(key string) (string, bool, error) {
	value, err := ds.DB.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key from database: %w", err)
	}
	return string(value), true, nil
}

func (ds *Disk) Has(key string) (bool, error) {
	ok, err := ds.DB.Has([]byte(key), nil)
	if err != nil {
		return false, fmt.Errorf("failed to check database for key: %w", err)
	}
	return ok, nil
}

// Delete removes the given key from this store.
// leveldb deletes do not report if the key existed, so existence is checked first.
func (ds *Disk) Delete(key string) (bool, error) {
	had, err := ds.Has(key)
	if err != nil {
		return false, err
	}

	if err := ds.DB.Delete([]byte(key), nil); err != nil {
		return false, fmt.Errorf("failed to delete key from disk: %w", err)
	}
	return had, nil
}

// Scan calls f for every key starting with prefix, in key order.
func (ds *Disk) Scan(prefix string, f func(key string) error) error {
	it := ds.DB.NewIterator(util.BytesPrefix([]byte(prefix)), nil)
	defer it.Release()

	for it.Next() {
		if err := f(string(it.Key())); err != nil {
			return fmt.Errorf("function returned error: %w", err)
		}
	}
	if err := it.Error(); err != nil {
		return fmt.Errorf("failed to iterate database: %w", err)
	}
	return nil
}

// DeleteKeys removes the given keys using a single write batch.
func (ds *Disk) DeleteKeys(keys []string) (removed int, err error) {
	batch := new(leveldb.Batch)
	for _, key := range keys {
		had, err := ds.Has(key)
		if err != nil {
			return 0, err
		}
		if had {
			removed++
		}
		batch.Delete([]byte(key))
	}

	if err := ds.DB.Write(batch, nil); err != nil {
		return 0, fmt.Errorf("failed to write delete batch: %w", err)
	}
	return removed, nil
}

// Count returns the number of keys in this store.
func (ds *Disk) Count() (count uint64, err error) {
	it := ds.DB.NewIterator(nil, nil)
	defer it.Release()

	for it.Next() {
		count++
	}
	if err := it.Error(); err != nil {
		return 0, fmt.Errorf("failed to iterate database: %w", err)
	}
	return count, nil
}

func (ds *Disk) Close() error {
	var err error

	if ds.DB != nil {
		err = ds.DB.Close()
	}
	ds.DB = nil
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
