// Package crosswalk maintains scoped one-to-one associations between
// primary and external identifiers inside a key-value backend.
//
// The package root only wires backends to stores; the actual semantics
// live in [assoc] and the backends in [kv].
package crosswalk

//spellchecker:words database github crosswalk assoc
import (
	"database/sql"

	"github.com/FAU-CDI/crosswalk/pkg/assoc"
	"github.com/FAU-CDI/crosswalk/pkg/kv"
)

// Open opens a store backed by a leveldb database at path.
// If no database exists at path, a new one is created.
func Open(path string) (*assoc.Store, error) {
	disk, err := kv.OpenDisk(path)
	if err != nil {
		return nil, err
	}
	return assoc.NewStore(disk), nil
}

// OpenMemory creates a store backed by memory.
// All associations are lost once the store is closed.
func OpenMemory() *assoc.Store {
	return assoc.NewStore(&kv.Memory{})
}

// OpenSQL opens a store inside a table of the given sql database, creating
// the table if it does not exist. When table is empty, a default name is
// used.
//
// The driver behind db must have been registered by the caller, see
// cmd/crosswalk for an example registering sqlite and mysql.
func OpenSQL(db *sql.DB, table string) (*assoc.Store, error) {
	store, err := kv.NewSQL(db, table)
	if err != nil {
		return nil, err
	}
	return assoc.NewStore(store), nil
}
