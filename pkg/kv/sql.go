//spellchecker:words kv
package kv

//spellchecker:words database errors sync github huandu sqlbuilder
import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/huandu/go-sqlbuilder"
)

// SQL implements Store inside a single two-column table of an sql database.
//
// Callers are responsible for registering the driver used by DB, see cmd/crosswalk.
// Writes are serialized through a mutex so that the upsert in [SQL.Set] stays
// portable between sqlite and mysql.
type SQL struct {
	DB    *sql.DB
	Table string

	// MaxQueryVar is the maximum number of query variables per statement.
	MaxQueryVar int

	dbLock sync.Mutex
}

var (
	_ Store = (*SQL)(nil)
)

const (
	nameColumn  = "name"
	valueColumn = "value"

	defaultTable = "crosswalk"

	// see https://www.sqlite.org/limits.html
	defaultMaxQueryVar = 32766
)

// NewSQL creates a store inside the given database, creating the backing
// table if it does not exist.
// When table is empty, a default table name is used.
func NewSQL(db *sql.DB, table string) (*SQL, error) {
	if table == "" {
		table = defaultTable
	}

	store := &SQL{
		DB:          db,
		Table:       table,
		MaxQueryVar: defaultMaxQueryVar,
	}

	create := sqlbuilder.CreateTable(table).IfNotExists()
	create.Define(nameColumn, "VARCHAR(512)", "NOT NULL", "PRIMARY KEY")
	create.Define(valueColumn, "TEXT", "NOT NULL")

	if err := store.exec(create.Build()); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return store, nil
}

// exec executes an sql query holding the write lock.
func (ds *SQL) exec(query string, args []interface{}) (err error) {
	ds.dbLock.Lock()
	defer ds.dbLock.Unlock()

	_, err = ds.DB.Exec(query, args...)
	return
}

func (ds *SQL) Set(key, value string) error {
	remove := sqlbuilder.NewDeleteBuilder()
	remove.DeleteFrom(ds.Table).Where(remove.Equal(nameColumn, key))

	insert := sqlbuilder.InsertInto(ds.Table)
	insert.Cols(nameColumn, valueColumn)
	insert.Values(key, value)

	ds.dbLock.Lock()
	defer ds.dbLock.Unlock()

	removeQuery, removeArgs := remove.Build()
	if _, err := ds.DB.Exec(removeQuery, removeArgs...); err != nil {
		return fmt.Errorf("failed to clear previous value: %w", err)
	}

	insertQuery, insertArgs := insert.Build()
	if _, err := ds.DB.Exec(insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("failed to set value for key: %w", err)
	}
	return nil
}

// Get returns the value stored under the given key, if it exists.
func (ds *SQL) Get(key string) (string, bool, error) {
	sb := sqlbuilder.Select(valueColumn).From(ds.Table)
	sb.Where(sb.Equal(nameColumn, key))

	query, args := sb.Build()

	var value string
	err := ds.DB.QueryRow(query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key from database: %w", err)
	}
	return value, true, nil
}

func (ds *SQL) Has(key string) (bool, error) {
	_, ok, err := ds.Get(key)
	return ok, err
}

// Delete removes the given key from this store.
func (ds *SQL) Delete(key string) (bool, error) {
	remove := sqlbuilder.NewDeleteBuilder()
	remove.DeleteFrom(ds.Table).Where(remove.Equal(nameColumn, key))

	ds.dbLock.Lock()
	defer ds.dbLock.Unlock()

	query, args := remove.Build()
	result, err := ds.DB.Exec(query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete key from database: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to count deleted rows: %w", err)
	}
	return count > 0, nil
}

// Scan calls f for every key starting with prefix, in key order.
// The prefix is matched via a lexicographic key range, so no escaping of
// pattern characters is needed.
func (ds *SQL) Scan(prefix string, f func(key string) error) error {
	sb := sqlbuilder.Select(nameColumn).From(ds.Table)
	if prefix != "" {
		sb.Where(sb.GreaterEqualThan(nameColumn, prefix))
		if upper, ok := prefixUpperBound(prefix); ok {
			sb.Where(sb.LessThan(nameColumn, upper))
		}
	}
	sb.OrderBy(nameColumn).Asc()

	query, args := sb.Build()
	rows, err := ds.DB.Query(query, args...)
	if err != nil {
		return fmt.Errorf("failed to query keys: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return fmt.Errorf("failed to scan key: %w", err)
		}
		if err := f(key); err != nil {
			return fmt.Errorf("function returned error: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate database: %w", err)
	}
	return nil
}

// DeleteKeys removes the given keys from this store.
// When this would exceed limits on maximum number of query variables,
// multiple deletes are executed.
func (ds *SQL) DeleteKeys(keys []string) (removed int, err error) {
	chunkSize := ds.MaxQueryVar
	if chunkSize <= 0 {
		chunkSize = defaultMaxQueryVar
	}

	for i := 0; i < len(keys); i += chunkSize {
		chunkEnd := i + chunkSize
		if chunkEnd > len(keys) {
			chunkEnd = len(keys)
		}

		args := make([]interface{}, 0, chunkEnd-i)
		for _, key := range keys[i:chunkEnd] {
			args = append(args, key)
		}

		remove := sqlbuilder.NewDeleteBuilder()
		remove.DeleteFrom(ds.Table).Where(remove.In(nameColumn, args...))

		ds.dbLock.Lock()
		query, queryArgs := remove.Build()
		result, err := ds.DB.Exec(query, queryArgs...)
		ds.dbLock.Unlock()
		if err != nil {
			return removed, fmt.Errorf("failed to delete keys from database: %w", err)
		}

		count, err := result.RowsAffected()
		if err != nil {
			return removed, fmt.Errorf("failed to count deleted rows: %w", err)
		}
		removed += int(count)
	}
	return removed, nil
}

// Count returns the number of keys in this store.
func (ds *SQL) Count() (uint64, error) {
	sb := sqlbuilder.Select("COUNT(*)").From(ds.Table)

	query, args := sb.Build()

	var count uint64
	if err := ds.DB.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count keys: %w", err)
	}
	return count, nil
}

func (ds *SQL) Close() error {
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

// prefixUpperBound returns the smallest string greater than every string
// starting with prefix.
// The second return value is false when no such string exists.
func prefixUpperBound(prefix string) (string, bool) {
	bytes := []byte(prefix)
	for i := len(bytes) - 1; i >= 0; i-- {
		if bytes[i] < 0xff {
			bytes[i]++
			return string(bytes[:i+1]), true
		}
	}
	return "", false
}
