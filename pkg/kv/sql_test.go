//spellchecker:words kv
package kv_test

//spellchecker:words database path filepath strconv testing github crosswalk glebarez sqlite
import (
	"database/sql"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/FAU-CDI/crosswalk/pkg/kv"
	_ "github.com/glebarez/go-sqlite"
)

// openSqlite opens a fresh sqlite-backed store in a temporary directory.
func openSqlite(t *testing.T) *kv.SQL {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatal(err)
	}

	store, err := kv.NewSQL(db, "")
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestSQL(t *testing.T) {
	t.Parallel()

	storeTest(t, openSqlite(t), 100)
}

func TestSQLChunkedDelete(t *testing.T) {
	t.Parallel()

	store := openSqlite(t)
	defer store.Close()

	// force DeleteKeys to split into multiple statements
	store.MaxQueryVar = 3

	keys := make([]string, 10)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
		if err := store.Set(keys[i], "value"); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := store.DeleteKeys(keys)
	if err != nil {
		t.Fatalf("DeleteKeys() returned error %s", err)
	}
	if removed != len(keys) {
		t.Errorf("DeleteKeys() got = %d, want = %d", removed, len(keys))
	}

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count() returned error %s", err)
	}
	if count != 0 {
		t.Errorf("Count() got = %d, want = 0", count)
	}
}
