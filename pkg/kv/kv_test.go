//spellchecker:words kv
package kv_test

//spellchecker:words errors strconv strings testing github crosswalk
import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/FAU-CDI/crosswalk/pkg/kv"
)

// itos is like strconv.Itoa, but zero-padded so that numeric and
// lexicographic order agree.
func itos(i int) string {
	return fmt.Sprintf("%04d", i)
}

var errStop = errors.New("stop iteration")

// storeTest performs a conformance test for a given store.
func storeTest(t *testing.T, store kv.Store, n int) {
	t.Helper()

	defer func() {
		if err := store.Close(); err != nil {
			t.Fatal(err)
		}
	}()

	// fill two key families, plus one key right behind the "a/" range
	for i := 0; i < n; i++ {
		if err := store.Set("a/"+itos(i), strconv.Itoa(i)); err != nil {
			t.Fatalf("Set() returned error %s", err)
		}
		if err := store.Set("b/"+itos(i), strconv.Itoa(i)); err != nil {
			t.Fatalf("Set() returned error %s", err)
		}
	}
	if err := store.Set("a0", "spill"); err != nil {
		t.Fatalf("Set() returned error %s", err)
	}

	// overwriting must keep a single value per key
	if err := store.Set("a/"+itos(0), "overwritten"); err != nil {
		t.Fatalf("Set() returned error %s", err)
	}

	count, err := store.Count()
	if err != nil {
		t.Errorf("Count() returned error %s", err)
	}
	if want := uint64(2*n + 1); count != want {
		t.Errorf("Count() got = %d, want = %d", count, want)
	}

	// read everything back
	for i := 0; i < n; i++ {
		value, ok, err := store.Get("a/" + itos(i))
		if err != nil {
			t.Errorf("Get() returned error %s", err)
		}
		if !ok {
			t.Errorf("Get(%q) got ok = false, want = true", "a/"+itos(i))
		}

		want := strconv.Itoa(i)
		if i == 0 {
			want = "overwritten"
		}
		if value != want {
			t.Errorf("Get() got = %q, want = %q", value, want)
		}
	}

	// a missing key is absent, not an error
	if _, ok, err := store.Get("missing"); ok || err != nil {
		t.Errorf("Get(missing) got = (%v, %v), want = (false, nil)", ok, err)
	}

	if ok, err := store.Has("b/" + itos(0)); !ok || err != nil {
		t.Errorf("Has() got = (%v, %v), want = (true, nil)", ok, err)
	}
	if ok, err := store.Has("missing"); ok || err != nil {
		t.Errorf("Has(missing) got = (%v, %v), want = (false, nil)", ok, err)
	}

	// scanning a prefix yields exactly that family, in order
	var keys []string
	err = store.Scan("a/", func(key string) error {
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		t.Errorf("Scan() returned error %s", err)
	}
	if len(keys) != n {
		t.Errorf("Scan() got %d keys, want = %d", len(keys), n)
	}
	for i, key := range keys {
		if !strings.HasPrefix(key, "a/") {
			t.Errorf("Scan() yielded key %q without prefix", key)
		}
		if i > 0 && keys[i-1] >= key {
			t.Errorf("Scan() yielded %q before %q", keys[i-1], key)
		}
	}

	// an error from f stops the scan and is passed along
	if err := store.Scan("a/", func(string) error { return errStop }); !errors.Is(err, errStop) {
		t.Errorf("Scan() got error = %v, want = %v", err, errStop)
	}

	// deleting reports if the key existed
	if removed, err := store.Delete("a/" + itos(0)); !removed || err != nil {
		t.Errorf("Delete() got = (%v, %v), want = (true, nil)", removed, err)
	}
	if removed, err := store.Delete("a/" + itos(0)); removed || err != nil {
		t.Errorf("Delete() got = (%v, %v), want = (false, nil)", removed, err)
	}

	// bulk delete the rest of the family, including a key that is already gone
	rest := append([]string{"a/" + itos(0)}, keys[1:]...)
	removed, err := store.DeleteKeys(rest)
	if err != nil {
		t.Errorf("DeleteKeys() returned error %s", err)
	}
	if want := n - 1; removed != want {
		t.Errorf("DeleteKeys() got = %d, want = %d", removed, want)
	}

	// the other family is untouched
	count, err = store.Count()
	if err != nil {
		t.Errorf("Count() returned error %s", err)
	}
	if want := uint64(n + 1); count != want {
		t.Errorf("Count() got = %d, want = %d", count, want)
	}
	if ok, err := store.Has("a0"); !ok || err != nil {
		t.Errorf("Has(a0) got = (%v, %v), want = (true, nil)", ok, err)
	}
}
