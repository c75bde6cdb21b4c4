// Package assoc implements a scoped, bidirectional, strictly one-to-one
// mapping between primary and external identifiers.
//
// Every association (scope, primary, external) is stored as two independent
// entries of a [kv.Store]: a forward entry from the primary id to the
// external id, and a reverse entry from the external id back to the primary
// id. Lookups read a single entry; writes and deletes touch both.
package assoc

//spellchecker:words errors sync github crosswalk
import (
	"errors"
	"fmt"
	"sync"

	"github.com/FAU-CDI/crosswalk/pkg/kv"
)

// Store maintains associations inside a backend key-value store.
//
// A Store holds no state beyond the backend handle and may be shared
// between arbitrarily many concurrent callers.
//
// The two entries of one association are not written transactionally.
// Under concurrent [Store.Save] or [Store.DeletePair] calls on the same
// identifier pair, a reader may briefly observe one entry updated and the
// other stale. Callers that need a consistent pair must serialize their
// own writes.
type Store struct {
	backend kv.Store
}

// NewStore creates a store on top of the given backend.
// The backend is used as-is; closing the store closes the backend.
func NewStore(backend kv.Store) *Store {
	return &Store{backend: backend}
}

// Validation errors returned before any backend call is made.
var (
	ErrNoScope    = errors.New("scope is empty")
	ErrNoPrimary  = errors.New("primary id is empty")
	ErrNoExternal = errors.New("external id is empty")
)

// check validates the arguments common to pair operations.
func check(scope, primary, external string) error {
	if scope == "" {
		return ErrNoScope
	}
	if primary == "" {
		return ErrNoPrimary
	}
	if external == "" {
		return ErrNoExternal
	}
	return nil
}

// Save associates primary and external within scope, writing the forward
// and reverse entries concurrently.
//
// A nil error means both entries were written. On error, an entry that was
// already written is left in place; the caller must treat the association
// as possibly inconsistent and re-issue or reconcile.
func (store *Store) Save(scope, primary, external string) error {
	if err := check(scope, primary, external); err != nil {
		return err
	}

	forward := EncodeKey(scope, Primary, primary)
	reverse := EncodeKey(scope, External, external)

	var errs [2]error

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		errs[0] = store.backend.Set(forward, external)
	}()

	go func() {
		defer wg.Done()
		errs[1] = store.backend.Set(reverse, primary)
	}()

	wg.Wait()
	return errors.Join(errs[:]...)
}

// ExternalByPrimary returns the external id associated with primary within
// scope. The second return value indicates if an association was found; it
// distinguishes an absent entry from an empty id and from a backend error.
func (store *Store) ExternalByPrimary(scope, primary string) (string, bool, error) {
	if scope == "" {
		return "", false, ErrNoScope
	}
	if primary == "" {
		return "", false, ErrNoPrimary
	}

	value, ok, err := store.backend.Get(EncodeKey(scope, Primary, primary))
	if err != nil {
		return "", false, fmt.Errorf("failed to get forward entry: %w", err)
	}
	return value, ok, nil
}

// PrimaryByExternal returns the primary id associated with external within
// scope. It is symmetric to [Store.ExternalByPrimary].
func (store *Store) PrimaryByExternal(scope, external string) (string, bool, error) {
	if scope == "" {
		return "", false, ErrNoScope
	}
	if external == "" {
		return "", false, ErrNoExternal
	}

	value, ok, err := store.backend.Get(EncodeKey(scope, External, external))
	if err != nil {
		return "", false, fmt.Errorf("failed to get reverse entry: %w", err)
	}
	return value, ok, nil
}

// DeletePair removes the association between primary and external within
// scope, deleting both entries concurrently.
//
// It returns true only if both entries existed and were removed. A result
// of (false, nil) means at least one entry did not exist; any entry that
// did exist has still been removed, so callers must treat false as "verify
// state", not "nothing happened".
func (store *Store) DeletePair(scope, primary, external string) (bool, error) {
	if err := check(scope, primary, external); err != nil {
		return false, err
	}

	forward := EncodeKey(scope, Primary, primary)
	reverse := EncodeKey(scope, External, external)

	var removed [2]bool
	var errs [2]error

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		removed[0], errs[0] = store.backend.Delete(forward)
	}()

	go func() {
		defer wg.Done()
		removed[1], errs[1] = store.backend.Delete(reverse)
	}()

	wg.Wait()

	if err := errors.Join(errs[:]...); err != nil {
		return false, err
	}
	return removed[0] && removed[1], nil
}

// DeleteScope removes every association belonging to scope, in either
// direction, and returns the number of keys removed.
//
// DeleteScope first enumerates the keys under the scope prefix and then
// deletes them in bulk. Keys written to the scope between the two phases
// survive; bulk cleanup is not expected to run concurrently with writes to
// the same scope. An empty scope counts as already clean: the result is
// (0, nil).
func (store *Store) DeleteScope(scope string) (int, error) {
	if scope == "" {
		return 0, ErrNoScope
	}

	var keys []string
	err := store.backend.Scan(ScopePrefix(scope), func(key string) error {
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to scan scope: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	removed, err := store.backend.DeleteKeys(keys)
	if err != nil {
		return removed, fmt.Errorf("failed to delete scope keys: %w", err)
	}
	return removed, nil
}

// Pairs calls f for every association in the store, across all scopes.
// Keys in the backend that were not produced by this store are skipped.
//
// When any f returns a non-nil error, that error is returned immediately
// to the caller and iteration stops.
func (store *Store) Pairs(f func(scope, primary, external string) error) error {
	return store.backend.Scan("", func(key string) error {
		scope, direction, primary, err := ParseKey(key)
		if err != nil || direction != Primary {
			return nil
		}

		external, ok, err := store.backend.Get(key)
		if err != nil {
			return fmt.Errorf("failed to get forward entry: %w", err)
		}
		if !ok {
			return nil
		}
		return f(scope, primary, external)
	})
}

// Count counts the number of keys in the backend.
// A healthy association accounts for exactly two keys.
func (store *Store) Count() (uint64, error) {
	return store.backend.Count()
}

// Close closes the backend store.
//
// Calling close multiple times results in err = nil.
func (store *Store) Close() error {
	if store.backend == nil {
		return nil
	}

	err := store.backend.Close()
	store.backend = nil
	return err
}
