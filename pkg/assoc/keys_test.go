//spellchecker:words assoc
package assoc_test

//spellchecker:words strings testing github crosswalk
import (
	"strings"
	"testing"

	"github.com/FAU-CDI/crosswalk/pkg/assoc"
)

// trickyScopes contains scopes chosen to collide under naive delimiting.
var trickyScopes = []string{
	"0", "a", "b", "10",
	"a:b", "1:a", "b:", ":", "::", "2:a:", "a:b:c",
	"1", "1:", "11",
}

var trickyIDs = []string{
	"1", "123", "x:y", ":", "p:1", "x", "1:p:2",
}

func TestEncodeKeyUnambiguous(t *testing.T) {
	t.Parallel()

	seen := make(map[string]string)
	for _, scope := range trickyScopes {
		for _, direction := range []assoc.Direction{assoc.Primary, assoc.External} {
			for _, id := range trickyIDs {
				key := assoc.EncodeKey(scope, direction, id)

				triple := scope + "\x00" + string(direction) + "\x00" + id
				if prev, ok := seen[key]; ok {
					t.Errorf("EncodeKey() maps both %q and %q to %q", prev, triple, key)
				}
				seen[key] = triple
			}
		}
	}
}

func TestScopePrefixIsolation(t *testing.T) {
	t.Parallel()

	for _, scope := range trickyScopes {
		prefix := assoc.ScopePrefix(scope)

		for _, other := range trickyScopes {
			for _, direction := range []assoc.Direction{assoc.Primary, assoc.External} {
				for _, id := range trickyIDs {
					key := assoc.EncodeKey(other, direction, id)

					got := strings.HasPrefix(key, prefix)
					want := other == scope
					if got != want {
						t.Errorf("HasPrefix(EncodeKey(%q, %q, %q), ScopePrefix(%q)) got = %v, want = %v", other, direction, id, scope, got, want)
					}
				}
			}
		}
	}
}

func TestParseKeyRoundtrip(t *testing.T) {
	t.Parallel()

	for _, scope := range trickyScopes {
		for _, direction := range []assoc.Direction{assoc.Primary, assoc.External} {
			for _, id := range trickyIDs {
				key := assoc.EncodeKey(scope, direction, id)

				gotScope, gotDirection, gotID, err := assoc.ParseKey(key)
				if err != nil {
					t.Errorf("ParseKey(%q) returned error %s", key, err)
					continue
				}
				if gotScope != scope || gotDirection != direction || gotID != id {
					t.Errorf("ParseKey(%q) got = (%q, %q, %q), want = (%q, %q, %q)", key, gotScope, gotDirection, gotID, scope, direction, id)
				}
			}
		}
	}
}

func TestParseKeyMalformed(t *testing.T) {
	t.Parallel()

	malformed := []string{
		"",
		"abc",
		":",
		"3:ab",
		"3:abc",
		"3:abc:p",
		"3:abc:p:",
		"3:abc:q:id",
		"3:abcxp:id",
		"-1:xyz:p:id",
		"x:abc:p:id",
	}

	for _, key := range malformed {
		if _, _, _, err := assoc.ParseKey(key); err == nil {
			t.Errorf("ParseKey(%q) got err = nil, want an error", key)
		}
	}
}
