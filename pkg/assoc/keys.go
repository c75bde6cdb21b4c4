//spellchecker:words assoc
package assoc

//spellchecker:words errors strconv strings
import (
	"errors"
	"strconv"
	"strings"
)

// Direction selects one side of an association.
type Direction byte

const (
	// Primary marks the entry keyed by the primary identifier.
	Primary Direction = 'p'
	// External marks the entry keyed by the external identifier.
	External Direction = 'x'
)

// Valid checks if this direction is one of the two known values.
func (direction Direction) Valid() bool {
	return direction == Primary || direction == External
}

const sep = ':'

// EncodeKey returns the storage key for one side of an association.
//
// The scope is length-prefixed, so keys decompose unambiguously no matter
// which characters scope and id contain: two distinct (scope, direction, id)
// triples never encode to the same key.
func EncodeKey(scope string, direction Direction, id string) string {
	var builder strings.Builder
	builder.Grow(len(scope) + len(id) + 8)

	builder.WriteString(strconv.Itoa(len(scope)))
	builder.WriteByte(sep)
	builder.WriteString(scope)
	builder.WriteByte(sep)
	builder.WriteByte(byte(direction))
	builder.WriteByte(sep)
	builder.WriteString(id)

	return builder.String()
}

// ScopePrefix returns the prefix shared by every key belonging to scope,
// in either direction.
//
// Because of the length prefix, no key of a different scope ever starts
// with this prefix.
func ScopePrefix(scope string) string {
	var builder strings.Builder
	builder.Grow(len(scope) + 6)

	builder.WriteString(strconv.Itoa(len(scope)))
	builder.WriteByte(sep)
	builder.WriteString(scope)
	builder.WriteByte(sep)

	return builder.String()
}

var errMalformedKey = errors.New("ParseKey: malformed key")

// ParseKey decomposes a storage key produced by [EncodeKey].
// Current store operations only encode; ParseKey exists for diagnostics.
func ParseKey(key string) (scope string, direction Direction, id string, err error) {
	length := strings.IndexByte(key, sep)
	if length <= 0 {
		return "", 0, "", errMalformedKey
	}

	size, err := strconv.Atoi(key[:length])
	if err != nil || size < 0 {
		return "", 0, "", errMalformedKey
	}

	rest := key[length+1:]
	if len(rest) < size+4 || rest[size] != sep || rest[size+2] != sep {
		return "", 0, "", errMalformedKey
	}

	scope = rest[:size]
	direction = Direction(rest[size+1])
	id = rest[size+3:]

	if !direction.Valid() {
		return "", 0, "", errMalformedKey
	}
	return scope, direction, id, nil
}
