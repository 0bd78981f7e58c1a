package chain

import (
	"strconv"
	"strings"
)

// Tag identifies one API revision, e.g. "v1", "v2".
//
// Tags are totally ordered by their numeric part, so v2 < v10.
type Tag string

// String implements fmt.Stringer.
func (t Tag) String() string { return string(t) }

// ParseTag normalizes s and checks it has the form v<N> with N >= 1.
//
// Surrounding whitespace is trimmed and the prefix is case-insensitive ("V3" is "v3").
func ParseTag(s string) (Tag, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if _, ok := tagNumber(raw); !ok {
		return "", InvalidTagError{Value: s}
	}
	return Tag(raw), nil
}

// MustParseTag is ParseTag that panics on error.
// Useful for package-level tag constants and tests.
func MustParseTag(s string) Tag {
	t, err := ParseTag(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Valid reports whether t is a well-formed tag.
func (t Tag) Valid() bool {
	_, ok := tagNumber(string(t))
	return ok
}

// Number returns the numeric part of the tag, or 0 if the tag is malformed.
func (t Tag) Number() int {
	n, _ := tagNumber(string(t))
	return n
}

// Compare returns -1, 0 or +1 depending on whether a orders before, equal to, or after b.
//
// Malformed tags order before every valid tag and compare lexically among themselves.
func Compare(a, b Tag) int {
	na, oka := tagNumber(string(a))
	nb, okb := tagNumber(string(b))
	switch {
	case !oka && !okb:
		return strings.Compare(string(a), string(b))
	case !oka:
		return -1
	case !okb:
		return 1
	case na < nb:
		return -1
	case na > nb:
		return 1
	default:
		return 0
	}
}

// Less reports whether t orders strictly before other.
func (t Tag) Less(other Tag) bool { return Compare(t, other) < 0 }

func tagNumber(s string) (int, bool) {
	if len(s) < 2 || s[0] != 'v' {
		return 0, false
	}
	digits := s[1:]
	if digits[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
