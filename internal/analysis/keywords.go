package analysis

import (
	"strings"

	apperrors "github.com/agbru/loganalyzer/internal/errors"
)

// DefaultKeywords is the keyword set used when none is configured.
var DefaultKeywords = []string{"ERROR", "WARN", "INFO", "DEBUG", "Exception", "failed"}

// Keywords is an ordered set of distinct, non-empty literal keywords.
// The zero value is an empty set. A Keywords value is immutable once built
// and safe to share between goroutines.
type Keywords struct {
	list  []string
	index map[string]int
}

// NewKeywords builds a keyword set preserving the given order. It rejects an
// empty list, empty entries and duplicates.
func NewKeywords(list ...string) (Keywords, error) {
	if len(list) == 0 {
		return Keywords{}, apperrors.ValidationError{Field: "keywords", Message: "keyword set must not be empty"}
	}
	k := Keywords{
		list:  make([]string, 0, len(list)),
		index: make(map[string]int, len(list)),
	}
	for _, kw := range list {
		if kw == "" {
			return Keywords{}, apperrors.ValidationError{Field: "keywords", Message: "keywords must not be empty strings"}
		}
		if _, dup := k.index[kw]; dup {
			return Keywords{}, apperrors.ValidationError{Field: "keywords", Message: "duplicate keyword " + kw}
		}
		k.index[kw] = len(k.list)
		k.list = append(k.list, kw)
	}
	return k, nil
}

// MustKeywords is like NewKeywords but panics on invalid input. Intended for
// tests and package-level defaults.
func MustKeywords(list ...string) Keywords {
	k, err := NewKeywords(list...)
	if err != nil {
		panic(err)
	}
	return k
}

// Len returns the number of keywords.
func (k Keywords) Len() int { return len(k.list) }

// At returns the i-th keyword in insertion order.
func (k Keywords) At(i int) string { return k.list[i] }

// Index returns the position of kw in the set.
func (k Keywords) Index(kw string) (int, bool) {
	i, ok := k.index[kw]
	return i, ok
}

// Slice returns a copy of the keywords in insertion order.
func (k Keywords) Slice() []string {
	out := make([]string, len(k.list))
	copy(out, k.list)
	return out
}

// Equal reports whether both sets hold the same keywords in the same order.
func (k Keywords) Equal(other Keywords) bool {
	if len(k.list) != len(other.list) {
		return false
	}
	for i := range k.list {
		if k.list[i] != other.list[i] {
			return false
		}
	}
	return true
}

// String renders the set as "[A, B, C]".
func (k Keywords) String() string {
	return "[" + strings.Join(k.list, ", ") + "]"
}
