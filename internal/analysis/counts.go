package analysis

import (
	"fmt"
	"strings"
)

// Counts maps each keyword of a Keywords set to a non-negative occurrence
// count. Every keyword has an entry from creation, starting at zero, and
// counts only ever grow.
//
// A Counts is not safe for concurrent mutation. During the concurrent pass
// each worker owns its per-file Counts and the Aggregator goroutine owns the
// global one.
type Counts struct {
	keywords Keywords
	values   []int64
}

// NewCounts returns a zeroed mapping for keywords.
func NewCounts(keywords Keywords) *Counts {
	return &Counts{keywords: keywords, values: make([]int64, keywords.Len())}
}

// Keywords returns the keyword set this mapping is keyed by.
func (c *Counts) Keywords() Keywords { return c.keywords }

// Get returns the count for kw, or 0 if kw is not part of the set.
func (c *Counts) Get(kw string) int64 {
	if i, ok := c.keywords.Index(kw); ok {
		return c.values[i]
	}
	return 0
}

// Add increases the count of kw by n.
func (c *Counts) Add(kw string, n int64) error {
	if n < 0 {
		return fmt.Errorf("negative delta %d for keyword %q", n, kw)
	}
	i, ok := c.keywords.Index(kw)
	if !ok {
		return fmt.Errorf("unknown keyword %q", kw)
	}
	c.values[i] += n
	return nil
}

// Merge adds every count of other into c. Keywords are matched by name, so
// other may list them in a different order, but it must not contain a keyword
// c does not know. On error c is left unchanged.
func (c *Counts) Merge(other *Counts) error {
	if other == nil {
		return nil
	}
	if c.keywords.Equal(other.keywords) {
		for i, v := range other.values {
			c.values[i] += v
		}
		return nil
	}
	targets := make([]int, len(other.values))
	for i := range other.values {
		kw := other.keywords.At(i)
		j, ok := c.keywords.Index(kw)
		if !ok {
			return fmt.Errorf("cannot merge counts: unknown keyword %q", kw)
		}
		targets[i] = j
	}
	for i, v := range other.values {
		c.values[targets[i]] += v
	}
	return nil
}

// Each calls fn for every keyword in insertion order.
func (c *Counts) Each(fn func(kw string, n int64)) {
	for i, v := range c.values {
		fn(c.keywords.At(i), v)
	}
}

// Map returns a copy of the counts as a plain map.
func (c *Counts) Map() map[string]int64 {
	m := make(map[string]int64, len(c.values))
	c.Each(func(kw string, n int64) { m[kw] = n })
	return m
}

// Total returns the sum over all keywords.
func (c *Counts) Total() int64 {
	var t int64
	for _, v := range c.values {
		t += v
	}
	return t
}

// Clone returns an independent copy.
func (c *Counts) Clone() *Counts {
	values := make([]int64, len(c.values))
	copy(values, c.values)
	return &Counts{keywords: c.keywords, values: values}
}

// Equal reports whether both mappings have the same keywords in the same
// order and the same counts.
func (c *Counts) Equal(other *Counts) bool {
	if c == nil || other == nil {
		return c == other
	}
	if !c.keywords.Equal(other.keywords) {
		return false
	}
	for i := range c.values {
		if c.values[i] != other.values[i] {
			return false
		}
	}
	return true
}

// String renders the mapping as "{A: 1, B: 0}".
func (c *Counts) String() string {
	parts := make([]string, 0, len(c.values))
	c.Each(func(kw string, n int64) { parts = append(parts, fmt.Sprintf("%s: %d", kw, n)) })
	return "{" + strings.Join(parts, ", ") + "}"
}
