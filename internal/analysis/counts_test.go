package analysis

import "testing"

func TestCounts_StartAtZero(t *testing.T) {
	t.Parallel()
	c := NewCounts(MustKeywords("ERROR", "WARN"))
	c.Each(func(kw string, n int64) {
		if n != 0 {
			t.Errorf("%s should start at 0, got %d", kw, n)
		}
	})
	if len(c.Map()) != 2 {
		t.Errorf("expected an entry per keyword, got %v", c.Map())
	}
}

func TestCounts_Add(t *testing.T) {
	t.Parallel()
	c := NewCounts(MustKeywords("ERROR", "WARN"))

	if err := c.Add("ERROR", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Add("INFO", 1); err == nil {
		t.Error("expected error for unknown keyword")
	}
	if err := c.Add("WARN", -1); err == nil {
		t.Error("expected error for negative delta")
	}
	if got := c.Get("ERROR"); got != 3 {
		t.Errorf("expected ERROR=3, got %d", got)
	}
	if got := c.Get("WARN"); got != 0 {
		t.Errorf("rejected delta must not change WARN, got %d", got)
	}
}

func TestCounts_Merge(t *testing.T) {
	t.Parallel()

	t.Run("same order", func(t *testing.T) {
		t.Parallel()
		k := MustKeywords("ERROR", "WARN")
		a, b := NewCounts(k), NewCounts(k)
		_ = a.Add("ERROR", 2)
		_ = b.Add("ERROR", 5)
		_ = b.Add("WARN", 1)

		if err := a.Merge(b); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.String() != "{ERROR: 7, WARN: 1}" {
			t.Errorf("unexpected result %s", a)
		}
	})

	t.Run("different order matched by name", func(t *testing.T) {
		t.Parallel()
		a := NewCounts(MustKeywords("ERROR", "WARN"))
		b := NewCounts(MustKeywords("WARN", "ERROR"))
		_ = b.Add("WARN", 4)

		if err := a.Merge(b); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.Get("WARN") != 4 || a.Get("ERROR") != 0 {
			t.Errorf("unexpected result %s", a)
		}
	})

	t.Run("unknown keyword leaves target unchanged", func(t *testing.T) {
		t.Parallel()
		a := NewCounts(MustKeywords("ERROR", "WARN"))
		b := NewCounts(MustKeywords("WARN", "INFO"))
		_ = b.Add("WARN", 4)

		if err := a.Merge(b); err == nil {
			t.Fatal("expected error")
		}
		if a.Total() != 0 {
			t.Errorf("failed merge must not apply, got %s", a)
		}
	})

	t.Run("nil is a no-op", func(t *testing.T) {
		t.Parallel()
		a := NewCounts(MustKeywords("ERROR"))
		if err := a.Merge(nil); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestCounts_EqualAndClone(t *testing.T) {
	t.Parallel()
	k := MustKeywords("ERROR", "WARN")
	a := NewCounts(k)
	_ = a.Add("WARN", 2)

	b := a.Clone()
	if !a.Equal(b) {
		t.Fatal("clone should be equal")
	}
	_ = b.Add("WARN", 1)
	if a.Equal(b) {
		t.Error("clone must be independent")
	}
	if a.Get("WARN") != 2 {
		t.Errorf("original changed: %s", a)
	}
	if a.Equal(NewCounts(MustKeywords("WARN", "ERROR"))) {
		t.Error("different keyword order must not be equal")
	}
	var nilCounts *Counts
	if a.Equal(nilCounts) {
		t.Error("non-nil must not equal nil")
	}
}

func TestCounts_Total(t *testing.T) {
	t.Parallel()
	c := NewCounts(MustKeywords("A", "B", "C"))
	_ = c.Add("A", 1)
	_ = c.Add("C", 10)
	if c.Total() != 11 {
		t.Errorf("expected 11, got %d", c.Total())
	}
}
