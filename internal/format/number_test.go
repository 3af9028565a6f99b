package format

import (
	"math"
	"testing"
	"time"
)

func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]string{
		"":         "",
		"7":        "7",
		"999":      "999",
		"1000":     "1,000",
		"48213":    "48,213",
		"1000000":  "1,000,000",
		"-2500":    "-2,500",
		"-100":     "-100",
		"12345678": "12,345,678",
	} {
		if got := FormatNumberString(in); got != want {
			t.Errorf("FormatNumberString(%q) = %q, want %q", in, got, want)
		}
	}
	if got := FormatCount(250000); got != "250,000" {
		t.Errorf("FormatCount(250000) = %q", got)
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{64 * 1024, "64.0 KiB"},
		{3 << 20, "3.0 MiB"},
		{5 << 30, "5.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDurationFormatting(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d       time.Duration
		short   string
		precise string
	}{
		{800 * time.Nanosecond, "0µs", "800 ns (0.001 ms)"},
		{42 * time.Microsecond, "42µs", "42000 ns (0.042 ms)"},
		{7 * time.Millisecond, "7ms", "7000000 ns (7.000 ms)"},
		{1500 * time.Millisecond, "1.5s", "1500000000 ns (1500.000 ms)"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.short {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.short)
		}
		if got := FormatNanosMillis(tt.d); got != tt.precise {
			t.Errorf("FormatNanosMillis(%v) = %q, want %q", tt.d, got, tt.precise)
		}
	}
}

func TestFormatSpeedup(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   float64
		want string
	}{
		{3.2, "3.200"},
		{0.98765, "0.988"},
		{math.NaN(), "n/a"},
		{math.Inf(1), "n/a"},
		{math.Inf(-1), "n/a"},
	}
	for _, tt := range tests {
		if got := FormatSpeedup(tt.in); got != tt.want {
			t.Errorf("FormatSpeedup(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
