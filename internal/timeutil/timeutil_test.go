package timeutil

import (
	"testing"
	"time"
)

func TestParseDurationOrDefault(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{in: "", want: time.Minute},
		{in: "  ", want: time.Minute},
		{in: "bogus", want: time.Minute},
		{in: "250ms", want: 250 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := ParseDurationOrDefault(tt.in, time.Minute); got != tt.want {
			t.Errorf("ParseDurationOrDefault(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseOptional(t *testing.T) {
	if d, err := ParseOptional(" 2s "); err != nil || d != 2*time.Second {
		t.Errorf("ParseOptional(2s) = %v, %v", d, err)
	}
	if d, err := ParseOptional(""); err != nil || d != 0 {
		t.Errorf("ParseOptional(\"\") = %v, %v", d, err)
	}
	if _, err := ParseOptional("-1s"); err == nil {
		t.Error("ParseOptional(-1s) error = nil")
	}
	if _, err := ParseOptional("soon"); err == nil {
		t.Error("ParseOptional(soon) error = nil")
	}
}
