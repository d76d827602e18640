package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// ParseDurationOrDefault parses value and returns def when it is empty or invalid.
func ParseDurationOrDefault(value string, def time.Duration) time.Duration {
	parsed, err := ParseOptional(value)
	if err != nil || strings.TrimSpace(value) == "" {
		return def
	}
	return parsed
}

// ParseOptional parses a non-negative duration; an empty value is zero.
func ParseOptional(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if parsed < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return parsed, nil
}
