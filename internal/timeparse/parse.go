package timeparse

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse converts a human-readable time string like "2h 30m", "1.5h", "30m" into seconds.
// Unknown parts are ignored, so garbage yields 0.
func Parse(input string) int {
	s := strings.ToLower(strings.TrimSpace(input))

	totalSeconds := 0

	if head, rest, ok := strings.Cut(s, "h"); ok {
		if hours, err := strconv.ParseFloat(strings.TrimSpace(head), 64); err == nil {
			totalSeconds += int(hours * 3600)
		}
		s = rest
	}

	if head, _, ok := strings.Cut(s, "m"); ok {
		if minutes, err := strconv.ParseFloat(strings.TrimSpace(head), 64); err == nil {
			totalSeconds += int(minutes * 60)
		}
	}

	return totalSeconds
}

// Simple parses a single-unit duration: "2h", "90m", "1d", or a bare number
// of minutes ("45"). Fractions are allowed ("1.5h").
func Simple(input string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	multiplier := 60.0
	switch s[len(s)-1] {
	case 'h':
		multiplier, s = 3600, s[:len(s)-1]
	case 'm':
		multiplier, s = 60, s[:len(s)-1]
	case 'd':
		multiplier, s = 86400, s[:len(s)-1]
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", input, err)
	}
	if n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("invalid duration %q", input)
	}
	v := n * multiplier
	if v >= float64(math.MaxInt) {
		return 0, fmt.Errorf("duration %q out of range", input)
	}
	return int(v), nil
}

// Format renders seconds as "2h 30m", "2h" or "30m".
func Format(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}
