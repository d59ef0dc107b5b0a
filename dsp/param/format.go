package param

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatHzThenKHz renders a frequency as "x Hz" below 1 kHz and
// "x kHz" at or above it, with the given number of fraction digits.
func FormatHzThenKHz(hz float64, digits int) string {
	if digits < 0 {
		digits = 0
	}

	if hz < 1000 {
		return fmt.Sprintf("%.*f Hz", digits, hz)
	}

	return fmt.Sprintf("%.*f kHz", digits, hz/1000)
}

// ParseHzThenKHz parses strings produced by FormatHzThenKHz, accepting
// bare numbers (interpreted as Hz) as well as "Hz" and "kHz" suffixes.
func ParseHzThenKHz(s string) (float64, error) {
	t := strings.TrimSpace(s)

	scale := 1.0

	switch {
	case hasFoldSuffix(t, "khz"):
		scale = 1000
		t = strings.TrimSpace(t[:len(t)-3])
	case hasFoldSuffix(t, "hz"):
		t = strings.TrimSpace(t[:len(t)-2])
	}

	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("param: invalid frequency %q: %w", s, err)
	}

	return v * scale, nil
}

// FormatPercent renders a normalized [0, 1] value as a percentage.
func FormatPercent(v float64, digits int) string {
	if digits < 0 {
		digits = 0
	}

	return fmt.Sprintf("%.*f %%", digits, v*100)
}

// ParsePercent parses strings produced by FormatPercent back into a
// normalized value; bare numbers are interpreted as percent.
func ParsePercent(s string) (float64, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimSuffix(t, "%")
	t = strings.TrimSpace(t)

	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("param: invalid percentage %q: %w", s, err)
	}

	return v / 100, nil
}

func hasFoldSuffix(s, suffix string) bool {
	if len(s) < len(suffix) {
		return false
	}

	return strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
