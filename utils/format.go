package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatArea renders an area with exactly 2 decimals.
func FormatArea(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatDimension renders a measurement as the shortest plain decimal (no exponent).
func FormatDimension(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatWhole renders an aggregate rounded to the nearest whole unit.
func FormatWhole(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

// ParseNonNegativeFloat parses a typed measurement.
func ParseNonNegativeFloat(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("%v is negative", v)
	}
	return v, nil
}

// ParseMinInt parses a typed count that must be at least min.
func ParseMinInt(raw string, min int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if v < min {
		return 0, fmt.Errorf("%d is below %d", v, min)
	}
	return v, nil
}
