package byteguard

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Size constants for easier limit configuration
const (
	KB = int64(1024)
	MB = KB * 1024
	GB = MB * 1024
)

// ParseByteSize parses a human-readable byte size like "512", "10KB", "25MB"
// or "1GB" into a byte count. The unit suffix is case-insensitive and a bare
// number is interpreted as bytes. Negative values are rejected.
func ParseByteSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	upper := strings.ToUpper(s)
	multiplier := int64(1)
	switch {
	case strings.HasSuffix(upper, "GB"):
		multiplier = GB
		upper = upper[:len(upper)-2]
	case strings.HasSuffix(upper, "MB"):
		multiplier = MB
		upper = upper[:len(upper)-2]
	case strings.HasSuffix(upper, "KB"):
		multiplier = KB
		upper = upper[:len(upper)-2]
	case strings.HasSuffix(upper, "B"):
		upper = upper[:len(upper)-1]
	}

	value, err := strconv.ParseInt(strings.TrimSpace(upper), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("invalid size %q: negative value", s)
	}
	if multiplier > 1 && value > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("invalid size %q: overflows int64", s)
	}

	return value * multiplier, nil
}

// FormatSizeReadable converts a size in bytes to a human-readable string
func FormatSizeReadable(size int64) string {
	if size < KB {
		return fmt.Sprintf("%d B", size)
	}

	unit := "KB"
	divisor := KB
	switch {
	case size >= GB:
		unit = "GB"
		divisor = GB
	case size >= MB:
		unit = "MB"
		divisor = MB
	}

	value := float64(size) / float64(divisor)
	// Round to 1 decimal place properly
	rounded := math.Round(value*10) / 10
	if rounded == float64(int(rounded)) {
		return fmt.Sprintf("%.0f %s", rounded, unit)
	}
	return fmt.Sprintf("%.1f %s", rounded, unit)
}
