package byteguard

import (
	"fmt"
	"math"
)

// NoLimit disables an individual preflight limit. It is the only accepted
// non-positive value for a limit field: zero and other negative values are
// configuration errors, so "unset" can never be confused with "misconfigured".
const NoLimit = -1

// PreflightConfig carries the limits applied to a ZIP container before any
// entry is decompressed. The zero value is not usable directly; start from
// DefaultPreflightConfig or set every field explicitly.
//
// A validated config is immutable by convention and safe for concurrent use
// by any number of PreflightArchive calls.
type PreflightConfig struct {
	// Enabled turns archive preflight on. When false every check is skipped,
	// regardless of the other field values.
	Enabled bool

	// MaxEntries is the maximum number of entries the central directory may
	// declare, or NoLimit.
	MaxEntries int

	// EntryUncompressedSizeLimit is the maximum declared uncompressed size of
	// a single entry in bytes, or NoLimit. The limit is inclusive.
	EntryUncompressedSizeLimit int64

	// TotalUncompressedSizeLimit is the maximum declared uncompressed size of
	// the whole archive in bytes, or NoLimit. The limit is inclusive.
	TotalUncompressedSizeLimit int64

	// CompressionRateLimit is the maximum uncompressed:compressed ratio of a
	// single entry, or NoLimit. Zip bombs often exceed 1000:1.
	CompressionRateLimit float64

	// RejectSuspiciousPaths rejects entries whose names look like path
	// traversal or absolute paths (see IsSuspiciousArchivePath).
	RejectSuspiciousPaths bool
}

// DefaultPreflightConfig returns a preflight config with sensible defaults
func DefaultPreflightConfig() PreflightConfig {
	return PreflightConfig{
		Enabled:                    true,
		MaxEntries:                 10000,
		EntryUncompressedSizeLimit: 256 * MB,
		TotalUncompressedSizeLimit: 1 * GB,
		CompressionRateLimit:       100.0,
		RejectSuspiciousPaths:      true,
	}
}

// UnlimitedPreflightConfig returns an enabled config with every numeric limit
// disabled. Path checking stays on.
func UnlimitedPreflightConfig() PreflightConfig {
	return PreflightConfig{
		Enabled:                    true,
		MaxEntries:                 NoLimit,
		EntryUncompressedSizeLimit: NoLimit,
		TotalUncompressedSizeLimit: NoLimit,
		CompressionRateLimit:       NoLimit,
		RejectSuspiciousPaths:      true,
	}
}

// Validate checks the config invariants once, before first use. A disabled
// config always validates, even with nonsensical field values; turning
// preflight off must never itself fail. Limits are never clamped or
// corrected: a bad value is always an ErrorTypeConfig error.
func (c PreflightConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.MaxEntries != NoLimit && c.MaxEntries <= 0 {
		return NewValidationError(ErrorTypeConfig,
			fmt.Sprintf("max entries must be positive or NoLimit, got %d", c.MaxEntries))
	}
	if c.EntryUncompressedSizeLimit != NoLimit && c.EntryUncompressedSizeLimit <= 0 {
		return NewValidationError(ErrorTypeConfig,
			fmt.Sprintf("entry uncompressed size limit must be positive or NoLimit, got %d", c.EntryUncompressedSizeLimit))
	}
	if c.TotalUncompressedSizeLimit != NoLimit && c.TotalUncompressedSizeLimit <= 0 {
		return NewValidationError(ErrorTypeConfig,
			fmt.Sprintf("total uncompressed size limit must be positive or NoLimit, got %d", c.TotalUncompressedSizeLimit))
	}
	if c.CompressionRateLimit != NoLimit {
		if math.IsNaN(c.CompressionRateLimit) || math.IsInf(c.CompressionRateLimit, 0) {
			return NewValidationError(ErrorTypeConfig,
				"compression rate limit must be finite")
		}
		if c.CompressionRateLimit <= 0 {
			return NewValidationError(ErrorTypeConfig,
				fmt.Sprintf("compression rate limit must be positive or NoLimit, got %g", c.CompressionRateLimit))
		}
	}
	if c.entryLimitSet() && c.totalLimitSet() &&
		c.EntryUncompressedSizeLimit > c.TotalUncompressedSizeLimit {
		return NewValidationError(ErrorTypeConfig,
			fmt.Sprintf("entry uncompressed size limit (%d) exceeds total uncompressed size limit (%d)",
				c.EntryUncompressedSizeLimit, c.TotalUncompressedSizeLimit))
	}

	return nil
}

func (c PreflightConfig) maxEntriesSet() bool {
	return c.MaxEntries != NoLimit
}

func (c PreflightConfig) entryLimitSet() bool {
	return c.EntryUncompressedSizeLimit != NoLimit
}

func (c PreflightConfig) totalLimitSet() bool {
	return c.TotalUncompressedSizeLimit != NoLimit
}

func (c PreflightConfig) rateLimitSet() bool {
	return c.CompressionRateLimit != NoLimit
}
