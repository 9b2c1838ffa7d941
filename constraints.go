package byteguard

import "fmt"

// Constraints defines the configuration for the full validation pipeline:
// filename and extension rules, size limits, magic-number verification,
// archive preflight, document structure checks, and the optional malware
// scan. Validated once at construction and never mutated afterwards, so a
// single validator is safe for concurrent use.
type Constraints struct {
	// MaxFileSize is the maximum allowed file size in bytes, or NoLimit.
	// Use the provided constants for readable configuration, e.g., 25 * MB
	MaxFileSize int64

	// MinFileSize is the minimum allowed file size in bytes, or NoLimit
	MinFileSize int64

	// AllowedExts is a list of allowed file extensions including the dot (e.g., ".pdf", ".docx")
	// If empty, all extensions are allowed unless blocked by BlockedExts
	AllowedExts []string

	// BlockedExts is a list of blocked file extensions including the dot (e.g., ".exe")
	// These extensions are blocked regardless of AllowedExts
	BlockedExts []string

	// MaxNameLength is the maximum allowed length for filenames (including extension)
	// If set to 0, no length limit will be enforced
	MaxNameLength int

	// RequireExtension enforces that files must have an extension
	RequireExtension bool

	// VerifySignatures checks the file's magic bytes against its extension
	VerifySignatures bool

	// Preflight carries the ZIP-container limits applied to archive-backed
	// document formats before any structural parsing
	Preflight PreflightConfig

	// ValidateStructure runs the OOXML/ODF structure validators after a
	// successful preflight
	ValidateStructure bool

	// AllowMacros permits macro-enabled Office payloads when structure
	// validation is on
	AllowMacros bool

	// Scanner is the optional malware gate, invoked last. Nil means no scan.
	Scanner Scanner
}

// DefaultConstraints creates a new set of constraints with sensible defaults
func DefaultConstraints() Constraints {
	return Constraints{
		MaxFileSize:       25 * MB,
		MinFileSize:       1,
		MaxNameLength:     255,
		BlockedExts:       []string{".exe", ".dll", ".bat", ".cmd", ".com", ".scr", ".msi", ".sh", ".js", ".vbs", ".ps1", ".jar", ".lnk"},
		RequireExtension:  true,
		VerifySignatures:  true,
		Preflight:         DefaultPreflightConfig(),
		ValidateStructure: true,
		AllowMacros:       false,
	}
}

// Validate checks the constraint invariants eagerly. Once a Constraints
// value has passed, it is trusted for the lifetime of the validator.
func (c Constraints) Validate() error {
	if c.MaxFileSize != NoLimit && c.MaxFileSize <= 0 {
		return NewValidationError(ErrorTypeConfig,
			fmt.Sprintf("max file size must be positive or NoLimit, got %d", c.MaxFileSize))
	}
	if c.MinFileSize != NoLimit && c.MinFileSize < 0 {
		return NewValidationError(ErrorTypeConfig,
			fmt.Sprintf("min file size must be non-negative or NoLimit, got %d", c.MinFileSize))
	}
	if c.MaxFileSize != NoLimit && c.MinFileSize > 0 && c.MinFileSize > c.MaxFileSize {
		return NewValidationError(ErrorTypeConfig,
			fmt.Sprintf("min file size (%d) exceeds max file size (%d)", c.MinFileSize, c.MaxFileSize))
	}
	if c.MaxNameLength < 0 {
		return NewValidationError(ErrorTypeConfig,
			fmt.Sprintf("max name length must be non-negative, got %d", c.MaxNameLength))
	}
	return c.Preflight.Validate()
}
