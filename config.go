package byteguard

import (
	"fmt"
	"strings"

	"github.com/gobeaver/beaver-kit/config"
)

// Config is the environment-backed configuration surface. Size fields accept
// human-readable values like "25MB"; "-1" or "unlimited" disables a limit.
// The loader prefixes every variable name with BEAVER_, so the tag
// BYTEGUARD_MAX_FILE_SIZE reads the variable BEAVER_BYTEGUARD_MAX_FILE_SIZE.
type Config struct {
	// Outer pipeline
	MaxFileSize       string `env:"BYTEGUARD_MAX_FILE_SIZE,default:25MB"`
	MinFileSize       string `env:"BYTEGUARD_MIN_FILE_SIZE,default:1"`
	AllowedExtensions string `env:"BYTEGUARD_ALLOWED_EXTENSIONS"` // comma-separated
	BlockedExtensions string `env:"BYTEGUARD_BLOCKED_EXTENSIONS"` // comma-separated
	MaxNameLength     int    `env:"BYTEGUARD_MAX_NAME_LENGTH,default:255"`
	RequireExtension  bool   `env:"BYTEGUARD_REQUIRE_EXTENSION,default:true"`
	VerifySignatures  bool   `env:"BYTEGUARD_VERIFY_SIGNATURES,default:true"`

	// Archive preflight
	PreflightEnabled               bool    `env:"BYTEGUARD_PREFLIGHT_ENABLED,default:true"`
	PreflightMaxEntries            int     `env:"BYTEGUARD_PREFLIGHT_MAX_ENTRIES,default:10000"`
	PreflightEntrySizeLimit        string  `env:"BYTEGUARD_PREFLIGHT_ENTRY_SIZE_LIMIT,default:256MB"`
	PreflightTotalSizeLimit        string  `env:"BYTEGUARD_PREFLIGHT_TOTAL_SIZE_LIMIT,default:1GB"`
	PreflightCompressionRateLimit  float64 `env:"BYTEGUARD_PREFLIGHT_COMPRESSION_RATE_LIMIT,default:100"`
	PreflightRejectSuspiciousPaths bool    `env:"BYTEGUARD_PREFLIGHT_REJECT_SUSPICIOUS_PATHS,default:true"`

	// Document structure
	ValidateStructure bool `env:"BYTEGUARD_VALIDATE_STRUCTURE,default:true"`
	AllowMacros       bool `env:"BYTEGUARD_ALLOW_MACROS,default:false"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Constraints converts the environment config into validated runtime
// constraints. Size parsing failures and invariant violations both surface
// as ErrorTypeConfig errors.
func (c *Config) Constraints() (Constraints, error) {
	maxFile, err := parseLimit(c.MaxFileSize)
	if err != nil {
		return Constraints{}, NewValidationError(ErrorTypeConfig,
			fmt.Sprintf("max file size: %v", err))
	}
	minFile, err := parseLimit(c.MinFileSize)
	if err != nil {
		return Constraints{}, NewValidationError(ErrorTypeConfig,
			fmt.Sprintf("min file size: %v", err))
	}
	entryLimit, err := parseLimit(c.PreflightEntrySizeLimit)
	if err != nil {
		return Constraints{}, NewValidationError(ErrorTypeConfig,
			fmt.Sprintf("preflight entry size limit: %v", err))
	}
	totalLimit, err := parseLimit(c.PreflightTotalSizeLimit)
	if err != nil {
		return Constraints{}, NewValidationError(ErrorTypeConfig,
			fmt.Sprintf("preflight total size limit: %v", err))
	}

	constraints := Constraints{
		MaxFileSize:      maxFile,
		MinFileSize:      minFile,
		AllowedExts:      splitExtensionList(c.AllowedExtensions),
		BlockedExts:      splitExtensionList(c.BlockedExtensions),
		MaxNameLength:    c.MaxNameLength,
		RequireExtension: c.RequireExtension,
		VerifySignatures: c.VerifySignatures,
		Preflight: PreflightConfig{
			Enabled:                    c.PreflightEnabled,
			MaxEntries:                 c.PreflightMaxEntries,
			EntryUncompressedSizeLimit: entryLimit,
			TotalUncompressedSizeLimit: totalLimit,
			CompressionRateLimit:       c.PreflightCompressionRateLimit,
			RejectSuspiciousPaths:      c.PreflightRejectSuspiciousPaths,
		},
		ValidateStructure: c.ValidateStructure,
		AllowMacros:       c.AllowMacros,
	}

	if err := constraints.Validate(); err != nil {
		return Constraints{}, err
	}
	return constraints, nil
}

// parseLimit parses a byte-size string, treating "-1" and "unlimited" as the
// NoLimit sentinel
func parseLimit(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "-1" || strings.EqualFold(trimmed, "unlimited") {
		return NoLimit, nil
	}
	return ParseByteSize(trimmed)
}

func splitExtensionList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	exts := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		exts = append(exts, normalizeExtension(part))
	}
	return exts
}
