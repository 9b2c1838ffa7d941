package byteguard

// Builder provides a fluent API for constructing validators
type Builder struct {
	constraints Constraints
}

// NewBuilder creates a new validator builder with sensible defaults
func NewBuilder() *Builder {
	return &Builder{
		constraints: DefaultConstraints(),
	}
}

// --- Size constraints ---

// MaxSize sets the maximum allowed file size
func (b *Builder) MaxSize(size int64) *Builder {
	b.constraints.MaxFileSize = size
	return b
}

// MinSize sets the minimum required file size
func (b *Builder) MinSize(size int64) *Builder {
	b.constraints.MinFileSize = size
	return b
}

// --- Extension constraints ---

// Extensions sets the allowed file extensions (e.g., ".pdf", ".docx")
func (b *Builder) Extensions(exts ...string) *Builder {
	b.constraints.AllowedExts = append(b.constraints.AllowedExts, exts...)
	return b
}

// BlockExtensions adds extensions to the blocklist
func (b *Builder) BlockExtensions(exts ...string) *Builder {
	b.constraints.BlockedExts = append(b.constraints.BlockedExts, exts...)
	return b
}

// RequireExtension requires files to have an extension
func (b *Builder) RequireExtension() *Builder {
	b.constraints.RequireExtension = true
	return b
}

// AllowNoExtension allows files without extensions
func (b *Builder) AllowNoExtension() *Builder {
	b.constraints.RequireExtension = false
	return b
}

// MaxNameLength sets the maximum filename length
func (b *Builder) MaxNameLength(length int) *Builder {
	b.constraints.MaxNameLength = length
	return b
}

// --- Signature constraints ---

// VerifySignatures enables magic-number verification against the extension
func (b *Builder) VerifySignatures() *Builder {
	b.constraints.VerifySignatures = true
	return b
}

// SkipSignatures disables magic-number verification
func (b *Builder) SkipSignatures() *Builder {
	b.constraints.VerifySignatures = false
	return b
}

// --- Archive preflight ---

// WithPreflight sets the archive preflight configuration
func (b *Builder) WithPreflight(cfg PreflightConfig) *Builder {
	b.constraints.Preflight = cfg
	return b
}

// WithoutPreflight disables archive preflight entirely
func (b *Builder) WithoutPreflight() *Builder {
	b.constraints.Preflight.Enabled = false
	return b
}

// MaxArchiveEntries caps the entry count of archive-backed documents
func (b *Builder) MaxArchiveEntries(n int) *Builder {
	b.constraints.Preflight.MaxEntries = n
	return b
}

// MaxEntrySize caps the declared uncompressed size of a single archive entry
func (b *Builder) MaxEntrySize(size int64) *Builder {
	b.constraints.Preflight.EntryUncompressedSizeLimit = size
	return b
}

// MaxTotalSize caps the declared uncompressed size of a whole archive
func (b *Builder) MaxTotalSize(size int64) *Builder {
	b.constraints.Preflight.TotalUncompressedSizeLimit = size
	return b
}

// MaxCompressionRate caps the per-entry uncompressed:compressed ratio
func (b *Builder) MaxCompressionRate(ratio float64) *Builder {
	b.constraints.Preflight.CompressionRateLimit = ratio
	return b
}

// AllowSuspiciousPaths skips the entry path-safety check
func (b *Builder) AllowSuspiciousPaths() *Builder {
	b.constraints.Preflight.RejectSuspiciousPaths = false
	return b
}

// --- Structure and scanning ---

// WithStructureValidation enables the OOXML/ODF structure validators
func (b *Builder) WithStructureValidation() *Builder {
	b.constraints.ValidateStructure = true
	return b
}

// WithoutStructureValidation disables the structure validators
func (b *Builder) WithoutStructureValidation() *Builder {
	b.constraints.ValidateStructure = false
	return b
}

// AllowMacros permits macro-enabled Office payloads
func (b *Builder) AllowMacros() *Builder {
	b.constraints.AllowMacros = true
	return b
}

// WithScanner sets the malware scanner invoked after all structural checks
func (b *Builder) WithScanner(scanner Scanner) *Builder {
	b.constraints.Scanner = scanner
	return b
}

// --- Build ---

// Build creates the validator, validating the constraints eagerly
func (b *Builder) Build() (*FileValidator, error) {
	return New(b.constraints)
}

// Constraints returns the current constraints (for inspection)
func (b *Builder) Constraints() Constraints {
	return b.constraints
}

// --- Presets ---

// ForOfficeDocuments creates a builder pre-configured for Office Open XML uploads
func ForOfficeDocuments() *Builder {
	return NewBuilder().
		Extensions(".docx", ".xlsx", ".pptx").
		MaxSize(50 * MB)
}

// ForOpenDocuments creates a builder pre-configured for OpenDocument uploads
func ForOpenDocuments() *Builder {
	return NewBuilder().
		Extensions(".odt", ".ods", ".odp", ".odg").
		MaxSize(50 * MB)
}

// ForDocuments creates a builder accepting the common document formats
func ForDocuments() *Builder {
	return NewBuilder().
		Extensions(".pdf", ".docx", ".xlsx", ".pptx", ".odt", ".ods", ".odp", ".txt", ".csv").
		MaxSize(50 * MB)
}

// Strict creates a builder with the most defensive settings
func Strict() *Builder {
	b := NewBuilder().
		RequireExtension().
		VerifySignatures().
		WithStructureValidation()
	b.constraints.Preflight.CompressionRateLimit = 50.0
	b.constraints.Preflight.MaxEntries = 2000
	return b
}
