package byteguard

import (
	"context"
	"io"
	"testing"
)

func TestBuilderChaining(t *testing.T) {
	b := NewBuilder().
		MaxSize(10 * MB).
		MinSize(100).
		Extensions(".pdf", ".docx").
		BlockExtensions(".js").
		MaxNameLength(128).
		MaxArchiveEntries(500).
		MaxEntrySize(16 * MB).
		MaxTotalSize(64 * MB).
		MaxCompressionRate(50).
		AllowMacros()

	c := b.Constraints()
	if c.MaxFileSize != 10*MB {
		t.Errorf("MaxFileSize = %d, want %d", c.MaxFileSize, 10*MB)
	}
	if c.MinFileSize != 100 {
		t.Errorf("MinFileSize = %d, want 100", c.MinFileSize)
	}
	if len(c.AllowedExts) != 2 {
		t.Errorf("AllowedExts = %v, want 2 entries", c.AllowedExts)
	}
	if c.MaxNameLength != 128 {
		t.Errorf("MaxNameLength = %d, want 128", c.MaxNameLength)
	}
	if c.Preflight.MaxEntries != 500 {
		t.Errorf("Preflight.MaxEntries = %d, want 500", c.Preflight.MaxEntries)
	}
	if c.Preflight.EntryUncompressedSizeLimit != 16*MB {
		t.Errorf("EntryUncompressedSizeLimit = %d, want %d", c.Preflight.EntryUncompressedSizeLimit, 16*MB)
	}
	if c.Preflight.TotalUncompressedSizeLimit != 64*MB {
		t.Errorf("TotalUncompressedSizeLimit = %d, want %d", c.Preflight.TotalUncompressedSizeLimit, 64*MB)
	}
	if c.Preflight.CompressionRateLimit != 50 {
		t.Errorf("CompressionRateLimit = %v, want 50", c.Preflight.CompressionRateLimit)
	}
	if !c.AllowMacros {
		t.Error("AllowMacros not applied")
	}

	if _, err := b.Build(); err != nil {
		t.Fatalf("valid builder must build: %v", err)
	}
}

func TestBuilderToggles(t *testing.T) {
	c := NewBuilder().
		SkipSignatures().
		WithoutPreflight().
		WithoutStructureValidation().
		AllowNoExtension().
		AllowSuspiciousPaths().
		Constraints()

	if c.VerifySignatures || c.Preflight.Enabled || c.ValidateStructure ||
		c.RequireExtension || c.Preflight.RejectSuspiciousPaths {
		t.Errorf("toggles not applied: %+v", c)
	}

	c = NewBuilder().
		VerifySignatures().
		RequireExtension().
		WithStructureValidation().
		Constraints()
	if !c.VerifySignatures || !c.RequireExtension || !c.ValidateStructure {
		t.Errorf("toggles not applied: %+v", c)
	}
}

func TestBuilderWithPreflight(t *testing.T) {
	cfg := UnlimitedPreflightConfig()
	c := NewBuilder().WithPreflight(cfg).Constraints()
	if c.Preflight != cfg {
		t.Errorf("WithPreflight did not replace the config: %+v", c.Preflight)
	}
}

func TestBuilderWithScanner(t *testing.T) {
	s := ScanFunc(func(context.Context, io.Reader, string) error { return nil })
	v := mustBuild(t, NewBuilder().WithScanner(s))
	if v.GetConstraints().Scanner == nil {
		t.Error("scanner not applied")
	}
}

func TestBuilderBuildRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		b    *Builder
	}{
		{"zero entry limit", NewBuilder().MaxArchiveEntries(0)},
		{"negative size limit", NewBuilder().MaxEntrySize(-5)},
		{"min above max", NewBuilder().MinSize(10 * MB).MaxSize(1 * MB)},
		{"zero compression rate", NewBuilder().MaxCompressionRate(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.b.Build(); !IsErrorOfType(err, ErrorTypeConfig) {
				t.Errorf("expected config error, got %v", err)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	for _, tt := range []struct {
		name string
		b    *Builder
	}{
		{"office", ForOfficeDocuments()},
		{"opendocument", ForOpenDocuments()},
		{"documents", ForDocuments()},
		{"strict", Strict()},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.b.Build(); err != nil {
				t.Errorf("preset must build cleanly: %v", err)
			}
		})
	}

	c := ForOfficeDocuments().Constraints()
	if !c.Preflight.Enabled {
		t.Error("office preset must keep preflight enabled")
	}
	if c.AllowMacros {
		t.Error("office preset must not allow macros")
	}

	c = Strict().Constraints()
	if c.Preflight.CompressionRateLimit >= DefaultPreflightConfig().CompressionRateLimit {
		t.Error("strict preset must tighten the compression rate limit")
	}
	if c.Preflight.MaxEntries >= DefaultPreflightConfig().MaxEntries {
		t.Error("strict preset must tighten the entry count limit")
	}
}
