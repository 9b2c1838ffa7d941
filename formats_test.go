package byteguard

import "testing"

func TestRequiresArchivePreflight(t *testing.T) {
	tests := []struct {
		ext  string
		want bool
	}{
		{".docx", true},
		{".DOCX", true},
		{"docx", true},
		{".xlsm", true},
		{".pptx", true},
		{".odt", true},
		{".ods", true},
		{".Odp", true},

		{".pdf", false},
		{".zip", false}, // plain archives are not document formats
		{".txt", false},
		{".doc", false}, // legacy binary format, not a ZIP container
		{"", false},
	}

	for _, tt := range tests {
		if got := RequiresArchivePreflight(tt.ext); got != tt.want {
			t.Errorf("RequiresArchivePreflight(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}

func TestExtensionFamilies(t *testing.T) {
	if !IsOOXMLExtension(".docx") || IsOOXMLExtension(".odt") {
		t.Error("OOXML family misclassified")
	}
	if !IsODFExtension(".odt") || IsODFExtension(".docx") {
		t.Error("ODF family misclassified")
	}

	// Every archive-backed extension belongs to exactly one family
	for ext := range archiveBackedExtensions {
		ooxml := IsOOXMLExtension(ext)
		odf := IsODFExtension(ext)
		if ooxml == odf {
			t.Errorf("extension %s: ooxml=%v odf=%v, want exactly one", ext, ooxml, odf)
		}
	}
}
