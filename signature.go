package byteguard

import (
	"bytes"
	"net/http"
	"strings"
)

// MagicSignature defines a file type signature
type MagicSignature struct {
	MIME   string
	Offset int    // Offset from start of file
	Magic  []byte // Magic bytes to match
}

// magicSignatures contains file signatures for MIME detection.
// Ordered by specificity (most specific first). The table is initialized once
// and never mutated.
var magicSignatures = []MagicSignature{
	// Documents
	{MIME: "application/pdf", Offset: 0, Magic: []byte("%PDF-")},
	{MIME: "application/x-ole-storage", Offset: 0, Magic: []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // legacy .doc/.xls/.ppt
	{MIME: "application/rtf", Offset: 0, Magic: []byte("{\\rtf")},

	// Archives - ZIP-based
	// Note: OOXML (DOCX, XLSX, PPTX) and ODF documents also use ZIP framing;
	// the extension decides which structural validator runs afterwards.
	{MIME: "application/zip", Offset: 0, Magic: []byte{0x50, 0x4B, 0x03, 0x04}},
	{MIME: "application/zip", Offset: 0, Magic: []byte{0x50, 0x4B, 0x05, 0x06}}, // Empty ZIP
	{MIME: "application/zip", Offset: 0, Magic: []byte{0x50, 0x4B, 0x07, 0x08}}, // Spanned ZIP

	// Archives - Other
	{MIME: "application/gzip", Offset: 0, Magic: []byte{0x1F, 0x8B}},
	{MIME: "application/x-rar-compressed", Offset: 0, Magic: []byte("Rar!\x1a\x07\x00")},
	{MIME: "application/x-rar-compressed", Offset: 0, Magic: []byte("Rar!\x1a\x07\x01\x00")}, // RAR5
	{MIME: "application/x-7z-compressed", Offset: 0, Magic: []byte{'7', 'z', 0xBC, 0xAF, 0x27, 0x1C}},

	// Images
	{MIME: "image/jpeg", Offset: 0, Magic: []byte{0xFF, 0xD8, 0xFF}},
	{MIME: "image/png", Offset: 0, Magic: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	{MIME: "image/gif", Offset: 0, Magic: []byte("GIF87a")},
	{MIME: "image/gif", Offset: 0, Magic: []byte("GIF89a")},
	{MIME: "image/webp", Offset: 8, Magic: []byte("WEBP")}, // After RIFF header
	{MIME: "image/bmp", Offset: 0, Magic: []byte("BM")},
	{MIME: "image/tiff", Offset: 0, Magic: []byte{0x49, 0x49, 0x2A, 0x00}}, // Little endian
	{MIME: "image/tiff", Offset: 0, Magic: []byte{0x4D, 0x4D, 0x00, 0x2A}}, // Big endian

	// Text/Data
	{MIME: "application/xml", Offset: 0, Magic: []byte("<?xml")},
	{MIME: "application/json", Offset: 0, Magic: []byte("{")},
	{MIME: "application/json", Offset: 0, Magic: []byte("[")},

	// Executables (for blocking)
	{MIME: "application/x-msdownload", Offset: 0, Magic: []byte("MZ")},                    // EXE/DLL
	{MIME: "application/x-mach-binary", Offset: 0, Magic: []byte{0xCF, 0xFA, 0xED, 0xFE}}, // Mach-O 64-bit
	{MIME: "application/x-executable", Offset: 0, Magic: []byte{0x7F, 'E', 'L', 'F'}},     // ELF
}

// extensionSignatures maps a file extension to the MIME types whose magic
// bytes are acceptable for it. Extensions absent from this table have no
// binary signature we can verify (plain text formats, mostly).
var extensionSignatures = map[string][]string{
	".pdf":  {"application/pdf"},
	".zip":  {"application/zip"},
	".jpg":  {"image/jpeg"},
	".jpeg": {"image/jpeg"},
	".png":  {"image/png"},
	".gif":  {"image/gif"},
	".webp": {"image/webp"},
	".bmp":  {"image/bmp"},
	".tiff": {"image/tiff"},
	".tif":  {"image/tiff"},
	".rtf":  {"application/rtf"},
	// Legacy binary office formats share the OLE2 compound file header
	".doc": {"application/x-ole-storage"},
	".xls": {"application/x-ole-storage"},
	".ppt": {"application/x-ole-storage"},
}

func init() {
	// Every ZIP-container document format carries plain ZIP framing
	for ext := range archiveBackedExtensions {
		extensionSignatures[ext] = []string{"application/zip"}
	}
}

// DetectMIMEFromBytes detects the MIME type of a file header using the magic
// signature table, falling back to http.DetectContentType.
func DetectMIMEFromBytes(data []byte) string {
	if len(data) == 0 {
		return "application/octet-stream"
	}

	if mime := detectByMagic(data); mime != "" {
		return mime
	}

	contentType := http.DetectContentType(data)
	// Remove charset suffix
	if idx := strings.Index(contentType, ";"); idx > 0 {
		contentType = contentType[:idx]
	}
	return contentType
}

// MatchesSignature reports whether a file header is plausible for the given
// extension. Extensions without a known binary signature always match; the
// signature table cannot prove anything about them either way.
func MatchesSignature(header []byte, ext string) bool {
	expected, ok := extensionSignatures[normalizeExtension(ext)]
	if !ok {
		return true
	}

	detected := detectByMagic(header)
	for _, mime := range expected {
		if mime == detected {
			return true
		}
	}
	return false
}

// detectByMagic checks data against known magic signatures
func detectByMagic(data []byte) string {
	for _, sig := range magicSignatures {
		if sig.Offset+len(sig.Magic) > len(data) {
			continue
		}
		if bytes.Equal(data[sig.Offset:sig.Offset+len(sig.Magic)], sig.Magic) {
			return sig.MIME
		}
	}
	return ""
}

// IsExecutableMIME returns true if the MIME type indicates an executable
func IsExecutableMIME(mime string) bool {
	executableMIMEs := map[string]bool{
		"application/x-msdownload":    true,
		"application/x-msdos-program": true,
		"application/x-executable":    true,
		"application/x-mach-binary":   true,
		"application/x-sharedlib":     true,
		"application/x-dosexec":       true,
	}
	return executableMIMEs[mime]
}
