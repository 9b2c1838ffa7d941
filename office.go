package byteguard

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"strings"
)

// OfficeStructureValidator checks that a ZIP container holds a conformant
// Office Open XML package (DOCX, XLSX, PPTX). It runs after archive
// preflight, so it assumes limits have already been enforced and only looks
// at the package layout.
type OfficeStructureValidator struct {
	// AllowMacros permits VBA macro payloads (.docm, .xlsm, .pptm content).
	// Disabled by default for security.
	AllowMacros bool
}

// DefaultOfficeStructureValidator creates an office validator with macros disabled
func DefaultOfficeStructureValidator() *OfficeStructureValidator {
	return &OfficeStructureValidator{AllowMacros: false}
}

// ValidateStructure verifies the OOXML package markers from central-directory
// entry names alone. No entry content is decompressed.
func (v *OfficeStructureValidator) ValidateStructure(reader io.ReaderAt, size int64) error {
	zipReader, err := zip.NewReader(reader, size)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return NewValidationError(ErrorTypeArchive,
			fmt.Sprintf("not a valid archive: %v", err))
	}

	var (
		hasContentTypes bool
		hasRels         bool
		hasPayload      bool
		hasMacros       bool
	)

	for _, file := range zipReader.File {
		switch file.Name {
		case "[Content_Types].xml":
			hasContentTypes = true
		case "_rels/.rels":
			hasRels = true
		}

		if strings.HasPrefix(file.Name, "word/") ||
			strings.HasPrefix(file.Name, "xl/") ||
			strings.HasPrefix(file.Name, "ppt/") {
			hasPayload = true
		}

		if isMacroEntry(file.Name) {
			hasMacros = true
		}
	}

	if !hasContentTypes {
		return NewValidationError(ErrorTypeStructure,
			"missing [Content_Types].xml - not a valid Office document")
	}
	if !hasRels {
		return NewValidationError(ErrorTypeStructure,
			"missing _rels/.rels - not a valid Office document")
	}
	if !hasPayload {
		return NewValidationError(ErrorTypeStructure,
			"missing word/, xl/ or ppt/ payload - not a valid Office document")
	}
	if hasMacros && !v.AllowMacros {
		return NewValidationError(ErrorTypeStructure,
			"macro-enabled documents are not allowed")
	}

	return nil
}

// isMacroEntry checks if an entry path indicates VBA macros
func isMacroEntry(path string) bool {
	macroIndicators := []string{
		"vbaProject.bin",
		"vbaData.xml",
		"word/vbaProject.bin",
		"xl/vbaProject.bin",
		"ppt/vbaProject.bin",
	}
	for _, indicator := range macroIndicators {
		if path == indicator {
			return true
		}
	}
	return false
}
