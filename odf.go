package byteguard

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"strings"
)

const odfMIMEPrefix = "application/vnd.oasis.opendocument."

// ODFStructureValidator checks that a ZIP container holds a conformant
// OpenDocument package (ODT, ODS, ODP, ODG). Like the office validator it
// runs after archive preflight.
//
// Path safety of references inside META-INF/manifest.xml is a concern of the
// document parser, not of this validator: only top-level archive entries are
// inspected here.
type ODFStructureValidator struct{}

// DefaultODFStructureValidator creates an OpenDocument structure validator
func DefaultODFStructureValidator() *ODFStructureValidator {
	return &ODFStructureValidator{}
}

// ValidateStructure verifies the OpenDocument package conventions: a stored
// (uncompressed) "mimetype" entry as the first entry, carrying an
// OpenDocument media type, and a META-INF/manifest.xml entry.
func (v *ODFStructureValidator) ValidateStructure(reader io.ReaderAt, size int64) error {
	zipReader, err := zip.NewReader(reader, size)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return NewValidationError(ErrorTypeArchive,
			fmt.Sprintf("not a valid archive: %v", err))
	}

	if len(zipReader.File) == 0 {
		return NewValidationError(ErrorTypeStructure,
			"empty archive - not a valid OpenDocument file")
	}

	first := zipReader.File[0]
	if first.Name != "mimetype" {
		return NewValidationError(ErrorTypeStructure,
			fmt.Sprintf("first entry must be \"mimetype\", got %q", first.Name))
	}
	// ODF requires the mimetype entry stored uncompressed so magic-number
	// tools can read the media type at a fixed offset.
	if first.Method != zip.Store {
		return NewValidationError(ErrorTypeStructure,
			"\"mimetype\" entry must be stored uncompressed")
	}

	mediaType, err := readStoredEntry(first, 256)
	if err != nil {
		return NewValidationError(ErrorTypeStructure,
			fmt.Sprintf("cannot read \"mimetype\" entry: %v", err))
	}
	if !strings.HasPrefix(mediaType, odfMIMEPrefix) {
		return NewValidationError(ErrorTypeStructure,
			fmt.Sprintf("unexpected media type %q - not an OpenDocument file", mediaType))
	}

	hasManifest := false
	for _, file := range zipReader.File {
		if file.Name == "META-INF/manifest.xml" {
			hasManifest = true
			break
		}
	}
	if !hasManifest {
		return NewValidationError(ErrorTypeStructure,
			"missing META-INF/manifest.xml - not a valid OpenDocument file")
	}

	return nil
}

// readStoredEntry reads a small stored entry, capped at limit bytes. The
// mimetype entry is tens of bytes; anything larger is already suspect.
func readStoredEntry(file *zip.File, limit int64) (string, error) {
	rc, err := file.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, limit))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
