package byteguard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// Validator provides the main interface for validating files
type Validator interface {
	// Validate validates a file against the validator's constraints
	Validate(file *multipart.FileHeader) error

	// ValidateWithContext validates a file with context for potential cancellation
	ValidateWithContext(ctx context.Context, file *multipart.FileHeader) error

	// ValidateReader validates a file from an io.Reader with a filename
	ValidateReader(reader io.Reader, filename string, size int64) error

	// ValidateBytes validates a file from a byte slice with a filename
	ValidateBytes(content []byte, filename string) error

	// GetConstraints returns the current validation constraints
	GetConstraints() Constraints
}

// FileValidator implements the Validator interface. It applies the layered
// pipeline in a fixed order: filename and extension rules, size limits,
// magic-number verification, archive preflight for ZIP-container document
// formats, document structure validation, and finally the optional malware
// scan. The first failing layer wins and nothing after it runs.
type FileValidator struct {
	constraints Constraints
}

// New creates a new file validator, validating the constraints eagerly.
// Once construction succeeds the constraints are trusted for the lifetime
// of the validator and never re-checked.
func New(constraints Constraints) (*FileValidator, error) {
	if err := constraints.Validate(); err != nil {
		return nil, err
	}
	return &FileValidator{constraints: constraints}, nil
}

// NewDefault creates a new file validator with sensible default constraints
func NewDefault() *FileValidator {
	v, err := New(DefaultConstraints())
	if err != nil {
		// DefaultConstraints is known-valid
		panic(err)
	}
	return v
}

// Validate validates a file against the validator's constraints
func (v *FileValidator) Validate(file *multipart.FileHeader) error {
	return v.ValidateWithContext(context.Background(), file)
}

// ValidateWithContext validates a file with context for potential cancellation
func (v *FileValidator) ValidateWithContext(ctx context.Context, file *multipart.FileHeader) error {
	if file == nil {
		return NewValidationError(ErrorTypeInput, "nil file header")
	}

	f, err := file.Open()
	if err != nil {
		return NewValidationError(ErrorTypeInput, "failed to open file")
	}
	defer f.Close()

	return v.validate(ctx, f, file.Filename, file.Size)
}

// ValidateReader validates a file from an io.Reader with a filename.
// For archive-backed document formats the reader should implement
// io.ReaderAt; non-seekable readers are buffered only when small.
func (v *FileValidator) ValidateReader(reader io.Reader, filename string, size int64) error {
	return v.validate(context.Background(), reader, filename, size)
}

// ValidateBytes validates a file from a byte slice with a filename
func (v *FileValidator) ValidateBytes(content []byte, filename string) error {
	return v.validate(context.Background(), bytes.NewReader(content), filename, int64(len(content)))
}

// IsValid is the boolean presentation of ValidateBytes for callers that do
// not branch on failure reasons. The underlying pipeline is identical.
func (v *FileValidator) IsValid(content []byte, filename string) bool {
	return v.ValidateBytes(content, filename) == nil
}

// GetConstraints returns the current validation constraints
func (v *FileValidator) GetConstraints() Constraints {
	return v.constraints
}

func (v *FileValidator) validate(ctx context.Context, reader io.Reader, filename string, size int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := v.validateFileName(filename); err != nil {
		return err
	}

	if v.constraints.MaxFileSize != NoLimit && size > v.constraints.MaxFileSize {
		return NewValidationError(ErrorTypeSize,
			fmt.Sprintf("file size too big: %d bytes (max: %d bytes)", size, v.constraints.MaxFileSize))
	}
	if v.constraints.MinFileSize != NoLimit && v.constraints.MinFileSize > 0 && size < v.constraints.MinFileSize {
		return NewValidationError(ErrorTypeSize,
			fmt.Sprintf("file size too small: %d bytes (min: %d bytes)", size, v.constraints.MinFileSize))
	}

	ext := strings.ToLower(filepath.Ext(filename))

	if v.constraints.VerifySignatures {
		if err := v.verifySignature(reader, ext); err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if RequiresArchivePreflight(ext) {
		readerAt, archiveSize, buffered, err := asReaderAt(reader, size)
		if err != nil {
			return err
		}
		if buffered {
			// Buffering drained the original reader; later stages read the
			// buffered copy instead.
			reader = io.NewSectionReader(readerAt, 0, archiveSize)
		}

		if err := PreflightArchiveAt(readerAt, archiveSize, v.constraints.Preflight); err != nil {
			return err
		}

		if v.constraints.ValidateStructure {
			if err := v.validateStructure(readerAt, archiveSize, ext); err != nil {
				return err
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if v.constraints.Scanner != nil {
		if seeker, ok := reader.(io.Seeker); ok {
			if _, err := seeker.Seek(0, io.SeekStart); err != nil {
				return NewValidationError(ErrorTypeInput, "failed to rewind content for scanning")
			}
		}
		if err := v.constraints.Scanner.Scan(ctx, reader, filename); err != nil {
			if IsValidationError(err) {
				return err
			}
			return NewValidationError(ErrorTypeScan, err.Error())
		}
	}

	return nil
}

// verifySignature checks the file's magic bytes against its extension and
// rewinds the reader afterwards. Non-seekable readers are skipped: the
// extension checks already ran and the header cannot be un-consumed.
func (v *FileValidator) verifySignature(reader io.Reader, ext string) error {
	seeker, ok := reader.(io.ReadSeeker)
	if !ok {
		return nil
	}

	header := make([]byte, 512)
	n, err := io.ReadFull(seeker, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return NewValidationError(ErrorTypeInput, "failed to read file header")
	}
	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		return NewValidationError(ErrorTypeInput, "failed to rewind after signature check")
	}

	if !MatchesSignature(header[:n], ext) {
		detected := DetectMIMEFromBytes(header[:n])
		return NewValidationError(ErrorTypeSignature,
			fmt.Sprintf("content signature %s does not match extension %s", detected, ext))
	}
	return nil
}

func (v *FileValidator) validateStructure(reader io.ReaderAt, size int64, ext string) error {
	switch {
	case IsOOXMLExtension(ext):
		office := &OfficeStructureValidator{AllowMacros: v.constraints.AllowMacros}
		return office.ValidateStructure(reader, size)
	case IsODFExtension(ext):
		return DefaultODFStructureValidator().ValidateStructure(reader, size)
	default:
		return nil
	}
}

// validateFileName validates a filename against the validator's constraints
func (v *FileValidator) validateFileName(filename string) error {
	if len(filename) == 0 {
		return NewValidationError(ErrorTypeFileName, "empty filename")
	}

	if v.constraints.MaxNameLength > 0 && len(filename) > v.constraints.MaxNameLength {
		return NewValidationError(ErrorTypeFileName,
			fmt.Sprintf("filename exceeds maximum length of %d characters", v.constraints.MaxNameLength))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) == 0 && v.constraints.RequireExtension {
		return NewValidationError(ErrorTypeExtension, "file must have an extension")
	}

	// Blocked extensions win over the allow-list
	for _, blockedExt := range v.constraints.BlockedExts {
		if strings.EqualFold(ext, blockedExt) {
			return NewValidationError(ErrorTypeExtension,
				fmt.Sprintf("file extension %s is blocked", ext))
		}
	}

	if len(v.constraints.AllowedExts) > 0 {
		allowed := false
		for _, allowedExt := range v.constraints.AllowedExts {
			if strings.EqualFold(ext, allowedExt) {
				allowed = true
				break
			}
		}
		if !allowed {
			return NewValidationError(ErrorTypeExtension,
				fmt.Sprintf("file extension %s is not allowed", ext))
		}
	}

	return nil
}

// asReaderAt adapts a reader for random access. Small non-seekable sources
// are buffered in memory; large ones are rejected, since reading the central
// directory needs a seek to the end of the content. The buffered flag tells
// the caller the original reader has been drained into the returned one.
//
// The declared size is not trusted: buffering is capped at the 1MB threshold
// regardless of what the caller claims, so a lying size cannot force
// unbounded reads.
func asReaderAt(reader io.Reader, size int64) (io.ReaderAt, int64, bool, error) {
	if readerAt, ok := reader.(io.ReaderAt); ok {
		return readerAt, size, false, nil
	}
	if size > 1*MB {
		return nil, 0, false, NewValidationError(ErrorTypeInput,
			"large archives require a seekable reader (e.g., *os.File) for preflight")
	}
	data, err := io.ReadAll(io.LimitReader(reader, 1*MB+1))
	if err != nil {
		return nil, 0, false, NewValidationError(ErrorTypeInput, "failed to read archive content")
	}
	if int64(len(data)) > 1*MB {
		return nil, 0, false, NewValidationError(ErrorTypeInput,
			"archive content exceeds its declared size; use a seekable reader (e.g., *os.File)")
	}
	return bytes.NewReader(data), int64(len(data)), true, nil
}
