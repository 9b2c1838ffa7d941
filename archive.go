package byteguard

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
)

// PreflightArchive inspects a candidate ZIP container's central directory and
// rejects it if any configured limit is violated. Only declared metadata is
// read: no entry is ever decompressed, so worst-case cost is proportional to
// the entry count, never to the uncompressed payload.
//
// For efficient validation pass a reader that implements io.ReaderAt (e.g.
// *os.File, *bytes.Reader). Non-seekable readers are only supported for small
// files (<1MB); zip.NewReader needs random access to find the central
// directory at the end of the file.
//
// The outcome is deterministic: entries are inspected in central-directory
// order and checks within an entry run in a fixed sequence (path, size
// metadata sanity, per-entry size, running total, compression ratio). The
// first violation wins and no further entries are inspected.
func PreflightArchive(reader io.Reader, size int64, cfg PreflightConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !cfg.Enabled {
		return nil
	}

	if reader == nil {
		return NewValidationError(ErrorTypeInput, "nil archive content source")
	}
	if size <= 0 {
		return NewValidationError(ErrorTypeInput, "empty archive content source")
	}

	if readerAt, ok := reader.(io.ReaderAt); ok {
		return preflightReaderAt(readerAt, size, cfg)
	}

	// Fallback for non-seekable readers - only allow small files. The
	// declared size is not trusted: reading is capped at the threshold so a
	// lying caller cannot force unbounded buffering.
	if size > 1*MB {
		return NewValidationError(ErrorTypeInput,
			"large archives require a seekable reader (e.g., *os.File) for preflight")
	}

	data, err := io.ReadAll(io.LimitReader(reader, 1*MB+1))
	if err != nil {
		return NewValidationError(ErrorTypeInput, "failed to read archive content")
	}
	if int64(len(data)) > 1*MB {
		return NewValidationError(ErrorTypeInput,
			"archive content exceeds its declared size; use a seekable reader (e.g., *os.File)")
	}

	return preflightReaderAt(bytes.NewReader(data), int64(len(data)), cfg)
}

// PreflightArchiveAt is PreflightArchive for sources that already support
// random access.
func PreflightArchiveAt(reader io.ReaderAt, size int64, cfg PreflightConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !cfg.Enabled {
		return nil
	}
	if reader == nil {
		return NewValidationError(ErrorTypeInput, "nil archive content source")
	}
	if size <= 0 {
		return NewValidationError(ErrorTypeInput, "empty archive content source")
	}
	return preflightReaderAt(reader, size, cfg)
}

func preflightReaderAt(reader io.ReaderAt, size int64, cfg PreflightConfig) error {
	// zip.NewReader parses only the central directory at the end of the file.
	// ErrInsecurePath is ignored here: path safety is our own check, governed
	// by RejectSuspiciousPaths, not by the zipinsecurepath GODEBUG setting.
	zipReader, err := zip.NewReader(reader, size)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return NewValidationError(ErrorTypeArchive,
			fmt.Sprintf("not a valid archive: %v", err))
	}

	// Entry count is known up front from the central directory, so this check
	// short-circuits before any per-entry work.
	if cfg.maxEntriesSet() && len(zipReader.File) > cfg.MaxEntries {
		return NewValidationError(ErrorTypeLimit,
			fmt.Sprintf("archive declares %d entries (max: %d)", len(zipReader.File), cfg.MaxEntries))
	}

	var totalUncompressed uint64
	for _, file := range zipReader.File {
		if cfg.RejectSuspiciousPaths && IsSuspiciousArchivePath(file.Name) {
			return NewValidationError(ErrorTypeLimit,
				fmt.Sprintf("suspicious entry path: %q", file.Name))
		}

		uncompressed := file.UncompressedSize64
		compressed := file.CompressedSize64

		// Declared sizes beyond int64 range cannot be honest; treat them as
		// corrupt metadata rather than feeding them to the limit arithmetic.
		if uncompressed > math.MaxInt64 || compressed > math.MaxInt64 {
			return NewValidationError(ErrorTypeLimit,
				fmt.Sprintf("corrupt size metadata for entry %q", file.Name))
		}

		if cfg.entryLimitSet() && uncompressed > uint64(cfg.EntryUncompressedSizeLimit) {
			return NewValidationError(ErrorTypeLimit,
				fmt.Sprintf("entry %q would expand to %d bytes (max: %d bytes)",
					file.Name, uncompressed, cfg.EntryUncompressedSizeLimit))
		}

		// Running total is checked incrementally so the loop never needs to
		// hold more than one entry's metadata.
		totalUncompressed += uncompressed
		if cfg.totalLimitSet() && totalUncompressed > uint64(cfg.TotalUncompressedSizeLimit) {
			return NewValidationError(ErrorTypeLimit,
				fmt.Sprintf("archive would expand to %d bytes total (max: %d bytes)",
					totalUncompressed, cfg.TotalUncompressedSizeLimit))
		}

		if uncompressed > 0 {
			if compressed == 0 {
				// Nonzero output from zero input declares an infinite ratio
				return NewValidationError(ErrorTypeLimit,
					fmt.Sprintf("entry %q declares %d uncompressed bytes from zero compressed bytes",
						file.Name, uncompressed))
			}
			ratio := float64(uncompressed) / float64(compressed)
			if cfg.rateLimitSet() && ratio > cfg.CompressionRateLimit {
				return NewValidationError(ErrorTypeLimit,
					fmt.Sprintf("suspicious compression ratio for entry %q: %.2f:1 (max: %.2f:1)",
						file.Name, ratio, cfg.CompressionRateLimit))
			}
		}
	}

	return nil
}
