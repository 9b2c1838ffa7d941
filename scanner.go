package byteguard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Scanner is the pluggable malware gate. It runs last in the validation
// pipeline, after every structural check has passed. Implementations
// typically shell out to an external engine such as ClamAV.
//
// Scan returns nil for clean content and an error otherwise. Errors that are
// not already a ValidationError are wrapped with ErrorTypeScan by the
// pipeline.
type Scanner interface {
	Scan(ctx context.Context, reader io.Reader, filename string) error
}

// ScanFunc adapts a plain function into a Scanner
type ScanFunc func(ctx context.Context, reader io.Reader, filename string) error

// Scan implements Scanner
func (f ScanFunc) Scan(ctx context.Context, reader io.Reader, filename string) error {
	return f(ctx, reader, filename)
}

// NoopScanner accepts everything. Useful as a default when no engine is wired.
func NoopScanner() Scanner {
	return ScanFunc(func(context.Context, io.Reader, string) error {
		return nil
	})
}

// ContentDigest computes the xxhash digest of a reader's full content.
// Used to key scan verdicts so identical uploads skip a repeated scan.
func ContentDigest(reader io.Reader) (uint64, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, reader); err != nil {
		return 0, fmt.Errorf("failed to digest content: %w", err)
	}
	return h.Sum64(), nil
}

// CachedScanner wraps a Scanner with a digest-keyed verdict cache. Both clean
// and infected verdicts are cached: the same bytes always produce the same
// verdict from a deterministic engine.
type CachedScanner struct {
	scanner Scanner

	mu       sync.RWMutex
	verdicts map[uint64]error
}

// NewCachedScanner creates a caching wrapper around a scanner
func NewCachedScanner(scanner Scanner) *CachedScanner {
	return &CachedScanner{
		scanner:  scanner,
		verdicts: make(map[uint64]error),
	}
}

// Scan implements Scanner. Seekable readers are digested and rewound; other
// readers are buffered in memory, since the underlying engine consumes the
// full content anyway.
func (c *CachedScanner) Scan(ctx context.Context, reader io.Reader, filename string) error {
	seeker, seekable := reader.(io.ReadSeeker)
	if !seekable {
		data, err := io.ReadAll(reader)
		if err != nil {
			return NewValidationError(ErrorTypeScan, "failed to read content for scanning")
		}
		seeker = bytes.NewReader(data)
	}

	digest, err := ContentDigest(seeker)
	if err != nil {
		return NewValidationError(ErrorTypeScan, err.Error())
	}

	c.mu.RLock()
	verdict, cached := c.verdicts[digest]
	c.mu.RUnlock()
	if cached {
		return verdict
	}

	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		return NewValidationError(ErrorTypeScan, "failed to rewind content for scanning")
	}

	verdict = c.scanner.Scan(ctx, seeker, filename)
	// Context failures are transient, not verdicts
	if verdict == nil || ctx.Err() == nil {
		c.mu.Lock()
		c.verdicts[digest] = verdict
		c.mu.Unlock()
	}

	return verdict
}

// CachedVerdicts returns the number of cached verdicts
func (c *CachedScanner) CachedVerdicts() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.verdicts)
}
