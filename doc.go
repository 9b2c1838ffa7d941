// Package byteguard validates user-supplied files through a layered set of
// security checks before an application trusts their content: extension
// allow- and block-listing, size limits, magic-number verification, and - for
// ZIP-container document formats - archive preflight against malicious
// payloads, plus structural validation of the document package. A pluggable
// malware scan is the final gate.
//
// # Archive preflight
//
// The heart of the package is PreflightArchive: a cheap, metadata-only
// inspection of a ZIP central directory that rejects decompression bombs,
// path traversal via crafted entry names, and oversized archives before any
// entry is decompressed or any document parser runs. Every check reads
// declared sizes only, so worst-case cost is proportional to the entry
// count, never to the uncompressed payload.
//
//	cfg := byteguard.DefaultPreflightConfig()
//	err := byteguard.PreflightArchive(file, size, cfg)
//
// Individual limits are disabled with the NoLimit sentinel:
//
//	cfg.MaxEntries = byteguard.NoLimit
//
// # Full pipeline
//
// The builder assembles the outer validator:
//
//	validator, err := byteguard.NewBuilder().
//	    Extensions(".pdf", ".docx", ".odt").
//	    MaxSize(25 * byteguard.MB).
//	    WithScanner(myScanner).
//	    Build()
//
//	err = validator.ValidateBytes(content, "report.docx")
//
// Checks run in a fixed order (filename, size, signature, preflight,
// structure, scan); the first failure wins and carries a typed
// ValidationError describing which layer rejected the file.
//
// Configuration can also be loaded from BEAVER_BYTEGUARD_* environment
// variables (the config loader prefixes every variable with BEAVER_):
//
//	cfg, err := byteguard.GetConfig()
//	constraints, err := cfg.Constraints()
//	validator, err := byteguard.New(constraints)
//
// This package does type and structure validation, not content scanning. For
// malware detection wire a Scanner implementation backed by a dedicated
// engine such as ClamAV; CachedScanner deduplicates scans of identical bytes.
package byteguard
