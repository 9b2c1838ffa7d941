package byteguard

import "strings"

// IsSuspiciousArchivePath reports whether an archive entry name could escape
// an extraction directory if it were ever joined to one. The check is pure
// string analysis: the name is never resolved against a real filesystem,
// since the whole point is catching traversal before any extraction happens.
//
// A name is suspicious when it is empty or whitespace-only, starts with a
// path separator, starts with a drive-letter pattern (single ASCII letter
// followed by ':'), or contains a ".." traversal component after
// normalizing backslashes to forward slashes.
func IsSuspiciousArchivePath(name string) bool {
	if strings.TrimSpace(name) == "" {
		return true
	}

	// Absolute Unix or Windows-style paths
	if name[0] == '/' || name[0] == '\\' {
		return true
	}

	// Drive-letter rooted paths (C:\..., d:evil)
	if len(name) >= 2 && isASCIILetter(name[0]) && name[1] == ':' {
		return true
	}

	// Normalize separators so "..\" and "../" are treated the same
	normalized := strings.ReplaceAll(name, "\\", "/")
	if strings.HasPrefix(normalized, "..") {
		return true
	}
	if strings.Contains(normalized, "../") || strings.Contains(normalized, "/..") {
		return true
	}

	return false
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
