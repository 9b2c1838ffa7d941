package byteguard

import "strings"

// archiveBackedExtensions are the document formats whose on-disk
// representation is a ZIP container. Files with these extensions go through
// archive preflight before any document-level parsing is attempted.
var archiveBackedExtensions = map[string]struct{}{
	// Office Open XML
	".docx": {}, ".docm": {}, ".dotx": {}, ".dotm": {},
	".xlsx": {}, ".xlsm": {}, ".xltx": {}, ".xltm": {},
	".pptx": {}, ".pptm": {}, ".potx": {}, ".potm": {},
	".ppsx": {}, ".ppsm": {},
	// OpenDocument
	".odt": {}, ".ott": {},
	".ods": {}, ".ots": {},
	".odp": {}, ".otp": {},
	".odg": {}, ".otg": {},
}

// ooxmlExtensions are the archive-backed formats validated by
// OfficeStructureValidator.
var ooxmlExtensions = map[string]struct{}{
	".docx": {}, ".docm": {}, ".dotx": {}, ".dotm": {},
	".xlsx": {}, ".xlsm": {}, ".xltx": {}, ".xltm": {},
	".pptx": {}, ".pptm": {}, ".potx": {}, ".potm": {},
	".ppsx": {}, ".ppsm": {},
}

// odfExtensions are the archive-backed formats validated by
// ODFStructureValidator.
var odfExtensions = map[string]struct{}{
	".odt": {}, ".ott": {},
	".ods": {}, ".ots": {},
	".odp": {}, ".otp": {},
	".odg": {}, ".otg": {},
}

// RequiresArchivePreflight reports whether files with the given extension are
// ZIP-container documents that must pass archive preflight. The comparison is
// case-insensitive and tolerates a missing leading dot.
func RequiresArchivePreflight(ext string) bool {
	_, ok := archiveBackedExtensions[normalizeExtension(ext)]
	return ok
}

// IsOOXMLExtension reports whether the extension is an Office Open XML format
func IsOOXMLExtension(ext string) bool {
	_, ok := ooxmlExtensions[normalizeExtension(ext)]
	return ok
}

// IsODFExtension reports whether the extension is an OpenDocument format
func IsODFExtension(ext string) bool {
	_, ok := odfExtensions[normalizeExtension(ext)]
	return ok
}

func normalizeExtension(ext string) string {
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return strings.ToLower(ext)
}
