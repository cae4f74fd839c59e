package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// sourceKey names the directory holding every snapshot of source. It joins
// the file name with a short hash of the absolute path so keymaps with the
// same name in different folders stay apart.
func sourceKey(source string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(source)))
	return sanitize(filepath.Base(source)) + "-" + hex.EncodeToString(sum[:4])
}

// sanitize replaces characters that are awkward in directory names.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', ' ', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
