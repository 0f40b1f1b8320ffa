package utils

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ImageKey returns a collision resistant object name that keeps the
// lower-cased extension of the original file name.
func ImageKey(originalName string) string {
	return uuid.New().String() + NormalizedExt(originalName)
}

// NormalizedExt returns the lower-cased extension of name, or "" when it
// has none.
func NormalizedExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if ext == "." {
		return ""
	}
	return ext
}

// DetectContentType sniffs the MIME type from the file content, ignoring
// whatever the client claimed.
func DetectContentType(data []byte) string {
	return mimetype.Detect(data).String()
}

// DetectExtension returns the extension matching the sniffed type, e.g. ".png".
func DetectExtension(data []byte) string {
	return mimetype.Detect(data).Extension()
}

func IsImageType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

func IsAllowedExt(ext string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if strings.EqualFold(ext, a) {
			return true
		}
	}
	return false
}

// JoinURLPath joins a path prefix and a key with exactly one separator.
func JoinURLPath(prefix, key string) string {
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(key, "/")
}
