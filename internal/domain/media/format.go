package media

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/dustin/go-humanize"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// HumanReadableSize formats size in bytes using 1024 breakpoints and up to two decimals.
func HumanReadableSize(size int64) string {
	value := float64(size)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	return humanize.FtoaWithDigits(value, 2) + " " + sizeUnits[unit]
}

// Extension returns the lower-case suffix of fileName without the dot.
func Extension(fileName string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(fileName), "."))
}

// DisplayName is the file name without its extension.
func DisplayName(fileName string) string {
	stem, _ := splitFileName(fileName)
	return stem
}

// StorageKey is <directory>/<collection>/<file name>.
func StorageKey(directoryID, collection, fileName string) string {
	return path.Join(directoryID, collection, fileName)
}

// PublicURL joins baseURL and the escaped segments of key.
func PublicURL(baseURL, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.Join(segments, "/")
}

// TypeFromMime maps a mime type onto the coarse media category.
func TypeFromMime(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return "image"
	case strings.HasPrefix(mimeType, "video/"):
		return "video"
	case strings.HasPrefix(mimeType, "audio/"):
		return "audio"
	case strings.HasPrefix(mimeType, "text/"),
		mimeType == "application/pdf",
		mimeType == "application/rtf",
		mimeType == "application/msword",
		strings.HasPrefix(mimeType, "application/vnd.openxmlformats-officedocument"),
		strings.HasPrefix(mimeType, "application/vnd.oasis.opendocument"):
		return "document"
	default:
		return "other"
	}
}

// UniqueFileName returns fileName, or "<stem>-N<ext>" for the first N >= 2 not in taken.
func UniqueFileName(fileName string, taken map[string]struct{}) string {
	if _, ok := taken[fileName]; !ok {
		return fileName
	}
	stem, ext := splitFileName(fileName)
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, n, ext)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

func splitFileName(fileName string) (stem, ext string) {
	ext = path.Ext(fileName)
	stem = strings.TrimSuffix(fileName, ext)
	if stem == "" {
		return fileName, ""
	}
	return stem, ext
}
