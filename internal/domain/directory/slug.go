package directory

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	fallbackSlug  = "directory"
	maxSlugLength = 200
)

// Slugify folds accents, lower-cases, and joins letter/digit runs with dashes.
func Slugify(name string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	pendingDash := false
	length := 0
	for _, r := range strings.ToLower(folded) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pendingDash = b.Len() > 0
			continue
		}
		need := 1
		if pendingDash {
			need++
		}
		if length+need > maxSlugLength {
			break
		}
		if pendingDash {
			b.WriteByte('-')
			length++
			pendingDash = false
		}
		b.WriteRune(r)
		length++
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

// Disambiguate returns base when free, otherwise the first free "base-N" for N >= 2.
func Disambiguate(base string, taken []string) string {
	used := make(map[string]struct{}, len(taken))
	for _, s := range taken {
		used[s] = struct{}{}
	}
	if _, ok := used[base]; !ok {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if _, ok := used[candidate]; !ok {
			return candidate
		}
	}
}
