// Package validation holds small composable field checks. A Rule inspects one
// value and returns a FieldError or nil; a Pipeline collects the failures.
package validation

import (
	"encoding/base64"
	"fmt"
	"path"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"jan-server/catalog-api/internal/utils/platformerrors"
)

// FieldError is the failure of a single field.
type FieldError = platformerrors.FieldError

// Rule checks a value bound to a field name.
type Rule[T any] func(field string, value T) *FieldError

// Check runs rules in order and returns the first failure.
func Check[T any](field string, value T, rules ...Rule[T]) *FieldError {
	for _, rule := range rules {
		if fe := rule(field, value); fe != nil {
			return fe
		}
	}
	return nil
}

// Pipeline accumulates field errors across many checks.
type Pipeline struct {
	errs []FieldError
}

// Add records fe when it is not nil.
func (p *Pipeline) Add(fe *FieldError) {
	if fe != nil {
		p.errs = append(p.errs, *fe)
	}
}

// Fail records a failure directly.
func (p *Pipeline) Fail(field, message string) {
	p.errs = append(p.errs, FieldError{Field: field, Message: message})
}

// HasField reports whether field already failed.
func (p *Pipeline) HasField(field string) bool {
	return slices.ContainsFunc(p.errs, func(fe FieldError) bool { return fe.Field == field })
}

// Valid reports whether nothing failed so far.
func (p *Pipeline) Valid() bool {
	return len(p.errs) == 0
}

// Errors returns the collected failures in the order they were added.
func (p *Pipeline) Errors() []FieldError {
	return slices.Clone(p.errs)
}

func fail(field, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Required rejects empty or whitespace-only strings.
func Required(field, value string) *FieldError {
	if strings.TrimSpace(value) == "" {
		return fail(field, "The %s field is required.", field)
	}
	return nil
}

// MaxLength rejects strings longer than n characters.
func MaxLength(n int) Rule[string] {
	return func(field, value string) *FieldError {
		if utf8.RuneCountInString(value) > n {
			return fail(field, "The %s field must not be greater than %d characters.", field, n)
		}
		return nil
	}
}

// OneOf accepts only the listed values.
func OneOf(allowed ...string) Rule[string] {
	return func(field, value string) *FieldError {
		if !slices.Contains(allowed, value) {
			return fail(field, "The selected %s is invalid.", field)
		}
		return nil
	}
}

// Base64 accepts a string only when decoding and re-encoding it yields the same text.
func Base64(field, value string) *FieldError {
	if !IsCanonicalBase64(value) {
		return fail(field, "The %s field must be a valid base64 string.", field)
	}
	return nil
}

// IsCanonicalBase64 reports whether encode(decode(s)) == s under standard padded encoding.
func IsCanonicalBase64(s string) bool {
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return false
	}
	return base64.StdEncoding.EncodeToString(decoded) == s
}

// FileName accepts bare file names: no separators, no dot segments, no control characters.
func FileName(field, value string) *FieldError {
	if value == "." || value == ".." || strings.ContainsAny(value, `/\`) || hasControlChars(value) {
		return fail(field, "The %s field must be a plain file name.", field)
	}
	return nil
}

var pathSegment = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// RelativePath accepts slash separated segments without dot segments or leading slash.
func RelativePath(field, value string) *FieldError {
	if value != path.Clean(value) || strings.HasPrefix(value, "/") {
		return fail(field, "The %s field must be a relative path.", field)
	}
	for _, segment := range strings.Split(value, "/") {
		if !pathSegment.MatchString(segment) || segment == ".." {
			return fail(field, "The %s field must be a relative path.", field)
		}
	}
	return nil
}

// Field joins path components into the dotted field notation used in error reports.
func Field(parts ...any) string {
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			b.WriteByte('.')
		}
		fmt.Fprint(&b, part)
	}
	return b.String()
}

func hasControlChars(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return r < 0x20 || r == 0x7f }) >= 0
}
