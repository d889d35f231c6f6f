package subtitle

import (
	"unicode"
	"unicode/utf8"
)

// MicroDVD formatting tags like "{y:i}" are opaque strings; only the case of
// the first character carries meaning. Uppercase ("{Y:i}") scopes the tag to
// every segment of its container line, lowercase ("{y:i}") to one segment.
// The stored identity is always the lowercased form, so the same tag can be
// re-rendered with either scope when lines are regrouped on output.

// normalizeTag lowercases only the first rune, leaving the rest untouched.
func normalizeTag(raw string) string {
	return lowerFirst(raw)
}

// renderTag produces the on-disk spelling of a tag for the given scope.
func renderTag(tag string, groupScoped bool) string {
	if groupScoped {
		return upperFirst(tag)
	}
	return lowerFirst(tag)
}

// isGroupScoped reports whether a raw tag block applies to the whole
// container line rather than a single segment.
func isGroupScoped(raw string) bool {
	r, _ := utf8.DecodeRuneInString(raw)
	if r == utf8.RuneError {
		return false
	}
	return unicode.IsUpper(r)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
