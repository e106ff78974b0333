// Package ident validates namespace and module-identifier syntax.
//
// Two modes exist. Qualified names (goog.provide namespaces) must be a
// dot-separated sequence of legal property identifiers; whether reserved
// words are legal as property segments depends on the language level.
// Module IDs (goog.module / goog.declareModuleId) are looser: any
// dot-separated run of identifier characters that starts like an identifier.
package ident

import (
	"regexp"
	"strings"
)

// Reserved words that may not appear as an identifier. Older language levels
// also forbid them as property-name segments of a qualified name.
var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true,
}

// IsIdentifierStart reports whether r may begin an identifier segment.
// Namespaces are restricted to ASCII.
func IsIdentifierStart(r rune) bool {
	return r == '_' || r == '$' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// IsIdentifierPart reports whether r may appear after the first character of
// an identifier segment.
func IsIdentifierPart(r rune) bool {
	return IsIdentifierStart(r) || (r >= '0' && r <= '9')
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if i == 0 {
			if !IsIdentifierStart(r) {
				return false
			}
		} else if !IsIdentifierPart(r) {
			return false
		}
	}
	return s != ""
}

// IsValidQualifiedName reports whether name is a legal dotted qualified name.
// The first segment must always be a non-reserved identifier; later segments
// may be reserved words only when allowReservedProps is set (ES5 and later).
func IsValidQualifiedName(name string, allowReservedProps bool) bool {
	for i, seg := range strings.Split(name, ".") {
		if !isIdentifier(seg) {
			return false
		}
		if reservedWords[seg] && (i == 0 || !allowReservedProps) {
			return false
		}
	}
	return true
}

// Must match closure/base.js's goog.VALID_MODULE_RE_.
var moduleIDPattern = regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z0-9._$]*$`)

// IsValidModuleID reports whether id is a legal module identifier: every
// dotted segment non-empty and composed of identifier characters, and the
// whole string anchored to an identifier-like start.
func IsValidModuleID(id string) bool {
	for _, seg := range strings.Split(id, ".") {
		if seg == "" {
			return false
		}
		for _, r := range seg {
			if !IsIdentifierPart(r) {
				return false
			}
		}
	}
	return moduleIDPattern.MatchString(id)
}
