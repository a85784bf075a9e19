// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII fragment identifiers from arbitrary Unicode strings.
//
// # Usage
//
// The gallery anchors each card with a slug of the English name
// (e.g., "banda-singh-bahadur"). Names with no Latin letters reduce to "".
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any sequence of characters outside a-z, 0-9 and hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// From converts s into a lowercase ASCII slug.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD and strips combining marks ("Bhāī" becomes "Bhai").
// 2. Lowercases.
// 3. Replaces every run of other characters with one hyphen.
// 4. Trims leading and trailing hyphens.
func From(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// isMn reports whether r is a Unicode non-spacing mark.
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
