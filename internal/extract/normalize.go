// Package extract implements the FIR field extraction pipeline: a set of
// independent pattern matchers over raw report text, assembled into one
// structured record with its legal-section mapping.
package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// inputNormalizer canonicalizes mixed-script FIR text before any pattern
// matching: NFC composition plus removal of invisible format runes
// (zero-width joiners, direction marks) that break Latin cue-word matching
// in bilingual reports.
var inputNormalizer = transform.Chain(
	norm.NFC,
	runes.Remove(runes.In(unicode.Cf)),
)

// Normalize returns the canonical form of raw FIR text.
// On a transform error the input is returned unchanged; extraction is
// best-effort and must never fail on malformed text.
func Normalize(text string) string {
	out, _, err := transform.String(inputNormalizer, text)
	if err != nil {
		return text
	}
	return out
}

// lower is the case-folded view used for keyword presence checks.
func lower(text string) string {
	return strings.ToLower(text)
}
