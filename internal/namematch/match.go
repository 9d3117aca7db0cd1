// Package namematch compares personal names across legacy tables that store
// the same person with inconsistent punctuation. Matching is exact after
// normalization; there is no similarity scoring.
package namematch

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize composes s to NFC, trims it, collapses internal whitespace to
// single spaces and case-folds it.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	return cases.Fold().String(s)
}

// NormalizeIgnoringCommas is Normalize after every comma has been removed,
// so "Uhlemann, Steffi" and "Uhlemann Steffi" coincide while
// "Uhlemann,Steffi" becomes "uhlemannsteffi".
func NormalizeIgnoringCommas(s string) string {
	return Normalize(strings.ReplaceAll(s, ",", ""))
}

// Equal reports whether a and b are equal after Normalize. Blank names never
// match.
func Equal(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	return na != "" && na == nb
}

// EqualIgnoringCommas reports whether a and b are equal after
// NormalizeIgnoringCommas. Blank names never match.
func EqualIgnoringCommas(a, b string) bool {
	na, nb := NormalizeIgnoringCommas(a), NormalizeIgnoringCommas(b)
	return na != "" && na == nb
}

// StructuredName renders family and given names in the legacy
// "Family, Given" display form. It returns "" unless both parts are present.
func StructuredName(given, family string) string {
	given, family = strings.TrimSpace(given), strings.TrimSpace(family)
	if given == "" || family == "" {
		return ""
	}
	return family + ", " + given
}

// IsContactMatch decides whether a contact-info row owned by ownerName
// belongs to the agent. When the agent has both structured name parts only
// the normalized "Family, Given" form is compared. Otherwise the free-text
// name is compared, first normalized, then with commas removed.
func IsContactMatch(name, given, family, ownerName string) bool {
	if structured := StructuredName(given, family); structured != "" {
		return Equal(structured, ownerName)
	}
	return Equal(name, ownerName) || EqualIgnoringCommas(name, ownerName)
}
