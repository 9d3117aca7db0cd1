package namematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "uhlemann, steffi", Normalize("  Uhlemann,   Steffi \t"))
	assert.Equal(t, "strasse", Normalize("STRASSE"))
	// decomposed u + combining diaeresis composes to the same form as ü
	assert.Equal(t, Normalize("M\u00fcller"), Normalize("Mu\u0308ller"))
	assert.Equal(t, "", Normalize(" \n "))
}

func TestNormalizeIgnoringCommas(t *testing.T) {
	want := "uhlemann steffi"
	assert.Equal(t, want, NormalizeIgnoringCommas("Uhlemann, Steffi"))
	assert.Equal(t, want, NormalizeIgnoringCommas("uhlemann steffi"))
	assert.Equal(t, "uhlemannsteffi", NormalizeIgnoringCommas("Uhlemann,Steffi"))
	assert.Equal(t, "", NormalizeIgnoringCommas(" , "))
}

func TestEqualRejectsBlank(t *testing.T) {
	assert.False(t, Equal("", ""))
	assert.False(t, EqualIgnoringCommas(",", " "))
	assert.True(t, Equal("Ullah, Shahid", "ullah,  shahid"))
}

func TestIsContactMatch(t *testing.T) {
	cases := []struct {
		name, given, family, owner string
		want                       bool
	}{
		{"Uhlemann, Steffi", "", "", "Uhlemann, Steffi", true},
		{"Uhlemann, Steffi", "", "", "Uhlemann Steffi", true},
		{"Uhlemann Steffi", "", "", "uhlemann, steffi", true},
		{"Uhlemann, Steffi", "", "", "Steffi Uhlemann", false},
		{"Uhlemann, Steffi", "", "", "Uhlemann, S.", false},
		{"", "Natalya", "Mikhailova", "Mikhailova, Natalya", true},
		{"", "Natalya", "Mikhailova", "MIKHAILOVA, NATALYA", true},
		{"", "Natalya", "Mikhailova", "MIKHAILOVA NATALYA", false},
		{"", "Natalya", "Mikhailova", "Mikhailova Natalya", false},
		{"Uhlemann,Steffi", "", "", "UhlemannSteffi", true},
		{"Uhlemann,Steffi", "", "", "Uhlemann Steffi", false},
		{"Uhlemann, Steffi", "", "", "Uhlemann Steffi,", true},
		{"Mikhailova, N.", "Natalya", "Mikhailova", "Mikhailova, N.", false},
		{"Poleshko, N.N.", "N.N.", "", "Poleshko, N.N.", true},
		{"Poleshko, N.N.", "", "", "", false},
		{"", "", "", "", false},
	}
	for _, tc := range cases {
		got := IsContactMatch(tc.name, tc.given, tc.family, tc.owner)
		assert.Equal(t, tc.want, got, "%+v", tc)
	}
}

func TestStructuredName(t *testing.T) {
	assert.Equal(t, "Mikhailova, Natalya", StructuredName(" Natalya ", "Mikhailova"))
	assert.Equal(t, "", StructuredName("Natalya", ""))
	assert.Equal(t, "", StructuredName("", "Mikhailova"))
}
