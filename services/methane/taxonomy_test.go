package methane

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTaxonomy(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"full lineage", "d__Archaea;p__Halobacteriota;c__Methanosarcinia",
			[]string{"d__Archaea", "p__Halobacteriota", "c__Methanosarcinia"}},
		{"trailing delimiter", "d__Archaea;p__Halobacteriota;",
			[]string{"d__Archaea", "p__Halobacteriota"}},
		{"whitespace around tokens", " d__Archaea ; p__Halobacteriota ",
			[]string{"d__Archaea", "p__Halobacteriota"}},
		{"doubled delimiter", "d__Archaea;;p__Halobacteriota",
			[]string{"d__Archaea", "p__Halobacteriota"}},
		{"single token", "d__Archaea", []string{"d__Archaea"}},
		{"no rank prefix", "Archaea;Halobacteriota", []string{"Archaea", "Halobacteriota"}},
		{"empty", "", nil},
		{"only delimiters", ";;;", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParseTaxonomy(tt.in)
			if tt.want == nil {
				assert.True(t, p.IsEmpty())
				return
			}
			assert.Equal(t, tt.want, p.Tokens())
		})
	}
}

func TestPath_IsAncestorOf(t *testing.T) {
	tests := []struct {
		name     string
		ancestor string
		taxon    string
		want     bool
	}{
		{"strict prefix", "d__Archaea;p__Halobacteriota", "d__Archaea;p__Halobacteriota;c__X", true},
		{"equal paths", "d__Archaea;p__Halobacteriota", "d__Archaea;p__Halobacteriota", true},
		{"single rank prefix", "d__Archaea", "d__Archaea;p__Halobacteriota", true},
		{"longer than taxon", "d__Archaea;p__Halobacteriota;c__X", "d__Archaea;p__Halobacteriota", false},
		{"diverging token", "d__Archaea;p__Thermoplasmatota", "d__Archaea;p__Halobacteriota;c__X", false},
		{"different domain", "d__Bacteria", "d__Archaea;p__Halobacteriota", false},
		{"token substring is not a match", "d__Archaea;p__Halo", "d__Archaea;p__Halobacteriota", false},
		{"empty ancestor never matches", "", "d__Archaea", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTaxonomy(tt.ancestor).IsAncestorOf(ParseTaxonomy(tt.taxon))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPath_StringRoundTrip(t *testing.T) {
	p := ParseTaxonomy(" d__Archaea; p__Halobacteriota ;")
	assert.Equal(t, "d__Archaea;p__Halobacteriota", p.String())
	assert.True(t, p.Equal(ParseTaxonomy(p.String())))
}

func TestPath_Leaf(t *testing.T) {
	assert.Equal(t, "c__Methanosarcinia", ParseTaxonomy("d__Archaea;p__Halobacteriota;c__Methanosarcinia").Leaf())
	assert.Equal(t, "", ParseTaxonomy("").Leaf())
}

func TestPath_TokensReturnsCopy(t *testing.T) {
	p := ParseTaxonomy("d__Archaea;p__Halobacteriota")
	tokens := p.Tokens()
	tokens[0] = "mutated"
	assert.Equal(t, "d__Archaea", p.Tokens()[0], "Path must stay immutable")
}
