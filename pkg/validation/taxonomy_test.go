package validation

import (
	"strings"
	"testing"
)

func TestValidateTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		taxonomy string
		wantErr  bool
	}{
		// Valid strings
		{"single rank", "d__Archaea", false},
		{"full lineage", "d__Archaea;p__Halobacteriota;c__Methanosarcinia", false},
		{"trailing semicolon", "d__Archaea;p__Halobacteriota;", false},
		{"space after delimiter", "d__Archaea; p__Halobacteriota", false},
		{"no rank prefixes", "Archaea;Halobacteriota", false},
		{"name with space", "d__Archaea;g__Candidatus Methanoplasma", false},
		{"name with dot and dash", "s__Methanosarcina sp. GH-1", false},

		// Invalid strings
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"control character", "d__Archaea\x00;p__X", true},
		{"newline", "d__Archaea\np__X", true},
		{"shell metacharacters", "d__Archaea;$(rm -rf /)", true},
		{"empty token", "d__Archaea;;p__X", true},
		{"too long", "d__" + strings.Repeat("A", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTaxonomy(tt.taxonomy)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTaxonomy(%q) error = %v, wantErr %v", tt.taxonomy, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		taxonomy string
		want     string
		wantErr  bool
	}{
		{"trims whitespace", "  d__Archaea;p__X  ", "d__Archaea;p__X", false},
		{"already clean", "d__Archaea", "d__Archaea", false},
		{"invalid", "bad|taxon", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeTaxonomy(tt.taxonomy)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SanitizeTaxonomy(%q) error = %v, wantErr %v", tt.taxonomy, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("SanitizeTaxonomy(%q) = %q, want %q", tt.taxonomy, got, tt.want)
			}
		})
	}
}
