// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package methane implements the methane-cycler classification and abundance
// aggregation core: parsing ranked GTDB taxonomy strings, matching them against
// a curated lookup database, and reducing per-taxon abundance rows into a
// sample x classification summary table.
package methane

import "strings"

// RankDelimiter separates rank tokens in a GTDB taxonomy string.
const RankDelimiter = ";"

// Path is an ordered sequence of rank tokens parsed from a taxonomy string
// such as "d__Archaea;p__Halobacteriota;c__Methanosarcinia". Rank prefixes
// (d__, p__, ...) are preserved as part of each token. A Path is immutable
// once parsed.
type Path struct {
	tokens []string
}

// ParseTaxonomy splits a taxonomy string on the rank delimiter. Tokens are
// trimmed of surrounding whitespace; empty tokens (from trailing delimiters
// or doubled separators) are dropped. Token order is preserved.
func ParseTaxonomy(s string) Path {
	parts := strings.Split(s, RankDelimiter)
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if tok := strings.TrimSpace(part); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return Path{tokens: tokens}
}

// Len returns the number of rank tokens.
func (p Path) Len() int { return len(p.tokens) }

// IsEmpty reports whether the path has no rank tokens.
func (p Path) IsEmpty() bool { return len(p.tokens) == 0 }

// Tokens returns a copy of the rank tokens, root rank first.
func (p Path) Tokens() []string {
	out := make([]string, len(p.tokens))
	copy(out, p.tokens)
	return out
}

// Leaf returns the most specific rank token, or "" for an empty path.
func (p Path) Leaf() string {
	if len(p.tokens) == 0 {
		return ""
	}
	return p.tokens[len(p.tokens)-1]
}

// String renders the path in canonical GTDB form.
func (p Path) String() string {
	return strings.Join(p.tokens, RankDelimiter)
}

// IsAncestorOf reports whether p is an ancestor-or-equal of other: every rank
// token of p must equal the corresponding token of other, compared element-wise
// over p's full length. An empty path is not an ancestor of anything; matching
// every taxon against a pattern with no ranks would be meaningless.
func (p Path) IsAncestorOf(other Path) bool {
	if len(p.tokens) == 0 || len(p.tokens) > len(other.tokens) {
		return false
	}
	for i, tok := range p.tokens {
		if other.tokens[i] != tok {
			return false
		}
	}
	return true
}

// Equal reports whether two paths have identical rank sequences.
func (p Path) Equal(other Path) bool {
	if len(p.tokens) != len(other.tokens) {
		return false
	}
	for i, tok := range p.tokens {
		if other.tokens[i] != tok {
			return false
		}
	}
	return true
}
