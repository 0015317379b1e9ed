// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package natsort implements natural (human-numeric-aware) string ordering.
//
// A plain lexicographic sort places "sample10" before "sample2" because '1' < '2'.
// Natural ordering compares runs of digits by their numeric value instead, so
// sample identifiers order the way a person expects:
//
//	sample1, sample2, sample10
//
// The comparator is deterministic and total: digit runs are compared as unbounded
// integers (leading zeros ignored), non-digit runs byte-wise, and strings that
// differ only in leading zeros fall back to byte order so equal inputs are the
// only inputs that compare equal.
package natsort

import "sort"

// Compare returns -1, 0, or 1 depending on whether a orders before, equal to,
// or after b under natural ordering.
func Compare(a, b string) int {
	ia, ib := 0, 0
	for ia < len(a) && ib < len(b) {
		ca, cb := a[ia], b[ib]
		if isDigit(ca) && isDigit(cb) {
			// Extract both digit runs and compare numerically.
			sa, ea := digitRun(a, ia)
			sb, eb := digitRun(b, ib)
			if c := compareDigits(a[sa:ea], b[sb:eb]); c != 0 {
				return c
			}
			ia, ib = ea, eb
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		ia++
		ib++
	}
	switch {
	case len(a)-ia < len(b)-ib:
		return -1
	case len(a)-ia > len(b)-ib:
		return 1
	}
	// Same numeric values but possibly different leading zeros ("01" vs "1").
	// Fall back to byte order for a total, deterministic result.
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Less reports whether a orders before b under natural ordering.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Sort sorts the slice in place using natural ordering.
func Sort(s []string) {
	sort.SliceStable(s, func(i, j int) bool { return Less(s[i], s[j]) })
}

// Sorted returns a naturally sorted copy, leaving the input untouched.
func Sorted(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	Sort(out)
	return out
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// digitRun returns the bounds [start, end) of the digit run beginning at i.
func digitRun(s string, i int) (int, int) {
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return start, i
}

// compareDigits compares two digit runs by numeric value without parsing them
// into integers, so arbitrarily long runs cannot overflow.
func compareDigits(a, b string) int {
	a = trimZeros(a)
	b = trimZeros(b)
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func trimZeros(s string) string {
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	return s[i:]
}
