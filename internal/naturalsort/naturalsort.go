// Package naturalsort orders filenames the way a person reading chapter
// and page numbers would: runs of digits compare by numeric value while
// everything between them compares case-insensitively. "page2.jpg" sorts
// before "page10.jpg", where plain lexicographic ordering would not.
package naturalsort

import (
	"slices"
	"strings"
)

// Compare reports the natural order of a and b: negative if a sorts
// before b, positive if after, zero only when the strings are identical.
//
// Both inputs are split into alternating digit and non-digit runs. Digit
// runs compare by integer value regardless of length or leading zeros;
// non-digit runs compare case-insensitively. If the runs of the two
// inputs stop lining up by type (one has a digit run where the other has
// text), the two runs compare as case-insensitive strings instead, so
// the order stays total for arbitrary input. Ties across all runs are
// broken by a plain comparison of the original strings.
func Compare(a, b string) int {
	ai, bi := 0, 0
	for ai < len(a) && bi < len(b) {
		aTok, aDigit, aNext := nextRun(a, ai)
		bTok, bDigit, bNext := nextRun(b, bi)

		var c int
		switch {
		case aDigit && bDigit:
			c = compareNumeric(aTok, bTok)
		case !aDigit && !bDigit:
			c = compareFold(aTok, bTok)
		default:
			// Type misalignment; fall back to string comparison.
			c = compareFold(aTok, bTok)
		}
		if c != 0 {
			return c
		}
		ai, bi = aNext, bNext
	}

	// One input is a prefix of the other in run terms; shorter first.
	switch {
	case ai < len(a):
		return 1
	case bi < len(b):
		return -1
	}

	// Runs compared equal (e.g. "07" vs "7", "A" vs "a"); keep the order
	// deterministic with a raw byte comparison.
	return strings.Compare(a, b)
}

// Less reports whether a naturally sorts before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Strings sorts names in place into natural order. The sort is stable.
func Strings(names []string) {
	slices.SortStableFunc(names, Compare)
}

// nextRun returns the maximal run starting at i that is either all
// digits or digit-free, whether it is digits, and the index just past it.
func nextRun(s string, i int) (run string, digit bool, next int) {
	digit = isDigit(s[i])
	next = i + 1
	for next < len(s) && isDigit(s[next]) == digit {
		next++
	}
	return s[i:next], digit, next
}

// compareNumeric compares two all-digit runs by integer value. Leading
// zeros are stripped so the comparison reduces to run length and then
// byte order, which matches integer comparison for runs of any length.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
