package grouping

import (
	"strings"
	"unicode"
)

// Compare orders filenames the way a human would: embedded digit runs
// compare by numeric value ("img2" before "img10") and text segments
// compare case-insensitively. Ties fall back to a full lexicographic
// comparison so the order is total and repeatable.
func Compare(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	i, j := 0, 0

	for i < len(ra) && j < len(rb) {
		if unicode.IsDigit(ra[i]) && unicode.IsDigit(rb[j]) {
			startA, startB := i, j
			for i < len(ra) && unicode.IsDigit(ra[i]) {
				i++
			}
			for j < len(rb) && unicode.IsDigit(rb[j]) {
				j++
			}
			numA := strings.TrimLeft(string(ra[startA:i]), "0")
			numB := strings.TrimLeft(string(rb[startB:j]), "0")
			if len(numA) != len(numB) {
				if len(numA) < len(numB) {
					return -1
				}
				return 1
			}
			if numA != numB {
				if numA < numB {
					return -1
				}
				return 1
			}
			continue
		}

		la, lb := unicode.ToLower(ra[i]), unicode.ToLower(rb[j])
		if la != lb {
			if la < lb {
				return -1
			}
			return 1
		}
		i++
		j++
	}

	switch {
	case i < len(ra):
		return 1
	case j < len(rb):
		return -1
	}

	return strings.Compare(a, b)
}

// Less is a convenience adapter for sort callbacks.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}
