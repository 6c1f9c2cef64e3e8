// Package similarity provides the edit-distance and normalization primitives
// used by the OCR consensus pipeline for scoring and de-duplication.
package similarity

import (
	"strings"
	"unicode"
)

// Distance returns the Levenshtein edit distance between a and b,
// computed over runes with the two-row optimization.
func Distance(a, b string) int {
	if a == b {
		return 0
	}
	ar := []rune(a)
	br := []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ar); i++ {
		curr[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[j] = min(min(prev[j]+1, curr[j-1]+1), prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(br)]
}

// Ratio returns a normalized similarity score in [0, 1].
// 1 means identical, 0 means nothing in common.
func Ratio(a, b string) float64 {
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(Distance(a, b))/float64(maxLen)
}

// NormalizeLine reduces a line to a lowercase alphanumeric key:
// Cyrillic and Latin letters plus digits are kept, everything else is dropped.
// Two lines with equal keys are treated as the same line.
func NormalizeLine(line string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(line) {
		switch {
		case r >= 'а' && r <= 'я', r == 'ё':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeBlock lowercases a whole text block and collapses every run of
// whitespace to a single space, so near-identical template outputs compare
// independently of layout.
func NormalizeBlock(text string) string {
	fields := strings.FieldsFunc(strings.ToLower(text), unicode.IsSpace)
	return strings.Join(fields, " ")
}
