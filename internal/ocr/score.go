package ocr

import "strings"

// bonusWords are domain terms whose presence suggests real storefront or
// receipt content rather than recognition noise.
var bonusWords = []string{
	"АКТИВИРУЙТЕ", "СКАЧАЙТЕ", "ПРИЛОЖЕНИЕ", "МАГАЗИН", "СЕРВИСЫ", "ЭВОТОР",
}

// Score computes a heuristic readability score for a candidate text block.
// Higher means more likely to be clean, human-readable content. The score is
// a pure function of the text: no I/O, deterministic.
//
// The formula rewards Cyrillic density, line count, line uniqueness and
// domain keywords, and penalizes short or noise-heavy lines.
func Score(text string) float64 {
	if text == "" {
		return 0
	}

	lines := SplitLines(text)
	if len(lines) == 0 {
		return 0
	}

	totalChars := len([]rune(text))
	ruChars := countCyrillic(text)
	ruRatio := float64(ruChars) / float64(max(totalChars, 1))

	uniq := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		uniq[l] = struct{}{}
	}
	uniqLines := len(uniq)

	upper := strings.ToUpper(text)
	bonus := 0.0
	for _, w := range bonusWords {
		if strings.Contains(upper, w) {
			bonus += 0.1
		}
	}

	noisyLines := 0
	for _, l := range lines {
		if isNoisyLine(l) {
			noisyLines++
		}
	}

	diversityBonus := 0.0
	if uniqLines >= 3 {
		diversityBonus = 0.5
	}

	score := ruRatio*2 +
		minf(float64(len(lines))/10, 1) +
		minf(float64(uniqLines)/float64(len(lines)), 1) +
		bonus +
		diversityBonus -
		float64(noisyLines)*0.2

	// A lone short line is almost always a stray token, not content.
	if len(lines) == 1 && len([]rune(lines[0])) < 10 {
		score -= 0.5
	}

	return score
}

// SplitLines splits text on line breaks into trimmed, non-empty lines.
func SplitLines(text string) []string {
	var lines []string
	for _, l := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' }) {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

// isNoisyLine reports whether a line is too short or dominated by characters
// that are neither Cyrillic letters nor digits.
func isNoisyLine(l string) bool {
	runes := []rune(l)
	if len(runes) < 5 {
		return true
	}
	noise := 0
	for _, r := range runes {
		if !isCyrillicRune(r) && !(r >= '0' && r <= '9') {
			noise++
		}
	}
	return float64(noise)/float64(len(runes)) > 0.5
}

func countCyrillic(s string) int {
	n := 0
	for _, r := range s {
		if isCyrillicRune(r) {
			n++
		}
	}
	return n
}

func isCyrillicRune(r rune) bool {
	return (r >= 'А' && r <= 'я') || r == 'ё' || r == 'Ё'
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
