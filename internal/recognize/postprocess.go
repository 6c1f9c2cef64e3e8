package recognize

import "strings"

// Postprocess cleans raw engine output according to the template's text
// filter. The result is always newline-joined trimmed lines.
func Postprocess(filter PostFilter, text string) string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(strings.TrimSuffix(l, "\r"))
		if l == "" {
			continue
		}
		if filter >= PostMedium {
			l = strings.Join(strings.Fields(l), " ")
		}
		if filter >= PostStrong && isNoiseLine(l) {
			continue
		}
		lines = append(lines, l)
	}
	return strings.Join(lines, "\n")
}

// isNoiseLine reports whether a line carries too little letter content to be
// worth keeping: fewer than two letters or digits, or over 70% symbols.
func isNoiseLine(l string) bool {
	runes := []rune(l)
	content := 0
	for _, r := range runes {
		if isLetterOrDigit(r) {
			content++
		}
	}
	if content < 2 {
		return true
	}
	return float64(len(runes)-content)/float64(len(runes)) > 0.7
}

func isLetterOrDigit(r rune) bool {
	switch {
	case r >= 'а' && r <= 'я', r >= 'А' && r <= 'Я', r == 'ё', r == 'Ё':
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	}
	return false
}
