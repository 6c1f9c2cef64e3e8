package ocr

import (
	"regexp"
	"sort"
	"strings"
)

// keyPhrases are the canonical business-category labels, in display order.
// When a candidate line matches at least two words of a phrase, the canonical
// phrase itself is emitted instead of the noisy raw line.
var keyPhrases = []string{
	"1С БУХГАЛТЕРИЯ",
	"АВТОМАТИЗАЦИЯ ТОРГОВЛИ",
	"ПРИНТЕРЫ ЭТИКЕТОК",
	"СКАНЕРЫ ШТРИХ-КОДА",
	"ВЕСОВОЕ ОБОРУДОВАНИЕ",
	"ТЕРМИНАЛЫ СБОРА ДАННЫХ",
	"POS-системы",
}

var (
	upperCyrRunRe = regexp.MustCompile(`[А-ЯЁ]{2,}`)
	alnumRe       = regexp.MustCompile(`[A-ZА-ЯЁ0-9]`)
	separatorRe   = regexp.MustCompile(`^[-_=]+$`)
	upperCyrRe    = regexp.MustCompile(`[А-ЯЁ]`)
)

// AssembleHumanReadable condenses text into a short summary for end users.
// Lines matching canonical key-phrases are replaced by the phrases themselves;
// when nothing matches, the longest header-like uppercase lines are shown, and
// as a last resort the first few raw lines.
func AssembleHumanReadable(text string) string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if t := strings.ToUpper(strings.TrimSpace(strings.TrimSuffix(l, "\r"))); t != "" {
			lines = append(lines, t)
		}
	}

	used := make(map[string]struct{})
	var result []string
	for _, phrase := range keyPhrases {
		words := strings.Split(phrase, " ")
		bestScore := -100
		for _, line := range lines {
			score := 0
			for _, w := range words {
				if strings.Contains(line, w) {
					score++
				}
			}
			if score > bestScore {
				bestScore = score
			}
		}
		if bestScore >= 2 {
			if _, ok := used[phrase]; !ok {
				used[phrase] = struct{}{}
				result = append(result, phrase)
			}
		}
	}
	if len(result) > 0 {
		return strings.Join(result, "\n")
	}

	// No key-phrase matched: keep lines that look like structured uppercase
	// headers, longest first, at most five.
	var headers []string
	seen := make(map[string]struct{})
	for _, line := range lines {
		if !isHeaderLine(line) {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		headers = append(headers, line)
	}
	if len(headers) > 0 {
		sortByRuneLenDesc(headers)
		if len(headers) > 5 {
			headers = headers[:5]
		}
		return strings.Join(headers, "\n")
	}

	// Last resort: the first few distinct lines of plausible length.
	var any []string
	seen = make(map[string]struct{})
	for _, line := range lines {
		if len([]rune(line)) < 5 {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		any = append(any, line)
		if len(any) == 3 {
			break
		}
	}
	return strings.Join(any, "\n")
}

func sortByRuneLenDesc(lines []string) {
	sort.SliceStable(lines, func(i, j int) bool {
		return len([]rune(lines[i])) > len([]rune(lines[j]))
	})
}

func isHeaderLine(line string) bool {
	runes := []rune(line)
	if len(runes) < 8 {
		return false
	}
	if !upperCyrRunRe.MatchString(line) || !alnumRe.MatchString(line) {
		return false
	}
	if separatorRe.MatchString(line) {
		return false
	}
	cyr := len(upperCyrRe.FindAllString(line, -1))
	return float64(cyr) >= 0.5*float64(len(runes))
}
