package ocr

import (
	"regexp"
	"sort"
	"strings"

	"github.com/skanbot/skanbot/internal/similarity"
)

// nearDuplicateRatio is the fuzzy-similarity threshold above which two blocks
// are treated as the same content differing only by minor OCR edits.
const nearDuplicateRatio = 0.85

var (
	lineBreakRe  = regexp.MustCompile(`[\n\r\f\v\x{2028}\x{2029}\x{85}]+`)
	blockDelimRe = regexp.MustCompile(`\s{2,}|[|:.,;]|—|–`)
	cleanWordRe  = regexp.MustCompile(`[а-яА-ЯёЁ]{4,}`)
)

// rankKeywords orders assembled lines by domain relevance: company and
// accounting headers first, then hardware and terms. A block matching an
// earlier keyword sorts before one matching a later keyword; non-matching
// blocks sort last.
var rankKeywords = []string{
	"ИП", "1С", "БУХГАЛТЕРИЯ", "Денежный ящик", "Форт", "позиционный", "руб",
	"Подпись", "дата", "автоматизация", "принтер", "сканер", "весовое",
	"терминал", "POS",
}

// AssembleSemantic reconstructs the most probable document content from all
// candidates by frequency and similarity consensus. Candidate texts are cut
// into fine-grained blocks, noisy blocks are dropped, duplicates are folded
// by exact string and by fuzzy similarity, and the survivors are re-ranked by
// domain keywords.
func AssembleSemantic(candidates []Candidate) string {
	var all []string
	for _, c := range candidates {
		all = append(all, splitToBlocks(c.Text)...)
	}

	var clean []string
	for _, b := range all {
		if isCleanBlock(b) {
			clean = append(clean, b)
		}
	}

	// Frequency over every occurrence, then dedupe to distinct strings in
	// first-seen order.
	freq := make(map[string]int, len(clean))
	var distinct []string
	for _, b := range clean {
		if freq[b] == 0 {
			distinct = append(distinct, b)
		}
		freq[b]++
	}

	sort.SliceStable(distinct, func(i, j int) bool {
		if freq[distinct[i]] != freq[distinct[j]] {
			return freq[distinct[i]] > freq[distinct[j]]
		}
		return len([]rune(distinct[i])) > len([]rune(distinct[j]))
	})

	// Greedy fuzzy dedup: most frequent variant of each block wins.
	var finalLines []string
	for _, b := range distinct {
		dup := false
		for _, existing := range finalLines {
			if similarity.Ratio(strings.ToLower(b), strings.ToLower(existing)) >= nearDuplicateRatio {
				dup = true
				break
			}
		}
		if !dup {
			finalLines = append(finalLines, b)
		}
	}

	sort.SliceStable(finalLines, func(i, j int) bool {
		ri, rj := keywordRank(finalLines[i]), keywordRank(finalLines[j])
		if ri != rj {
			return ri < rj
		}
		return len([]rune(finalLines[i])) > len([]rune(finalLines[j]))
	})

	return strings.Join(finalLines, "\n")
}

// splitToBlocks cuts text into trimmed fragments: first on line breaks, then
// on in-line delimiters (runs of spaces, pipes, colons, dashes, periods,
// commas, semicolons) that typically separate label from value on receipts.
func splitToBlocks(text string) []string {
	var blocks []string
	for _, line := range lineBreakRe.Split(text, -1) {
		for _, part := range blockDelimRe.Split(line, -1) {
			if t := strings.TrimSpace(part); t != "" {
				blocks = append(blocks, t)
			}
		}
	}
	return blocks
}

// isCleanBlock keeps blocks that look like real phrases: at least two
// whitespace words containing a Cyrillic letter, at least one Cyrillic run of
// length >= 4, and a Cyrillic-letter fraction above 0.6. Short labels like
// "ИП Иванов" or "БУХГАЛТЕРИЯ 1С" pass, stray punctuation and latin noise do
// not.
func isCleanBlock(block string) bool {
	cyrWords := 0
	for _, w := range strings.Fields(block) {
		if countCyrillic(w) > 0 {
			cyrWords++
		}
	}
	if cyrWords < 2 {
		return false
	}
	if cleanWordRe.FindString(block) == "" {
		return false
	}
	runes := []rune(block)
	cyr := 0
	for _, r := range runes {
		if isCyrillicRune(r) {
			cyr++
		}
	}
	return float64(cyr)/float64(max(len(runes), 1)) > 0.6
}

func keywordRank(block string) int {
	lower := strings.ToLower(block)
	for i, k := range rankKeywords {
		if strings.Contains(lower, strings.ToLower(k)) {
			return i
		}
	}
	return len(rankKeywords) + 100
}
