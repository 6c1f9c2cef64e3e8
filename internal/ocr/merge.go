package ocr

import (
	"strings"

	"github.com/skanbot/skanbot/internal/similarity"
)

// blockDuplicateRatio is the whole-block similarity above which one template
// output is considered a near-identical duplicate of an already-accepted one.
const blockDuplicateRatio = 0.85

// MergeNoDuplicates merges the outputs of all templates into one text stream,
// suppressing duplicates at two granularities: whole blocks that are
// near-identical to an accepted block (normalized similarity >= 0.85) are
// skipped entirely, and within accepted blocks, lines whose normalized key
// was already seen are dropped. Candidate order is preserved, so the merge is
// idempotent: feeding the merged output back in yields the same text.
func MergeNoDuplicates(candidates []Candidate) string {
	var acceptedBlocks []string
	seenLines := make(map[string]struct{})
	var merged []string

	for _, c := range candidates {
		text := strings.TrimSpace(c.Text)
		if text == "" {
			continue
		}

		norm := similarity.NormalizeBlock(text)
		duplicate := false
		for _, prev := range acceptedBlocks {
			if similarity.Ratio(norm, prev) >= blockDuplicateRatio {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		acceptedBlocks = append(acceptedBlocks, norm)

		for _, line := range SplitLines(text) {
			key := similarity.NormalizeLine(line)
			if key == "" {
				continue
			}
			if _, ok := seenLines[key]; ok {
				continue
			}
			seenLines[key] = struct{}{}
			merged = append(merged, line)
		}
	}

	return strings.Join(merged, "\n")
}
