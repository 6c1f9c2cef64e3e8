package ocr

import (
	"fmt"
	"log/slog"
	"sort"
)

// Rank scores every recognition variant: the raw template outputs in input
// order, then the semantic assembly, the grammar-corrected assembly and the
// human-readable summary. The returned slice is sorted by descending score
// with ties keeping input order, so raw templates win over assembled variants
// at equal score.
func Rank(candidates []Candidate, semantic, corrected, human string) []Scored {
	scored := make([]Scored, 0, len(candidates)+3)
	for i, c := range candidates {
		scored = append(scored, Scored{
			Text:  c.Text,
			Label: fmt.Sprintf("Template %d", i+1),
			Score: Score(c.Text),
		})
	}
	scored = append(scored,
		Scored{Text: semantic, Label: "Semantic assembly", Score: Score(semantic)},
		Scored{Text: corrected, Label: "Grammar-corrected assembly", Score: Score(corrected)},
		Scored{Text: human, Label: "Human-readable summary", Score: Score(human)},
	)

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// SelectBest returns the highest-scoring variant and logs the full ranking
// for diagnosis of template quality.
func SelectBest(logger *slog.Logger, candidates []Candidate, semantic, corrected, human string) Scored {
	if logger == nil {
		logger = slog.Default()
	}

	ranked := Rank(candidates, semantic, corrected, human)
	for i, s := range ranked {
		logger.Debug("ranked candidate",
			"rank", i+1,
			"label", s.Label,
			"score", s.Score,
			"chars", len([]rune(s.Text)),
		)
	}

	best := ranked[0]
	logger.Info("selected best result", "label", best.Label, "score", best.Score)
	return best
}
