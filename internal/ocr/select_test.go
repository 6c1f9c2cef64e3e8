package ocr

import (
	"io"
	"log/slog"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSelectBest(t *testing.T) {
	t.Run("highest score wins", func(t *testing.T) {
		candidates := []Candidate{
			{Template: "weak", Text: "@#$%"},
			{Template: "strong", Text: cleanParagraph},
		}
		best := SelectBest(discardLogger(), candidates, "", "", "")
		if best.Text != cleanParagraph {
			t.Errorf("best.Text = %q, want the clean paragraph", best.Text)
		}
		if best.Label != "Template 2" {
			t.Errorf("best.Label = %q, want Template 2", best.Label)
		}
	})

	t.Run("ties keep input order", func(t *testing.T) {
		candidates := []Candidate{
			{Template: "weak", Text: cleanParagraph},
			{Template: "strong", Text: cleanParagraph},
		}
		best := SelectBest(discardLogger(), candidates, "", "", "")
		if best.Label != "Template 1" {
			t.Errorf("best.Label = %q, want first-encountered Template 1", best.Label)
		}
	})

	t.Run("assembled variant can win", func(t *testing.T) {
		candidates := []Candidate{
			{Template: "weak", Text: "xx"},
		}
		best := SelectBest(discardLogger(), candidates, cleanParagraph, "", "")
		if best.Label != "Semantic assembly" {
			t.Errorf("best.Label = %q, want Semantic assembly", best.Label)
		}
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		candidates := []Candidate{
			{Text: "Первый вариант текста здесь"},
			{Text: "Второй вариант текста тут"},
		}
		a := SelectBest(discardLogger(), candidates, "сборка", "правка", "итог")
		for i := 0; i < 10; i++ {
			b := SelectBest(discardLogger(), candidates, "сборка", "правка", "итог")
			if a != b {
				t.Fatalf("selection not deterministic: %+v != %+v", a, b)
			}
		}
	})
}

func TestRank(t *testing.T) {
	ranked := Rank([]Candidate{{Text: "ab"}, {Text: cleanParagraph}}, "", "", "")
	if len(ranked) != 5 {
		t.Fatalf("Rank() returned %d entries, want 5", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("ranking not descending at %d: %v > %v", i, ranked[i].Score, ranked[i-1].Score)
		}
	}
}
