package ocr

import (
	"strings"
	"testing"
)

func TestMergeNoDuplicates(t *testing.T) {
	t.Run("near-identical candidate is skipped whole", func(t *testing.T) {
		got := MergeNoDuplicates([]Candidate{
			{Template: "weak", Text: "Автоматизация торговли\nДенежный ящик"},
			{Template: "strong", Text: "Автоматизация торговли\nДенежныи ящик"},
		})
		want := "Автоматизация торговли\nДенежный ящик"
		if got != want {
			t.Errorf("MergeNoDuplicates() = %q, want %q", got, want)
		}
	})

	t.Run("distinct candidates are concatenated", func(t *testing.T) {
		got := MergeNoDuplicates([]Candidate{
			{Text: "Автоматизация торговли"},
			{Text: "Гарантийный талон на оборудование"},
		})
		want := "Автоматизация торговли\nГарантийный талон на оборудование"
		if got != want {
			t.Errorf("MergeNoDuplicates() = %q, want %q", got, want)
		}
	})

	t.Run("repeated lines across different blocks are dropped", func(t *testing.T) {
		got := MergeNoDuplicates([]Candidate{
			{Text: "Денежный ящик\nПринтеры этикеток"},
			{Text: "Сканеры штрих-кода\nТерминалы сбора данных\nДенежный ящик\nВесовое оборудование"},
		})
		if strings.Count(got, "Денежный ящик") != 1 {
			t.Errorf("line not deduplicated across blocks:\n%s", got)
		}
	})

	t.Run("empty candidates are ignored", func(t *testing.T) {
		got := MergeNoDuplicates([]Candidate{
			{Text: "   "},
			{Text: ""},
			{Text: "Денежный ящик"},
		})
		if got != "Денежный ящик" {
			t.Errorf("MergeNoDuplicates() = %q", got)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		once := MergeNoDuplicates([]Candidate{
			{Text: "Автоматизация торговли\nДенежный ящик"},
			{Text: "Принтеры этикеток\nАвтоматизация торговли"},
			{Text: "Гарантийный талон на кассовый аппарат"},
		})
		twice := MergeNoDuplicates([]Candidate{{Text: once}})
		if once != twice {
			t.Errorf("merge not idempotent:\nonce:  %q\ntwice: %q", once, twice)
		}
	})
}
