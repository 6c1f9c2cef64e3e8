package ocr

import "testing"

const cleanParagraph = "Бухгалтерия предприятия\nАвтоматизация торговли\nДенежный ящик"

func TestScore(t *testing.T) {
	t.Run("empty text scores zero", func(t *testing.T) {
		if got := Score(""); got != 0 {
			t.Errorf("Score(\"\") = %v, want 0", got)
		}
	})

	t.Run("whitespace only scores zero", func(t *testing.T) {
		if got := Score("  \n\t\n "); got != 0 {
			t.Errorf("Score(whitespace) = %v, want 0", got)
		}
	})

	t.Run("short fragment scores below clean paragraph", func(t *testing.T) {
		if frag, clean := Score("ab"), Score(cleanParagraph); frag >= clean {
			t.Errorf("Score(\"ab\") = %v, not below Score(clean) = %v", frag, clean)
		}
	})

	t.Run("bonus words raise the score", func(t *testing.T) {
		base := "Принтеры этикеток\nСканеры для склада\nВесовое оборудование"
		withBonus := base + "\nСкачайте приложение в магазине"
		if Score(withBonus) <= Score(base) {
			t.Errorf("bonus words did not raise score: %v <= %v", Score(withBonus), Score(base))
		}
	})

	t.Run("noisy lines lower the score", func(t *testing.T) {
		noisy := cleanParagraph + "\n@#$%^&*()!!\n~~~|||///\\\\"
		if Score(noisy) >= Score(cleanParagraph) {
			t.Errorf("noise did not lower score: %v >= %v", Score(noisy), Score(cleanParagraph))
		}
	})

	t.Run("repeated lines score below distinct lines", func(t *testing.T) {
		repeated := "Денежный ящик\nДенежный ящик\nДенежный ящик"
		distinct := "Денежный ящик\nПринтеры чеков\nСканеры товара"
		if Score(repeated) >= Score(distinct) {
			t.Errorf("repetition not penalized: %v >= %v", Score(repeated), Score(distinct))
		}
	})

	t.Run("higher cyrillic ratio scores at least as high", func(t *testing.T) {
		// Same rune count, line count and uniqueness; only the last rune
		// differs, Latin vs Cyrillic.
		latin := "Автоматизация торговли\nСканер штрихкода 12q"
		cyrillic := "Автоматизация торговли\nСканер штрихкода 12я"
		if Score(cyrillic) < Score(latin) {
			t.Errorf("higher ratio scored lower: %v < %v", Score(cyrillic), Score(latin))
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a, b := Score(cleanParagraph), Score(cleanParagraph)
		if a != b {
			t.Errorf("Score not deterministic: %v != %v", a, b)
		}
	})
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("  первая  \r\n\n вторая \n\n")
	if len(got) != 2 || got[0] != "первая" || got[1] != "вторая" {
		t.Errorf("SplitLines() = %v", got)
	}
}
