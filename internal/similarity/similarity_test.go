package similarity

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "касса", "касса", 0},
		{"empty left", "", "чек", 3},
		{"empty right", "чек", "", 3},
		{"single substitution", "касса", "касса", 0},
		{"one edit", "магазин", "магазим", 1},
		{"insert", "товар", "товары", 1},
		{"cyrillic vs latin", "сос", "coc", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRatio(t *testing.T) {
	t.Run("identical strings", func(t *testing.T) {
		if got := Ratio("ИП Иванов", "ИП Иванов"); got != 1 {
			t.Errorf("Ratio = %v, want 1", got)
		}
	})

	t.Run("both empty", func(t *testing.T) {
		if got := Ratio("", ""); got != 1 {
			t.Errorf("Ratio = %v, want 1", got)
		}
	})

	t.Run("completely different", func(t *testing.T) {
		if got := Ratio("аааа", "бббб"); got != 0 {
			t.Errorf("Ratio = %v, want 0", got)
		}
	})

	t.Run("minor edit is high", func(t *testing.T) {
		got := Ratio("бухгалтерия предприятия", "бухгалтерия предприятий")
		if got < 0.9 {
			t.Errorf("Ratio = %v, want >= 0.9", got)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		if Ratio("чек", "чеки") != Ratio("чеки", "чек") {
			t.Error("Ratio is not symmetric")
		}
	})
}

func TestNormalizeLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"punctuation stripped", "ИП Иванов, г. Москва!", "ипивановгмосква"},
		{"digits kept", "Чек №123", "чек123"},
		{"latin kept", "POS-терминал", "posтерминал"},
		{"yo kept", "Ёлка", "ёлка"},
		{"only punctuation", "---===---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLine(tt.in); got != tt.want {
				t.Errorf("NormalizeLine(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeBlock(t *testing.T) {
	got := NormalizeBlock("  БУХГАЛТЕРИЯ   1С\n\nИП  Иванов\t")
	want := "бухгалтерия 1с ип иванов"
	if got != want {
		t.Errorf("NormalizeBlock = %q, want %q", got, want)
	}
}
