package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestIsPDF(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"scan.pdf", true},
		{"scan.PDF", true},
		{"/inbox/документ.pdf", true},
		{"photo.jpg", false},
		{"pdf", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsPDF(tc.path); got != tc.want {
			t.Errorf("IsPDF(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestPageCount_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := PageCount("/does/not/exist.pdf"); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("not a pdf", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fake.pdf")
		if err := os.WriteFile(path, []byte("это не PDF"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := PageCount(path); err == nil {
			t.Error("expected error for non-PDF content")
		}
	})
}

func TestRenderPages_MissingFile(t *testing.T) {
	_, err := RenderPages(context.Background(), "/does/not/exist.pdf", t.TempDir(), 0)
	if err == nil {
		t.Error("expected error for missing file")
	}
}
