package recognize

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeTestImage writes a white image with a black square of "text" and
// returns its path.
func writeTestImage(t *testing.T) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 40, 40))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for y := 12; y < 22; y++ {
		for x := 10; x < 30; x++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}
	path := filepath.Join(t.TempDir(), "input.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultTemplates(t *testing.T) {
	templates := DefaultTemplates()
	if len(templates) != 10 {
		t.Fatalf("got %d templates, want 10", len(templates))
	}

	seen := make(map[string]bool)
	for _, tpl := range templates {
		if seen[tpl.Name] {
			t.Errorf("duplicate template name %q", tpl.Name)
		}
		seen[tpl.Name] = true
		if tpl.Name != tpl.Pre.String()+"+"+tpl.Post.String() {
			t.Errorf("template name %q does not match filters %s+%s", tpl.Name, tpl.Pre, tpl.Post)
		}
	}
}

func TestPostprocess(t *testing.T) {
	t.Run("weak trims and drops empty lines", func(t *testing.T) {
		got := Postprocess(PostWeak, "  Денежный ящик  \r\n\n  !!  \n")
		if got != "Денежный ящик\n!!" {
			t.Errorf("Postprocess() = %q", got)
		}
	})

	t.Run("medium collapses whitespace runs", func(t *testing.T) {
		got := Postprocess(PostMedium, "Денежный    ящик\t\tФорт")
		if got != "Денежный ящик Форт" {
			t.Errorf("Postprocess() = %q", got)
		}
	})

	t.Run("strong drops noise lines", func(t *testing.T) {
		got := Postprocess(PostStrong, "Денежный ящик\n@#$%^!\n|\nПринтеры")
		if got != "Денежный ящик\nПринтеры" {
			t.Errorf("Postprocess() = %q", got)
		}
	})
}

func TestPreprocess(t *testing.T) {
	input := writeTestImage(t)

	for _, filter := range []PreFilter{PreMedium, PreStrong, PreStrongV3, PreCrop} {
		t.Run(filter.String(), func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.png")
			if err := Preprocess(filter, input, out); err != nil {
				t.Fatalf("Preprocess(%s) error = %v", filter, err)
			}
			f, err := os.Open(out)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, err := png.Decode(f)
			if err != nil {
				t.Fatalf("output is not a valid png: %v", err)
			}
			if img.Bounds().Empty() {
				t.Error("output image is empty")
			}
		})
	}

	t.Run("crop shrinks to the ink block", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "out.png")
		if err := Preprocess(PreCrop, input, out); err != nil {
			t.Fatal(err)
		}
		f, err := os.Open(out)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		img, err := png.Decode(f)
		if err != nil {
			t.Fatal(err)
		}
		if dx := img.Bounds().Dx(); dx >= 40 {
			t.Errorf("cropped width = %d, want < 40", dx)
		}
	})

	t.Run("missing input fails", func(t *testing.T) {
		err := Preprocess(PreMedium, "/does/not/exist.png", filepath.Join(t.TempDir(), "out.png"))
		if err == nil {
			t.Error("expected error for missing input")
		}
	})
}

type fakeEngine struct {
	fn func(ctx context.Context, path string) (string, error)
}

func (f *fakeEngine) Recognize(ctx context.Context, path string) (string, error) {
	return f.fn(ctx, path)
}

func TestRunner_RunAll(t *testing.T) {
	input := writeTestImage(t)
	templates := []Template{
		{Name: "cropTextBlock+weak", Pre: PreCrop, Post: PostWeak},
		{Name: "medium+weak", Pre: PreMedium, Post: PostWeak},
		{Name: "strong+weak", Pre: PreStrong, Post: PostWeak},
	}

	t.Run("results keep template order", func(t *testing.T) {
		r := &Runner{
			Engine:    &fakeEngine{fn: func(context.Context, string) (string, error) { return "текст", nil }},
			TempDir:   t.TempDir(),
			Templates: templates,
		}
		got := r.RunAll(context.Background(), input)
		if len(got) != len(templates) {
			t.Fatalf("got %d candidates, want %d", len(got), len(templates))
		}
		for i, c := range got {
			if c.Template != templates[i].Name {
				t.Errorf("candidate %d template = %q, want %q", i, c.Template, templates[i].Name)
			}
			if c.Text != "текст" {
				t.Errorf("candidate %d text = %q", i, c.Text)
			}
		}
	})

	t.Run("engine failure becomes marker text", func(t *testing.T) {
		r := &Runner{
			Engine:    &fakeEngine{fn: func(context.Context, string) (string, error) { return "", errors.New("boom") }},
			TempDir:   t.TempDir(),
			Templates: templates[:1],
		}
		got := r.RunAll(context.Background(), input)
		if !strings.HasPrefix(got[0].Text, ErrorMarker) {
			t.Errorf("text = %q, want %s prefix", got[0].Text, ErrorMarker)
		}
		if !strings.Contains(got[0].Text, "cropTextBlock+weak") {
			t.Errorf("marker does not name the template: %q", got[0].Text)
		}
	})

	t.Run("timeout becomes marker text", func(t *testing.T) {
		r := &Runner{
			Engine: &fakeEngine{fn: func(ctx context.Context, _ string) (string, error) {
				select {
				case <-time.After(time.Second):
					return "late", nil
				case <-ctx.Done():
					return "", ctx.Err()
				}
			}},
			TempDir:   t.TempDir(),
			Timeout:   20 * time.Millisecond,
			Templates: templates[:1],
		}
		got := r.RunAll(context.Background(), input)
		if !strings.HasPrefix(got[0].Text, ErrorMarker) {
			t.Errorf("text = %q, want %s prefix", got[0].Text, ErrorMarker)
		}
	})

	t.Run("postprocess is applied to engine output", func(t *testing.T) {
		r := &Runner{
			Engine:    &fakeEngine{fn: func(context.Context, string) (string, error) { return "  строка  \n\n", nil }},
			TempDir:   t.TempDir(),
			Templates: templates[:1],
		}
		got := r.RunAll(context.Background(), input)
		if got[0].Text != "строка" {
			t.Errorf("text = %q, want trimmed output", got[0].Text)
		}
	})
}
