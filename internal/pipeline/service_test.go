package pipeline

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

	"github.com/skanbot/skanbot/internal/recognize"
)

type fakeEngine struct {
	text string
	err  error
}

func (f *fakeEngine) Recognize(_ context.Context, _ string) (string, error) {
	return f.text, f.err
}

type fakeCorrector struct {
	out string
	err error
}

func (f *fakeCorrector) Correct(_ context.Context, _ string) (string, error) {
	return f.out, f.err
}

func writeServiceTestImage(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.White)
		}
	}
	for y := 10; y < 20; y++ {
		for x := 5; x < 25; x++ {
			img.Set(x, y, color.Black)
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

func newTestService(t *testing.T, engine recognize.Engine, corrector Corrector) (*Service, *fakeEmitter) {
	t.Helper()
	emitter := &fakeEmitter{}
	o, _, _ := newTestOrchestrator(t, emitter, nil)
	runner := &recognize.Runner{
		Engine:  engine,
		Logger:  testLogger(),
		TempDir: t.TempDir(),
		Templates: []recognize.Template{
			{Name: "medium+weak", Pre: recognize.PreMedium, Post: recognize.PostWeak},
			{Name: "strong+weak", Pre: recognize.PreStrong, Post: recognize.PostWeak},
		},
	}
	return &Service{
		Runner:       runner,
		Corrector:    corrector,
		Orchestrator: o,
		Logger:       testLogger(),
	}, emitter
}

func TestService_ProcessImage(t *testing.T) {
	ctx := context.Background()
	imagePath := writeServiceTestImage(t)

	t.Run("full run over recognized text", func(t *testing.T) {
		svc, emitter := newTestService(t,
			&fakeEngine{text: "Бухгалтерия предприятия\nАвтоматизация торговли"},
			&fakeCorrector{out: "Бухгалтерия предприятия\nАвтоматизация торговли"})

		res, err := svc.ProcessImage(ctx, "user-1", imagePath)
		if err != nil {
			t.Fatalf("ProcessImage() error = %v", err)
		}
		if !strings.Contains(res.FinalText, "Бухгалтерия") {
			t.Errorf("FinalText = %q", res.FinalText)
		}
		if len(emitter.html) != 1 {
			t.Errorf("emitted = %v", emitter.html)
		}
	})

	t.Run("correction failure falls back to uncorrected text", func(t *testing.T) {
		svc, _ := newTestService(t,
			&fakeEngine{text: "Бухгалтерия предприятия\nАвтоматизация торговли"},
			&fakeCorrector{err: errors.New("languagetool unreachable")})

		res, err := svc.ProcessImage(ctx, "user-1", imagePath)
		if err != nil {
			t.Fatalf("ProcessImage() error = %v, correction must be non-fatal", err)
		}
		if res.FinalText == "" {
			t.Error("FinalText is empty")
		}
	})

	t.Run("engine failure still completes via error markers", func(t *testing.T) {
		svc, _ := newTestService(t,
			&fakeEngine{err: errors.New("tesseract crashed")}, nil)

		res, err := svc.ProcessImage(ctx, "user-1", imagePath)
		if err != nil {
			t.Fatalf("ProcessImage() error = %v, per-template failures must not abort", err)
		}
		if res == nil {
			t.Fatal("nil result")
		}
	})
}

func TestService_ProcessFile(t *testing.T) {
	svc, _ := newTestService(t,
		&fakeEngine{text: "Бухгалтерия предприятия\nАвтоматизация торговли"},
		nil)

	results, err := svc.ProcessFile(context.Background(), "user-1", writeServiceTestImage(t))
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	if len(results) != 1 {
		t.Errorf("results = %d, want 1", len(results))
	}
}
