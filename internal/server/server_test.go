package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skanbot/skanbot/internal/garbage"
	"github.com/skanbot/skanbot/internal/langtool"
	"github.com/skanbot/skanbot/internal/pipeline"
	"github.com/skanbot/skanbot/internal/recognize"
	"github.com/skanbot/skanbot/internal/svcctx"
)

type fakeEngine struct {
	text string
}

func (f *fakeEngine) Recognize(_ context.Context, _ string) (string, error) {
	return f.text, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeTestImage(t *testing.T) string {
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

func newTestServer(t *testing.T, lt *langtool.Client) (*Server, *httptest.Server) {
	t.Helper()
	tempDir := t.TempDir()
	svc := &pipeline.Service{
		Runner: &recognize.Runner{
			Engine:  &fakeEngine{text: "Бухгалтерия предприятия\nАвтоматизация торговли"},
			Logger:  testLogger(),
			TempDir: tempDir,
			Templates: []recognize.Template{
				{Name: "medium+weak", Pre: recognize.PreMedium, Post: recognize.PostWeak},
			},
		},
		Orchestrator: &pipeline.Orchestrator{
			Emitter:  pipeline.NewConsoleEmitter(io.Discard),
			Garbage:  garbage.NewStore(filepath.Join(t.TempDir(), "garbage.json"), testLogger()),
			Sessions: pipeline.NewMemorySessions(),
			Logger:   testLogger(),
		},
		Logger: testLogger(),
	}

	s, err := New(Config{
		Service: svc,
		TempDir: tempDir,
		Services: &svcctx.Services{
			Logger:   testLogger(),
			LangTool: lt,
		},
		Logger: testLogger(),
	})
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(s.httpServer.Handler)
	t.Cleanup(ts.Close)
	return s, ts
}

func TestHandleHealth(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	var hr HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		t.Fatal(err)
	}
	if hr.Status != "ok" {
		t.Errorf("status = %q", hr.Status)
	}
}

func TestHandleReady(t *testing.T) {
	t.Run("degraded without languagetool", func(t *testing.T) {
		_, ts := newTestServer(t, nil)

		resp, err := http.Get(ts.URL + "/ready")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", resp.StatusCode)
		}
	})

	t.Run("ok with healthy languagetool", func(t *testing.T) {
		lts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v2/languages" {
				http.NotFound(w, r)
				return
			}
			w.Write([]byte(`[]`))
		}))
		defer lts.Close()

		_, ts := newTestServer(t, langtool.NewClient(lts.URL, "", testLogger()))

		resp, err := http.Get(ts.URL + "/ready")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
	})
}

func TestHandleRecognize(t *testing.T) {
	t.Run("server-local path", func(t *testing.T) {
		_, ts := newTestServer(t, nil)
		imagePath := writeTestImage(t)

		body, _ := json.Marshal(RecognizeRequest{Path: imagePath})
		resp, err := http.Post(ts.URL+"/recognize", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			raw, _ := io.ReadAll(resp.Body)
			t.Fatalf("status = %d: %s", resp.StatusCode, raw)
		}

		var rr RecognizeResponse
		if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
			t.Fatal(err)
		}
		if len(rr.Results) != 1 {
			t.Fatalf("results = %d, want 1", len(rr.Results))
		}
		if !strings.Contains(rr.Results[0].FinalText, "Бухгалтерия") {
			t.Errorf("final text = %q", rr.Results[0].FinalText)
		}
	})

	t.Run("multipart upload", func(t *testing.T) {
		_, ts := newTestServer(t, nil)
		imagePath := writeTestImage(t)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("image", "photo.png")
		if err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(imagePath)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatal(err)
		}
		mw.Close()

		resp, err := http.Post(ts.URL+"/recognize", mw.FormDataContentType(), &buf)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			raw, _ := io.ReadAll(resp.Body)
			t.Fatalf("status = %d: %s", resp.StatusCode, raw)
		}
	})

	t.Run("missing path rejected", func(t *testing.T) {
		_, ts := newTestServer(t, nil)

		resp, err := http.Post(ts.URL+"/recognize", "application/json", strings.NewReader(`{}`))
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})
}
