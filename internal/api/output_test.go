package api

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetOutputFormat(t *testing.T) {
	t.Cleanup(func() { globalOutputFormat = OutputFormatYAML })

	t.Run("json", func(t *testing.T) {
		if err := SetOutputFormat("json"); err != nil {
			t.Fatal(err)
		}
		if got := GetOutputFormat(); got != OutputFormatJSON {
			t.Errorf("format = %q, want json", got)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		if err := SetOutputFormat("yaml"); err != nil {
			t.Fatal(err)
		}
		if got := GetOutputFormat(); got != OutputFormatYAML {
			t.Errorf("format = %q, want yaml", got)
		}
	})

	t.Run("unknown format rejected", func(t *testing.T) {
		if err := SetOutputFormat("xml"); err == nil {
			t.Fatal("expected error for unknown format")
		}
		if got := GetOutputFormat(); got != OutputFormatYAML {
			t.Errorf("format changed to %q on rejected input", got)
		}
	})
}

func TestOutputTo(t *testing.T) {
	data := map[string]string{"status": "ok"}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatJSON, data); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), `"status": "ok"`) {
			t.Errorf("output = %q", buf.String())
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatYAML, data); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "status: ok") {
			t.Errorf("output = %q", buf.String())
		}
	})

	t.Run("unknown format errors", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormat("toml"), data); err == nil {
			t.Fatal("expected error for unknown format")
		}
	})
}
