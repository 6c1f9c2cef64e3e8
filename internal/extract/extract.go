// Package extract renders PDF document pages to images so scanned documents
// can feed the same recognition pipeline as photos.
package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// DefaultDPI is the render resolution. 300 DPI is enough for OCR without
// ballooning temp files.
const DefaultDPI = 300

// IsPDF reports whether path looks like a PDF document.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	count, err := api.PageCount(f, nil)
	if err != nil {
		return 0, fmt.Errorf("pdf page count: %w", err)
	}
	return count, nil
}

// RenderPages renders every page of the PDF to PNG files under outputDir and
// returns the image paths in page order. Rendering uses pdftoppm
// (poppler-utils): pdfcpu extracts embedded image objects whose numbering may
// not match page order, while pdftoppm rasterizes the page as displayed.
func RenderPages(ctx context.Context, pdfPath, outputDir string, dpi int) ([]string, error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	count, err := PageCount(pdfPath)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, count)
	for page := 1; page <= count; page++ {
		out, err := renderPage(ctx, pdfPath, outputDir, page, dpi)
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", page, err)
		}
		paths = append(paths, out)
	}
	return paths, nil
}

// renderPage renders one page via pdftoppm.
func renderPage(ctx context.Context, pdfPath, outputDir string, page, dpi int) (string, error) {
	prefix := filepath.Join(outputDir, fmt.Sprintf("page_%04d", page))

	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-png",
		"-f", fmt.Sprintf("%d", page),
		"-l", fmt.Sprintf("%d", page),
		"-r", fmt.Sprintf("%d", dpi),
		"-singlefile",
		pdfPath,
		prefix,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("pdftoppm failed: %w (output: %s)", err, string(output))
	}

	// pdftoppm with -singlefile creates: <prefix>.png
	out := prefix + ".png"
	if _, err := os.Stat(out); err != nil {
		return "", fmt.Errorf("pdftoppm did not create expected output: %w", err)
	}
	return out, nil
}
