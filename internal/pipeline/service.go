package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/skanbot/skanbot/internal/extract"
	"github.com/skanbot/skanbot/internal/ocr"
	"github.com/skanbot/skanbot/internal/recognize"
)

// Corrector is the grammar-correction collaborator.
type Corrector interface {
	Correct(ctx context.Context, text string) (string, error)
}

// Service runs the whole recognition flow for one input file: template
// recognition, merge and assembly, grammar correction and the orchestrator.
type Service struct {
	Runner       *recognize.Runner
	Corrector    Corrector
	Orchestrator *Orchestrator
	Logger       *slog.Logger
}

// ProcessImage recognizes one image and drives the orchestrator over its
// candidates.
func (s *Service) ProcessImage(ctx context.Context, sessionID, imagePath string) (*Result, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("processing image", "path", imagePath, "session", sessionID)

	candidates := s.Runner.RunAll(ctx, imagePath)

	merged := ocr.MergeNoDuplicates(candidates)
	semantic := ocr.AssembleSemantic(candidates)

	// Correction is mandatory when the service answers, but its outage must
	// not sink the run. Fall back to the uncorrected assembly.
	corrected := semantic
	if s.Corrector != nil && semantic != "" {
		c, err := s.Corrector.Correct(ctx, semantic)
		if err != nil {
			logger.Warn("grammar correction failed, using uncorrected text", "error", err)
		} else {
			corrected = c
		}
	}

	human := ocr.AssembleHumanReadable(merged)

	return s.Orchestrator.Run(ctx, sessionID, candidates, semantic, corrected, human)
}

// ProcessFile handles either a photo or a PDF document. PDFs are rendered
// page by page into the runner's temp dir, and every page goes through the
// full pipeline.
func (s *Service) ProcessFile(ctx context.Context, sessionID, path string) ([]*Result, error) {
	if !extract.IsPDF(path) {
		res, err := s.ProcessImage(ctx, sessionID, path)
		if err != nil {
			return nil, err
		}
		return []*Result{res}, nil
	}

	pages, err := extract.RenderPages(ctx, path, s.Runner.TempDir, extract.DefaultDPI)
	if err != nil {
		return nil, fmt.Errorf("render pdf pages: %w", err)
	}

	results := make([]*Result, 0, len(pages))
	for i, page := range pages {
		res, err := s.ProcessImage(ctx, sessionID, page)
		if err != nil {
			return nil, fmt.Errorf("process page %d: %w", i+1, err)
		}
		results = append(results, res)
	}
	return results, nil
}
