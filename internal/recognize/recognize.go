// Package recognize turns a source image into raw text candidates by running
// a batch of pre/post-processing templates against an OCR engine.
package recognize

import "context"

// Engine performs OCR on a single image file.
type Engine interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// PreFilter identifies an image pre-processing strategy.
type PreFilter int

const (
	// PreMedium applies grayscale and contrast normalization.
	PreMedium PreFilter = iota
	// PreStrong adds a global binarization threshold on top of PreMedium.
	PreStrong
	// PreStrongV3 equalizes the histogram before thresholding, which helps
	// unevenly lit photos.
	PreStrongV3
	// PreCrop binarizes and crops the image to the ink bounding box.
	PreCrop
)

func (f PreFilter) String() string {
	switch f {
	case PreMedium:
		return "medium"
	case PreStrong:
		return "strong"
	case PreStrongV3:
		return "strongV3"
	case PreCrop:
		return "cropTextBlock"
	}
	return "unknown"
}

// PostFilter identifies a text post-processing strategy.
type PostFilter int

const (
	// PostWeak trims lines and drops empties.
	PostWeak PostFilter = iota
	// PostMedium also collapses in-line whitespace runs.
	PostMedium
	// PostStrong also drops lines dominated by recognition noise.
	PostStrong
)

func (f PostFilter) String() string {
	switch f {
	case PostWeak:
		return "weak"
	case PostMedium:
		return "medium"
	case PostStrong:
		return "strong"
	}
	return "unknown"
}

// Template is one pre/post-processing pairing. Running all templates against
// the same image yields the candidate set the consensus pipeline works on.
type Template struct {
	Name string
	Pre  PreFilter
	Post PostFilter
}

// DefaultTemplates returns the standard template batch. Order matters: the
// selector breaks score ties by position, so the most trusted pairings come
// first.
func DefaultTemplates() []Template {
	return []Template{
		{Name: "cropTextBlock+strong", Pre: PreCrop, Post: PostStrong},
		{Name: "cropTextBlock+medium", Pre: PreCrop, Post: PostMedium},
		{Name: "cropTextBlock+weak", Pre: PreCrop, Post: PostWeak},
		{Name: "strong+medium", Pre: PreStrong, Post: PostMedium},
		{Name: "strong+strong", Pre: PreStrong, Post: PostStrong},
		{Name: "strong+weak", Pre: PreStrong, Post: PostWeak},
		{Name: "medium+strong", Pre: PreMedium, Post: PostStrong},
		{Name: "medium+medium", Pre: PreMedium, Post: PostMedium},
		{Name: "medium+weak", Pre: PreMedium, Post: PostWeak},
		{Name: "strongV3+strong", Pre: PreStrongV3, Post: PostStrong},
	}
}
