// Package ocr implements the multi-template consensus pipeline: scoring,
// merging, semantic assembly and best-result selection over noisy OCR
// candidates of the same source image.
package ocr

// Candidate is the raw output of one recognition attempt, tagged with the
// template that produced it.
type Candidate struct {
	Template string `json:"template"`
	Text     string `json:"text"`
}

// Scored is a candidate text with a provenance label and its quality score.
type Scored struct {
	Text  string  `json:"text"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
