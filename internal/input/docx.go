package input

import (
	"fmt"

	"github.com/nguyenthenguyen/docx"
	"go.uber.org/zap"
)

// NewDocxChain returns the DOCX extraction chain. A single method is enough
// here; it is wrapped in a chain so empty output still maps to
// ErrExtractionFailed.
func NewDocxChain(logger *zap.Logger) *Chain {
	return NewChain(logger, &docxExtractor{})
}

type docxExtractor struct{}

func (e *docxExtractor) Name() string { return "docx" }

func (e *docxExtractor) Extract(path string) (string, error) {
	reader, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer reader.Close()

	return reader.Editable().GetContent(), nil
}
