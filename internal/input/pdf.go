package input

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// NewPDFChain returns the standard PDF extraction chain: plain-text page walk
// first, row-based reconstruction second. The second method recovers text
// from documents where the plain-text walk returns nothing usable.
func NewPDFChain(logger *zap.Logger) *Chain {
	return NewChain(logger, &pdfTextExtractor{}, &pdfRowExtractor{})
}

type pdfTextExtractor struct{}

func (e *pdfTextExtractor) Name() string { return "pdftext" }

func (e *pdfTextExtractor) Extract(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer file.Close()

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

type pdfRowExtractor struct{}

func (e *pdfRowExtractor) Name() string { return "pdfrows" }

func (e *pdfRowExtractor) Extract(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer file.Close()

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}

		for _, row := range rows {
			for _, word := range row.Content {
				builder.WriteString(word.S)
				builder.WriteString(" ")
			}
			builder.WriteString("\n")
		}
	}

	return builder.String(), nil
}
