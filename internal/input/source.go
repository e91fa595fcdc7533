package input

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/atsfoundry/resume-optimizer/internal/resume"
)

// Source describes where a piece of input text comes from. Text takes
// precedence when both are set; File is routed by extension to the matching
// extraction chain.
type Source struct {
	Text string `mapstructure:"text"`
	File string `mapstructure:"file"`
}

// Resolve returns the text for the source. PDF and DOCX files go through
// their extraction chains; everything else is read as UTF-8 text. Blank
// resolved text yields resume.ErrEmptyInput.
func (s *Source) Resolve(logger *zap.Logger) (string, error) {
	if s == nil {
		return "", resume.ErrEmptyInput
	}

	text, err := s.resolve(logger)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", resume.ErrEmptyInput
	}

	return text, nil
}

func (s *Source) resolve(logger *zap.Logger) (string, error) {
	if strings.TrimSpace(s.Text) != "" {
		return s.Text, nil
	}

	file := strings.TrimSpace(s.File)
	if file == "" {
		return "", resume.ErrEmptyInput
	}

	switch strings.ToLower(filepath.Ext(file)) {
	case ".pdf":
		return NewPDFChain(logger).Extract(file)
	case ".docx":
		return NewDocxChain(logger).Extract(file)
	default:
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %q: %w", file, err)
		}
		return string(data), nil
	}
}
