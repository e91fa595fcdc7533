package input

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrExtractionFailed reports that no extraction method produced usable text
// from a document.
var ErrExtractionFailed = errors.New("no extraction method produced text")

// Extractor pulls plain text out of a document on disk. Implementations must
// be side-effect free: the chain may skip or retry them freely across runs.
type Extractor interface {
	Name() string
	Extract(path string) (string, error)
}

// Chain tries extractors in fixed priority order and returns the first result
// that is non-empty after trimming. Each method is tried once, in-process,
// synchronously. No retries, no backoff.
type Chain struct {
	extractors []Extractor
	logger     *zap.Logger
}

// NewChain builds a chain over the provided extractors. A nil logger is
// replaced with a no-op one.
func NewChain(logger *zap.Logger, extractors ...Extractor) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{extractors: extractors, logger: logger}
}

// Extract runs the chain against the document at path. When every method
// fails or yields empty text, the returned error wraps ErrExtractionFailed
// and lists the per-method outcomes.
func (c *Chain) Extract(path string) (string, error) {
	attempts := make([]string, 0, len(c.extractors))

	for _, extractor := range c.extractors {
		text, err := extractor.Extract(path)
		if err != nil {
			c.logger.Debug("extraction method failed",
				zap.String("method", extractor.Name()),
				zap.String("path", path),
				zap.Error(err),
			)
			attempts = append(attempts, fmt.Sprintf("%s: %v", extractor.Name(), err))
			continue
		}

		if strings.TrimSpace(text) == "" {
			c.logger.Debug("extraction method produced empty text",
				zap.String("method", extractor.Name()),
				zap.String("path", path),
			)
			attempts = append(attempts, fmt.Sprintf("%s: empty output", extractor.Name()))
			continue
		}

		c.logger.Debug("extraction method succeeded",
			zap.String("method", extractor.Name()),
			zap.Int("length", len(text)),
		)

		return text, nil
	}

	return "", fmt.Errorf("%w for %q (%s)", ErrExtractionFailed, path, strings.Join(attempts, "; "))
}
