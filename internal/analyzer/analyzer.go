package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/bdougie/streampulse/internal/models"
)

const (
	defaultMaxRetries = 3
	defaultBackoff    = 2 * time.Second
)

// Extractor is the single capability the analyzer needs from a vision model:
// one frame in, raw model text out. Implementations return an error on
// transport/service failure and may return text that is not valid JSON.
type Extractor interface {
	Extract(ctx context.Context, prompt string, image []byte) (string, error)
}

// Analyzer converts one frame image into one complete FrameRecord. It never
// returns an error: every failure path collapses into the fallback record.
type Analyzer struct {
	extractor  Extractor
	logger     *slog.Logger
	maxRetries int
	backoff    time.Duration

	// injected for tests
	sleep func(time.Duration)
	now   func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

func WithMaxRetries(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxRetries = n
		}
	}
}

func WithBackoff(d time.Duration) Option {
	return func(a *Analyzer) { a.backoff = d }
}

// WithClock replaces the sleep and now functions so tests can drive retries
// without real delay.
func WithClock(sleep func(time.Duration), now func() time.Time) Option {
	return func(a *Analyzer) {
		a.sleep = sleep
		a.now = now
	}
}

func New(extractor Extractor, logger *slog.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		extractor:  extractor,
		logger:     logger,
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
		sleep:      time.Sleep,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze extracts one FrameRecord from the image at imagePath.
//
// Transport errors are retried after a fixed backoff; unparseable responses
// are retried immediately. Both share the same retry budget. An unreadable
// image skips extraction entirely. When the budget is exhausted the caller
// gets the fallback record, never an error.
func (a *Analyzer) Analyze(ctx context.Context, imagePath string) models.FrameRecord {
	image, err := os.ReadFile(imagePath)
	if err != nil {
		a.logger.Error("failed to read frame, using fallback record", "image", imagePath, "error", err)
		return models.FallbackRecord(imagePath, a.now())
	}

	for attempt := 1; attempt <= a.maxRetries; attempt++ {
		raw, err := a.extractor.Extract(ctx, extractionPrompt, image)
		if err != nil {
			a.logger.Warn("extraction call failed",
				"image", imagePath,
				"attempt", attempt,
				"max_retries", a.maxRetries,
				"error", err)
			if attempt < a.maxRetries {
				a.sleep(a.backoff)
			}
			continue
		}

		payload, err := decodePayload(raw)
		if err != nil {
			a.logger.Warn("response was not a valid JSON object, retrying",
				"image", imagePath,
				"attempt", attempt,
				"error", err)
			continue
		}

		rec := models.RecordFromPayload(payload)
		rec.Timestamp = a.now().Format(time.RFC3339)
		rec.ImageRef = imagePath
		return rec
	}

	a.logger.Error("extraction budget exhausted, using fallback record", "image", imagePath)
	return models.FallbackRecord(imagePath, a.now())
}

// decodePayload parses the model text as a single JSON object. Models love to
// wrap JSON in markdown fences, so those are stripped first.
func decodePayload(raw string) (map[string]any, error) {
	cleaned := stripFences(raw)

	var payload map[string]any
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse response as JSON object: %v", err)
	}
	return payload, nil
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}

	// Tolerate prose around the object by slicing to the outermost braces.
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return strings.TrimSpace(s)
}
