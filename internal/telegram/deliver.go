package telegram

import (
	"context"
	"time"

	"github.com/friendlyLight/daily-learning-bot/internal/logger"
)

// ChunkFailure records one text chunk that could not be delivered.
type ChunkFailure struct {
	Index int
	Err   error
}

// DeliveryReport summarizes one pipeline run. Per-chunk failures are recorded
// here rather than returned as errors; one failed chunk never aborts the rest.
type DeliveryReport struct {
	Attempted int
	Failures  []ChunkFailure
	ImageSent bool
}

// AllSent reports whether every attempted chunk was delivered.
func (r DeliveryReport) AllSent() bool {
	return len(r.Failures) == 0
}

// Deliver sends an optional lead image followed by the text chunks in order,
// waiting pacing between consecutive sends to respect rate limits. The image
// failing is a warning only; recipients still get the text.
func Deliver(ctx context.Context, s Sender, chunks []string, imageURL string, pacing time.Duration) DeliveryReport {
	var report DeliveryReport

	if imageURL != "" {
		if err := s.SendPhoto(ctx, imageURL, ""); err != nil {
			logger.Warn("lead image delivery failed", "url", imageURL, "error", err)
		} else {
			report.ImageSent = true
		}
		if len(chunks) > 0 && pacing > 0 {
			time.Sleep(pacing)
		}
	}

	for i, chunk := range chunks {
		report.Attempted++
		if err := s.SendMessage(ctx, chunk); err != nil {
			logger.Warn("chunk delivery failed", "index", i, "error", err)
			report.Failures = append(report.Failures, ChunkFailure{Index: i, Err: err})
		}
		if i < len(chunks)-1 && pacing > 0 {
			time.Sleep(pacing)
		}
	}

	return report
}
