// Package scraper extracts full article text for digest enrichment. Any
// failure yields "no content"; the pipeline never sees a scraper error.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/friendlyLight/daily-learning-bot/internal/logger"
	"github.com/friendlyLight/daily-learning-bot/internal/retry"
)

// content longer than this is trimmed at a paragraph boundary to keep the
// generation prompt bounded
const maxContentLen = 1800

// paragraph selectors in order of preference; stop once enough text is found
var contentSelectors = []string{
	"article p",
	".article-body p",
	".post-content p",
	".entry-content p",
	".content p",
	"main p",
	"p",
}

var junkIndicators = []string{
	"cookie", "subscribe to", "sign up", "newsletter",
	"advertisement", "sponsored", "read more", "click here",
	"follow us", "share this", "all rights reserved",
}

// Extractor fetches article pages over HTTP with bounded retries.
type Extractor struct {
	client      *http.Client
	maxAttempts int
	pause       time.Duration // between consecutive article fetches
}

func NewExtractor(timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Extractor{
		client:      &http.Client{Timeout: timeout},
		maxAttempts: 2,
		pause:       500 * time.Millisecond,
	}
}

// Extract returns the article body text, or "" when the page cannot be
// fetched or yields no usable paragraphs.
func (e *Extractor) Extract(ctx context.Context, url string) string {
	var content string

	err := retry.WithRetry(ctx, retry.RetryConfig{MaxAttempts: e.maxAttempts, Delay: time.Second}, func() error {
		text, err := e.fetch(ctx, url)
		if err != nil {
			return err
		}
		content = text
		return nil
	})
	if err != nil {
		logger.Warn("article extraction failed", "url", url, "error", err)
		return ""
	}
	return content
}

// ExtractAll enriches up to max urls sequentially with a polite pause between
// fetches. Returns url -> body text for every successful extraction.
func (e *Extractor) ExtractAll(ctx context.Context, urls []string, max int) map[string]string {
	result := make(map[string]string)

	for i, url := range urls {
		if max > 0 && i >= max {
			break
		}
		if i > 0 && e.pause > 0 {
			time.Sleep(e.pause)
		}

		if text := e.Extract(ctx, url); len(text) > 100 {
			result[url] = text
			logger.Debug("article text extracted", "url", url, "chars", len(text))
		}
	}

	return result
}

func (e *Extractor) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("load page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	content := extractParagraphs(doc)
	if content == "" {
		return "", fmt.Errorf("no usable content")
	}
	return content, nil
}

func extractParagraphs(doc *goquery.Document) string {
	var best []string

	for _, selector := range contentSelectors {
		var paragraphs []string
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 20 && !isJunkLine(text) {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 {
			best = paragraphs
			break
		}
		if len(paragraphs) > len(best) {
			best = paragraphs
		}
	}

	if len(best) == 0 {
		return ""
	}
	return trimToParagraphBudget(strings.Join(best, "\n\n"))
}

func isJunkLine(line string) bool {
	lower := strings.ToLower(line)
	for _, indicator := range junkIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

func trimToParagraphBudget(text string) string {
	if len(text) <= maxContentLen {
		return text
	}

	paragraphs := strings.Split(text, "\n\n")
	var selected []string
	total := 0
	for _, p := range paragraphs {
		if total+len(p) > maxContentLen {
			break
		}
		selected = append(selected, p)
		total += len(p) + 2
	}
	if len(selected) == 0 {
		return text[:maxContentLen]
	}
	return strings.Join(selected, "\n\n")
}
