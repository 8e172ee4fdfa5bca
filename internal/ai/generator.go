package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/friendlyLight/daily-learning-bot/internal/logger"
	"github.com/friendlyLight/daily-learning-bot/internal/news"
	"github.com/friendlyLight/daily-learning-bot/internal/ratelimit"
)

// Generator produces the digest document for one run.
type Generator interface {
	GenerateDigest(ctx context.Context, items []news.NewsItem, task string) (string, error)
}

// ErrBudgetExhausted marks generation refused by the per-run request budget.
var ErrBudgetExhausted = errors.New("ai request budget exhausted")

// Chain tries each provider in order until one succeeds, drawing every call
// from the shared budget. A provider failure is logged and the next provider
// is tried; all providers failing is fatal for the run.
type Chain struct {
	providers []Generator
	budget    *ratelimit.Budget
}

func NewChain(budget *ratelimit.Budget, providers ...Generator) *Chain {
	return &Chain{providers: providers, budget: budget}
}

func (c *Chain) GenerateDigest(ctx context.Context, items []news.NewsItem, task string) (string, error) {
	var lastErr error

	for i, p := range c.providers {
		if c.budget != nil && !c.budget.Allow() {
			if lastErr != nil {
				return "", fmt.Errorf("%w (last provider error: %v)", ErrBudgetExhausted, lastErr)
			}
			return "", ErrBudgetExhausted
		}

		doc, err := p.GenerateDigest(ctx, items, task)
		if err == nil && doc != "" {
			return doc, nil
		}
		if err == nil {
			err = errors.New("empty document")
		}
		lastErr = err
		logger.Warn("digest generation failed, trying next provider", "provider", i, "error", err)
	}

	if lastErr == nil {
		return "", errors.New("no generation providers configured")
	}
	return "", fmt.Errorf("all generation providers failed: %w", lastErr)
}
