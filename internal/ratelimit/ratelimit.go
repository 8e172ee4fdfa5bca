package ratelimit

import (
	"sync"

	"github.com/friendlyLight/daily-learning-bot/internal/logger"
)

// Budget caps AI generation calls within a single run so a misbehaving retry
// or fallback chain cannot burn through a provider quota.
type Budget struct {
	mu   sync.Mutex
	used int
	max  int // 0 = unlimited
}

func NewBudget(max int) *Budget {
	return &Budget{max: max}
}

// Allow consumes one request from the budget, reporting whether the call may
// proceed.
func (b *Budget) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.max > 0 && b.used >= b.max {
		logger.Warn("AI request budget exhausted", "used", b.used, "max", b.max)
		return false
	}
	b.used++
	return true
}

// Used reports how many requests have been consumed.
func (b *Budget) Used() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.used
}
