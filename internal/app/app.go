// Package app wires the collaborators together and runs one digest cycle:
// fetch, filter, enrich, generate, render, deliver, persist.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/friendlyLight/daily-learning-bot/internal/ai"
	"github.com/friendlyLight/daily-learning-bot/internal/config"
	"github.com/friendlyLight/daily-learning-bot/internal/logger"
	"github.com/friendlyLight/daily-learning-bot/internal/markup"
	"github.com/friendlyLight/daily-learning-bot/internal/metrics"
	"github.com/friendlyLight/daily-learning-bot/internal/news"
	"github.com/friendlyLight/daily-learning-bot/internal/plan"
	"github.com/friendlyLight/daily-learning-bot/internal/ratelimit"
	"github.com/friendlyLight/daily-learning-bot/internal/rss"
	"github.com/friendlyLight/daily-learning-bot/internal/scraper"
	"github.com/friendlyLight/daily-learning-bot/internal/storage"
	"github.com/friendlyLight/daily-learning-bot/internal/telegram"
)

// Searcher is the keyword-group article search collaborator.
type Searcher interface {
	Search(ctx context.Context, keywords []string, pageSize int) ([]news.NewsItem, error)
}

// App holds everything one run needs. All collaborators are injected so the
// pipeline can run against fakes in tests.
type App struct {
	cfg     *config.Config
	store   storage.Store
	search  Searcher
	gen     ai.Generator
	sender  telegram.Sender
	archive *storage.RunArchive
	plan    *plan.Plan
	groups  []news.KeywordGroup
	feeds   []string

	// extract returns the article body for a url, "" when unavailable.
	extract func(ctx context.Context, urls []string, max int) map[string]string

	closers []func()
}

// New builds a fully wired App from configuration.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	groups, err := news.LoadGroups(cfg.KeywordsPath)
	if err != nil {
		return nil, fmt.Errorf("load keyword groups: %w", err)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no keyword groups configured in %s", cfg.KeywordsPath)
	}

	feeds, err := rss.LoadFeeds(cfg.FeedsPath)
	if err != nil {
		return nil, fmt.Errorf("load feeds: %w", err)
	}

	learningPlan, err := plan.Load(cfg.PlanPath)
	if err != nil {
		return nil, fmt.Errorf("load learning plan: %w", err)
	}

	var store storage.Store
	var closers []func()
	if cfg.DatabaseURL != "" {
		pg, err := storage.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		closers = append(closers, func() { _ = pg.Close() })
		store = pg
	} else {
		store = storage.NewProcessedLog(cfg.ProcessedPath)
	}

	sender, err := telegram.NewClient(cfg.TelegramToken, cfg.TelegramChatID, cfg.RequestTimeout)
	if err != nil {
		return nil, err
	}

	budget := ratelimit.NewBudget(cfg.MaxAIRequests)
	var providers []ai.Generator
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		closers = append(closers, gemini.Close)
		providers = append(providers, gemini)
	}
	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, ai.NewOpenAIClient(cfg.OpenAIAPIKey))
	}

	extractor := scraper.NewExtractor(cfg.RequestTimeout)

	return &App{
		cfg:     cfg,
		store:   store,
		search:  news.NewSearchClient(cfg.NewsAPIKey, cfg.RequestTimeout),
		gen:     ai.NewChain(budget, providers...),
		sender:  sender,
		archive: storage.NewRunArchive(cfg.ArchiveDir),
		plan:    learningPlan,
		groups:  groups,
		feeds:   feeds,
		extract: extractor.ExtractAll,
		closers: closers,
	}, nil
}

// Close releases provider clients and store connections.
func (a *App) Close() {
	for _, c := range a.closers {
		c()
	}
}

// Run executes one digest cycle. Upstream failures (search, generation) are
// fatal and reported to the chat best-effort; delivery-level chunk failures
// are recorded and do not fail the run.
func (a *App) Run(ctx context.Context) error {
	started := time.Now()
	runID := uuid.NewString()
	logger.Info("run starting", "run_id", runID)

	defer func() {
		metrics.Global.RecordRunDuration(time.Since(started))
	}()

	if err := a.store.Load(); err != nil {
		return a.fail(ctx, fmt.Errorf("load processed store: %w", err))
	}

	items, err := a.collect(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	metrics.Global.AddItemsFetched(len(items))

	fresh := news.Filter(items, a.store.Contains, a.cfg.NewsMaxAge, a.cfg.MaxItems)
	logger.Info("items filtered", "collected", len(items), "fresh", len(fresh))
	if len(fresh) == 0 {
		logger.Info("nothing new to deliver")
		metrics.Global.SetLastRun()
		return nil
	}

	a.enrich(ctx, fresh)

	task := ""
	if a.plan != nil {
		task = a.plan.TaskFor(time.Now())
	}

	doc, err := a.gen.GenerateDigest(ctx, fresh, task)
	if err != nil {
		metrics.Global.IncrementGenerationFailures()
		return a.fail(ctx, fmt.Errorf("generate digest: %w", err))
	}

	rendered := markup.Translate(doc)
	if a.cfg.EscapeHTML {
		rendered = markup.TranslateEscaped(doc)
	}

	chunks := nonEmpty(markup.Split(rendered, markup.TelegramMessageLimit))
	if len(chunks) == 0 {
		logger.Warn("generated document rendered to nothing, skipping delivery")
		metrics.Global.SetLastRun()
		return nil
	}

	report := telegram.Deliver(ctx, a.sender, chunks, leadImage(fresh), a.cfg.SendPacing)
	metrics.Global.AddMessagesSent(report.Attempted - len(report.Failures))
	metrics.Global.AddChunksFailed(len(report.Failures))
	if !report.AllSent() {
		logger.Warn("partial delivery", "attempted", report.Attempted, "failed", len(report.Failures))
	}

	ids := make([]string, len(fresh))
	for i, item := range fresh {
		ids[i] = item.ID
	}
	if err := a.store.Append(ids); err != nil {
		logger.Error("failed to persist processed ids", "error", err)
	}
	metrics.Global.AddItemsDelivered(len(ids))

	if path, err := a.archive.Write(storage.ArchiveRecord{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Task:        task,
		Digest:      doc,
		Items:       fresh,
	}); err != nil {
		logger.Error("failed to write run archive", "error", err)
	} else {
		logger.Debug("run archived", "path", path)
	}

	metrics.Global.SetLastRun()
	logger.Info("run finished",
		"run_id", runID,
		"items", len(fresh),
		"messages", report.Attempted,
		"failed_chunks", len(report.Failures),
	)
	return nil
}

// collect queries every keyword group and merges best-effort feed headlines.
// A failed group query is fatal; feeds never are.
func (a *App) collect(ctx context.Context) ([]news.NewsItem, error) {
	var items []news.NewsItem

	for _, g := range a.groups {
		found, err := a.search.Search(ctx, g.Keywords, a.cfg.PageSize)
		if err != nil {
			return nil, fmt.Errorf("search group %q: %w", g.Name, err)
		}
		logger.Debug("group searched", "group", g.Name, "items", len(found))
		items = append(items, found...)
	}

	if len(a.feeds) > 0 {
		items = append(items, rss.FetchHeadlines(a.feeds, 2)...)
	}

	return items, nil
}

// enrich replaces short bodies with scraped full text where available.
func (a *App) enrich(ctx context.Context, items []news.NewsItem) {
	if a.extract == nil {
		return
	}

	urls := make([]string, len(items))
	for i, item := range items {
		urls[i] = item.ID
	}

	bodies := a.extract(ctx, urls, a.cfg.ScrapeMaxArticles)
	for i := range items {
		if body, ok := bodies[items[i].ID]; ok && len(body) > len(items[i].BodyText) {
			items[i].BodyText = body
		}
	}
}

// fail reports a fatal run error to the chat, swallowing any secondary
// failure so error reporting can never crash the run handler.
func (a *App) fail(ctx context.Context, err error) error {
	metrics.Global.SetError(err.Error())
	logger.Error("run failed", "error", err)

	notice := fmt.Sprintf("⚠️ Learning digest run failed: %s", err)
	if sendErr := a.sender.SendMessage(ctx, notice); sendErr != nil {
		logger.Warn("failure notification could not be delivered", "error", sendErr)
	}
	return err
}

func nonEmpty(chunks []string) []string {
	out := chunks[:0]
	for _, c := range chunks {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

func leadImage(items []news.NewsItem) string {
	for _, item := range items {
		if item.ImageURL != "" {
			return item.ImageURL
		}
	}
	return ""
}
