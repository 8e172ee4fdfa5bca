package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/friendlyLight/daily-learning-bot/internal/news"
	"github.com/friendlyLight/daily-learning-bot/internal/ratelimit"
)

type stubGenerator struct {
	doc   string
	err   error
	calls int
}

func (s *stubGenerator) GenerateDigest(ctx context.Context, items []news.NewsItem, task string) (string, error) {
	s.calls++
	return s.doc, s.err
}

func TestChain_FallsBackToNextProvider(t *testing.T) {
	broken := &stubGenerator{err: errors.New("quota exceeded")}
	working := &stubGenerator{doc: "## Digest\n\ncontent"}
	chain := NewChain(ratelimit.NewBudget(0), broken, working)

	doc, err := chain.GenerateDigest(context.Background(), nil, "")
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if doc != "## Digest\n\ncontent" {
		t.Errorf("doc = %q", doc)
	}
	if broken.calls != 1 || working.calls != 1 {
		t.Errorf("call counts: broken=%d working=%d", broken.calls, working.calls)
	}
}

func TestChain_AllProvidersFailing(t *testing.T) {
	chain := NewChain(nil, &stubGenerator{err: errors.New("down")}, &stubGenerator{err: errors.New("also down")})

	if _, err := chain.GenerateDigest(context.Background(), nil, ""); err == nil {
		t.Errorf("expected error when every provider fails")
	}
}

func TestChain_BudgetStopsCalls(t *testing.T) {
	first := &stubGenerator{err: errors.New("down")}
	second := &stubGenerator{doc: "never reached"}
	chain := NewChain(ratelimit.NewBudget(1), first, second)

	_, err := chain.GenerateDigest(context.Background(), nil, "")
	if !errors.Is(err, ErrBudgetExhausted) {
		t.Errorf("err = %v, want budget exhausted", err)
	}
	if second.calls != 0 {
		t.Errorf("second provider should not be called past the budget")
	}
}

func TestBuildDigestPrompt_IncludesTaskAndArticles(t *testing.T) {
	items := []news.NewsItem{
		{ID: "https://example.com/1", Title: "Kubernetes news", SourceName: "Example", BodyText: "Body text."},
	}
	prompt := BuildDigestPrompt(items, "Learn about the OSI model.")

	for _, want := range []string{"Learn about the OSI model.", "Kubernetes news", "https://example.com/1", "Body text."} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSanitizeDigest_StripsFencesAndDisclaimers(t *testing.T) {
	in := "```markdown\n## Digest\n\nNote: this summary was generated automatically.\n\ncontent line\n```"
	got := SanitizeDigest(in)

	if strings.Contains(got, "```") {
		t.Errorf("code fence survived: %q", got)
	}
	if strings.Contains(strings.ToLower(got), "note:") {
		t.Errorf("disclaimer survived: %q", got)
	}
	if !strings.Contains(got, "## Digest") || !strings.Contains(got, "content line") {
		t.Errorf("content lost: %q", got)
	}
}

func TestSanitizeDigest_CollapsesBlankRuns(t *testing.T) {
	got := SanitizeDigest("a\n\n\n\nb")
	if got != "a\n\nb" {
		t.Errorf("got %q", got)
	}
}
