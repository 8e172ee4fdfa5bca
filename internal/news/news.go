// Package news defines the article model, the keyword-group search client and
// the pre-generation filtering step.
package news

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/friendlyLight/daily-learning-bot/internal/logger"
	"github.com/friendlyLight/daily-learning-bot/internal/metrics"
)

// NewsItem is a single article returned by search. Identity is the article
// URL; items are immutable once fetched apart from BodyText enrichment.
type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	SourceName  string    `json:"source_name"`
	PublishedAt time.Time `json:"published_at"`
	ImageURL    string    `json:"image_url,omitempty"`
	BodyText    string    `json:"body_text,omitempty"`
}

// KeywordGroup is one named search query, e.g. "devops" with its keywords.
type KeywordGroup struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

type groupsConfig struct {
	Groups []KeywordGroup `yaml:"groups"`
}

// LoadGroups reads the keyword groups from a YAML file.
func LoadGroups(path string) ([]KeywordGroup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg groupsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Groups, nil
}

// Filter drops items already processed in earlier runs, duplicates within this
// run and stale items, then caps the result. processed is the persisted dedup
// set's membership test; the intra-run seen map lives here.
func Filter(items []NewsItem, processed func(id string) bool, maxAge time.Duration, max int) []NewsItem {
	seen := make(map[string]struct{}, len(items))
	var out []NewsItem

	for _, item := range items {
		if item.ID == "" || item.Title == "" {
			continue
		}
		if maxAge > 0 && !item.PublishedAt.IsZero() && time.Since(item.PublishedAt) > maxAge {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}
		seen[item.ID] = struct{}{}
		if processed != nil && processed(item.ID) {
			logger.Debug("already delivered, skipping", "id", item.ID)
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}

		out = append(out, item)
		if max > 0 && len(out) >= max {
			break
		}
	}

	return out
}
