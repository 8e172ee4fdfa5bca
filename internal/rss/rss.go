// Package rss pulls supplementary headlines from configured feeds. Feed
// errors are logged and skipped; the feeds never fail a run.
package rss

import (
	"os"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/friendlyLight/daily-learning-bot/internal/logger"
	"github.com/friendlyLight/daily-learning-bot/internal/news"
)

// FeedsConfig is YAML config structure
// feeds:
//   - https://...
type FeedsConfig struct {
	Feeds []string `yaml:"feeds"`
}

// LoadFeeds reads the RSS feeds list from a YAML file. A missing file simply
// disables the feed source.
func LoadFeeds(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Feeds, nil
}

// FetchHeadlines downloads all feeds and converts the newest entries of each
// into items, capped per feed.
func FetchHeadlines(urls []string, perFeed int) []news.NewsItem {
	parser := gofeed.NewParser()
	var items []news.NewsItem
	successCount := 0

	for _, url := range urls {
		feed, err := parser.ParseURL(url)
		if err != nil {
			logger.Warn("feed parse failed", "url", url, "error", err)
			continue
		}
		successCount++

		for i, entry := range feed.Items {
			if perFeed > 0 && i >= perFeed {
				break
			}
			items = append(items, itemFromEntry(feed, entry))
		}
	}

	logger.Info("feeds processed", "ok", successCount, "total", len(urls), "headlines", len(items))
	return items
}

func itemFromEntry(feed *gofeed.Feed, entry *gofeed.Item) news.NewsItem {
	published := time.Time{}
	if entry.PublishedParsed != nil {
		published = *entry.PublishedParsed
	}

	imageURL := ""
	if entry.Image != nil {
		imageURL = entry.Image.URL
	}

	return news.NewsItem{
		ID:          entry.Link,
		Title:       entry.Title,
		SourceName:  feed.Title,
		PublishedAt: published,
		ImageURL:    imageURL,
		BodyText:    entry.Description,
	}
}
