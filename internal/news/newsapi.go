package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultSearchBase = "https://newsapi.org/v2"

// ErrRateLimited marks a search rejected by the provider's rate limit.
var ErrRateLimited = errors.New("news search rate limited")

// SearchClient queries the NewsAPI "everything" endpoint for recent articles
// matching a keyword group.
type SearchClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type searchResponse struct {
	Status       string `json:"status"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"source"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		URL         string    `json:"url"`
		URLToImage  string    `json:"urlToImage"`
		PublishedAt time.Time `json:"publishedAt"`
		Content     string    `json:"content"`
	} `json:"articles"`
}

func NewSearchClient(apiKey string, timeout time.Duration) *SearchClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SearchClient{
		apiKey:  apiKey,
		baseURL: defaultSearchBase,
		client:  &http.Client{Timeout: timeout},
	}
}

// Search runs one keyword-group query, newest articles first. Any non-success
// response is a hard failure for the group and is propagated to the caller.
func (c *SearchClient) Search(ctx context.Context, keywords []string, pageSize int) ([]NewsItem, error) {
	params := url.Values{}
	params.Set("q", strings.Join(keywords, " OR "))
	params.Set("sortBy", "publishedAt")
	params.Set("language", "en")
	params.Set("pageSize", fmt.Sprintf("%d", pageSize))
	params.Set("apiKey", c.apiKey)

	endpoint := c.baseURL + "/everything?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("new search request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var apiResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if apiResp.Status != "ok" {
		return nil, fmt.Errorf("search error status: %s", apiResp.Status)
	}

	items := make([]NewsItem, 0, len(apiResp.Articles))
	for _, a := range apiResp.Articles {
		body := a.Description
		if body == "" {
			body = a.Content
		}
		items = append(items, NewsItem{
			ID:          a.URL,
			Title:       a.Title,
			SourceName:  a.Source.Name,
			PublishedAt: a.PublishedAt,
			ImageURL:    a.URLToImage,
			BodyText:    body,
		})
	}
	return items, nil
}
