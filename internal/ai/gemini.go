package ai

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/friendlyLight/daily-learning-bot/internal/news"
)

const geminiModel = "gemini-1.5-flash"

// GeminiClient generates the digest document with Gemini.
type GeminiClient struct {
	client *genai.Client
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

func (c *GeminiClient) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// GenerateDigest produces the markdown digest for the given items and task.
func (c *GeminiClient) GenerateDigest(ctx context.Context, items []news.NewsItem, task string) (string, error) {
	model := c.client.GenerativeModel(geminiModel)

	prompt := BuildDigestPrompt(items, task)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	doc := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return SanitizeDigest(doc), nil
}
