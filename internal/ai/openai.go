package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/friendlyLight/daily-learning-bot/internal/news"
)

const openaiModel = openai.GPT4oMini

// OpenAIClient is the fallback digest generator.
type OpenAIClient struct {
	client *openai.Client
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{client: openai.NewClient(apiKey)}
}

func (c *OpenAIClient) GenerateDigest(ctx context.Context, items []news.NewsItem, task string) (string, error) {
	prompt := BuildDigestPrompt(items, task)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openaiModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxCompletionTokens: 2000,
	})
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}

	doc := strings.TrimSpace(resp.Choices[0].Message.Content)
	return SanitizeDigest(doc), nil
}
