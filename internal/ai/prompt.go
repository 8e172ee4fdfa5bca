// Package ai turns the day's items into one markdown digest document via a
// text-generation API, with a provider fallback chain and a per-run budget.
package ai

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/friendlyLight/daily-learning-bot/internal/news"
)

// prompt content beyond this is cut at a sentence boundary
const maxBodyChars = 6000

// BuildDigestPrompt renders the instruction the generator receives. The
// output format is constrained to the markdown subset the translator handles:
// ## headers, **bold**, _italic_ and [text](url) links.
func BuildDigestPrompt(items []news.NewsItem, task string) string {
	var sb strings.Builder

	sb.WriteString("You are an editor assembling a short daily tech learning digest.\n\n")

	if task != "" {
		sb.WriteString("Open the digest with a section \"## Today's Learning Goal\" containing this task, rephrased encouragingly:\n")
		sb.WriteString(task)
		sb.WriteString("\n\n")
	}

	sb.WriteString("Then summarize and categorize the articles below.\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- Group articles under \"## <Category>\" headers (e.g. DevOps, AI, Infrastructure).\n")
	sb.WriteString("- Per article: one line \"**<title>** ([<source>](<url>))\" followed by a 2-3 sentence summary.\n")
	sb.WriteString("- Separate every section and every article summary with a blank line.\n")
	sb.WriteString("- Use only this markup: ## headers, **bold**, _italic_, [text](url) links.\n")
	sb.WriteString("- No preamble, no closing remarks, no code fences. Output the digest only.\n\n")
	sb.WriteString("Articles:\n\n")

	for i, item := range items {
		sb.WriteString(fmt.Sprintf("Article %d:\n", i+1))
		sb.WriteString(fmt.Sprintf("Title: %s\n", item.Title))
		sb.WriteString(fmt.Sprintf("Source: %s\n", item.SourceName))
		sb.WriteString(fmt.Sprintf("URL: %s\n", item.ID))
		if body := clampBody(item.BodyText); body != "" {
			sb.WriteString(fmt.Sprintf("Text: %s\n", body))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func clampBody(content string) string {
	content = strings.ReplaceAll(content, "\r", "")
	content = strings.Join(strings.Fields(content), " ")
	if utf8.RuneCountInString(content) <= maxBodyChars {
		return content
	}

	runes := []rune(content)
	trimmed := string(runes[:maxBodyChars])
	if idx := strings.LastIndex(trimmed, ". "); idx > 1200 {
		trimmed = trimmed[:idx+1]
	}
	return trimmed
}
