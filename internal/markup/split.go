package markup

import (
	"strings"
	"unicode/utf8"
)

// TelegramMessageLimit is the Bot API maximum message length in code points.
const TelegramMessageLimit = 4096

const paragraphSep = "\n\n"

// Split breaks text into chunks of at most maxLen runes, preferring paragraph
// boundaries. Text that already fits is returned as a single chunk unchanged.
// A paragraph longer than maxLen on its own becomes its own oversized chunk.
// Empty input yields a single empty chunk; the caller suppresses that send.
func Split(text string, maxLen int) []string {
	if utf8.RuneCountInString(text) <= maxLen {
		return []string{text}
	}

	paragraphs := strings.Split(text, paragraphSep)

	var chunks []string
	var cur strings.Builder
	curLen := 0
	started := false

	for _, p := range paragraphs {
		pLen := utf8.RuneCountInString(p)

		if !started {
			cur.WriteString(p)
			curLen = pLen
			started = true
			continue
		}

		if curLen+len(paragraphSep)+pLen <= maxLen {
			cur.WriteString(paragraphSep)
			cur.WriteString(p)
			curLen += len(paragraphSep) + pLen
			continue
		}

		chunks = append(chunks, cur.String())
		cur.Reset()
		cur.WriteString(p)
		curLen = pLen
	}

	return append(chunks, cur.String())
}
