package markup

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplit_ShortInputSingleChunk(t *testing.T) {
	in := "short paragraph\n\nanother one"
	got := Split(in, 4096)
	if len(got) != 1 || got[0] != in {
		t.Errorf("expected single unchanged chunk, got %#v", got)
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	got := Split("", 4096)
	if len(got) != 1 || got[0] != "" {
		t.Errorf("expected single empty chunk, got %#v", got)
	}
}

func TestSplit_RespectsLimit(t *testing.T) {
	var parts []string
	for i := 0; i < 40; i++ {
		parts = append(parts, strings.Repeat("x", 300))
	}
	in := strings.Join(parts, "\n\n")

	chunks := Split(in, 1000)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c); n > 1000 {
			t.Errorf("chunk %d exceeds limit: %d runes", i, n)
		}
	}
}

func TestSplit_ParagraphRoundTrip(t *testing.T) {
	paragraphs := []string{
		strings.Repeat("a", 400),
		strings.Repeat("b", 400),
		strings.Repeat("c", 400),
		strings.Repeat("d", 400),
	}
	in := strings.Join(paragraphs, "\n\n")

	chunks := Split(in, 900)
	rejoined := strings.Join(chunks, "\n\n")
	if !reflect.DeepEqual(strings.Split(rejoined, "\n\n"), paragraphs) {
		t.Errorf("paragraph sequence not preserved: %#v", chunks)
	}
}

func TestSplit_OversizedParagraphEmittedWhole(t *testing.T) {
	big := strings.Repeat("z", 2000)
	in := "intro\n\n" + big + "\n\noutro"

	chunks := Split(in, 1000)
	found := false
	for _, c := range chunks {
		if c == big {
			found = true
		}
	}
	if !found {
		t.Errorf("oversized paragraph was not emitted as its own chunk: %#v", chunkLens(chunks))
	}
}

func TestSplit_GreedyPacking(t *testing.T) {
	// Paragraphs 1+2 fit together under the limit, paragraph 3 does not.
	p1 := strings.Repeat("a", 1800)
	p2 := strings.Repeat("b", 1800)
	p3 := strings.Repeat("c", 1800)
	in := p1 + "\n\n" + p2 + "\n\n" + p3

	chunks := Split(in, 4096)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d (%v)", len(chunks), chunkLens(chunks))
	}
	if chunks[0] != p1+"\n\n"+p2 {
		t.Errorf("first chunk should hold paragraphs 1 and 2")
	}
	if chunks[1] != p3 {
		t.Errorf("second chunk should hold paragraph 3")
	}
}

func chunkLens(chunks []string) []int {
	lens := make([]int, len(chunks))
	for i, c := range chunks {
		lens[i] = utf8.RuneCountInString(c)
	}
	return lens
}
