package storage

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/friendlyLight/daily-learning-bot/internal/news"
)

func TestRunArchive_WriteAndReadBack(t *testing.T) {
	dir := t.TempDir()
	archive := NewRunArchive(dir)

	rec := ArchiveRecord{
		RunID:       "run-1",
		GeneratedAt: time.Date(2025, 8, 28, 7, 30, 0, 0, time.UTC),
		Task:        "Learn about the OSI model",
		Digest:      "## Tech\n**something happened**",
		Items: []news.NewsItem{
			{ID: "https://example.com/1", Title: "one", SourceName: "Example"},
		},
	}

	path, err := archive.Write(rec)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.HasSuffix(path, "analysis_20250828_073000.json") {
		t.Errorf("unexpected archive path %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got ArchiveRecord
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("archive is not valid JSON: %v", err)
	}
	if got.RunID != rec.RunID || got.Digest != rec.Digest || len(got.Items) != 1 {
		t.Errorf("round-tripped record differs: %+v", got)
	}
}
