package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/friendlyLight/daily-learning-bot/internal/news"
)

// ArchiveRecord is the local analysis record persisted after a run: the raw
// generated document plus the items it covered.
type ArchiveRecord struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Task        string          `json:"task,omitempty"`
	Digest      string          `json:"digest"`
	Items       []news.NewsItem `json:"items"`
}

// RunArchive writes one timestamped JSON document per run into a directory.
type RunArchive struct {
	dir string
}

func NewRunArchive(dir string) *RunArchive {
	return &RunArchive{dir: dir}
}

// Write persists the record and returns the file path. Best effort; a crash
// mid-write loses at most this run's record.
func (a *RunArchive) Write(rec ArchiveRecord) (string, error) {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	name := fmt.Sprintf("analysis_%s.json", rec.GeneratedAt.Format("20060102_150405"))
	path := filepath.Join(a.dir, name)

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal archive record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write archive record: %w", err)
	}
	return path, nil
}
