package storage

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ProcessedLog keeps delivered item ids in a line-oriented append-only text
// file. The persisted log may contain duplicate lines after overlapping runs;
// membership is deduplicated at load time, not in the file.
type ProcessedLog struct {
	path string
	ids  map[string]struct{}
}

var _ Store = (*ProcessedLog)(nil)

func NewProcessedLog(path string) *ProcessedLog {
	return &ProcessedLog{
		path: path,
		ids:  make(map[string]struct{}),
	}
}

// Load reads the id file into memory. A missing file means a first run and is
// not an error.
func (l *ProcessedLog) Load() error {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open processed log: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id != "" {
			l.ids[id] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read processed log: %w", err)
	}
	return nil
}

func (l *ProcessedLog) Contains(id string) bool {
	_, ok := l.ids[id]
	return ok
}

// Append writes the ids as new lines and records them in memory. The write is
// best-effort, not transactional; a crash between delivery and this call can
// cause re-delivery on the next run.
func (l *ProcessedLog) Append(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open processed log for append: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for _, id := range ids {
		if id == "" {
			continue
		}
		b.WriteString(id)
		b.WriteByte('\n')
		l.ids[id] = struct{}{}
	}
	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("append processed ids: %w", err)
	}
	return nil
}

// Len reports how many distinct ids are known.
func (l *ProcessedLog) Len() int {
	return len(l.ids)
}
