// Package plan holds the day-numbered learning schedule that opens each
// digest.
package plan

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultDoneMessage = "🎉 You're done or no task set for today!"

// Plan maps days since the start date onto learning tasks. Day one is the
// start date itself.
type Plan struct {
	StartDate   string   `yaml:"start_date"` // YYYY-MM-DD
	Tasks       []string `yaml:"tasks"`
	DoneMessage string   `yaml:"done_message"`

	start time.Time
}

// Load reads the schedule from a YAML file. A missing file disables the
// learning-goal section rather than failing the run.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}

	p.start, err = time.Parse("2006-01-02", p.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parse plan start_date %q: %w", p.StartDate, err)
	}
	if p.DoneMessage == "" {
		p.DoneMessage = defaultDoneMessage
	}
	return &p, nil
}

// TaskFor returns the task scheduled for the given day, or the done message
// once the plan is exhausted or before it starts.
func (p *Plan) TaskFor(now time.Time) string {
	day := int(now.Sub(p.start).Hours()/24) + 1
	if day < 1 || day > len(p.Tasks) {
		return p.DoneMessage
	}
	return p.Tasks[day-1]
}
