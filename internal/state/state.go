// Package state persists a summary of the last report run so `deckmerge
// status` can render it later.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// RegionStat counts one region's records for the summary.
type RegionStat struct {
	Name      string `json:"name"`
	Matched   int    `json:"matched"`   // records matching the unit filter
	Displayed int    `json:"displayed"` // adoption-tagged records placed on slides
}

// Summary is the outcome of one report run.
type Summary struct {
	GeneratedAt      time.Time    `json:"generated_at"`
	Output           string       `json:"output"`
	Records          int          `json:"records"`
	Regions          []RegionStat `json:"regions,omitempty"`
	Foundational     int          `json:"foundational"`
	OnePagers        int          `json:"one_pagers"`
	DeletedSlides    int          `json:"deleted_slides"`
	CleanedFragments int          `json:"cleaned_fragments"`
	Warnings         []string     `json:"warnings,omitempty"`
}

// Warnf records a formatted warning on the summary.
func (s *Summary) Warnf(format string, args ...any) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}

func summaryPath(dir string) string {
	return filepath.Join(dir, "lastrun.json")
}

// Load reads the last run summary from dir. Returns nil without error when
// no run has been recorded yet.
func Load(dir string) (*Summary, error) {
	data, err := os.ReadFile(summaryPath(dir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the summary to dir.
func (s *Summary) Save(dir string) error {
	if err := EnsureDir(dir); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(summaryPath(dir), data, 0644)
}

// EnsureDir creates dir if needed.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
