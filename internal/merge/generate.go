package merge

import (
	"fmt"
	"path/filepath"

	"deckmerge/internal/config"
	"deckmerge/internal/deck"
	"deckmerge/internal/record"
	"deckmerge/internal/state"
)

// Generate runs the whole report: load the CSV, open the template, merge,
// save a timestamped deck into the output directory. Returns the run
// summary with the output path filled in.
func Generate(cfg *config.Config, csvPath string, obs Observer) (*state.Summary, error) {
	if obs == nil {
		obs = NopObserver{}
	}

	obs.Phase("load")
	mapping := record.DefaultMapping()
	for field, column := range cfg.Columns {
		mapping[field] = column
	}
	set, err := record.Load(csvPath, mapping, obs.Warnf)
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}
	obs.Infof("loaded %d records from %s", set.Len(), csvPath)

	d, err := deck.Open(cfg.Template)
	if err != nil {
		return nil, fmt.Errorf("opening template: %w", err)
	}

	pl := &Pipeline{Config: cfg, Records: set.All(), Observer: obs}
	sum, err := pl.Run(d)
	if err != nil {
		return nil, err
	}

	obs.Phase("save")
	if err := state.EnsureDir(cfg.OutputDir); err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%s_%s.pptx", cfg.Prefix, sum.GeneratedAt.Format("2006-01-02_15-04-05"))
	out := filepath.Join(cfg.OutputDir, name)
	if err := d.Save(out); err != nil {
		return nil, fmt.Errorf("saving report: %w", err)
	}
	sum.Output = out
	obs.Infof("report written to %s", out)

	return sum, nil
}
