package config

import (
	"fmt"
	"strings"

	"deckmerge/internal/record"
)

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config) error {
	if cfg.Template == "" {
		return fmt.Errorf("config: 'template' is required")
	}
	if !strings.HasSuffix(cfg.Template, ".pptx") {
		return fmt.Errorf("config: template %q must be a .pptx file", cfg.Template)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "outputs"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "report"
	}
	if cfg.OverviewSlide == 0 {
		cfg.OverviewSlide = 1
	}
	if cfg.OverviewSlide < 1 {
		return fmt.Errorf("config: 'overview-slide' must be >= 1 (slide numbers are 1-based)")
	}
	if cfg.HeatmapColumns == 0 {
		cfg.HeatmapColumns = 8
	}
	if cfg.HeatmapColumns < 1 {
		return fmt.Errorf("config: 'heatmap-columns' must be >= 1")
	}
	if cfg.AdoptionTag == "" {
		cfg.AdoptionTag = "CDP Business Adoption"
	}
	if cfg.FoundationalTag == "" {
		cfg.FoundationalTag = "CDP Foundational Use Case"
	}

	for field := range cfg.Columns {
		if !record.KnownField(field) {
			return fmt.Errorf("config: columns: unknown field %q", field)
		}
	}

	if len(cfg.Regions) == 0 {
		return fmt.Errorf("config: at least one region is required")
	}
	seen := make(map[string]bool)
	for i := range cfg.Regions {
		r := &cfg.Regions[i]
		if r.Name == "" {
			return fmt.Errorf("config: region %d: 'name' is required", i+1)
		}
		if seen[r.Name] {
			return fmt.Errorf("config: duplicate region name %q", r.Name)
		}
		seen[r.Name] = true
		if r.Filter == "" {
			return fmt.Errorf("config: region %q: 'filter' is required", r.Name)
		}
		for _, s := range r.Slides {
			if s < 1 {
				return fmt.Errorf("config: region %q: slide numbers are 1-based, got %d", r.Name, s)
			}
		}
		if err := checkIndexFormat(r.Name, "title-format", r.TitleFormat, true); err != nil {
			return err
		}
		if r.OverviewTitleFormat == "" {
			r.OverviewTitleFormat = r.TitleFormat
		}
		if err := checkIndexFormat(r.Name, "overview-title-format", r.OverviewTitleFormat, false); err != nil {
			return err
		}
		if err := checkIndexFormat(r.Name, "status-format", r.StatusFormat, false); err != nil {
			return err
		}
		if err := checkIndexFormat(r.Name, "delivered-format", r.DeliveredFormat, false); err != nil {
			return err
		}
		if err := checkIndexFormat(r.Name, "adopted-format", r.AdoptedFormat, false); err != nil {
			return err
		}
		if err := checkIndexFormat(r.Name, "completeness-format", r.CompletenessFormat, false); err != nil {
			return err
		}
	}

	f := &cfg.Foundational
	if len(f.Slides) > 0 {
		for _, s := range f.Slides {
			if s < 1 {
				return fmt.Errorf("config: foundational: slide numbers are 1-based, got %d", s)
			}
		}
		if f.TrafficFormat == "" {
			f.TrafficFormat = "pr%d"
		}
		if err := checkIndexFormat("foundational", "title-format", f.TitleFormat, true); err != nil {
			return err
		}
		if err := checkIndexFormat("foundational", "owner-format", f.OwnerFormat, false); err != nil {
			return err
		}
		if err := checkIndexFormat("foundational", "status-format", f.StatusFormat, false); err != nil {
			return err
		}
		if err := checkIndexFormat("foundational", "traffic-format", f.TrafficFormat, false); err != nil {
			return err
		}
	}

	op := &cfg.OnePager
	if op.Mode == "" {
		op.Mode = ModeConsume
	}
	if op.Mode != ModeConsume && op.Mode != ModeClone {
		return fmt.Errorf("config: one-pager: unknown mode %q (must be %s or %s)", op.Mode, ModeConsume, ModeClone)
	}
	if op.StartSlide < 0 {
		return fmt.Errorf("config: one-pager: 'start-slide' must be >= 1 (or 0 to disable)")
	}

	return nil
}

// checkIndexFormat validates a key format carrying one decimal index. An
// empty format is allowed unless required; that key family is then skipped.
func checkIndexFormat(owner, field, format string, required bool) error {
	if format == "" {
		if required {
			return fmt.Errorf("config: %s: '%s' is required", owner, field)
		}
		return nil
	}
	if strings.Count(format, "%d") != 1 {
		return fmt.Errorf("config: %s: %s %q must contain exactly one %%d", owner, field, format)
	}
	if strings.Contains(strings.ReplaceAll(format, "%d", ""), "%") {
		return fmt.Errorf("config: %s: %s %q may only use the %%d verb", owner, field, format)
	}
	return nil
}
