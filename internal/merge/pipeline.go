package merge

import (
	"fmt"
	"strings"
	"time"

	"deckmerge/internal/config"
	"deckmerge/internal/deck"
	"deckmerge/internal/record"
	"deckmerge/internal/state"
)

// Pipeline runs the full report merge against an opened deck: overview,
// region status slides, foundational slides, one-pagers, cleanup. The deck
// is mutated in place; the caller saves it.
type Pipeline struct {
	Config   *config.Config
	Records  []*record.Record
	Observer Observer
}

func (pl *Pipeline) observer() Observer {
	if pl.Observer == nil {
		return NopObserver{}
	}
	return pl.Observer
}

// Run executes every merge phase in order and reports what happened.
func (pl *Pipeline) Run(d *deck.Deck) (*state.Summary, error) {
	obs := pl.observer()
	sum := &state.Summary{GeneratedAt: time.Now(), Records: len(pl.Records)}

	obs.Phase("overview")
	if err := pl.runOverview(d); err != nil {
		return nil, err
	}

	obs.Phase("regions")
	if err := pl.runRegions(d, sum, obs); err != nil {
		return nil, err
	}

	obs.Phase("foundational")
	if err := pl.runFoundational(d, sum, obs); err != nil {
		return nil, err
	}

	// start-slide 0 disables the detail slides entirely.
	if pl.Config.OnePager.StartSlide >= 1 {
		obs.Phase("one-pagers")
		ordered := OnePagerOrder(pl.Config, pl.Records)
		res, err := FillOnePagers(d, pl.Config, ordered, func(msg string) {
			obs.Warnf("%s", msg)
			sum.Warnf("%s", msg)
		})
		if err != nil {
			return nil, err
		}
		sum.OnePagers = res.Filled
		sum.DeletedSlides = res.Deleted
		obs.Infof("filled %d one-pagers (%d cloned, %d deleted)", res.Filled, res.Cloned, res.Deleted)
	}

	obs.Phase("cleanup")
	sum.CleanedFragments = Cleanup(d)
	obs.Infof("cleaned %d leftover placeholders", sum.CleanedFragments)

	return sum, nil
}

// runOverview applies the cross-region summary plan to the overview slide.
func (pl *Pipeline) runOverview(d *deck.Deck) error {
	slides := d.Slides()
	idx := pl.Config.OverviewSlide - 1
	if idx < 0 || idx >= len(slides) {
		return fmt.Errorf("overview slide %d not in deck (%d slides)", pl.Config.OverviewSlide, len(slides))
	}
	plan := OverviewPlan(pl.Config, pl.Records)
	for _, sh := range slides[idx].Shapes() {
		RewriteShape(sh, plan)
	}
	return nil
}

// runRegions processes each region's status slides: identify the record
// behind every table row by its title token, paint the stage columns, then
// resolve the row's text tokens cell by cell.
func (pl *Pipeline) runRegions(d *deck.Deck, sum *state.Summary, obs Observer) error {
	slides := d.Slides()
	for _, region := range pl.Config.Regions {
		matched := record.FilterUnit(pl.Records, region.Filter)
		shown := record.FilterType(matched, pl.Config.AdoptionTag)
		sum.Regions = append(sum.Regions, state.RegionStat{
			Name:      region.Name,
			Matched:   len(matched),
			Displayed: len(shown),
		})
		obs.Infof("region %s: %d matched, %d displayed", region.Name, len(matched), len(shown))

		res, err := NewResolver(region, shown)
		if err != nil {
			return err
		}
		for _, n := range region.Slides {
			if n < 1 || n > len(slides) {
				obs.Warnf("region %s: slide %d not in deck, skipped", region.Name, n)
				sum.Warnf("region %s: slide %d not in deck, skipped", region.Name, n)
				continue
			}
			pl.runRegionSlide(slides[n-1], res)
		}
	}
	return nil
}

func (pl *Pipeline) runRegionSlide(s *deck.Slide, res *Resolver) {
	for _, sh := range s.Shapes() {
		if sh.HasTable() {
			for _, row := range sh.Table().Rows() {
				cells := row.Cells()
				if len(cells) == 0 {
					continue
				}
				// The title token in the first column names the record the
				// row belongs to; its heatmap stage drives the row colors.
				if idx := res.TitleIndex(cells[0].TextFrame().Text()); idx > 0 {
					if rec := res.recordAt(idx); rec != nil {
						ColorStageRow(row, StageOf(rec), pl.Config.HeatmapColumns)
					}
				}
				// Tokens are resolved against the whole row so a status or
				// date cell resolves through the title sitting in column 0.
				var texts []string
				for _, cell := range cells {
					texts = append(texts, cell.TextFrame().Text())
				}
				plan := res.Resolve(strings.Join(texts, "\n"))
				for _, cell := range cells {
					RewriteTextFrame(cell.TextFrame(), plan)
				}
			}
			continue
		}
		if sh.HasTextFrame() {
			tf := sh.TextFrame()
			RewriteTextFrame(tf, res.Resolve(tf.Text()))
		}
	}
}

// runFoundational fills the foundational slides and applies their traffic
// lights after the text pass.
func (pl *Pipeline) runFoundational(d *deck.Deck, sum *state.Summary, obs Observer) error {
	f := pl.Config.Foundational
	recs := record.FilterType(pl.Records, pl.Config.FoundationalTag)
	sum.Foundational = len(recs)
	obs.Infof("foundational: %d records", len(recs))

	plan := FoundationalPlan(f, recs)
	trafficRe, err := IndexPattern(f.TrafficFormat)
	if err != nil {
		return fmt.Errorf("foundational: %w", err)
	}

	slides := d.Slides()
	for _, n := range f.Slides {
		if n < 1 || n > len(slides) {
			continue
		}
		for _, sh := range slides[n-1].Shapes() {
			RewriteShape(sh, plan)
			if sh.HasTable() {
				for _, row := range sh.Table().Rows() {
					for _, cell := range row.Cells() {
						ApplyTrafficCell(cell, trafficRe, recs)
					}
				}
				continue
			}
			ApplyTrafficShape(sh, trafficRe, recs)
		}
	}
	return nil
}
