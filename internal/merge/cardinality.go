package merge

import (
	"fmt"

	"deckmerge/internal/config"
	"deckmerge/internal/deck"
	"deckmerge/internal/record"
)

// OnePagerOrder lists the records in detail-slide order: region by region
// in configured order, each region's unit-filtered records in source order.
// A record whose business unit matches several region filters appears once
// per match.
func OnePagerOrder(cfg *config.Config, all []*record.Record) []*record.Record {
	var ordered []*record.Record
	for _, region := range cfg.Regions {
		ordered = append(ordered, record.FilterUnit(all, region.Filter)...)
	}
	return ordered
}

// OnePagerResult reports what the detail-slide pass did to the deck.
type OnePagerResult struct {
	Filled  int
	Deleted int
	Cloned  int
}

// FillOnePagers writes one detail slide per ordered record, starting at the
// configured slide. In consume mode the template carries a fixed pool of
// copies: each gets one record and the leftovers are deleted. In clone mode
// a single template slide is duplicated on demand, so the deck grows to the
// data and nothing needs pre-provisioning.
func FillOnePagers(d *deck.Deck, cfg *config.Config, ordered []*record.Record, warn func(string)) (OnePagerResult, error) {
	if cfg.OnePager.Mode == config.ModeClone {
		return cloneOnePagers(d, cfg, ordered)
	}
	return consumeOnePagers(d, cfg, ordered, warn), nil
}

func consumeOnePagers(d *deck.Deck, cfg *config.Config, ordered []*record.Record, warn func(string)) OnePagerResult {
	var res OnePagerResult
	start := cfg.OnePager.StartSlide - 1
	slides := d.Slides()
	for i, rec := range ordered {
		idx := start + i
		if idx >= len(slides) {
			if warn != nil {
				warn(fmt.Sprintf("only %d one-pager slides for %d records, %d records dropped",
					len(slides)-start, len(ordered), len(ordered)-i))
			}
			break
		}
		fillOnePagerSlide(slides[idx], cfg.OnePager.Keys, rec)
		res.Filled++
	}
	// Unused template copies go away, highest index first so the remaining
	// indices stay valid.
	for idx := len(slides) - 1; idx >= start+res.Filled; idx-- {
		if err := d.DeleteSlide(idx); err == nil {
			res.Deleted++
		}
	}
	return res
}

func cloneOnePagers(d *deck.Deck, cfg *config.Config, ordered []*record.Record) (OnePagerResult, error) {
	var res OnePagerResult
	tmpl := cfg.OnePager.StartSlide - 1
	if tmpl < 0 || tmpl >= len(d.Slides()) {
		return res, fmt.Errorf("one-pager template slide %d not in deck", cfg.OnePager.StartSlide)
	}
	if len(ordered) == 0 {
		if err := d.DeleteSlide(tmpl); err != nil {
			return res, err
		}
		res.Deleted = 1
		return res, nil
	}
	// Clone the pristine template before any slide is filled, then fill the
	// template and its clones in record order. Clones append to the deck
	// end, after any trailing slides.
	clones := make([]*deck.Slide, 0, len(ordered)-1)
	for range ordered[1:] {
		clone, err := d.DuplicateSlide(tmpl)
		if err != nil {
			return res, err
		}
		clones = append(clones, clone)
		res.Cloned++
	}
	fillOnePagerSlide(d.Slides()[tmpl], cfg.OnePager.Keys, ordered[0])
	res.Filled++
	for i, clone := range clones {
		fillOnePagerSlide(clone, cfg.OnePager.Keys, ordered[i+1])
		res.Filled++
	}
	return res, nil
}

func fillOnePagerSlide(s *deck.Slide, keys config.OnePagerKeys, rec *record.Record) {
	plan := OnePagerPlan(keys, rec)
	for _, sh := range s.Shapes() {
		RewriteShape(sh, plan)
	}
}
