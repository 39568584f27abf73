package merge

import (
	"fmt"
	"regexp"
	"strings"

	"deckmerge/internal/config"
	"deckmerge/internal/record"
)

// Resolver maps placeholder tokens found in one region's text onto its
// filtered, ordered record list. Token indices are 1-based in the
// document; records are 0-based in the list.
type Resolver struct {
	region  config.Region
	records []*record.Record

	title        *regexp.Regexp
	completeness *regexp.Regexp
	delivered    *regexp.Regexp
	adopted      *regexp.Regexp
}

// NewResolver derives the region's match patterns from its key formats.
func NewResolver(region config.Region, records []*record.Record) (*Resolver, error) {
	r := &Resolver{region: region, records: records}
	var err error
	if r.title, err = IndexPattern(region.TitleFormat); err != nil {
		return nil, fmt.Errorf("region %s: %w", region.Name, err)
	}
	if region.CompletenessFormat != "" {
		if r.completeness, err = IndexPattern(region.CompletenessFormat); err != nil {
			return nil, fmt.Errorf("region %s: %w", region.Name, err)
		}
	}
	if region.DeliveredFormat != "" {
		if r.delivered, err = IndexPattern(region.DeliveredFormat); err != nil {
			return nil, fmt.Errorf("region %s: %w", region.Name, err)
		}
	}
	if region.AdoptedFormat != "" {
		if r.adopted, err = IndexPattern(region.AdoptedFormat); err != nil {
			return nil, fmt.Errorf("region %s: %w", region.Name, err)
		}
	}
	return r, nil
}

// Records returns the region's visible record list.
func (r *Resolver) Records() []*record.Record {
	return r.records
}

// recordAt maps a 1-based token index to a record, nil when out of range.
func (r *Resolver) recordAt(idx int) *record.Record {
	if idx < 1 || idx > len(r.records) {
		return nil
	}
	return r.records[idx-1]
}

// TitleIndex returns the 1-based index of the title token in text, or 0.
// Used to identify which record owns a table row before its stage columns
// are colored.
func (r *Resolver) TitleIndex(text string) int {
	return FindIndex(r.title, text)
}

// Resolve scans text for every token family of the region and returns the
// replacement plan. Families are scanned independently: a cell may carry a
// date token of record 2 next to a title token of record 1. Tokens whose
// index is outside the record list produce no entry and are left for the
// cleanup pass.
func (r *Resolver) Resolve(text string) Plan {
	plan := Plan{}

	if idx := FindIndex(r.title, text); idx > 0 {
		if rec := r.recordAt(idx); rec != nil {
			plan.AddIndexed(r.region.TitleFormat, idx, rec.Title, fmtTitle)
			plan.AddIndexed(r.region.StatusFormat, idx, orNA(rec.StatusUpdate), fmtSmall)
			if r.region.OwnerKey != "" {
				// Shared owner token: same key regardless of index, owned by
				// the row's (last matched) title record.
				plan.Add("{{"+r.region.OwnerKey+"}}", rec.Owner, fmtSmall)
			}
			plan.AddIndexed(r.region.DeliveredFormat, idx, rec.DeliveryDate, fmtBody)
			plan.AddIndexed(r.region.AdoptedFormat, idx, rec.AdoptionDate, fmtBody)
			plan.AddIndexed(r.region.CompletenessFormat, idx, rec.Completeness, completenessFormat(rec.Completeness))
		}
	}

	if idx := FindIndex(r.completeness, text); idx > 0 {
		if rec := r.recordAt(idx); rec != nil {
			plan.AddIndexed(r.region.CompletenessFormat, idx, rec.Completeness, completenessFormat(rec.Completeness))
		}
	}
	if idx := FindIndex(r.delivered, text); idx > 0 {
		if rec := r.recordAt(idx); rec != nil {
			plan.AddIndexed(r.region.DeliveredFormat, idx, rec.DeliveryDate, fmtBody)
		}
	}
	if idx := FindIndex(r.adopted, text); idx > 0 {
		if rec := r.recordAt(idx); rec != nil {
			plan.AddIndexed(r.region.AdoptedFormat, idx, rec.AdoptionDate, fmtBody)
		}
	}

	return plan
}

// OverviewPlan builds the fixed plan for the overview slide: per region,
// the adoption-tagged records' titles and both date fields, keyed by the
// overview wording.
func OverviewPlan(cfg *config.Config, all []*record.Record) Plan {
	plan := Plan{}
	for _, region := range cfg.Regions {
		unit := record.FilterUnit(all, region.Filter)
		shown := record.FilterType(unit, cfg.AdoptionTag)
		for i, rec := range shown {
			idx := i + 1
			plan.AddIndexed(region.OverviewTitleFormat, idx, rec.Title, fmtTitle)
			plan.AddIndexed(region.DeliveredFormat, idx, rec.DeliveryDate, fmtDate)
			plan.AddIndexed(region.AdoptedFormat, idx, rec.AdoptionDate, fmtDate)
		}
	}
	return plan
}

// FoundationalPlan builds the plan for the foundational slides, overview
// message included.
func FoundationalPlan(f config.Foundational, recs []*record.Record) Plan {
	plan := Plan{}
	msg := foundationalMessage(recs)
	for _, key := range f.MessageKeys {
		plan.Add("{{"+key+"}}", msg, fmtMessage)
	}
	for i, rec := range recs {
		idx := i + 1
		plan.AddIndexed(f.TitleFormat, idx, rec.Title, fmtTitle)
		plan.AddIndexed(f.OwnerFormat, idx, rec.Owner, fmtSmall)
		plan.AddIndexed(f.StatusFormat, idx, orNA(rec.OverallStatus), fmtSmall)
	}
	return plan
}

// foundationalMessage summarizes the foundational records' health by their
// traffic light. Green and grey count as on track, and so does an empty
// value.
func foundationalMessage(recs []*record.Record) string {
	if len(recs) == 0 {
		return "No Foundational Use Cases found."
	}
	positive := 0
	for _, rec := range recs {
		status := strings.ToLower(strings.TrimSpace(rec.TrafficLight))
		if status == "" || strings.Contains(status, "green") ||
			strings.Contains(status, "grey") || strings.Contains(status, "gray") {
			positive++
		}
	}
	percent := positive * 100 / len(recs)
	if percent >= 80 {
		return "All CDP Foundational Use Cases are on track and will enable business adoption."
	}
	return fmt.Sprintf("Only %d%% CDP Foundational Use Cases are on track and will enable business adoption.", percent)
}

// OnePagerPlan builds the fixed plan for one detail slide.
func OnePagerPlan(keys config.OnePagerKeys, rec *record.Record) Plan {
	plan := Plan{}
	titleFmt := Format{Bold: boolPtr(true), Color: &ColorTitleBlue}
	add := func(key, text string, f Format) {
		if key != "" {
			plan.Add("{{"+key+"}}", text, f)
		}
	}
	add(keys.Title, rec.Title, titleFmt)
	add(keys.Problem, rec.ProblemStatement, fmtBody)
	add(keys.Scope, rec.Scope, fmtBody)
	add(keys.Value, rec.ValueKPIs, fmtBody)
	add(keys.LineOfBusiness, rec.LineOfBusiness, fmtBody)
	add(keys.BusinessUnit, rec.BusinessUnit, fmtBody)
	add(keys.Owner, rec.Owner, fmtBody)
	add(keys.Contacts, rec.BusinessContacts, fmtBody)
	add(keys.KeyUsers, rec.AffectedKeyUsers, fmtBody)
	return plan
}
