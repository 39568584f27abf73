// Package record loads the use-case export and groups it for the merge
// engine.
package record

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Record is one normalized input row. Records are immutable after load and
// passed by pointer; the engine never copies or mutates them.
type Record struct {
	Title            string
	Owner            string
	OwnerEmail       string
	BusinessUnit     string
	LineOfBusiness   string
	DeliveryDate     string
	AdoptionDate     string
	StatusUpdate     string
	HeatmapStage     string
	UseCaseType      string
	OverallStatus    string
	TrafficLight     string
	Completeness     string
	ProblemStatement string
	Scope            string
	ValueKPIs        string
	BusinessContacts string
	AffectedKeyUsers string
}

// FallbackGroup buckets rows whose grouping column is empty.
const FallbackGroup = "Unknown"

// Mapping maps internal field names to CSV column headers.
type Mapping map[string]string

// DefaultMapping carries the Dataverse export headers the report was built
// against. Config may override individual entries.
func DefaultMapping() Mapping {
	return Mapping{
		"title":              "cr4e2_usecasetitle",
		"owner":              "cr4e2_owner",
		"owner_email":        "cr4e2_owneremail",
		"business_unit":      "cr4e2_businessunit@OData.Community.Display.V1.FormattedValue",
		"line_of_business":   "cr4e2_lineofbusiness",
		"delivery_date":      "cr4e2_deliverydate",
		"adoption_date":      "cr4e2_businessadoptiondate",
		"status_update":      "cr4e2_lateststatusupdate",
		"heatmap_stage":      "cr4e2_heatmamapping@OData.Community.Display.V1.FormattedValue",
		"use_case_type":      "cr4e2_usecasetype@OData.Community.Display.V1.FormattedValue",
		"overall_status":     "cr4e2_overallstatus",
		"traffic_light":      "cr4e2_pr@OData.Community.Display.V1.FormattedValue",
		"completeness":       "cr4e2_overallcompleteness",
		"problem_statement":  "cr4e2_problemstatement",
		"scope":              "cr4e2_scope",
		"value_kpis":         "cr4e2_value",
		"business_contacts":  "cr4e2_businesscontacts",
		"affected_key_users": "cr4e2_affectedkeyusers",
	}
}

// KnownField reports whether name is a valid mapping key.
func KnownField(name string) bool {
	_, ok := DefaultMapping()[name]
	return ok
}

func setField(r *Record, field, value string) {
	switch field {
	case "title":
		r.Title = value
	case "owner":
		r.Owner = value
	case "owner_email":
		r.OwnerEmail = value
	case "business_unit":
		r.BusinessUnit = value
	case "line_of_business":
		r.LineOfBusiness = value
	case "delivery_date":
		r.DeliveryDate = value
	case "adoption_date":
		r.AdoptionDate = value
	case "status_update":
		r.StatusUpdate = value
	case "heatmap_stage":
		r.HeatmapStage = value
	case "use_case_type":
		r.UseCaseType = value
	case "overall_status":
		r.OverallStatus = value
	case "traffic_light":
		r.TrafficLight = value
	case "completeness":
		r.Completeness = value
	case "problem_statement":
		r.ProblemStatement = value
	case "scope":
		r.Scope = value
	case "value_kpis":
		r.ValueKPIs = value
	case "business_contacts":
		r.BusinessContacts = value
	case "affected_key_users":
		r.AffectedKeyUsers = value
	}
}

// Set holds the loaded records: a flat list in input order and the
// line-of-business groups, each preserving input order.
type Set struct {
	all    []*Record
	groups map[string][]*Record
	order  []string
}

// All returns every record in input order.
func (s *Set) All() []*Record {
	return s.all
}

// Groups returns the group keys in first-seen order.
func (s *Set) Groups() []string {
	return s.order
}

// Group returns the records of one group, input order preserved.
func (s *Set) Group(name string) []*Record {
	return s.groups[name]
}

// Len returns the total record count.
func (s *Set) Len() int {
	return len(s.all)
}

// WarnFunc receives non-fatal load diagnostics (missing columns and the
// like). May be nil.
type WarnFunc func(format string, args ...any)

// Load reads the CSV at path, maps columns per m, and groups rows by line
// of business. Excel exports start with a UTF-8 BOM; it is stripped.
// Missing columns are reported through warn and the affected fields load
// empty; absent data never fails a run.
func Load(path string, m Mapping, warn WarnFunc) (*Set, error) {
	if warn == nil {
		warn = func(string, ...any) {}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	colIndex := make(map[string]int, len(header))
	for i, h := range header {
		colIndex[strings.TrimSpace(h)] = i
	}

	fieldCol := make(map[string]int, len(m))
	for field, column := range m {
		idx, ok := colIndex[column]
		if !ok {
			warn("expected column %q not found in input", column)
			continue
		}
		fieldCol[field] = idx
	}

	s := &Set{groups: make(map[string][]*Record)}
	for _, row := range rows[1:] {
		rec := &Record{}
		for field, idx := range fieldCol {
			if idx < len(row) {
				setField(rec, field, strings.TrimSpace(row[idx]))
			}
		}
		s.all = append(s.all, rec)

		group := rec.LineOfBusiness
		if group == "" {
			group = FallbackGroup
		}
		if _, seen := s.groups[group]; !seen {
			s.order = append(s.order, group)
		}
		s.groups[group] = append(s.groups[group], rec)
	}
	return s, nil
}

// FilterUnit returns the records whose business unit contains substr.
func FilterUnit(recs []*Record, substr string) []*Record {
	var out []*Record
	for _, r := range recs {
		if strings.Contains(r.BusinessUnit, substr) {
			out = append(out, r)
		}
	}
	return out
}

// FilterType returns the records whose use-case type equals tag (trimmed
// comparison).
func FilterType(recs []*Record, tag string) []*Record {
	var out []*Record
	for _, r := range recs {
		if strings.TrimSpace(r.UseCaseType) == tag {
			out = append(out, r)
		}
	}
	return out
}
