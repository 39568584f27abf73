package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Region is one line-of-business profile: which slides it owns and the
// placeholder key family used on them. Index-bearing formats carry exactly
// one %d; the matching regexes are derived from them at resolution time so
// patterns and keys cannot drift apart.
type Region struct {
	Name                string `yaml:"name"`
	Filter              string `yaml:"filter"` // business-unit substring
	Slides              []int  `yaml:"slides"` // 1-based, as shown in PowerPoint
	TitleFormat         string `yaml:"title-format"`
	OverviewTitleFormat string `yaml:"overview-title-format"` // overview wording may differ
	StatusFormat        string `yaml:"status-format"`
	OwnerKey            string `yaml:"owner-key"` // shared per region, no index
	DeliveredFormat     string `yaml:"delivered-format"`
	AdoptedFormat       string `yaml:"adopted-format"`
	CompletenessFormat  string `yaml:"completeness-format"`
}

// Foundational configures the foundational use-case slides.
type Foundational struct {
	Slides        []int    `yaml:"slides"`
	TitleFormat   string   `yaml:"title-format"`
	OwnerFormat   string   `yaml:"owner-format"`
	StatusFormat  string   `yaml:"status-format"`
	TrafficFormat string   `yaml:"traffic-format"` // index-bearing traffic-light token
	MessageKeys   []string `yaml:"message-keys"`   // overview-message placeholders
}

// OnePagerKeys names the static placeholders on a detail slide.
type OnePagerKeys struct {
	Title          string `yaml:"title"`
	Problem        string `yaml:"problem"`
	Scope          string `yaml:"scope"`
	Value          string `yaml:"value"`
	LineOfBusiness string `yaml:"line-of-business"`
	BusinessUnit   string `yaml:"business-unit"`
	Owner          string `yaml:"owner"`
	Contacts       string `yaml:"contacts"`
	KeyUsers       string `yaml:"key-users"`
}

// One-pager modes. Consume fills pre-duplicated template slides and deletes
// the leftovers; clone duplicates a single template slide per record.
const (
	ModeConsume = "consume"
	ModeClone   = "clone"
)

// OnePager configures the per-record detail slides.
type OnePager struct {
	StartSlide int          `yaml:"start-slide"` // 1-based
	Mode       string       `yaml:"mode"`
	Keys       OnePagerKeys `yaml:"keys"`
}

// Config is the full report configuration.
type Config struct {
	Template        string            `yaml:"template"`
	OutputDir       string            `yaml:"output-dir"`
	UploadDir       string            `yaml:"upload-dir"`
	Prefix          string            `yaml:"prefix"`
	OverviewSlide   int               `yaml:"overview-slide"` // 1-based
	HeatmapColumns  int               `yaml:"heatmap-columns"`
	AdoptionTag     string            `yaml:"adoption-tag"`
	FoundationalTag string            `yaml:"foundational-tag"`
	Columns         map[string]string `yaml:"columns"` // field -> CSV header overrides
	Regions         []Region          `yaml:"regions"`
	Foundational    Foundational      `yaml:"foundational"`
	OnePager        OnePager          `yaml:"one-pager"`
}

// Load reads a YAML config file and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Region returns the named region profile, or nil.
func (c *Config) Region(name string) *Region {
	for i := range c.Regions {
		if c.Regions[i].Name == name {
			return &c.Regions[i]
		}
	}
	return nil
}

// Default returns the built-in configuration matching the template this
// report has historically been generated from. Used when no deckmerge.yaml
// is present.
func Default() *Config {
	return &Config{
		Template:        "template.pptx",
		OutputDir:       "outputs",
		UploadDir:       "uploads",
		Prefix:          "CDP_USECASE_AUTOREPORT",
		OverviewSlide:   1,
		HeatmapColumns:  8,
		AdoptionTag:     "CDP Business Adoption",
		FoundationalTag: "CDP Foundational Use Case",
		Regions: []Region{
			{
				Name:                "Marketing",
				Filter:              "Marketing",
				Slides:              []int{2, 3},
				TitleFormat:         "Marketing USE CASE Title %d",
				OverviewTitleFormat: "Marketing USE CASE Title %d",
				StatusFormat:        "StatusupdateUC%dMarketing",
				OwnerKey:            "UseCaseOwnerMarketing",
				DeliveredFormat:     "MD%d",
				AdoptedFormat:       "MA%d",
				CompletenessFormat:  "OCM%d",
			},
			{
				Name:                "Sales",
				Filter:              "Sales",
				Slides:              []int{4, 5},
				TitleFormat:         "SALES USE CASE Title %d",
				OverviewTitleFormat: "SALES USE CASE Title %d",
				StatusFormat:        "StatusupdateUC%dSales",
				OwnerKey:            "UseCaseOwnerSales",
				DeliveredFormat:     "SD%d",
				AdoptedFormat:       "SA%d",
				CompletenessFormat:  "OCS%d",
			},
			{
				Name:                "Compliance",
				Filter:              "Compliance",
				Slides:              []int{6},
				TitleFormat:         "Compliance USE CASE Title %d",
				OverviewTitleFormat: "Compliance USE CASE Title %d",
				StatusFormat:        "StatusupdateUC%dCompliance",
				OwnerKey:            "UseCaseOwnerCompliance",
				DeliveredFormat:     "COD%d",
				AdoptedFormat:       "COA%d",
				CompletenessFormat:  "OCC%d",
			},
			{
				Name:                "Customer Success",
				Filter:              "Customer Success",
				Slides:              []int{7},
				TitleFormat:         "CS USE CASE Title %d",
				OverviewTitleFormat: "Customer Success USE CASE Title %d",
				StatusFormat:        "StatusupdateUC%dCS",
				OwnerKey:            "UseCaseOwnerCS",
				DeliveredFormat:     "CUD%d",
				AdoptedFormat:       "CUA%d",
				CompletenessFormat:  "OCCS%d",
			},
			{
				Name:                "Finance",
				Filter:              "Finance",
				Slides:              []int{8},
				TitleFormat:         "F USE CASE Title %d",
				OverviewTitleFormat: "Finance USE CASE Title %d",
				StatusFormat:        "StatusupdateUC%dF",
				OwnerKey:            "UseCaseOwnerF",
				DeliveredFormat:     "FD%d",
				AdoptedFormat:       "FA%d",
				CompletenessFormat:  "OCF%d",
			},
		},
		Foundational: Foundational{
			Slides:        []int{9, 10},
			TitleFormat:   "Foundational Use Case Title %d",
			OwnerFormat:   "Foundational Use Case Owner %d",
			StatusFormat:  "Overall Status FUC %d",
			TrafficFormat: "pr%d",
			MessageKeys:   []string{"AIOverviewMessage1", "AIOverviewMessage2"},
		},
		OnePager: OnePager{
			StartSlide: 11,
			Mode:       ModeConsume,
			Keys: OnePagerKeys{
				Title:          "UseCaseOnePagerTitel1",
				Problem:        "UseCaseOnePagerPB1",
				Scope:          "UseCaseOnePagerScope1",
				Value:          "UseCaseOnePagerV&KPI1",
				LineOfBusiness: "UseCaseOnePagerBU1",
				BusinessUnit:   "UseCaseOnePagerBSU1",
				Owner:          "UseCaseOnePagerOwner1",
				Contacts:       "UseCaseOnePagerScopeBC",
				KeyUsers:       "UseCaseOnePagerScopeAFK",
			},
		},
	}
}
