package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with deckmerge",
		Content: topicQuickstart,
	},
	{
		Name:    "placeholders",
		Title:   "Placeholder Tokens",
		Summary: "Token syntax, index binding, and whitespace handling",
		Content: topicPlaceholders,
	},
	{
		Name:    "regions",
		Title:   "Region Profiles",
		Summary: "Per line-of-business slides, filters, and key formats",
		Content: topicRegions,
	},
	{
		Name:    "columns",
		Title:   "CSV Columns",
		Summary: "Expected export headers and per-field overrides",
		Content: topicColumns,
	},
	{
		Name:    "heatmap",
		Title:   "Heatmap and Traffic Lights",
		Summary: "Stage coloring and status-driven cell fills",
		Content: topicHeatmap,
	},
	{
		Name:    "onepagers",
		Title:   "One-Pager Slides",
		Summary: "Per-record detail slides: consume vs. clone mode",
		Content: topicOnePagers,
	},
	{
		Name:    "server",
		Title:   "HTTP Server",
		Summary: "Upload endpoint, download endpoint, and the web form",
		Content: topicServer,
	},
}

const topicQuickstart = `Quick Start
===========

1. Initialize a project:

    deckmerge init

   This creates a commented deckmerge.yaml next to your template.

2. Place your PowerPoint template as template.pptx (or point the
   "template" setting elsewhere) and check what it exposes:

    deckmerge inspect template.pptx

3. Generate a report from a CSV export:

    deckmerge generate export.csv

4. Verify the output has no leftover placeholders:

    deckmerge verify outputs/CDP_USECASE_AUTOREPORT_*.pptx

CLI Commands
------------

  deckmerge generate <csv>      Generate a report from a CSV export
  deckmerge serve               Run the upload/download web server
  deckmerge inspect <pptx>      Dump the text and tokens a deck exposes
  deckmerge verify <pptx>       Check a generated deck for leftovers
  deckmerge status              Show the last run's summary
  deckmerge init                Write a starter deckmerge.yaml
  deckmerge docs [topic]        Show documentation
`

const topicPlaceholders = `Placeholder Tokens
==================

A placeholder is any text between {{ and }}, for example:

    {{Marketing USE CASE Title 1}}
    {{MD3}}
    {{UseCaseOnePagerTitel1}}

Index-bearing families are declared as key formats with exactly one %d,
such as "MD%d". The trailing number is the 1-based position of a record
in the region's filtered list: {{MD3}} shows the delivery date of the
third record.

Matching is forgiving about what PowerPoint does to text:

  - Literal text matches case-insensitively.
  - Any run of whitespace in the token (including line breaks the
    template author never sees) matches a single space in the key.

Tokens whose index has no record behind it are left alone during the
merge and blanked by the final cleanup pass, which keeps one space in
otherwise-empty paragraphs so the slide layout holds.
`

const topicRegions = `Region Profiles
===============

Each region entry in deckmerge.yaml binds one line of business to its
slides and placeholder families:

  filter          Substring matched against the record's business unit.
  slides          1-based slide numbers carrying the region's tables.
  title-format    Key format of the title tokens ("Marketing USE CASE
                  Title %d"). The title token in a table row's first
                  column decides which record owns the row.
  overview-title-format
                  The wording used on the overview slide, when it
                  differs from the status slides.
  status-format, delivered-format, adopted-format, completeness-format
                  Sibling families resolved for the same record.
  owner-key       A single shared token (no %d); it shows the owner of
                  whichever record the surrounding row resolves to.

Only records tagged with the adoption-tag use-case type appear on
region slides; foundational records have their own slides.
`

const topicColumns = `CSV Columns
===========

deckmerge reads the Dataverse CSV export with its original headers by
default (cr4e2_usecasetitle and friends, including the @OData
FormattedValue variants for choice columns). When the export changes,
override individual fields:

  columns:
    title: MyTitleHeader
    business_unit: MyUnitHeader

Known fields: title, owner, owner_email, business_unit,
line_of_business, delivery_date, adoption_date, status_update,
heatmap_stage, use_case_type, overall_status, traffic_light,
completeness, problem_statement, scope, value_kpis, business_contacts,
affected_key_users.

Missing columns are reported as warnings and load as empty values; a
run never fails because a column disappeared.
`

const topicHeatmap = `Heatmap and Traffic Lights
==========================

Stage coloring applies to region table rows. The record's heatmap stage
is parsed from its leading number ("3. Develop & Test" is stage 3), and
the configured number of columns after the title column are painted:

  before the stage   light green (done)
  the stage column   dark green (current)
  after the stage    white (open)

Traffic lights apply to the foundational slides. A {{pr%d}} token in a
cell fills that cell with the record's status color and removes the
token text:

  green   dark green     yellow   amber
  red     red            grey     grey
  other   neutral grey

Status matching is by substring, so "Red - blocked" counts as red.
`

const topicOnePagers = `One-Pager Slides
================

Every record matching a region filter gets one detail slide, in region
order. Two modes:

  consume   The template carries a pre-duplicated pool of one-pager
            slides starting at start-slide. Each record fills one;
            leftover copies are deleted. If the pool is too small the
            run warns and drops the surplus records.

  clone     The template carries a single one-pager slide. It is
            duplicated once per additional record, each clone getting
            fresh shape identities so PowerPoint can reopen the file.
            With no records at all the template slide is removed.

The one-pager placeholders are static keys (no %d) because each slide
shows exactly one record.
`

const topicServer = `HTTP Server
===========

    deckmerge serve --addr :5000

Routes:

  GET  /                  Upload form.
  POST /upload            Multipart upload, field name "file". Saves
                          the CSV under a fresh name in upload-dir,
                          runs the merge, and answers
                          {"message":"Success","download_url":...}
                          or {"error":...} with status 400/500.
  GET  /download/<name>   Serves a generated deck from output-dir as
                          an attachment.

Generation runs are serialized; a second upload waits for the first
to finish.
`
