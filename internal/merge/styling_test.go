package merge

import (
	"path/filepath"
	"testing"

	"deckmerge/internal/deck"
	"deckmerge/internal/deck/decktest"
	"deckmerge/internal/record"
)

func openSlides(t *testing.T, slides ...string) *deck.Deck {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.pptx")
	decktest.Write(t, path, slides...)
	d, err := deck.Open(path)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	return d
}

func TestStageOf(t *testing.T) {
	cases := []struct {
		stage string
		want  int
	}{
		{"3. Develop & Test", 3},
		{"  7. Technical GoLive ", 7},
		{"10. Done", 10},
		{"Develop", 0},
		{"", 0},
	}
	for _, tc := range cases {
		rec := &record.Record{HeatmapStage: tc.stage}
		if got := StageOf(rec); got != tc.want {
			t.Fatalf("StageOf(%q) = %d, want %d", tc.stage, got, tc.want)
		}
	}
}

func TestColorStageRow(t *testing.T) {
	d := openSlides(t, decktest.Slide(decktest.TableShape(2, "Heatmap", [][]string{
		{"{{Title 1}}", "", "", "", ""},
	})))
	row := d.Slides()[0].Shapes()[0].Table().Rows()[0]

	ColorStageRow(row, 2, 4)

	cells := row.Cells()
	if cells[0].Fill() != nil {
		t.Fatalf("title column must keep its fill")
	}
	if got := cells[1].Fill(); got == nil || *got != ColorDoneGreen {
		t.Fatalf("column before stage = %v", got)
	}
	if got := cells[2].Fill(); got == nil || *got != ColorStageGreen {
		t.Fatalf("stage column = %v", got)
	}
	if got := cells[3].Fill(); got == nil || *got != ColorWhite {
		t.Fatalf("column past stage = %v", got)
	}
	if got := cells[4].Fill(); got == nil || *got != ColorWhite {
		t.Fatalf("last configured column = %v", got)
	}
}

func TestColorStageRowShortRow(t *testing.T) {
	d := openSlides(t, decktest.Slide(decktest.TableShape(2, "Heatmap", [][]string{
		{"{{Title 1}}", ""},
	})))
	row := d.Slides()[0].Shapes()[0].Table().Rows()[0]

	// Fewer cells than configured columns must not panic.
	ColorStageRow(row, 5, 8)
	if got := row.Cells()[1].Fill(); got == nil || *got != ColorDoneGreen {
		t.Fatalf("cell 1 = %v", got)
	}
}

func TestTrafficLight(t *testing.T) {
	cases := []struct {
		status string
		want   deck.RGB
	}{
		{"Green", ColorStageGreen},
		{"green - on track", ColorStageGreen},
		{"Red - blocked", ColorRed},
		{"Yellow", ColorYellow},
		{"Grey", ColorGrey},
		{"gray", ColorGrey},
		{"", ColorNeutral},
		{"unknown", ColorNeutral},
	}
	for _, tc := range cases {
		if got := TrafficLight(tc.status); got != tc.want {
			t.Fatalf("TrafficLight(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestApplyTrafficCell(t *testing.T) {
	d := openSlides(t, decktest.Slide(decktest.TableShape(2, "Status", [][]string{
		{"Consent Hub", "{{pr1}}"},
		{"Other", "{{pr9}}"},
	})))
	recs := []*record.Record{{TrafficLight: "Red"}}
	re, err := IndexPattern("pr%d")
	if err != nil {
		t.Fatalf("IndexPattern: %v", err)
	}

	rows := d.Slides()[0].Shapes()[0].Table().Rows()

	cell := rows[0].Cells()[1]
	if !ApplyTrafficCell(cell, re, recs) {
		t.Fatalf("expected cell to be consumed")
	}
	if got := cell.Fill(); got == nil || *got != ColorRed {
		t.Fatalf("fill = %v", got)
	}
	if got := cell.TextFrame().Text(); got != "" {
		t.Fatalf("token not cleared: %q", got)
	}

	// Out-of-range index leaves the cell for the cleanup pass.
	stale := rows[1].Cells()[1]
	if ApplyTrafficCell(stale, re, recs) {
		t.Fatalf("out-of-range token must not be consumed")
	}
	if got := stale.TextFrame().Text(); got != "{{pr9}}" {
		t.Fatalf("stale token text = %q", got)
	}
}

func TestApplyTrafficShape(t *testing.T) {
	d := openSlides(t, decktest.Slide(decktest.TextShape(2, "Light", "{{pr1}}")))
	recs := []*record.Record{{TrafficLight: "Yellow"}}
	re, err := IndexPattern("pr%d")
	if err != nil {
		t.Fatalf("IndexPattern: %v", err)
	}

	sh := d.Slides()[0].Shapes()[0]
	if !ApplyTrafficShape(sh, re, recs) {
		t.Fatalf("expected shape to be consumed")
	}
	if got := sh.Fill(); got == nil || *got != ColorYellow {
		t.Fatalf("fill = %v", got)
	}
	if got := sh.TextFrame().Text(); got != "" {
		t.Fatalf("token not cleared: %q", got)
	}
}
