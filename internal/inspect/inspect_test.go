package inspect

import (
	"path/filepath"
	"testing"

	"deckmerge/internal/deck/decktest"
)

func writeFixture(t *testing.T, slides ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.pptx")
	decktest.Write(t, path, slides...)
	return path
}

func TestScan(t *testing.T) {
	path := writeFixture(t,
		decktest.Slide(
			decktest.TextShape(2, "Title Box", "{{Marketing USE CASE Title 1}}"),
			decktest.TextShape(3, "Empty", ""),
		),
		decktest.Slide(
			decktest.TableShape(2, "Heatmap", [][]string{{"{{MD1}} and {{MA1}}", "plain"}}),
		),
	)

	reports, err := Scan(path)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("%d reports, want 2", len(reports))
	}
	if reports[0].Number != 1 || reports[1].Number != 2 {
		t.Fatalf("slide numbers = %d, %d", reports[0].Number, reports[1].Number)
	}

	// The empty shape is skipped.
	if len(reports[0].Entries) != 1 {
		t.Fatalf("slide 1 entries = %d, want 1", len(reports[0].Entries))
	}
	e := reports[0].Entries[0]
	if e.Shape != "Title Box" || e.Cell {
		t.Fatalf("entry = %+v", e)
	}
	if len(e.Tokens) != 1 || e.Tokens[0] != "{{Marketing USE CASE Title 1}}" {
		t.Fatalf("tokens = %v", e.Tokens)
	}

	// Table cells report per cell, tokens extracted in order.
	cells := reports[1].Entries
	if len(cells) != 2 {
		t.Fatalf("slide 2 entries = %d, want 2", len(cells))
	}
	if !cells[0].Cell || len(cells[0].Tokens) != 2 {
		t.Fatalf("cell entry = %+v", cells[0])
	}
	if len(cells[1].Tokens) != 0 {
		t.Fatalf("plain cell tokens = %v", cells[1].Tokens)
	}
}

func TestScanMissingFile(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "nope.pptx")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestVerifyCleanDeck(t *testing.T) {
	path := writeFixture(t, decktest.Slide(
		decktest.TextShape(2, "Title", "Churn Radar"),
		decktest.TableShape(3, "Table", [][]string{{"done", ""}}),
	))

	res, err := Verify(path)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !res.Clean() {
		t.Fatalf("expected clean, got %+v", res)
	}
	if res.Slides != 1 {
		t.Fatalf("slides = %d", res.Slides)
	}
}

func TestVerifyFindsLeftovers(t *testing.T) {
	path := writeFixture(t, decktest.Slide(
		decktest.TextShape(2, "Box", "{{Leftover 1}}"),
		decktest.TableShape(3, "Table", [][]string{{"{{MD3}}", ""}}),
	))

	res, err := Verify(path)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if res.Clean() {
		t.Fatalf("expected leftovers")
	}
	if len(res.Leftovers) != 2 {
		t.Fatalf("leftovers = %+v", res.Leftovers)
	}
	if res.Leftovers[0].Token != "{{Leftover 1}}" || res.Leftovers[0].Slide != 1 {
		t.Fatalf("first leftover = %+v", res.Leftovers[0])
	}
	if res.Leftovers[1].Shape != "Table" {
		t.Fatalf("second leftover = %+v", res.Leftovers[1])
	}
}

func TestVerifyFindsDuplicateIDs(t *testing.T) {
	path := writeFixture(t, decktest.Slide(
		decktest.TextShape(2, "A", "one"),
		decktest.TextShape(2, "B", "two"),
	))

	res, err := Verify(path)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(res.DuplicateIDs) != 1 {
		t.Fatalf("duplicates = %+v", res.DuplicateIDs)
	}
	if res.DuplicateIDs[0].ID != "2" || res.DuplicateIDs[0].Slide != 1 {
		t.Fatalf("duplicate = %+v", res.DuplicateIDs[0])
	}
}
