package deck_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"deckmerge/internal/deck"
	"deckmerge/internal/deck/decktest"
)

func openFixture(t *testing.T, slides ...string) *deck.Deck {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.pptx")
	decktest.Write(t, path, slides...)
	d, err := deck.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return d
}

func TestOpen_SlideOrderAndText(t *testing.T) {
	d := openFixture(t,
		decktest.Slide(decktest.TextShape(2, "Box A", "first")),
		decktest.Slide(decktest.TextShape(2, "Box B", "second")),
	)
	slides := d.Slides()
	if len(slides) != 2 {
		t.Fatalf("slides = %d, want 2", len(slides))
	}
	got := slides[1].Shapes()[0].TextFrame().Text()
	if got != "second" {
		t.Fatalf("slide 2 text = %q, want %q", got, "second")
	}
}

func TestSave_LeavesNoStagingFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pptx")
	decktest.Write(t, in, decktest.Slide(decktest.TextShape(2, "Box", "hello")))
	d, err := deck.Open(in)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	out := filepath.Join(dir, "out.pptx")
	if err := d.Save(out); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "in.pptx" && e.Name() != "out.pptx" {
			t.Fatalf("staging file left behind: %s", e.Name())
		}
	}
	if _, err := deck.Open(out); err != nil {
		t.Fatalf("reopen: %v", err)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	if _, err := deck.Open(filepath.Join(t.TempDir(), "absent.pptx")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSaveAndReopen_MutationSurvives(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pptx")
	out := filepath.Join(dir, "out.pptx")
	decktest.Write(t, in, decktest.Slide(decktest.TextShape(2, "Box", "{{Title 1}}")))

	d, err := deck.Open(in)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	p := d.Slides()[0].Shapes()[0].TextFrame().Paragraphs()[0]
	p.ClearRuns()
	p.AddRun("Alpha").SetBold(true)
	if err := d.Save(out); err != nil {
		t.Fatalf("save: %v", err)
	}

	d2, err := deck.Open(out)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got := d2.Slides()[0].Shapes()[0].TextFrame().Text()
	if got != "Alpha" {
		t.Fatalf("reopened text = %q, want Alpha", got)
	}
	if !d2.Slides()[0].Shapes()[0].TextFrame().Paragraphs()[0].Runs()[0].Bold() {
		t.Fatal("bold flag lost on round trip")
	}
}

func TestDeleteSlide_HighestFirst(t *testing.T) {
	d := openFixture(t,
		decktest.Slide(decktest.TextShape(2, "Box", "one")),
		decktest.Slide(decktest.TextShape(2, "Box", "two")),
		decktest.Slide(decktest.TextShape(2, "Box", "three")),
		decktest.Slide(decktest.TextShape(2, "Box", "four")),
	)
	// Delete slides 3 and 4 (indexes 2,3), highest first.
	for i := len(d.Slides()) - 1; i >= 2; i-- {
		if err := d.DeleteSlide(i); err != nil {
			t.Fatalf("delete %d: %v", i, err)
		}
	}
	if len(d.Slides()) != 2 {
		t.Fatalf("slides = %d, want 2", len(d.Slides()))
	}
	if got := d.Slides()[1].Shapes()[0].TextFrame().Text(); got != "two" {
		t.Fatalf("surviving slide 2 text = %q, want two", got)
	}

	out := filepath.Join(t.TempDir(), "out.pptx")
	if err := d.Save(out); err != nil {
		t.Fatalf("save: %v", err)
	}
	d2, err := deck.Open(out)
	if err != nil {
		t.Fatalf("reopen after delete: %v", err)
	}
	if len(d2.Slides()) != 2 {
		t.Fatalf("reopened slides = %d, want 2", len(d2.Slides()))
	}
}

func TestDeleteSlide_OutOfRange(t *testing.T) {
	d := openFixture(t, decktest.Slide(decktest.TextShape(2, "Box", "one")))
	if err := d.DeleteSlide(5); err == nil {
		t.Fatal("expected error for out-of-range delete")
	}
}

func TestDuplicateSlide_AppendsWithFreshIdentity(t *testing.T) {
	d := openFixture(t,
		decktest.Slide(decktest.TextShape(2, "Template Box", "{{X}}")),
		decktest.Slide(decktest.TextShape(2, "Other", "static")),
	)
	clone, err := d.DuplicateSlide(0)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if len(d.Slides()) != 3 {
		t.Fatalf("slides = %d, want 3", len(d.Slides()))
	}
	if d.Slides()[2] != clone {
		t.Fatal("clone not appended at the end")
	}

	src := d.Slides()[0].Shapes()[0]
	dup := clone.Shapes()[0]
	if dup.ID() == src.ID() {
		t.Fatalf("clone shape id %q not reassigned", dup.ID())
	}
	if dup.Name() == src.Name() {
		t.Fatalf("clone shape name %q not reassigned", dup.Name())
	}
	if !strings.HasPrefix(dup.Name(), "Template Box ") {
		t.Fatalf("clone name = %q, want original name plus suffix", dup.Name())
	}
	if dup.TextFrame().Text() != "{{X}}" {
		t.Fatalf("clone text = %q, want template text", dup.TextFrame().Text())
	}

	// Mutating the clone must not touch the template.
	p := dup.TextFrame().Paragraphs()[0]
	p.ClearRuns()
	p.AddRun("filled")
	if src.TextFrame().Text() != "{{X}}" {
		t.Fatal("mutating clone leaked into template slide")
	}

	out := filepath.Join(t.TempDir(), "out.pptx")
	if err := d.Save(out); err != nil {
		t.Fatalf("save: %v", err)
	}
	d2, err := deck.Open(out)
	if err != nil {
		t.Fatalf("reopen after duplicate: %v", err)
	}
	if len(d2.Slides()) != 3 {
		t.Fatalf("reopened slides = %d, want 3", len(d2.Slides()))
	}
	if got := d2.Slides()[2].Shapes()[0].TextFrame().Text(); got != "filled" {
		t.Fatalf("reopened clone text = %q, want filled", got)
	}
}

func TestDuplicateSlide_RepeatedClonesUniqueIDs(t *testing.T) {
	d := openFixture(t, decktest.Slide(decktest.TextShape(2, "Box", "{{X}}")))
	seen := map[string]bool{d.Slides()[0].Shapes()[0].ID(): true}
	for i := 0; i < 3; i++ {
		c, err := d.DuplicateSlide(0)
		if err != nil {
			t.Fatalf("duplicate %d: %v", i, err)
		}
		id := c.Shapes()[0].ID()
		if seen[id] {
			t.Fatalf("duplicate structural id %q", id)
		}
		seen[id] = true
	}
}

func TestShapes_RecursesIntoGroups(t *testing.T) {
	group := `<p:grpSp><p:nvGrpSpPr><p:cNvPr id="10" name="Group"/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
		decktest.TextShape(11, "Inner", "nested text") + `</p:grpSp>`
	d := openFixture(t, decktest.Slide(decktest.TextShape(2, "Outer", "outer"), group))
	shapes := d.Slides()[0].Shapes()
	if len(shapes) != 2 {
		t.Fatalf("shapes = %d, want 2 (group flattened)", len(shapes))
	}
	if shapes[1].TextFrame().Text() != "nested text" {
		t.Fatalf("nested shape text = %q", shapes[1].TextFrame().Text())
	}
}

func TestTable_CellAccessAndFill(t *testing.T) {
	d := openFixture(t, decktest.Slide(decktest.TableShape(2, "Table", [][]string{
		{"{{Title 1}}", "", ""},
		{"{{Title 2}}", "", ""},
	})))
	sh := d.Slides()[0].Shapes()[0]
	if !sh.HasTable() {
		t.Fatal("shape should expose a table")
	}
	rows := sh.Table().Rows()
	if len(rows) != 2 || len(rows[0].Cells()) != 3 {
		t.Fatalf("table shape wrong: %d rows", len(rows))
	}
	if got := rows[1].Cells()[0].TextFrame().Text(); got != "{{Title 2}}" {
		t.Fatalf("cell text = %q", got)
	}
	rows[0].Cells()[1].SetSolidFill(deck.RGB{R: 87, G: 162, B: 55})

	out := filepath.Join(t.TempDir(), "out.pptx")
	if err := d.Save(out); err != nil {
		t.Fatalf("save: %v", err)
	}
	d2, err := deck.Open(out)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	cell := d2.Slides()[0].Shapes()[0].Table().Rows()[0].Cells()[1]
	if got := cell.Fill(); got == nil || *got != (deck.RGB{R: 87, G: 162, B: 55}) {
		t.Fatalf("fill after reopen = %v", got)
	}
}
