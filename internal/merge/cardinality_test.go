package merge

import (
	"strings"
	"testing"

	"deckmerge/internal/config"
	"deckmerge/internal/deck"
	"deckmerge/internal/deck/decktest"
	"deckmerge/internal/record"
)

func onePagerConfig(mode string) *config.Config {
	cfg := config.Default()
	cfg.OnePager.StartSlide = 2
	cfg.OnePager.Mode = mode
	return cfg
}

func onePagerSlide() string {
	return decktest.Slide(decktest.TextShape(2, "Title", "{{UseCaseOnePagerTitel1}}"))
}

func slideTitle(t *testing.T, s *deck.Slide) string {
	t.Helper()
	return s.Shapes()[0].TextFrame().Text()
}

func TestOnePagerOrder(t *testing.T) {
	cfg := config.Default()
	recs := []*record.Record{
		{Title: "S1", BusinessUnit: "Sales DACH"},
		{Title: "M1", BusinessUnit: "Marketing"},
		{Title: "S2", BusinessUnit: "Sales NA"},
	}
	ordered := OnePagerOrder(cfg, recs)
	var titles []string
	for _, r := range ordered {
		titles = append(titles, r.Title)
	}
	// Region order first (Marketing before Sales), source order within.
	if got := strings.Join(titles, ","); got != "M1,S1,S2" {
		t.Fatalf("order = %s", got)
	}
}

func TestConsumeFillsAndDeletesLeftovers(t *testing.T) {
	d := openSlides(t,
		decktest.Slide(decktest.TextShape(2, "Intro", "intro")),
		onePagerSlide(), onePagerSlide(), onePagerSlide(),
	)
	cfg := onePagerConfig(config.ModeConsume)
	recs := []*record.Record{{Title: "First"}, {Title: "Second"}}

	res, err := FillOnePagers(d, cfg, recs, nil)
	if err != nil {
		t.Fatalf("FillOnePagers: %v", err)
	}
	if res.Filled != 2 || res.Deleted != 1 || res.Cloned != 0 {
		t.Fatalf("result = %+v", res)
	}
	slides := d.Slides()
	if len(slides) != 3 {
		t.Fatalf("%d slides left, want 3", len(slides))
	}
	if got := slideTitle(t, slides[1]); got != "First" {
		t.Fatalf("slide 2 = %q", got)
	}
	if got := slideTitle(t, slides[2]); got != "Second" {
		t.Fatalf("slide 3 = %q", got)
	}
}

func TestConsumeWarnsOnShortage(t *testing.T) {
	d := openSlides(t,
		decktest.Slide(decktest.TextShape(2, "Intro", "intro")),
		onePagerSlide(),
	)
	cfg := onePagerConfig(config.ModeConsume)
	recs := []*record.Record{{Title: "First"}, {Title: "Second"}, {Title: "Third"}}

	var warned []string
	res, err := FillOnePagers(d, cfg, recs, func(msg string) { warned = append(warned, msg) })
	if err != nil {
		t.Fatalf("FillOnePagers: %v", err)
	}
	if res.Filled != 1 {
		t.Fatalf("filled = %d, want 1", res.Filled)
	}
	if len(warned) != 1 || !strings.Contains(warned[0], "2 records dropped") {
		t.Fatalf("warnings = %v", warned)
	}
	if len(d.Slides()) != 2 {
		t.Fatalf("%d slides left, want 2", len(d.Slides()))
	}
}

func TestConsumeNoRecordsDeletesPool(t *testing.T) {
	d := openSlides(t,
		decktest.Slide(decktest.TextShape(2, "Intro", "intro")),
		onePagerSlide(), onePagerSlide(),
	)
	cfg := onePagerConfig(config.ModeConsume)

	res, err := FillOnePagers(d, cfg, nil, nil)
	if err != nil {
		t.Fatalf("FillOnePagers: %v", err)
	}
	if res.Filled != 0 || res.Deleted != 2 {
		t.Fatalf("result = %+v", res)
	}
	if len(d.Slides()) != 1 {
		t.Fatalf("%d slides left, want 1", len(d.Slides()))
	}
}

func TestCloneGrowsDeckToRecordCount(t *testing.T) {
	d := openSlides(t,
		decktest.Slide(decktest.TextShape(2, "Intro", "intro")),
		onePagerSlide(),
	)
	cfg := onePagerConfig(config.ModeClone)
	recs := []*record.Record{{Title: "First"}, {Title: "Second"}, {Title: "Third"}}

	res, err := FillOnePagers(d, cfg, recs, nil)
	if err != nil {
		t.Fatalf("FillOnePagers: %v", err)
	}
	if res.Filled != 3 || res.Cloned != 2 || res.Deleted != 0 {
		t.Fatalf("result = %+v", res)
	}
	slides := d.Slides()
	if len(slides) != 4 {
		t.Fatalf("%d slides, want 4", len(slides))
	}
	if got := slideTitle(t, slides[1]); got != "First" {
		t.Fatalf("template slide = %q", got)
	}
	if got := slideTitle(t, slides[2]); got != "Second" {
		t.Fatalf("first clone = %q", got)
	}
	if got := slideTitle(t, slides[3]); got != "Third" {
		t.Fatalf("second clone = %q", got)
	}
}

func TestCloneNoRecordsDeletesTemplate(t *testing.T) {
	d := openSlides(t,
		decktest.Slide(decktest.TextShape(2, "Intro", "intro")),
		onePagerSlide(),
	)
	cfg := onePagerConfig(config.ModeClone)

	res, err := FillOnePagers(d, cfg, nil, nil)
	if err != nil {
		t.Fatalf("FillOnePagers: %v", err)
	}
	if res.Deleted != 1 || res.Filled != 0 {
		t.Fatalf("result = %+v", res)
	}
	if len(d.Slides()) != 1 {
		t.Fatalf("%d slides left, want 1", len(d.Slides()))
	}
}

func TestCloneTemplateOutOfRange(t *testing.T) {
	d := openSlides(t, decktest.Slide(decktest.TextShape(2, "Intro", "intro")))
	cfg := onePagerConfig(config.ModeClone)
	cfg.OnePager.StartSlide = 5

	if _, err := FillOnePagers(d, cfg, []*record.Record{{Title: "X"}}, nil); err == nil {
		t.Fatalf("expected error for template slide outside the deck")
	}
}
