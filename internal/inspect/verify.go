package inspect

import (
	"deckmerge/internal/deck"
)

// Leftover is a placeholder token that survived a merge.
type Leftover struct {
	Slide int // 1-based
	Shape string
	Token string
}

// DuplicateID is a shape id used twice on the same slide. PowerPoint saves
// such decks without complaint and then refuses to open them, so this is
// the first thing to check when a generated file will not load.
type DuplicateID struct {
	Slide int // 1-based
	ID    string
}

// Result is the outcome of verifying a generated deck.
type Result struct {
	Slides       int
	Leftovers    []Leftover
	DuplicateIDs []DuplicateID
}

// Clean reports whether the deck passed every check.
func (r *Result) Clean() bool {
	return len(r.Leftovers) == 0 && len(r.DuplicateIDs) == 0
}

// Verify opens a generated deck and checks it for leftover placeholders
// and duplicated shape ids.
func Verify(path string) (*Result, error) {
	d, err := deck.Open(path)
	if err != nil {
		return nil, err
	}
	res := &Result{Slides: len(d.Slides())}
	for i, slide := range d.Slides() {
		seen := map[string]bool{}
		for _, sh := range slide.Shapes() {
			if id := sh.ID(); id != "" {
				if seen[id] {
					res.DuplicateIDs = append(res.DuplicateIDs, DuplicateID{Slide: i + 1, ID: id})
				}
				seen[id] = true
			}
			if sh.HasTextFrame() {
				for _, tok := range tokenRe.FindAllString(sh.TextFrame().Text(), -1) {
					res.Leftovers = append(res.Leftovers, Leftover{Slide: i + 1, Shape: sh.Name(), Token: tok})
				}
			}
			if sh.HasTable() {
				for _, row := range sh.Table().Rows() {
					for _, cell := range row.Cells() {
						for _, tok := range tokenRe.FindAllString(cell.TextFrame().Text(), -1) {
							res.Leftovers = append(res.Leftovers, Leftover{Slide: i + 1, Shape: sh.Name(), Token: tok})
						}
					}
				}
			}
		}
	}
	return res, nil
}
