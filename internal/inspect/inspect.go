// Package inspect reads a deck back for humans: dump the text a template
// exposes to the merge, and verify a generated report left no placeholders
// or broken shape identities behind.
package inspect

import (
	"regexp"

	"deckmerge/internal/deck"
)

var tokenRe = regexp.MustCompile(`(?s)\{\{.*?\}\}`)

// Entry is one piece of text found on a slide.
type Entry struct {
	Shape  string   // shape display name
	Cell   bool     // true when the text came from a table cell
	Text   string
	Tokens []string // placeholder tokens in the text, in order
}

// SlideReport lists the text content of one slide.
type SlideReport struct {
	Number  int // 1-based, as PowerPoint shows it
	Entries []Entry
}

// Scan opens the deck at path and reports every non-empty text, shape by
// shape and cell by cell.
func Scan(path string) ([]SlideReport, error) {
	d, err := deck.Open(path)
	if err != nil {
		return nil, err
	}
	var out []SlideReport
	for i, slide := range d.Slides() {
		rep := SlideReport{Number: i + 1}
		for _, sh := range slide.Shapes() {
			if sh.HasTextFrame() {
				if text := sh.TextFrame().Text(); text != "" {
					rep.Entries = append(rep.Entries, Entry{
						Shape:  sh.Name(),
						Text:   text,
						Tokens: tokenRe.FindAllString(text, -1),
					})
				}
			}
			if sh.HasTable() {
				for _, row := range sh.Table().Rows() {
					for _, cell := range row.Cells() {
						text := cell.TextFrame().Text()
						if text == "" {
							continue
						}
						rep.Entries = append(rep.Entries, Entry{
							Shape:  sh.Name(),
							Cell:   true,
							Text:   text,
							Tokens: tokenRe.FindAllString(text, -1),
						})
					}
				}
			}
		}
		out = append(out, rep)
	}
	return out, nil
}
