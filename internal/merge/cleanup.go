package merge

import (
	"strings"

	"deckmerge/internal/deck"
)

// Cleanup blanks every placeholder token the merge left behind, across all
// slides, and returns the number of fragments removed. A paragraph that is
// nothing but a token keeps its first run as a single space so the
// paragraph's layout survives; tokens embedded in mixed text are replaced
// run by run. Running it twice is a no-op.
func Cleanup(d *deck.Deck) int {
	cleaned := 0
	for _, slide := range d.Slides() {
		for _, sh := range slide.Shapes() {
			if sh.HasTextFrame() {
				cleaned += cleanFrame(sh.TextFrame())
			}
			if sh.HasTable() {
				for _, row := range sh.Table().Rows() {
					for _, cell := range row.Cells() {
						cleaned += cleanFrame(cell.TextFrame())
					}
				}
			}
		}
	}
	return cleaned
}

func cleanFrame(tf *deck.TextFrame) int {
	cleaned := 0
	for _, p := range tf.Paragraphs() {
		stripped := strings.TrimSpace(p.Text())
		if strings.HasPrefix(stripped, "{{") && strings.HasSuffix(stripped, "}}") &&
			tokenRe.MatchString(stripped) {
			runs := p.Runs()
			if len(runs) > 0 {
				runs[0].SetText(" ")
				for _, r := range runs[1:] {
					r.SetText("")
				}
				cleaned++
				continue
			}
		}
		for _, r := range p.Runs() {
			text := r.Text()
			if !strings.Contains(text, "{{") {
				continue
			}
			replaced := tokenRe.ReplaceAllString(text, " ")
			if replaced != text {
				cleaned += len(tokenRe.FindAllString(text, -1))
				r.SetText(replaced)
			}
		}
	}
	return cleaned
}
