package merge

import (
	"strings"

	"deckmerge/internal/deck"
)

// RewriteParagraph resolves the plan against one paragraph. The paragraph
// is rebuilt run by run only when at least one of its tokens has a
// replacement; paragraph-level properties survive the rebuild. Reports
// whether the paragraph was changed.
func RewriteParagraph(p *deck.Paragraph, plan Plan) bool {
	text := p.Text()
	if !strings.Contains(text, "{{") {
		return false
	}
	parts := splitTokens(text)
	hit := false
	for _, part := range parts {
		if _, ok := plan[NormalizeKey(part)]; ok {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}

	p.ClearRuns()
	for _, part := range parts {
		if part == "" {
			continue
		}
		if rep, ok := plan[NormalizeKey(part)]; ok {
			addStyled(p, rep.Text, rep.Format)
			continue
		}
		// Static text around the tokens is carried over verbatim, vertical
		// tabs mapped to line breaks, pinned to the small table font.
		addStyled(p, strings.ReplaceAll(part, "\x0b", "\n"), Format{Size: 7})
	}
	return true
}

// addStyled appends text to the paragraph and applies the format to every
// run it produced (embedded newlines split the text across runs).
func addStyled(p *deck.Paragraph, text string, f Format) {
	before := len(p.Runs())
	p.AddRun(text)
	for _, run := range p.Runs()[before:] {
		applyFormat(run, f)
	}
}

func applyFormat(run *deck.Run, f Format) {
	if f.Bold != nil {
		run.SetBold(*f.Bold)
	}
	if f.Size > 0 {
		run.SetSize(f.Size)
	}
	if f.Color != nil {
		run.SetColor(*f.Color)
	}
}

// RewriteTextFrame resolves the plan against every paragraph of the frame.
func RewriteTextFrame(tf *deck.TextFrame, plan Plan) bool {
	changed := false
	for _, p := range tf.Paragraphs() {
		if RewriteParagraph(p, plan) {
			changed = true
		}
	}
	return changed
}

// RewriteShape resolves the plan against a shape's text, descending into
// every cell when the shape holds a table.
func RewriteShape(sh *deck.Shape, plan Plan) bool {
	changed := false
	if sh.HasTable() {
		for _, row := range sh.Table().Rows() {
			for _, cell := range row.Cells() {
				if RewriteTextFrame(cell.TextFrame(), plan) {
					changed = true
				}
			}
		}
		return changed
	}
	if sh.HasTextFrame() {
		changed = RewriteTextFrame(sh.TextFrame(), plan)
	}
	return changed
}
