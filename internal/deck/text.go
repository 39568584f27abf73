package deck

import (
	"strconv"
	"strings"
)

// TextFrame wraps a text body (p:txBody on shapes, a:txBody in table
// cells).
type TextFrame struct {
	node *Node
}

// NewTextFrame wraps an already-parsed text body node.
func NewTextFrame(n *Node) *TextFrame {
	return &TextFrame{node: n}
}

// Paragraphs returns the frame's paragraphs in order.
func (tf *TextFrame) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, p := range tf.node.Children("a:p") {
		out = append(out, &Paragraph{node: p})
	}
	return out
}

// Text returns the frame's rendered text, paragraphs joined with newlines.
func (tf *TextFrame) Text() string {
	var parts []string
	for _, p := range tf.Paragraphs() {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\n")
}

// ClearText empties the frame without changing its paragraph count or any
// run formatting: every run's text becomes "".
func (tf *TextFrame) ClearText() {
	for _, p := range tf.Paragraphs() {
		for _, r := range p.Runs() {
			r.SetText("")
		}
	}
}

// Paragraph wraps one a:p element.
type Paragraph struct {
	node *Node
}

// NewParagraph wraps an already-parsed a:p node.
func NewParagraph(n *Node) *Paragraph {
	return &Paragraph{node: n}
}

// Node exposes the underlying element, for callers that need to check
// paragraph-level properties.
func (p *Paragraph) Node() *Node {
	return p.node
}

// Text concatenates the paragraph's run texts; explicit line breaks render
// as "\n".
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, k := range p.node.Kids {
		switch k.Name {
		case "a:r", "a:fld":
			if t := k.Child("a:t"); t != nil {
				b.WriteString(t.Text)
			}
		case "a:br":
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Runs returns the paragraph's text runs.
func (p *Paragraph) Runs() []*Run {
	var out []*Run
	for _, k := range p.node.Children("a:r") {
		out = append(out, &Run{node: k})
	}
	return out
}

// ClearRuns removes every run, break and field from the paragraph.
// Paragraph-level properties (a:pPr) and the end-of-paragraph run
// properties survive, so alignment, indentation and spacing are untouched.
func (p *Paragraph) ClearRuns() {
	p.node.RemoveAll("a:r", "a:br", "a:fld")
}

// AddRun appends a run with the given text. Newlines in text become
// explicit a:br breaks. The run is inserted before a:endParaRPr so the
// paragraph stays schema-valid.
func (p *Paragraph) AddRun(text string) *Run {
	end := p.node.Child("a:endParaRPr")
	segments := strings.Split(text, "\n")
	var run *Run
	for i, seg := range segments {
		if i > 0 {
			p.node.InsertBefore(&Node{Name: "a:br"}, end)
		}
		t := &Node{Name: "a:t", Text: seg}
		r := &Node{Name: "a:r"}
		r.Append(t)
		p.node.InsertBefore(r, end)
		if run == nil {
			run = &Run{node: r}
		}
	}
	if run == nil {
		t := &Node{Name: "a:t"}
		r := &Node{Name: "a:r"}
		r.Append(t)
		p.node.InsertBefore(r, end)
		run = &Run{node: r}
	}
	return run
}

// Run wraps one a:r element.
type Run struct {
	node *Node
}

// Text returns the run's text.
func (r *Run) Text() string {
	if t := r.node.Child("a:t"); t != nil {
		return t.Text
	}
	return ""
}

// SetText replaces the run's text.
func (r *Run) SetText(s string) {
	t := r.node.Child("a:t")
	if t == nil {
		t = &Node{Name: "a:t"}
		r.node.Append(t)
	}
	t.Text = s
}

// rPr returns the run properties element, creating it as the first child
// when absent.
func (r *Run) rPr() *Node {
	if p := r.node.Child("a:rPr"); p != nil {
		return p
	}
	p := &Node{Name: "a:rPr"}
	if len(r.node.Kids) > 0 {
		r.node.InsertBefore(p, r.node.Kids[0])
	} else {
		r.node.Append(p)
	}
	return p
}

// SetBold sets or clears the bold flag.
func (r *Run) SetBold(b bool) {
	v := "0"
	if b {
		v = "1"
	}
	r.rPr().SetAttr("b", v)
}

// SetSize sets the font size in points.
func (r *Run) SetSize(points float64) {
	r.rPr().SetAttr("sz", strconv.Itoa(int(points*100)))
}

// SetColor sets the font color, replacing any existing fill.
func (r *Run) SetColor(c RGB) {
	pr := r.rPr()
	pr.RemoveAll(fillNames...)
	fill := solidFillNode(c)
	// Fill precedes the font-face elements in the run-properties schema.
	for _, k := range pr.Kids {
		if strings.HasPrefix(k.Name, "a:latin") || strings.HasPrefix(k.Name, "a:ea") || strings.HasPrefix(k.Name, "a:cs") {
			pr.InsertBefore(fill, k)
			return
		}
	}
	pr.Append(fill)
}

// Bold reports the run's bold flag.
func (r *Run) Bold() bool {
	if p := r.node.Child("a:rPr"); p != nil {
		return p.Attr("b") == "1"
	}
	return false
}

// Size returns the run's font size in points, or 0 when inherited.
func (r *Run) Size() float64 {
	if p := r.node.Child("a:rPr"); p != nil {
		if sz, err := strconv.Atoi(p.Attr("sz")); err == nil {
			return float64(sz) / 100
		}
	}
	return 0
}

// Color returns the run's explicit font color, or nil when inherited.
func (r *Run) Color() *RGB {
	p := r.node.Child("a:rPr")
	if p == nil {
		return nil
	}
	fill := p.Child("a:solidFill")
	if fill == nil {
		return nil
	}
	clr := fill.Child("a:srgbClr")
	if clr == nil {
		return nil
	}
	c, err := ParseHex(clr.Attr("val"))
	if err != nil {
		return nil
	}
	return &c
}
