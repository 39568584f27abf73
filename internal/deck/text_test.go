package deck

import "testing"

func parseParagraph(t *testing.T, xml string) *Paragraph {
	t.Helper()
	n, err := ParseXML([]byte(xml))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return NewParagraph(n)
}

func TestParagraphText_RunsBreaksAndFields(t *testing.T) {
	p := parseParagraph(t, `<a:p><a:r><a:t>one</a:t></a:r><a:br/><a:r><a:t>two</a:t></a:r><a:fld id="{X}" type="slidenum"><a:t>3</a:t></a:fld></a:p>`)
	if got := p.Text(); got != "one\ntwo3" {
		t.Fatalf("text = %q, want %q", got, "one\ntwo3")
	}
}

func TestClearRuns_KeepsParagraphProperties(t *testing.T) {
	p := parseParagraph(t, `<a:p><a:pPr algn="ctr"/><a:r><a:rPr b="1"/><a:t>old</a:t></a:r><a:br/><a:endParaRPr lang="en-US"/></a:p>`)
	p.ClearRuns()
	if len(p.Runs()) != 0 {
		t.Fatalf("runs remain after ClearRuns: %d", len(p.Runs()))
	}
	if p.Node().Child("a:pPr") == nil {
		t.Fatal("a:pPr removed, paragraph layout must survive a rebuild")
	}
	if p.Node().Child("a:endParaRPr") == nil {
		t.Fatal("a:endParaRPr removed")
	}
}

func TestAddRun_InsertsBeforeEndParaRPr(t *testing.T) {
	p := parseParagraph(t, `<a:p><a:pPr algn="ctr"/><a:endParaRPr lang="en-US"/></a:p>`)
	p.AddRun("hello")
	kids := p.Node().Kids
	if kids[len(kids)-1].Name != "a:endParaRPr" {
		t.Fatalf("endParaRPr no longer last: %s", kids[len(kids)-1].Name)
	}
	if got := p.Text(); got != "hello" {
		t.Fatalf("text = %q", got)
	}
}

func TestAddRun_NewlinesBecomeBreaks(t *testing.T) {
	p := parseParagraph(t, `<a:p/>`)
	p.AddRun("line1\nline2")
	if got := p.Text(); got != "line1\nline2" {
		t.Fatalf("text = %q, want %q", got, "line1\nline2")
	}
	if p.Node().Child("a:br") == nil {
		t.Fatal("newline did not produce an a:br")
	}
}

func TestRunFormatting(t *testing.T) {
	p := parseParagraph(t, `<a:p/>`)
	r := p.AddRun("styled")
	r.SetBold(true)
	r.SetSize(7)
	r.SetColor(RGB{R: 0, G: 176, B: 240})

	if !r.Bold() {
		t.Fatal("bold not set")
	}
	if r.Size() != 7 {
		t.Fatalf("size = %v, want 7", r.Size())
	}
	c := r.Color()
	if c == nil || c.Hex() != "00B0F0" {
		t.Fatalf("color = %v, want 00B0F0", c)
	}
	// rPr must be the run's first child or the part is invalid.
	if r.node.Kids[0].Name != "a:rPr" {
		t.Fatalf("first kid = %s, want a:rPr", r.node.Kids[0].Name)
	}

	// Re-applying a color replaces the fill rather than stacking one.
	r.SetColor(RGB{R: 255, G: 0, B: 0})
	if len(r.node.Child("a:rPr").Children("a:solidFill")) != 1 {
		t.Fatal("SetColor stacked a second fill")
	}
}

func TestTextFrameClearText_KeepsRunCount(t *testing.T) {
	n, err := ParseXML([]byte(`<a:txBody><a:bodyPr/><a:p><a:r><a:rPr b="1"/><a:t>{{pr3}}</a:t></a:r><a:r><a:t>rest</a:t></a:r></a:p></a:txBody>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tf := NewTextFrame(n)
	tf.ClearText()
	if got := tf.Text(); got != "" {
		t.Fatalf("text = %q, want empty", got)
	}
	if runs := tf.Paragraphs()[0].Runs(); len(runs) != 2 {
		t.Fatalf("runs = %d, want 2 (formatting objects preserved)", len(runs))
	}
}

func TestColorParseHex(t *testing.T) {
	c, err := ParseHex("#57A237")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c != (RGB{R: 87, G: 162, B: 55}) {
		t.Fatalf("c = %+v", c)
	}
	if _, err := ParseHex("zzz"); err == nil {
		t.Fatal("expected error for bad hex")
	}
}
