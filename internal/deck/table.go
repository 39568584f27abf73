package deck

// Table wraps an a:tbl element inside a graphic frame.
type Table struct {
	node *Node
}

// Rows returns the table's rows in order.
func (t *Table) Rows() []*Row {
	var out []*Row
	for _, tr := range t.node.Children("a:tr") {
		out = append(out, &Row{node: tr})
	}
	return out
}

// Row wraps one a:tr element.
type Row struct {
	node *Node
}

// Cells returns the row's cells in column order.
func (r *Row) Cells() []*Cell {
	var out []*Cell
	for _, tc := range r.node.Children("a:tc") {
		out = append(out, &Cell{node: tc})
	}
	return out
}

// Cell wraps one a:tc element.
type Cell struct {
	node *Node
}

// NewCell wraps an already-parsed a:tc node.
func NewCell(n *Node) *Cell {
	return &Cell{node: n}
}

// TextFrame returns the cell's text body. Table cells always carry one.
func (c *Cell) TextFrame() *TextFrame {
	tb := c.node.Child("a:txBody")
	if tb == nil {
		tb = &Node{Name: "a:txBody"}
		tb.Append(&Node{Name: "a:bodyPr"})
		tb.Append(&Node{Name: "a:p"})
		if len(c.node.Kids) > 0 {
			c.node.InsertBefore(tb, c.node.Kids[0])
		} else {
			c.node.Append(tb)
		}
	}
	return &TextFrame{node: tb}
}

// SetSolidFill paints the cell background. Replaces any previous fill, so
// re-applying the same color is a no-op in effect.
func (c *Cell) SetSolidFill(color RGB) {
	tcPr := c.node.Child("a:tcPr")
	if tcPr == nil {
		tcPr = &Node{Name: "a:tcPr"}
		c.node.Append(tcPr)
	}
	tcPr.RemoveAll(fillNames...)
	tcPr.Append(solidFillNode(color))
}

// Fill returns the cell's solid fill color, nil when the cell has no solid
// fill of its own.
func (c *Cell) Fill() *RGB {
	return solidFillColor(c.node.Child("a:tcPr"))
}
