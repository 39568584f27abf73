package deck

// Shape wraps one visual element (text box, picture, table frame or
// connector).
type Shape struct {
	node *Node
}

// Name returns the shape's display name from its non-visual properties.
func (sh *Shape) Name() string {
	if p := sh.cNvPr(); p != nil {
		return p.Attr("name")
	}
	return ""
}

// ID returns the shape's structural id as a string ("" if absent).
func (sh *Shape) ID() string {
	if p := sh.cNvPr(); p != nil {
		return p.Attr("id")
	}
	return ""
}

func (sh *Shape) cNvPr() *Node {
	var found *Node
	sh.node.Walk(func(n *Node) {
		if found == nil && n.Name == "p:cNvPr" {
			found = n
		}
	})
	return found
}

// HasTextFrame reports whether the shape carries a text body.
func (sh *Shape) HasTextFrame() bool {
	return sh.node.Child("p:txBody") != nil
}

// TextFrame returns the shape's text frame, or nil.
func (sh *Shape) TextFrame() *TextFrame {
	tb := sh.node.Child("p:txBody")
	if tb == nil {
		return nil
	}
	return &TextFrame{node: tb}
}

// HasTable reports whether the shape is a graphic frame holding a table.
func (sh *Shape) HasTable() bool {
	return sh.tableNode() != nil
}

// Table returns the shape's table, or nil.
func (sh *Shape) Table() *Table {
	t := sh.tableNode()
	if t == nil {
		return nil
	}
	return &Table{node: t}
}

func (sh *Shape) tableNode() *Node {
	if sh.node.Name != "p:graphicFrame" {
		return nil
	}
	g := sh.node.Child("a:graphic")
	if g == nil {
		return nil
	}
	gd := g.Child("a:graphicData")
	if gd == nil {
		return nil
	}
	return gd.Child("a:tbl")
}

// Fill returns the shape's own solid fill color, nil when unset.
func (sh *Shape) Fill() *RGB {
	return solidFillColor(sh.node.Child("p:spPr"))
}

// SetSolidFill replaces the shape's fill with a solid color. Idempotent.
func (sh *Shape) SetSolidFill(c RGB) {
	spPr := sh.node.Child("p:spPr")
	if spPr == nil {
		spPr = &Node{Name: "p:spPr"}
		// Shape properties come right after the non-visual property block.
		if len(sh.node.Kids) > 1 {
			sh.node.InsertBefore(spPr, sh.node.Kids[1])
		} else {
			sh.node.Append(spPr)
		}
	}
	spPr.RemoveAll(fillNames...)
	// Fill sits after the geometry (or transform) element.
	var after *Node
	for _, k := range spPr.Kids {
		if k.Name == "a:prstGeom" || k.Name == "a:custGeom" {
			after = k
		}
	}
	if after == nil {
		if x := spPr.Child("a:xfrm"); x != nil {
			after = x
		}
	}
	fill := solidFillNode(c)
	if after == nil {
		spPr.Kids = append([]*Node{fill}, spPr.Kids...)
		return
	}
	for i, k := range spPr.Kids {
		if k == after {
			rest := append([]*Node{fill}, spPr.Kids[i+1:]...)
			spPr.Kids = append(spPr.Kids[:i+1], rest...)
			return
		}
	}
}
