package deck

import (
	"strconv"

	"github.com/google/uuid"
)

// Slide is one page of the deck.
type Slide struct {
	deck  *Deck
	part  string
	relID string
	root  *Node
}

// Part returns the zip part name backing this slide.
func (s *Slide) Part() string {
	return s.part
}

// Shapes returns every shape on the slide, flattened through grouped
// shapes, in tree order.
func (s *Slide) Shapes() []*Shape {
	cSld := s.root.Child("p:cSld")
	if cSld == nil {
		return nil
	}
	tree := cSld.Child("p:spTree")
	if tree == nil {
		return nil
	}
	return collectShapes(tree, nil)
}

func collectShapes(container *Node, out []*Shape) []*Shape {
	for _, k := range container.Kids {
		switch k.Name {
		case "p:sp", "p:pic", "p:graphicFrame", "p:cxnSp":
			out = append(out, &Shape{node: k})
		case "p:grpSp":
			out = collectShapes(k, out)
		}
	}
	return out
}

// reassignIdentity gives every visual element in the subtree a fresh
// document-unique id and name. Must run before the clone is registered.
func reassignIdentity(root *Node, d *Deck) {
	root.Walk(func(n *Node) {
		if n.Name != "p:cNvPr" {
			return
		}
		d.maxShapeID++
		n.SetAttr("id", strconv.Itoa(d.maxShapeID))
		suffix := uuid.NewString()[:8]
		name := n.Attr("name")
		if name == "" {
			n.SetAttr("name", "Shape "+suffix)
		} else {
			n.SetAttr("name", name+" "+suffix)
		}
	})
}
