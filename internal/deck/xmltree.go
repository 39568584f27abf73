package deck

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is one element of a parsed XML part. Names and attribute names are
// stored exactly as written, namespace prefixes included ("p:sp", "a:t").
// Re-encoding through encoding/xml would rewrite prefixes and break the
// package parts, so parts are parsed and serialized by hand.
type Node struct {
	Name  string
	Attrs []Attr
	Kids  []*Node
	Text  string
}

// Attr is a single attribute in document order.
type Attr struct {
	Name  string
	Value string
}

// Attr returns the value of the named attribute, or "".
func (n *Node) Attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// SetAttr replaces the named attribute or appends it.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Child returns the first child element with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, k := range n.Kids {
		if k.Name == name {
			return k
		}
	}
	return nil
}

// Children returns all child elements with the given name.
func (n *Node) Children(name string) []*Node {
	var out []*Node
	for _, k := range n.Kids {
		if k.Name == name {
			out = append(out, k)
		}
	}
	return out
}

// Append adds a child at the end.
func (n *Node) Append(kid *Node) {
	n.Kids = append(n.Kids, kid)
}

// InsertBefore inserts kid immediately before ref. If ref is nil or not a
// child, kid is appended.
func (n *Node) InsertBefore(kid, ref *Node) {
	for i, k := range n.Kids {
		if k == ref {
			n.Kids = append(n.Kids[:i], append([]*Node{kid}, n.Kids[i:]...)...)
			return
		}
	}
	n.Kids = append(n.Kids, kid)
}

// Remove deletes the given child element. No-op if kid is not a child.
func (n *Node) Remove(kid *Node) {
	for i, k := range n.Kids {
		if k == kid {
			n.Kids = append(n.Kids[:i], n.Kids[i+1:]...)
			return
		}
	}
}

// RemoveAll deletes every child whose name is in names.
func (n *Node) RemoveAll(names ...string) {
	kept := n.Kids[:0]
	for _, k := range n.Kids {
		drop := false
		for _, name := range names {
			if k.Name == name {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, k)
		}
	}
	n.Kids = kept
}

// Clone returns a deep copy of the subtree.
func (n *Node) Clone() *Node {
	c := &Node{Name: n.Name, Text: n.Text}
	c.Attrs = append([]Attr(nil), n.Attrs...)
	for _, k := range n.Kids {
		c.Kids = append(c.Kids, k.Clone())
	}
	return c
}

// Walk visits n and every descendant depth-first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, k := range n.Kids {
		k.Walk(fn)
	}
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

// ParseXML parses a single-rooted XML document. The prolog, comments and
// CDATA sections are consumed; prefixes are kept verbatim.
func ParseXML(data []byte) (*Node, error) {
	p := &xmlParser{data: string(data)}
	p.skipProlog()
	root, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	return root, nil
}

// Marshal serializes the tree back into a part, XML declaration included.
func Marshal(root *Node) []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	writeNode(&b, root)
	return []byte(b.String())
}

func writeNode(b *strings.Builder, n *Node) {
	b.WriteByte('<')
	b.WriteString(n.Name)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(a.Value))
		b.WriteByte('"')
	}
	if len(n.Kids) == 0 && n.Text == "" {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	if n.Text != "" {
		b.WriteString(escapeText(n.Text))
	}
	for _, k := range n.Kids {
		writeNode(b, k)
	}
	b.WriteString("</")
	b.WriteString(n.Name)
	b.WriteByte('>')
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string) string {
	s = escapeText(s)
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "\n", "&#10;")
	return s
}

type xmlParser struct {
	data string
	pos  int
}

func (p *xmlParser) skipProlog() {
	for {
		p.skipSpace()
		if strings.HasPrefix(p.data[p.pos:], "<?") {
			end := strings.Index(p.data[p.pos:], "?>")
			if end < 0 {
				p.pos = len(p.data)
				return
			}
			p.pos += end + 2
			continue
		}
		if strings.HasPrefix(p.data[p.pos:], "<!--") {
			end := strings.Index(p.data[p.pos:], "-->")
			if end < 0 {
				p.pos = len(p.data)
				return
			}
			p.pos += end + 3
			continue
		}
		return
	}
}

func (p *xmlParser) skipSpace() {
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

func (p *xmlParser) parseElement() (*Node, error) {
	if p.pos >= len(p.data) || p.data[p.pos] != '<' {
		return nil, fmt.Errorf("xml: expected element at offset %d", p.pos)
	}
	p.pos++
	name := p.readName()
	if name == "" {
		return nil, fmt.Errorf("xml: empty element name at offset %d", p.pos)
	}
	n := &Node{Name: name}

	for {
		p.skipSpace()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("xml: unexpected end inside <%s>", name)
		}
		if strings.HasPrefix(p.data[p.pos:], "/>") {
			p.pos += 2
			return n, nil
		}
		if p.data[p.pos] == '>' {
			p.pos++
			if err := p.parseContent(n); err != nil {
				return nil, err
			}
			return n, nil
		}
		attr, err := p.parseAttr()
		if err != nil {
			return nil, fmt.Errorf("xml: in <%s>: %w", name, err)
		}
		n.Attrs = append(n.Attrs, attr)
	}
}

func (p *xmlParser) parseContent(n *Node) error {
	var text strings.Builder
	for {
		if p.pos >= len(p.data) {
			return fmt.Errorf("xml: unclosed element <%s>", n.Name)
		}
		if p.data[p.pos] == '<' {
			rest := p.data[p.pos:]
			switch {
			case strings.HasPrefix(rest, "</"):
				end := strings.IndexByte(rest, '>')
				if end < 0 {
					return fmt.Errorf("xml: unterminated closing tag in <%s>", n.Name)
				}
				closing := strings.TrimSpace(rest[2:end])
				if closing != n.Name {
					return fmt.Errorf("xml: mismatched closing tag </%s> in <%s>", closing, n.Name)
				}
				p.pos += end + 1
				n.Text = finishText(text.String(), len(n.Kids))
				return nil
			case strings.HasPrefix(rest, "<!--"):
				end := strings.Index(rest, "-->")
				if end < 0 {
					return fmt.Errorf("xml: unterminated comment in <%s>", n.Name)
				}
				p.pos += end + 3
			case strings.HasPrefix(rest, "<![CDATA["):
				end := strings.Index(rest, "]]>")
				if end < 0 {
					return fmt.Errorf("xml: unterminated CDATA in <%s>", n.Name)
				}
				text.WriteString(rest[9:end])
				p.pos += end + 3
			default:
				kid, err := p.parseElement()
				if err != nil {
					return err
				}
				n.Kids = append(n.Kids, kid)
			}
			continue
		}
		next := strings.IndexByte(p.data[p.pos:], '<')
		if next < 0 {
			next = len(p.data) - p.pos
		}
		text.WriteString(unescape(p.data[p.pos : p.pos+next]))
		p.pos += next
	}
}

// finishText drops whitespace-only character data on container elements so
// that pretty-printed input does not leak indentation into the model.
func finishText(s string, kids int) string {
	if kids > 0 && strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

func (p *xmlParser) readName() string {
	start := p.pos
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '>' || c == '/' || c == '=' {
			break
		}
		p.pos++
	}
	return p.data[start:p.pos]
}

func (p *xmlParser) parseAttr() (Attr, error) {
	name := p.readName()
	if name == "" {
		return Attr{}, fmt.Errorf("bad attribute at offset %d", p.pos)
	}
	p.skipSpace()
	if p.pos >= len(p.data) || p.data[p.pos] != '=' {
		return Attr{}, fmt.Errorf("attribute %q missing '='", name)
	}
	p.pos++
	p.skipSpace()
	if p.pos >= len(p.data) {
		return Attr{}, fmt.Errorf("attribute %q missing value", name)
	}
	quote := p.data[p.pos]
	if quote != '"' && quote != '\'' {
		return Attr{}, fmt.Errorf("attribute %q value not quoted", name)
	}
	p.pos++
	end := strings.IndexByte(p.data[p.pos:], quote)
	if end < 0 {
		return Attr{}, fmt.Errorf("attribute %q value unterminated", name)
	}
	val := unescape(p.data[p.pos : p.pos+end])
	p.pos += end + 1
	return Attr{Name: name, Value: val}, nil
}

func unescape(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}
		end := strings.IndexByte(s[i:], ';')
		if end < 0 {
			b.WriteString(s[i:])
			break
		}
		ent := s[i+1 : i+end]
		switch {
		case ent == "lt":
			b.WriteByte('<')
		case ent == "gt":
			b.WriteByte('>')
		case ent == "amp":
			b.WriteByte('&')
		case ent == "quot":
			b.WriteByte('"')
		case ent == "apos":
			b.WriteByte('\'')
		case strings.HasPrefix(ent, "#x") || strings.HasPrefix(ent, "#X"):
			if v, err := strconv.ParseInt(ent[2:], 16, 32); err == nil {
				b.WriteRune(rune(v))
			}
		case strings.HasPrefix(ent, "#"):
			if v, err := strconv.ParseInt(ent[1:], 10, 32); err == nil {
				b.WriteRune(rune(v))
			}
		default:
			// Unknown entity, keep as written.
			b.WriteString(s[i : i+end+1])
		}
		i += end + 1
	}
	return b.String()
}
