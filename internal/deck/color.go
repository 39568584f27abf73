package deck

import "fmt"

// RGB is a solid fill or font color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as the uppercase RRGGBB form the format stores.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex parses an RRGGBB string, with or without a leading '#'.
func ParseHex(s string) (RGB, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("color %q: want RRGGBB", s)
	}
	var c RGB
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	return c, nil
}

// solidFillNode builds an <a:solidFill><a:srgbClr val="..."/></a:solidFill>.
func solidFillNode(c RGB) *Node {
	clr := &Node{Name: "a:srgbClr"}
	clr.SetAttr("val", c.Hex())
	fill := &Node{Name: "a:solidFill"}
	fill.Append(clr)
	return fill
}

// solidFillColor reads the srgb color out of a property block holding an
// a:solidFill, nil when there is none (or the fill is theme-based).
func solidFillColor(props *Node) *RGB {
	if props == nil {
		return nil
	}
	fill := props.Child("a:solidFill")
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

var fillNames = []string{"a:noFill", "a:solidFill", "a:gradFill", "a:blipFill", "a:pattFill", "a:grpFill"}
