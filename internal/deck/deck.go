// Package deck is the editable document model for .pptx files. A deck is a
// zip of XML parts; parts the engine mutates (the presentation index, its
// relationships, the content-type map and every slide) are parsed into
// trees, everything else is carried through byte-for-byte.
package deck

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

const (
	presPart     = "ppt/presentation.xml"
	presRelsPart = "ppt/_rels/presentation.xml.rels"
	typesPart    = "[Content_Types].xml"

	slideContentType = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	slideRelType     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
)

// Deck is one open presentation. It is owned by a single pipeline
// invocation; nothing here is safe for concurrent use.
type Deck struct {
	parts map[string][]byte
	order []string

	pres     *Node
	presRels *Node
	types    *Node
	slides   []*Slide

	// Highest p:cNvPr id seen anywhere in the document. Duplicated shapes
	// take ids above this so identity stays unique deck-wide.
	maxShapeID int
}

// Open reads a .pptx file into an editable Deck.
func Open(filename string) (*Deck, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}

	d := &Deck{parts: make(map[string][]byte)}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("reading part %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading part %s: %w", f.Name, err)
		}
		d.parts[f.Name] = content
		d.order = append(d.order, f.Name)
	}

	if err := d.parseIndex(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return d, nil
}

func (d *Deck) parseIndex() error {
	var err error
	if d.pres, err = d.parsePart(presPart); err != nil {
		return err
	}
	if d.presRels, err = d.parsePart(presRelsPart); err != nil {
		return err
	}
	if d.types, err = d.parsePart(typesPart); err != nil {
		return err
	}

	lst := d.pres.Child("p:sldIdLst")
	if lst == nil {
		return fmt.Errorf("presentation has no slide list")
	}
	for _, id := range lst.Children("p:sldId") {
		relID := id.Attr("r:id")
		target := d.relTarget(relID)
		if target == "" {
			return fmt.Errorf("slide relationship %q not found", relID)
		}
		part := resolveTarget("ppt", target)
		root, err := d.parsePart(part)
		if err != nil {
			return err
		}
		d.slides = append(d.slides, &Slide{deck: d, part: part, relID: relID, root: root})
	}

	for _, s := range d.slides {
		s.root.Walk(func(n *Node) {
			if n.Name == "p:cNvPr" {
				if id, err := strconv.Atoi(n.Attr("id")); err == nil && id > d.maxShapeID {
					d.maxShapeID = id
				}
			}
		})
	}
	return nil
}

func (d *Deck) parsePart(name string) (*Node, error) {
	data, ok := d.parts[name]
	if !ok {
		return nil, fmt.Errorf("part %s missing", name)
	}
	root, err := ParseXML(data)
	if err != nil {
		return nil, fmt.Errorf("part %s: %w", name, err)
	}
	return root, nil
}

func (d *Deck) relTarget(relID string) string {
	for _, r := range d.presRels.Children("Relationship") {
		if r.Attr("Id") == relID {
			return r.Attr("Target")
		}
	}
	return ""
}

// resolveTarget joins a relationship target onto its source part's
// directory ("slides/slide1.xml" under "ppt" -> "ppt/slides/slide1.xml").
func resolveTarget(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(baseDir, target)
}

func relsPartFor(part string) string {
	return path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
}

// Slides returns the slides in presentation order. The slice is reindexed
// by DeleteSlide and DuplicateSlide; callers must not hold onto it across
// cardinality changes.
func (d *Deck) Slides() []*Slide {
	return d.slides
}

// DeleteSlide removes the slide at index i: its entry in the slide list,
// its relationship, its parts and its content-type override. Callers
// deleting several slides must work from the highest index down.
func (d *Deck) DeleteSlide(i int) error {
	if i < 0 || i >= len(d.slides) {
		return fmt.Errorf("delete slide: index %d out of range (%d slides)", i, len(d.slides))
	}
	s := d.slides[i]

	lst := d.pres.Child("p:sldIdLst")
	for _, id := range lst.Children("p:sldId") {
		if id.Attr("r:id") == s.relID {
			lst.Remove(id)
			break
		}
	}
	for _, r := range d.presRels.Children("Relationship") {
		if r.Attr("Id") == s.relID {
			d.presRels.Remove(r)
			break
		}
	}
	for _, o := range d.types.Children("Override") {
		if o.Attr("PartName") == "/"+s.part {
			d.types.Remove(o)
			break
		}
	}
	d.dropPart(s.part)
	d.dropPart(relsPartFor(s.part))
	d.slides = append(d.slides[:i], d.slides[i+1:]...)
	return nil
}

func (d *Deck) dropPart(name string) {
	delete(d.parts, name)
	for i, n := range d.order {
		if n == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			return
		}
	}
}

var slidePartRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// DuplicateSlide deep-copies the slide at index i and appends the clone at
// the end of the deck. Every visual element in the clone receives a fresh
// structural identity (id and name) before the part is registered: the
// container format does not reject duplicate ids at save time, the file
// just fails to reopen.
func (d *Deck) DuplicateSlide(i int) (*Slide, error) {
	if i < 0 || i >= len(d.slides) {
		return nil, fmt.Errorf("duplicate slide: index %d out of range (%d slides)", i, len(d.slides))
	}
	src := d.slides[i]

	maxNum := 0
	for name := range d.parts {
		if m := slidePartRe.FindStringSubmatch(name); m != nil {
			if n, _ := strconv.Atoi(m[1]); n > maxNum {
				maxNum = n
			}
		}
	}
	part := fmt.Sprintf("ppt/slides/slide%d.xml", maxNum+1)

	root := src.root.Clone()
	reassignIdentity(root, d)

	// The clone keeps the source slide's relationships (layout, media).
	if rels, ok := d.parts[relsPartFor(src.part)]; ok {
		relsCopy := append([]byte(nil), rels...)
		d.parts[relsPartFor(part)] = relsCopy
		d.order = append(d.order, relsPartFor(part))
	}

	relID := d.nextRelID()
	rel := &Node{Name: "Relationship"}
	rel.SetAttr("Id", relID)
	rel.SetAttr("Type", slideRelType)
	rel.SetAttr("Target", "slides/"+path.Base(part))
	d.presRels.Append(rel)

	override := &Node{Name: "Override"}
	override.SetAttr("PartName", "/"+part)
	override.SetAttr("ContentType", slideContentType)
	d.types.Append(override)

	lst := d.pres.Child("p:sldIdLst")
	sldID := &Node{Name: "p:sldId"}
	sldID.SetAttr("id", strconv.Itoa(d.nextSldID()))
	sldID.SetAttr("r:id", relID)
	lst.Append(sldID)

	d.parts[part] = nil // serialized at Save
	d.order = append(d.order, part)

	s := &Slide{deck: d, part: part, relID: relID, root: root}
	d.slides = append(d.slides, s)
	return s, nil
}

func (d *Deck) nextRelID() string {
	max := 0
	for _, r := range d.presRels.Children("Relationship") {
		id := strings.TrimPrefix(r.Attr("Id"), "rId")
		if n, err := strconv.Atoi(id); err == nil && n > max {
			max = n
		}
	}
	return "rId" + strconv.Itoa(max+1)
}

// nextSldID returns a fresh slide id. The format reserves ids below 256.
func (d *Deck) nextSldID() int {
	max := 255
	lst := d.pres.Child("p:sldIdLst")
	for _, id := range lst.Children("p:sldId") {
		if n, err := strconv.Atoi(id.Attr("id")); err == nil && n > max {
			max = n
		}
	}
	return max + 1
}

// Save serializes every mutated part and writes the deck to filename via a
// temp file and rename, so a failed save never leaves a half-written deck.
func (d *Deck) Save(filename string) error {
	d.parts[presPart] = Marshal(d.pres)
	d.parts[presRelsPart] = Marshal(d.presRels)
	d.parts[typesPart] = Marshal(d.types)
	for _, s := range d.slides {
		d.parts[s.part] = Marshal(s.root)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range d.order {
		content, ok := d.parts[name]
		if !ok {
			continue
		}
		w, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("writing part %s: %w", name, err)
		}
		if _, err := w.Write(content); err != nil {
			return fmt.Errorf("writing part %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}

	// Stage next to the target and sync before the rename so a crash
	// mid-write never leaves a torn deck behind.
	f, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, filename)
}
