package pptxpack

import (
	"fmt"
	"path"
	"strings"
)

// slideBuffer holds exactly one slide's document tree and relationship
// table as the active editable unit. All shape insertion targets it.
// Holding a single slide bounds the working set regardless of
// presentation length; the cost is a flush round-trip on every slide
// transition, paid explicitly in AddSlide and SwitchSlide.
type slideBuffer struct {
	ordinal      int
	id           int
	path         string
	doc          *Node
	rels         *Relationships
	lastObjectID int // per-slide shape/note id sequence; 1 is the group shape
}

// nextObjectID advances the buffered slide's object-id sequence, which
// is independent of the relationship-id allocator.
func (b *slideBuffer) nextObjectID() int {
	b.lastObjectID++
	return b.lastObjectID
}

// spTree returns the buffered slide's shape tree element.
func (b *slideBuffer) spTree() (*Node, error) {
	return b.doc.FindFirst("p:spTree")
}

// SlideOptions configures AddSlide. BackgroundColor, when set, is a
// 3-component RGB vector in [0, 1] painted as a solid slide
// background.
type SlideOptions struct {
	BackgroundColor []float64
}

// AddSlide flushes the active slide (if any), creates a fresh minimal
// slide, links it into the presentation's slide list, relationship
// table, and content-type registry, and makes it the active slide.
// It returns the new slide's 1-based ordinal. The ordinal matches
// insertion order and is distinct from the slide identifier, which is
// allocated from a separate monotonic sequence starting above the
// format's reserved baseline.
func (p *Package) AddSlide(opts SlideOptions) (int, error) {
	if err := p.ensureOpen("add slide"); err != nil {
		return 0, err
	}
	var bg *Fill
	if opts.BackgroundColor != nil {
		c, err := ColorVec(opts.BackgroundColor)
		if err != nil {
			return 0, err
		}
		bg = &Fill{Color: c}
	}
	if p.buffer != nil {
		p.flushSlide()
	}

	id := p.nextSlideID()
	ordinal := len(p.slides) + 1
	p.lastFileNum++
	slidePath := fmt.Sprintf("ppt/slides/slide%d.xml", p.lastFileNum)

	// Link the slide into the presentation part.
	presPart, err := p.store.Get(pathPresentation)
	if err != nil {
		return 0, err
	}
	presDoc, err := p.store.Doc(pathPresentation)
	if err != nil {
		return 0, err
	}
	sldIDLst, err := presDoc.FindFirst("p:sldIdLst")
	if err != nil {
		return 0, err
	}
	relID := presPart.Rels.add(p.nextRelID(), relTypeSlide, strings.TrimPrefix(slidePath, "ppt/"))
	sldIDLst.CreateChild("p:sldId").SetAttributes(
		Attr{Name: "id", Value: formatInt(int64(id))},
		Attr{Name: "r:id", Value: relID},
	)
	p.contentTypes.RegisterOverride(slidePath, ctSlide)

	// Fresh minimal slide document and relationship table.
	doc := newSlideDoc(bg)
	rels := NewRelationships()
	rels.add(p.nextRelID(), relTypeSlideLayout, "../slideLayouts/slideLayout1.xml")

	p.slides = append(p.slides, &slideRecord{id: id, path: slidePath})
	p.buffer = &slideBuffer{
		ordinal:      ordinal,
		id:           id,
		path:         slidePath,
		doc:          doc,
		rels:         rels,
		lastObjectID: 1,
	}
	p.logger.Debug("slide added", "ordinal", ordinal, "id", id, "part", slidePath)
	return ordinal, nil
}

// newSlideDoc builds the minimal slide document: an empty shape tree
// and, optionally, a solid background fill.
func newSlideDoc(bg *Fill) *Node {
	doc := NewNode("p:sld")
	doc.SetAttributes(
		Attr{Name: "xmlns:a", Value: nsDrawingML},
		Attr{Name: "xmlns:r", Value: nsOfficeDocRels},
		Attr{Name: "xmlns:p", Value: nsPresentationML},
	)
	cSld := doc.CreateChild("p:cSld")
	if bg != nil {
		bgPr := cSld.CreateChild("p:bg").CreateChild("p:bgPr")
		bgPr.CreateChild("a:solidFill").CreateChild("a:srgbClr").SetAttributes(
			Attr{Name: "val", Value: bg.Color.RGB()},
		)
		bgPr.CreateChild("a:effectLst")
	}
	spTree := cSld.CreateChild("p:spTree")
	nv := spTree.CreateChild("p:nvGrpSpPr")
	nv.CreateChild("p:cNvPr").SetAttributes(
		Attr{Name: "id", Value: "1"},
		Attr{Name: "name", Value: ""},
	)
	nv.CreateChild("p:cNvGrpSpPr")
	nv.CreateChild("p:nvPr")
	xfrm := spTree.CreateChild("p:grpSpPr").CreateChild("a:xfrm")
	xfrm.CreateChild("a:off").SetAttributes(Attr{Name: "x", Value: "0"}, Attr{Name: "y", Value: "0"})
	xfrm.CreateChild("a:ext").SetAttributes(Attr{Name: "cx", Value: "0"}, Attr{Name: "cy", Value: "0"})
	xfrm.CreateChild("a:chOff").SetAttributes(Attr{Name: "x", Value: "0"}, Attr{Name: "y", Value: "0"})
	xfrm.CreateChild("a:chExt").SetAttributes(Attr{Name: "cx", Value: "0"}, Attr{Name: "cy", Value: "0"})
	doc.CreateChild("p:clrMapOvr").CreateChild("a:masterClrMapping")
	return doc
}

// flushSlide serializes the buffered slide and its relationship table
// to the part store at its canonical path. The buffer keeps its live
// tree; the stored part is a durable snapshot.
func (p *Package) flushSlide() {
	b := p.buffer
	p.store.Put(&Part{Path: b.path, Raw: b.doc.Marshal(), Rels: b.rels})
	p.logger.Debug("slide flushed", "ordinal", b.ordinal, "part", b.path)
}

// SwitchSlide flushes the active slide and loads the slide with the
// given 1-based ordinal into the buffer.
func (p *Package) SwitchSlide(ordinal int) error {
	if err := p.ensureOpen("switch slide"); err != nil {
		return err
	}
	if ordinal < 1 || ordinal > len(p.slides) {
		return notFound(ErrSlideNotFound, fmt.Sprintf("ordinal %d", ordinal))
	}
	if p.buffer != nil {
		if p.buffer.ordinal == ordinal {
			return nil
		}
		p.flushSlide()
	}
	return p.loadSlide(ordinal)
}

// loadSlide parses the stored slide part at the given ordinal into the
// buffer and recomputes the per-slide object-id sequence from the
// largest id present in its shape tree.
func (p *Package) loadSlide(ordinal int) error {
	rec := p.slides[ordinal-1]
	part, err := p.store.Get(rec.path)
	if err != nil {
		return notFound(ErrSlideNotFound, fmt.Sprintf("ordinal %d (%s)", ordinal, rec.path))
	}
	doc, err := ParseNode(part.bytes())
	if err != nil {
		return fmt.Errorf("load slide %d: %w", ordinal, err)
	}
	rels := part.Rels
	if rels == nil {
		rels = NewRelationships()
	}
	p.buffer = &slideBuffer{
		ordinal:      ordinal,
		id:           rec.id,
		path:         rec.path,
		doc:          doc,
		rels:         rels,
		lastObjectID: maxObjectID(doc),
	}
	p.logger.Debug("slide loaded", "ordinal", ordinal, "part", rec.path)
	return nil
}

// maxObjectID scans a slide tree for the largest cNvPr id.
func maxObjectID(doc *Node) int {
	m := 1
	for _, n := range doc.FindAll("p:cNvPr") {
		if id := parseIntAttr(n.Attr("id")); id > m {
			m = id
		}
	}
	return m
}

// activeBuffer returns the slide buffer, or a state error when no
// slide is active.
func (p *Package) activeBuffer(op string) (*slideBuffer, error) {
	if err := p.ensureOpen(op); err != nil {
		return nil, err
	}
	if p.buffer == nil {
		return nil, stateError(op, ErrNoActiveSlide)
	}
	return p.buffer, nil
}

// resolveTarget resolves a relationship target against the directory
// of the part that owns the table, yielding a store path.
func resolveTarget(ownerPath, target string) string {
	return path.Clean(path.Join(path.Dir(ownerPath), target))
}
