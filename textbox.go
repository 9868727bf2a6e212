package pptxpack

import (
	"fmt"
	"strings"
)

// AddTextbox inserts a text shape on the active slide. The text is
// split on paragraph breaks; every paragraph carries a run with the
// resolved size, weight, slant, and color, the shared horizontal
// alignment, and the box-wide vertical anchor. Malformed style values
// fail before the buffer is touched.
func (p *Package) AddTextbox(text string, geom Geometry, opts TextboxOptions) error {
	b, err := p.activeBuffer("add textbox")
	if err != nil {
		return err
	}
	st, err := resolveTextStyle(opts)
	if err != nil {
		return err
	}
	spTree, err := b.spTree()
	if err != nil {
		return err
	}

	objID := b.nextObjectID()
	name := opts.Name
	if name == "" {
		name = fmt.Sprintf("TextBox %d", objID)
	}

	sp := spTree.CreateChild("p:sp")
	nv := sp.CreateChild("p:nvSpPr")
	nv.CreateChild("p:cNvPr").SetAttributes(
		Attr{Name: "id", Value: formatInt(int64(objID))},
		Attr{Name: "name", Value: name},
	)
	nv.CreateChild("p:cNvSpPr").SetAttributes(Attr{Name: "txBox", Value: "1"})
	nv.CreateChild("p:nvPr")

	spPr := sp.CreateChild("p:spPr")
	writeXfrm(spPr, &geom)
	spPr.CreateChild("a:prstGeom").SetAttributes(Attr{Name: "prst", Value: "rect"}).CreateChild("a:avLst")
	if st.fill != nil {
		spPr.CreateChild("a:solidFill").CreateChild("a:srgbClr").SetAttributes(
			Attr{Name: "val", Value: st.fill.Color.RGB()},
		)
	}
	if st.border != nil {
		writeBorder(spPr, st.border)
	}

	txBody := sp.CreateChild("p:txBody")
	txBody.CreateChild("a:bodyPr").SetAttributes(
		Attr{Name: "wrap", Value: "square"},
		Attr{Name: "anchor", Value: string(st.anchor)},
	)
	txBody.CreateChild("a:lstStyle")
	paragraphs := splitParagraphs(text)
	for _, para := range paragraphs {
		pNode := txBody.CreateChild("a:p")
		pNode.CreateChild("a:pPr").SetAttributes(Attr{Name: "algn", Value: string(st.align)})
		run := pNode.CreateChild("a:r")
		rPr := run.CreateChild("a:rPr").SetAttributes(
			Attr{Name: "lang", Value: "en-US"},
			Attr{Name: "sz", Value: formatInt(st.sizeUnits)},
		)
		if st.bold {
			rPr.SetAttributes(Attr{Name: "b", Value: "1"})
		}
		if st.italic {
			rPr.SetAttributes(Attr{Name: "i", Value: "1"})
		}
		rPr.CreateChild("a:solidFill").CreateChild("a:srgbClr").SetAttributes(
			Attr{Name: "val", Value: st.color.RGB()},
		)
		run.CreateChild("a:t").AppendText(para)
	}
	p.logger.Debug("textbox added", "ordinal", b.ordinal, "object_id", objID, "paragraphs", len(paragraphs))
	return nil
}

// splitParagraphs breaks text into paragraphs on newlines, treating
// CRLF and LF alike.
func splitParagraphs(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
