package pptxpack

import (
	"fmt"
	gopath "path"
)

// AddNote sets the speaker notes of the active slide. The operation is
// an overwrite: when the slide already links a notes part, its text
// node is replaced in place; otherwise a new notes part is created,
// registered with the content-type registry, and linked from the
// slide's relationship table. Calling it twice leaves exactly one
// notes part holding the last text.
func (p *Package) AddNote(text string) error {
	b, err := p.activeBuffer("add note")
	if err != nil {
		return err
	}

	if rel, ok := b.rels.FindByType(relTypeNotesSlide); ok {
		notesPath := resolveTarget(b.path, rel.Target)
		doc, err := p.store.Doc(notesPath)
		if err != nil {
			return err
		}
		if err := doc.SetText("a:t", text); err != nil {
			return err
		}
		p.logger.Debug("note replaced", "ordinal", b.ordinal, "part", notesPath)
		return nil
	}

	notesPath := fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", b.ordinal)
	p.contentTypes.RegisterOverride(notesPath, ctNotesSlide)

	doc := newNotesDoc(text)
	notesRels := NewRelationships()
	notesRels.add(p.nextRelID(), relTypeNotesMaster, "../notesMasters/notesMaster1.xml")
	notesRels.add(p.nextRelID(), relTypeSlide, "../slides/"+gopath.Base(b.path))
	p.store.Put(&Part{Path: notesPath, Doc: doc, Rels: notesRels})

	b.rels.add(p.nextRelID(), relTypeNotesSlide, "../notesSlides/"+gopath.Base(notesPath))
	p.logger.Debug("note added", "ordinal", b.ordinal, "part", notesPath)
	return nil
}

// newNotesDoc builds a notes-slide document whose body placeholder
// carries a single paragraph of text.
func newNotesDoc(text string) *Node {
	notes := NewNode("p:notes")
	notes.SetAttributes(
		Attr{Name: "xmlns:a", Value: nsDrawingML},
		Attr{Name: "xmlns:r", Value: nsOfficeDocRels},
		Attr{Name: "xmlns:p", Value: nsPresentationML},
	)
	cSld := notes.CreateChild("p:cSld")
	spTree := cSld.CreateChild("p:spTree")
	nv := spTree.CreateChild("p:nvGrpSpPr")
	nv.CreateChild("p:cNvPr").SetAttributes(
		Attr{Name: "id", Value: "1"},
		Attr{Name: "name", Value: ""},
	)
	nv.CreateChild("p:cNvGrpSpPr")
	nv.CreateChild("p:nvPr")
	spTree.CreateChild("p:grpSpPr")

	sp := spTree.CreateChild("p:sp")
	nvSp := sp.CreateChild("p:nvSpPr")
	nvSp.CreateChild("p:cNvPr").SetAttributes(
		Attr{Name: "id", Value: "2"},
		Attr{Name: "name", Value: "Notes Placeholder"},
	)
	nvSp.CreateChild("p:cNvSpPr").CreateChild("a:spLocks").SetAttributes(
		Attr{Name: "noGrp", Value: "1"},
	)
	nvSp.CreateChild("p:nvPr").CreateChild("p:ph").SetAttributes(
		Attr{Name: "type", Value: "body"},
		Attr{Name: "idx", Value: "1"},
	)
	sp.CreateChild("p:spPr")
	txBody := sp.CreateChild("p:txBody")
	txBody.CreateChild("a:bodyPr")
	txBody.CreateChild("a:lstStyle")
	para := txBody.CreateChild("a:p")
	para.CreateChild("a:r").CreateChild("a:t").AppendText(text)

	notes.CreateChild("p:clrMapOvr").CreateChild("a:masterClrMapping")
	return notes
}
