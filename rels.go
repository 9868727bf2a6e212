package pptxpack

import (
	"fmt"
	"strconv"
	"strings"
)

// XML namespace constants
const (
	nsRelationships  = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsOfficeDocRels  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsDCTerms        = "http://purl.org/dc/terms/"
	nsDC             = "http://purl.org/dc/elements/1.1/"
	nsCoreProperties = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsExtProperties  = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsVTypes         = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
	nsXSI            = "http://www.w3.org/2001/XMLSchema-instance"

	relTypeSlide       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relTypeSlideLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeTheme       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	relTypePresProps   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/presProps"
	relTypeViewProps   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/viewProps"
	relTypeTableStyles = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/tableStyles"
	relTypeOfficeDoc   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeCoreProps   = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeExtProps    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relTypeImage       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeNotesSlide  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
	relTypeNotesMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesMaster"
)

// relIDPrefix is the container's relationship id convention: a fixed
// prefix followed by a decimal integer.
const relIDPrefix = "rId"

// Relationship is one (id, type-URI, target) triple in a part's table.
type Relationship struct {
	ID     string
	Type   string
	Target string
}

// Relationships is the per-part relationship table. Ids are handed out
// by the owning Package's single allocator, so every id is unique
// across the whole package, not just within one table. There is no
// removal operation; ids are never reused. The write-once fixture
// tables in templates.go sit outside this sequence: they carry fixed
// ids and are never grown, and Open resumes the allocator past the
// maximum id observed in any table, fixture or allocated.
type Relationships struct {
	rels []Relationship
}

// NewRelationships creates an empty relationship table.
func NewRelationships() *Relationships {
	return &Relationships{}
}

// add records a relationship with an already-allocated id.
func (r *Relationships) add(id, relType, target string) string {
	r.rels = append(r.rels, Relationship{ID: id, Type: relType, Target: target})
	return id
}

// List returns the table's relationships in allocation order.
func (r *Relationships) List() []Relationship {
	return r.rels
}

// Len returns the number of relationships in the table.
func (r *Relationships) Len() int { return len(r.rels) }

// ByID returns the relationship with the given id.
func (r *Relationships) ByID(id string) (Relationship, error) {
	for _, rel := range r.rels {
		if rel.ID == id {
			return rel, nil
		}
	}
	return Relationship{}, notFound(ErrPartNotFound, "relationship "+id)
}

// FindByType returns the first relationship with the given type URI.
func (r *Relationships) FindByType(relType string) (Relationship, bool) {
	for _, rel := range r.rels {
		if rel.Type == relType {
			return rel, true
		}
	}
	return Relationship{}, false
}

// maxIDSuffix returns the largest numeric suffix of any id in the
// table, used when recomputing the package allocator on open.
func (r *Relationships) maxIDSuffix() int {
	m := 0
	for _, rel := range r.rels {
		if n, ok := relIDSuffix(rel.ID); ok && n > m {
			m = n
		}
	}
	return m
}

// relIDSuffix extracts the decimal part of an "rId<N>" identifier.
func relIDSuffix(id string) (int, bool) {
	if !strings.HasPrefix(id, relIDPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(id[len(relIDPrefix):])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// marshal emits the table as a .rels document.
func (r *Relationships) marshal() []byte {
	root := NewNode("Relationships")
	root.SetAttributes(Attr{Name: "xmlns", Value: nsRelationships})
	for _, rel := range r.rels {
		root.CreateChild("Relationship").SetAttributes(
			Attr{Name: "Id", Value: rel.ID},
			Attr{Name: "Type", Value: rel.Type},
			Attr{Name: "Target", Value: rel.Target},
		)
	}
	return root.Marshal()
}

// parseRelationships rebuilds a table from an extracted .rels document.
func parseRelationships(data []byte) (*Relationships, error) {
	root, err := ParseNode(data)
	if err != nil {
		return nil, fmt.Errorf("relationships: %w", err)
	}
	table := NewRelationships()
	for _, rel := range root.FindAll("Relationship") {
		table.add(rel.Attr("Id"), rel.Attr("Type"), rel.Attr("Target"))
	}
	return table, nil
}

// relsPathFor returns the canonical _rels sibling path for a part,
// e.g. "ppt/slides/slide1.xml" -> "ppt/slides/_rels/slide1.xml.rels".
func relsPathFor(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return "_rels/" + path + ".rels"
	}
	return path[:i] + "/_rels/" + path[i+1:] + ".rels"
}
