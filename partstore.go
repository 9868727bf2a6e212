package pptxpack

import "fmt"

// Part is one document within the package, addressed by a canonical
// slash-separated path relative to the container root. XML parts carry
// a document tree; binary parts (media payloads) carry raw bytes. A
// part that emits references to other parts additionally owns a
// relationship table, serialized as its _rels sibling.
type Part struct {
	Path string
	Doc  *Node  // nil for binary parts
	Raw  []byte // nil for XML parts that are held as trees
	Rels *Relationships
}

// bytes returns the part's serialized content.
func (p *Part) bytes() []byte {
	if p.Doc != nil {
		return p.Doc.Marshal()
	}
	return p.Raw
}

// PartStore owns every part that constitutes the package. Parts are
// mutated in place through their document trees; the store itself only
// tracks ownership by path.
type PartStore struct {
	parts map[string]*Part
}

// NewPartStore creates an empty part store.
func NewPartStore() *PartStore {
	return &PartStore{parts: make(map[string]*Part)}
}

// Put inserts or replaces a part.
func (s *PartStore) Put(p *Part) {
	s.parts[p.Path] = p
}

// PutDoc inserts an XML part built from a tree.
func (s *PartStore) PutDoc(path string, doc *Node) *Part {
	p := &Part{Path: path, Doc: doc}
	s.parts[path] = p
	return p
}

// PutRaw inserts a binary part.
func (s *PartStore) PutRaw(path string, data []byte) *Part {
	p := &Part{Path: path, Raw: data}
	s.parts[path] = p
	return p
}

// Get returns the part at path.
func (s *PartStore) Get(path string) (*Part, error) {
	p, ok := s.parts[path]
	if !ok {
		return nil, notFound(ErrPartNotFound, path)
	}
	return p, nil
}

// Has reports whether a part exists at path.
func (s *PartStore) Has(path string) bool {
	_, ok := s.parts[path]
	return ok
}

// Doc returns the document tree of the part at path, parsing raw bytes
// on first access for parts loaded from an extracted container.
func (s *PartStore) Doc(path string) (*Node, error) {
	p, err := s.Get(path)
	if err != nil {
		return nil, err
	}
	if p.Doc == nil {
		if p.Raw == nil {
			return nil, fmt.Errorf("part %s has no content", path)
		}
		doc, err := ParseNode(p.Raw)
		if err != nil {
			return nil, fmt.Errorf("part %s: %w", path, err)
		}
		p.Doc = doc
		p.Raw = nil
	}
	return p.Doc, nil
}

// Len returns the number of parts in the store.
func (s *PartStore) Len() int { return len(s.parts) }

// Paths returns every part path in sorted order.
func (s *PartStore) Paths() []string {
	return sortedKeys(s.parts)
}
