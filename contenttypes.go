package pptxpack

import (
	"fmt"
	"strings"
)

// MIME types used by the container format.
const (
	ctPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctSlideMaster  = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctSlideLayout  = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctPresProps    = "application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"
	ctViewProps    = "application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"
	ctTableStyles  = "application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"
	ctNotesSlide   = "application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"
	ctNotesMaster  = "application/vnd.openxmlformats-officedocument.presentationml.notesMaster+xml"
	ctCoreProps    = "application/vnd.openxmlformats-package.core-properties+xml"
	ctExtProps     = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	ctRels         = "application/vnd.openxmlformats-package.relationships+xml"
)

// ContentTypes tracks the package-wide content-type registry: default
// MIME mappings per file extension plus explicit per-part overrides.
// Every part path in the store must resolve through exactly one entry
// before the package is finalized.
type ContentTypes struct {
	defaults  map[string]string // extension (no dot, lowercase) -> MIME
	overrides map[string]string // part name ("/ppt/...") -> MIME
	extOrder  []string          // registration order for stable output
	partOrder []string
}

// NewContentTypes creates a registry pre-loaded with the two defaults
// every package carries (rels, xml).
func NewContentTypes() *ContentTypes {
	ct := &ContentTypes{
		defaults:  make(map[string]string),
		overrides: make(map[string]string),
	}
	_ = ct.RegisterDefault("rels", ctRels)
	_ = ct.RegisterDefault("xml", "application/xml")
	return ct
}

// RegisterDefault registers an extension -> MIME default. Registering
// the same extension with the same MIME type again is a no-op;
// re-registering with a different MIME type is an error.
func (ct *ContentTypes) RegisterDefault(extension, mimeType string) error {
	ext := strings.ToLower(strings.TrimPrefix(extension, "."))
	if existing, ok := ct.defaults[ext]; ok {
		if existing == mimeType {
			return nil
		}
		return fmt.Errorf("%w: extension %q already registered as %s", ErrConflictingType, ext, existing)
	}
	ct.defaults[ext] = mimeType
	ct.extOrder = append(ct.extOrder, ext)
	return nil
}

// RegisterOverride registers an exact part path -> MIME override. The
// part path is normalized to the leading-slash form the registry file
// uses. Re-registering an override replaces it.
func (ct *ContentTypes) RegisterOverride(partPath, mimeType string) {
	name := partName(partPath)
	if _, ok := ct.overrides[name]; !ok {
		ct.partOrder = append(ct.partOrder, name)
	}
	ct.overrides[name] = mimeType
}

// Resolve returns the MIME type for a part path via its override or,
// failing that, its extension default.
func (ct *ContentTypes) Resolve(partPath string) (string, error) {
	name := partName(partPath)
	if mime, ok := ct.overrides[name]; ok {
		return mime, nil
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		if mime, ok := ct.defaults[strings.ToLower(name[i+1:])]; ok {
			return mime, nil
		}
	}
	return "", notFound(ErrUnresolvedPart, name)
}

// HasDefault reports whether the extension already has a default.
func (ct *ContentTypes) HasDefault(extension string) bool {
	_, ok := ct.defaults[strings.ToLower(strings.TrimPrefix(extension, "."))]
	return ok
}

// marshal emits the [Content_Types].xml document.
func (ct *ContentTypes) marshal() []byte {
	root := NewNode("Types")
	root.SetAttributes(Attr{Name: "xmlns", Value: nsContentTypes})
	for _, ext := range ct.extOrder {
		root.CreateChild("Default").SetAttributes(
			Attr{Name: "Extension", Value: ext},
			Attr{Name: "ContentType", Value: ct.defaults[ext]},
		)
	}
	for _, name := range ct.partOrder {
		root.CreateChild("Override").SetAttributes(
			Attr{Name: "PartName", Value: name},
			Attr{Name: "ContentType", Value: ct.overrides[name]},
		)
	}
	return root.Marshal()
}

// parseContentTypes rebuilds a registry from an extracted
// [Content_Types].xml document.
func parseContentTypes(data []byte) (*ContentTypes, error) {
	root, err := ParseNode(data)
	if err != nil {
		return nil, fmt.Errorf("content types: %w", err)
	}
	ct := &ContentTypes{
		defaults:  make(map[string]string),
		overrides: make(map[string]string),
	}
	for _, d := range root.FindAll("Default") {
		if err := ct.RegisterDefault(d.Attr("Extension"), d.Attr("ContentType")); err != nil {
			return nil, err
		}
	}
	for _, o := range root.FindAll("Override") {
		ct.RegisterOverride(o.Attr("PartName"), o.Attr("ContentType"))
	}
	return ct, nil
}

// partName normalizes a store path ("ppt/slides/slide1.xml") to the
// registry's part-name form ("/ppt/slides/slide1.xml").
func partName(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}
