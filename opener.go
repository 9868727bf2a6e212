package pptxpack

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	gopath "path"
	"strings"
	"time"
)

// maxZipEntrySize is the maximum allowed size for a single file
// extracted from a container. This prevents zip bomb attacks. 50 MB is
// generous for any legitimate part.
const maxZipEntrySize = 50 << 20 // 50 MB

// maxZipTotalSize is the cumulative limit for all extracted content
// from a single container.
const maxZipTotalSize = 200 << 20 // 200 MB

// maxZipEntries is the maximum number of files allowed in a container.
const maxZipEntries = 10000

// Open loads an existing package from a container file. Slide ordinals
// and identifiers are rebuilt from the presentation part's slide list
// and relationship table, the id allocators resume past the largest
// observed values, and the last slide becomes the active one. A
// mismatch between the declared slide count and the linked slide parts
// is recorded as an integrity warning, not an error; the linked count
// is trusted from then on.
func Open(path string, opts Options) (*Package, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ioError("open package", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, ioError("open package", err)
	}
	if info.Size() > maxZipTotalSize {
		return nil, ioError("open package", fmt.Errorf("file size %d exceeds maximum allowed (%d bytes)", info.Size(), int64(maxZipTotalSize)))
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return nil, ioError("open package", err)
	}
	if len(zr.File) > maxZipEntries {
		return nil, ioError("open package", fmt.Errorf("archive contains too many entries (%d > %d)", len(zr.File), maxZipEntries))
	}

	staging, err := newStagingDir()
	if err != nil {
		return nil, err
	}
	p := &Package{
		path:         path,
		staging:      staging,
		logger:       opts.Logger,
		store:        NewPartStore(),
		contentTypes: NewContentTypes(),
		lastSlideID:  slideIDBaseline,
		created:      time.Now(),
		modified:     time.Now(),
	}

	if err := p.loadArchive(zr); err != nil {
		p.Close()
		return nil, err
	}
	if err := p.rebuildState(); err != nil {
		p.Close()
		return nil, err
	}
	p.readMetadata()
	p.applyMetadataOverrides(opts)

	if len(p.slides) > 0 {
		if err := p.loadSlide(len(p.slides)); err != nil {
			p.Close()
			return nil, err
		}
	}
	p.logger.Debug("package opened", "path", path, "slides", len(p.slides),
		"last_slide_id", p.lastSlideID, "last_rel_id", p.lastRelID)
	return p, nil
}

// loadArchive reads every container entry into the part store,
// attaching parsed relationship tables to the parts that own them.
func (p *Package) loadArchive(zr *zip.Reader) error {
	var relsFiles []*Part
	var total int64
	for _, zf := range zr.File {
		name := zf.Name
		if strings.HasSuffix(name, "/") {
			continue
		}
		if strings.Contains(name, "..") || strings.HasPrefix(name, "/") {
			return ioError("extract", fmt.Errorf("unsafe entry path %q", name))
		}
		data, err := readZipEntry(zf)
		if err != nil {
			return err
		}
		total += int64(len(data))
		if total > maxZipTotalSize {
			return ioError("extract", fmt.Errorf("extracted content exceeds maximum allowed (%d bytes)", int64(maxZipTotalSize)))
		}
		if name == pathContentTypes {
			ct, err := parseContentTypes(data)
			if err != nil {
				return err
			}
			p.contentTypes = ct
			continue
		}
		part := &Part{Path: name, Raw: data}
		if _, ok := relsOwner(name); ok || name == pathRootRels {
			relsFiles = append(relsFiles, part)
			continue
		}
		p.store.Put(part)
	}
	for _, rf := range relsFiles {
		owner, ok := relsOwner(rf.Path)
		if !ok {
			p.store.Put(rf) // root table stays a raw fixture
			continue
		}
		ownerPart, err := p.store.Get(owner)
		if err != nil {
			p.store.Put(rf) // orphan table, carried through unchanged
			continue
		}
		table, err := parseRelationships(rf.Raw)
		if err != nil {
			return fmt.Errorf("%s: %w", rf.Path, err)
		}
		ownerPart.Rels = table
	}
	return nil
}

// readZipEntry extracts one entry under the per-entry size guard.
func readZipEntry(zf *zip.File) ([]byte, error) {
	if zf.UncompressedSize64 > maxZipEntrySize {
		return nil, ioError("extract", fmt.Errorf("entry %s exceeds maximum allowed size (%d bytes)", zf.Name, int64(maxZipEntrySize)))
	}
	rc, err := zf.Open()
	if err != nil {
		return nil, ioError("extract "+zf.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, int64(maxZipEntrySize)+1))
	if err != nil {
		return nil, ioError("extract "+zf.Name, err)
	}
	if int64(len(data)) > int64(maxZipEntrySize) {
		return nil, ioError("extract", fmt.Errorf("entry %s actual size exceeds maximum allowed size", zf.Name))
	}
	return data, nil
}

// rebuildState reconstructs the slide table, canvas dimensions, and id
// allocators from the presentation part.
func (p *Package) rebuildState() error {
	presPart, err := p.store.Get(pathPresentation)
	if err != nil {
		return err
	}
	doc, err := p.store.Doc(pathPresentation)
	if err != nil {
		return err
	}
	if presPart.Rels == nil {
		presPart.Rels = NewRelationships()
	}

	if sz, err := doc.FindFirst("p:sldSz"); err == nil {
		p.widthEMU = int64(parseIntAttr(sz.Attr("cx")))
		p.heightEMU = int64(parseIntAttr(sz.Attr("cy")))
	}

	if lst, err := doc.FindFirst("p:sldIdLst"); err == nil {
		for _, sldID := range lst.FindAll("p:sldId") {
			id := parseIntAttr(sldID.Attr("id"))
			rel, relErr := presPart.Rels.ByID(sldID.Attr("r:id"))
			if relErr != nil {
				return fmt.Errorf("slide id %d: %w", id, relErr)
			}
			slidePath := resolveTarget(pathPresentation, rel.Target)
			if !p.store.Has(slidePath) {
				return notFound(ErrSlideNotFound, slidePath)
			}
			p.slides = append(p.slides, &slideRecord{id: id, path: slidePath})
			if id > p.lastSlideID {
				p.lastSlideID = id
			}
			if n := slideFileNum(slidePath); n > p.lastFileNum {
				p.lastFileNum = n
			}
		}
	}

	// The relationship-id allocator resumes past every id observed in
	// any table, attached or raw, so new ids never collide.
	for _, partPath := range p.store.Paths() {
		part, err := p.store.Get(partPath)
		if err != nil {
			return err
		}
		if part.Rels != nil {
			if m := part.Rels.maxIDSuffix(); m > p.lastRelID {
				p.lastRelID = m
			}
		}
		if strings.HasSuffix(partPath, ".rels") && part.Raw != nil {
			table, err := parseRelationships(part.Raw)
			if err != nil {
				continue
			}
			if m := table.maxIDSuffix(); m > p.lastRelID {
				p.lastRelID = m
			}
		}
	}
	return nil
}

// slideFileNum extracts N from a "ppt/slides/slideN.xml" path, or 0.
func slideFileNum(slidePath string) int {
	base := gopath.Base(slidePath)
	base = strings.TrimSuffix(base, ".xml")
	base = strings.TrimPrefix(base, "slide")
	return parseIntAttr(base)
}

// readMetadata restores document metadata from the property parts and
// checks the declared slide count against the linked parts.
func (p *Package) readMetadata() {
	if core, err := p.store.Doc(pathCoreProps); err == nil {
		p.title = textOf(core, "dc:title")
		p.author = textOf(core, "dc:creator")
		p.subject = textOf(core, "dc:subject")
		p.description = textOf(core, "dc:description")
		p.revision = parseIntAttr(textOf(core, "cp:revision"))
		if t, err := time.Parse(time.RFC3339, textOf(core, "dcterms:created")); err == nil {
			p.created = t
		}
		if t, err := time.Parse(time.RFC3339, textOf(core, "dcterms:modified")); err == nil {
			p.modified = t
		}
	}
	if app, err := p.store.Doc(pathAppProps); err == nil {
		p.company = textOf(app, "Company")
		if declared := textOf(app, "Slides"); declared != "" {
			if n := parseIntAttr(declared); n != len(p.slides) {
				w := IntegrityWarning{
					Msg:      "declared slide count disagrees with linked slide parts",
					Declared: n,
					Observed: len(p.slides),
				}
				p.warnings = append(p.warnings, w)
				p.logger.Warn("integrity warning", "detail", w.String())
			}
		}
	}
}

// applyMetadataOverrides lets explicit open options win over values
// read from the file.
func (p *Package) applyMetadataOverrides(opts Options) {
	if opts.Title != "" {
		p.title = opts.Title
	}
	if opts.Author != "" {
		p.author = opts.Author
	}
	if opts.Subject != "" {
		p.subject = opts.Subject
	}
	if opts.Description != "" {
		p.description = opts.Description
	}
	if opts.Company != "" {
		p.company = opts.Company
	}
}

// relsOwner maps a relationship-table path back to the part that owns
// it; the root table ("_rels/.rels") has no owning part.
func relsOwner(relsPath string) (string, bool) {
	dir, file := gopath.Split(relsPath)
	if !strings.HasSuffix(dir, "_rels/") || !strings.HasSuffix(file, ".rels") {
		return "", false
	}
	owner := strings.TrimSuffix(dir, "_rels/") + strings.TrimSuffix(file, ".rels")
	if owner == "" {
		return "", false
	}
	return owner, true
}

// textOf returns the text of the first matching element, or "".
func textOf(doc *Node, tag string) string {
	n, err := doc.FindFirst(tag)
	if err != nil {
		return ""
	}
	return n.Text
}
