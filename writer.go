package pptxpack

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Save writes the package to its destination. The active slide is
// flushed, the revision counter and modification timestamp advance,
// and the metadata parts are rewritten before the container is packed.
// An empty path falls back to the path supplied at creation or open.
// The destination file is replaced atomically; on any failure a
// previously saved file is left untouched.
func (p *Package) Save(path string) error {
	if err := p.ensureOpen("save"); err != nil {
		return err
	}
	if len(p.slides) == 0 {
		return stateError("save", ErrNoSlides)
	}
	dest := path
	if dest == "" {
		dest = p.path
	}
	if dest == "" {
		return stateError("save", ErrNoDestination)
	}
	if p.buffer != nil {
		p.flushSlide()
	}
	p.revision++
	p.modified = time.Now()
	p.refreshDocProps()
	if err := p.write(dest); err != nil {
		return err
	}
	p.path = dest
	p.logger.Info("package saved", "path", dest, "slides", len(p.slides), "revision", p.revision)
	return nil
}

// refreshDocProps rewrites the core and extended property parts from
// the package's current metadata and slide count.
func (p *Package) refreshDocProps() {
	w3c := func(t time.Time) string { return t.UTC().Format("2006-01-02T15:04:05Z") }
	core := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="%s" xmlns:dc="%s" xmlns:dcterms="%s" xmlns:xsi="%s">
  <dc:creator>%s</dc:creator>
  <cp:lastModifiedBy>%s</cp:lastModifiedBy>
  <dc:title>%s</dc:title>
  <dc:description>%s</dc:description>
  <dc:subject>%s</dc:subject>
  <cp:revision>%d</cp:revision>
  <dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>
  <dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>
</cp:coreProperties>`,
		nsCoreProperties, nsDC, nsDCTerms, nsXSI,
		xmlEscape(p.author),
		xmlEscape(p.author),
		xmlEscape(p.title),
		xmlEscape(p.description),
		xmlEscape(p.subject),
		p.revision,
		w3c(p.created),
		w3c(p.modified),
	)
	p.store.PutRaw(pathCoreProps, []byte(core))

	app := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Properties xmlns="%s" xmlns:vt="%s">
  <Application>pptxpack v%s</Application>
  <Company>%s</Company>
  <AppVersion>%d.%04d</AppVersion>
  <Slides>%d</Slides>
</Properties>`,
		nsExtProperties, nsVTypes,
		Version,
		xmlEscape(p.company),
		VersionMajor, VersionMinor,
		len(p.slides),
	)
	p.store.PutRaw(pathAppProps, []byte(app))
}

// write serializes every part under a staging build directory and
// packs it into the destination container.
func (p *Package) write(dest string) error {
	build := filepath.Join(p.staging, "build")
	if err := os.RemoveAll(build); err != nil {
		return ioError("clear staging build", err)
	}
	if err := p.stageParts(build); err != nil {
		return err
	}
	return p.archive(build, dest)
}

// stageParts writes the content-type registry, every part, and every
// non-empty relationship table to its canonical path under build.
func (p *Package) stageParts(build string) error {
	writeFile := func(rel string, data []byte) error {
		full := filepath.Join(build, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0750); err != nil {
			return ioError("stage "+rel, err)
		}
		if err := os.WriteFile(full, data, 0640); err != nil {
			return ioError("stage "+rel, err)
		}
		return nil
	}
	if err := writeFile(pathContentTypes, p.contentTypes.marshal()); err != nil {
		return err
	}
	for _, partPath := range p.store.Paths() {
		part, err := p.store.Get(partPath)
		if err != nil {
			return err
		}
		if err := writeFile(partPath, part.bytes()); err != nil {
			return err
		}
		if part.Rels != nil && part.Rels.Len() > 0 {
			if err := writeFile(relsPathFor(partPath), part.Rels.marshal()); err != nil {
				return err
			}
		}
	}
	return nil
}

// archive zips the build directory into a temporary file beside the
// destination and renames it into place, so a failed save never
// clobbers an existing container.
func (p *Package) archive(build, dest string) error {
	destDir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(destDir, ".pptxpack-*.zip")
	if err != nil {
		return ioError("create archive", err)
	}
	tmpName := tmp.Name()
	discard := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	zw := zip.NewWriter(tmp)
	walkErr := filepath.WalkDir(build, func(fp string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(build, fp)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		f, err := os.Open(fp)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})
	if walkErr != nil {
		zw.Close()
		discard()
		return ioError("pack archive", walkErr)
	}
	if err := zw.Close(); err != nil {
		discard()
		return ioError("pack archive", err)
	}
	if err := tmp.Close(); err != nil {
		discard()
		return ioError("pack archive", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return ioError("replace destination", err)
	}
	return nil
}
