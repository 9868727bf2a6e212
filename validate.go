package pptxpack

import (
	"fmt"
	"strings"
)

// Validate checks the package for structural issues and returns an
// error describing all problems found, or nil if the package is
// consistent: every relationship target must resolve to a part in the
// store, and every part path must resolve to a content type.
func (p *Package) Validate() error {
	var errs []string

	if p.widthEMU <= 0 {
		errs = append(errs, "canvas width must be positive")
	}
	if p.heightEMU <= 0 {
		errs = append(errs, "canvas height must be positive")
	}
	if len(p.slides) == 0 {
		errs = append(errs, "package must have at least one slide")
	}

	for _, rec := range p.slides {
		if !p.store.Has(rec.path) && (p.buffer == nil || p.buffer.path != rec.path) {
			errs = append(errs, fmt.Sprintf("slide id %d: part %s missing from store", rec.id, rec.path))
		}
	}

	for _, partPath := range p.store.Paths() {
		part, err := p.store.Get(partPath)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		if _, err := p.contentTypes.Resolve(partPath); err != nil {
			errs = append(errs, fmt.Sprintf("part %s: %v", partPath, err))
		}
		if part.Rels == nil {
			continue
		}
		for _, rel := range part.Rels.List() {
			target := resolveTarget(partPath, rel.Target)
			if !p.store.Has(target) && (p.buffer == nil || p.buffer.path != target) {
				errs = append(errs, fmt.Sprintf("part %s: relationship %s targets missing part %s", partPath, rel.ID, target))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(errs, "\n  "))
}
