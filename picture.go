package pptxpack

import (
	"bytes"
	"fmt"
	"image"
	"math"
	gopath "path"

	// Decoders registered for image.DecodeConfig so scale policies can
	// read intrinsic pixel dimensions. The payload bytes themselves are
	// copied into the package untouched.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// image formats recognized by DecodeConfig mapped to their MIME types.
var imageMIMETypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
}

// AddPicture inserts an image shape on the active slide. The image
// bytes are an opaque payload copied into a uniquely named media part
// keyed by (slide ordinal, shape object id); its extension is
// registered with the content-type registry before the part is added.
// Placement comes from an explicit geometry or, absent one, from the
// scale policy applied to the image's intrinsic pixel dimensions.
func (p *Package) AddPicture(data []byte, opts PictureOptions) error {
	b, err := p.activeBuffer("add picture")
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return &ValidationError{Field: "image", Err: ErrInvalidStyleValue}
	}

	cfg, format, decErr := image.DecodeConfig(bytes.NewReader(data))
	if decErr != nil && opts.Geometry == nil {
		return &ValidationError{Field: "image", Err: fmt.Errorf("cannot size undecodable image: %w", decErr)}
	}
	ext := "png"
	mime := "image/png"
	if decErr == nil {
		ext = format
		mime = imageMIMETypes[format]
	}
	if err := p.contentTypes.RegisterDefault(ext, mime); err != nil {
		return err
	}

	geom := opts.Geometry
	if geom == nil {
		g := p.scaleGeometry(opts.Scale, cfg.Width, cfg.Height)
		geom = &g
	}

	objID := b.nextObjectID()
	mediaPath := fmt.Sprintf("ppt/media/image%d_%d.%s", b.ordinal, objID, ext)
	p.store.PutRaw(mediaPath, data)
	relID := b.rels.add(p.nextRelID(), relTypeImage, "../media/"+gopath.Base(mediaPath))

	name := opts.Name
	if name == "" {
		name = fmt.Sprintf("Picture %d", objID)
	}

	spTree, err := b.spTree()
	if err != nil {
		return err
	}
	pic := spTree.CreateChild("p:pic")
	nv := pic.CreateChild("p:nvPicPr")
	nv.CreateChild("p:cNvPr").SetAttributes(
		Attr{Name: "id", Value: formatInt(int64(objID))},
		Attr{Name: "name", Value: name},
	)
	nv.CreateChild("p:cNvPicPr").CreateChild("a:picLocks").SetAttributes(
		Attr{Name: "noChangeAspect", Value: "1"},
	)
	nv.CreateChild("p:nvPr")
	blipFill := pic.CreateChild("p:blipFill")
	blipFill.CreateChild("a:blip").SetAttributes(Attr{Name: "r:embed", Value: relID})
	blipFill.CreateChild("a:stretch").CreateChild("a:fillRect")
	spPr := pic.CreateChild("p:spPr")
	writeXfrm(spPr, geom)
	spPr.CreateChild("a:prstGeom").SetAttributes(Attr{Name: "prst", Value: "rect"}).CreateChild("a:avLst")
	if opts.Border != nil {
		writeBorder(spPr, opts.Border)
	}
	p.logger.Debug("picture added", "ordinal", b.ordinal, "object_id", objID, "media", mediaPath)
	return nil
}

// scaleGeometry computes picture placement from a scale policy and the
// image's intrinsic pixel dimensions.
func (p *Package) scaleGeometry(mode ScaleMode, pxW, pxH int) Geometry {
	switch mode {
	case ScaleMax:
		return Geometry{Width: p.widthEMU, Height: p.heightEMU}
	case ScaleMaxFixed:
		w, h := float64(pxW), float64(pxH)
		if w <= 0 || h <= 0 {
			return Geometry{Width: p.widthEMU, Height: p.heightEMU}
		}
		scale := math.Min(float64(p.widthEMU)/w, float64(p.heightEMU)/h)
		sw := int64(math.Round(w * scale))
		sh := int64(math.Round(h * scale))
		return Geometry{
			OffsetX: (p.widthEMU - sw) / 2,
			OffsetY: (p.heightEMU - sh) / 2,
			Width:   sw,
			Height:  sh,
		}
	default: // ScaleNone
		sw := Pixel(pxW)
		sh := Pixel(pxH)
		return Geometry{
			OffsetX: (p.widthEMU - sw) / 2,
			OffsetY: (p.heightEMU - sh) / 2,
			Width:   sw,
			Height:  sh,
		}
	}
}

// writeXfrm appends the transform element for a geometry, including
// rotation when present.
func writeXfrm(spPr *Node, g *Geometry) {
	xfrm := spPr.CreateChild("a:xfrm")
	if g.Rotation != 0 {
		xfrm.SetAttributes(Attr{Name: "rot", Value: formatInt(Degree(g.Rotation))})
	}
	xfrm.CreateChild("a:off").SetAttributes(
		Attr{Name: "x", Value: formatInt(g.OffsetX)},
		Attr{Name: "y", Value: formatInt(g.OffsetY)},
	)
	xfrm.CreateChild("a:ext").SetAttributes(
		Attr{Name: "cx", Value: formatInt(g.Width)},
		Attr{Name: "cy", Value: formatInt(g.Height)},
	)
}

// writeBorder appends a solid outline to a shape-properties element.
func writeBorder(spPr *Node, b *Border) {
	ln := spPr.CreateChild("a:ln")
	if b.Width > 0 {
		ln.SetAttributes(Attr{Name: "w", Value: formatInt(Point(b.Width))})
	}
	color := b.Color
	if color.IsZero() {
		color = ColorBlack
	}
	ln.CreateChild("a:solidFill").CreateChild("a:srgbClr").SetAttributes(
		Attr{Name: "val", Value: color.RGB()},
	)
}
