package pptxpack

import (
	"archive/zip"
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// helper: create a package and arrange for its staging dir to go away
func newTestPackage(t *testing.T, opts Options) *Package {
	t.Helper()
	p, err := New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

// helper: save to a temp file and re-open
func roundTripFile(t *testing.T, p *Package) *Package {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.pptx")
	if err := p.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	reopened, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	return reopened
}

// helper: encode a solid PNG of the given pixel dimensions
func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}
	return buf.Bytes()
}

func TestAddSlideIdentifiersStrictlyIncreasing(t *testing.T) {
	p := newTestPackage(t, Options{})
	for i := 0; i < 3; i++ {
		if _, err := p.AddSlide(SlideOptions{}); err != nil {
			t.Fatalf("AddSlide %d failed: %v", i, err)
		}
	}
	if got := p.slides[0].id; got != slideIDBaseline+1 {
		t.Errorf("first slide id = %d, want %d", got, slideIDBaseline+1)
	}
	for i := 1; i < len(p.slides); i++ {
		if p.slides[i].id <= p.slides[i-1].id {
			t.Errorf("slide ids not strictly increasing: %d then %d", p.slides[i-1].id, p.slides[i].id)
		}
	}

	// Switching back does not disturb the identifier sequence.
	if err := p.SwitchSlide(1); err != nil {
		t.Fatalf("SwitchSlide failed: %v", err)
	}
	ord, err := p.AddSlide(SlideOptions{})
	if err != nil {
		t.Fatalf("AddSlide failed: %v", err)
	}
	if ord != 4 {
		t.Errorf("ordinal = %d, want 4", ord)
	}
	if p.slides[3].id <= p.slides[2].id {
		t.Errorf("slide id after switch not increasing: %d then %d", p.slides[2].id, p.slides[3].id)
	}
}

func TestReopenContinuesIdentifierSequence(t *testing.T) {
	p := newTestPackage(t, Options{})
	for i := 0; i < 2; i++ {
		if _, err := p.AddSlide(SlideOptions{}); err != nil {
			t.Fatalf("AddSlide failed: %v", err)
		}
	}
	maxID := p.slides[len(p.slides)-1].id
	maxRel := p.lastRelID

	reopened := roundTripFile(t, p)
	if reopened.lastSlideID != maxID {
		t.Errorf("recomputed lastSlideID = %d, want %d", reopened.lastSlideID, maxID)
	}
	if reopened.lastRelID < maxRel {
		t.Errorf("recomputed lastRelID = %d, want at least %d", reopened.lastRelID, maxRel)
	}

	if _, err := reopened.AddSlide(SlideOptions{}); err != nil {
		t.Fatalf("AddSlide after reopen failed: %v", err)
	}
	if got := reopened.slides[2].id; got <= maxID {
		t.Errorf("slide id after reopen = %d, want greater than %d", got, maxID)
	}
}

func TestRelationshipIDsUniqueAcrossPackage(t *testing.T) {
	p := newTestPackage(t, Options{})
	for i := 0; i < 2; i++ {
		if _, err := p.AddSlide(SlideOptions{}); err != nil {
			t.Fatalf("AddSlide failed: %v", err)
		}
		if err := p.AddPicture(makePNG(t, 10, 10), PictureOptions{Scale: ScaleMax}); err != nil {
			t.Fatalf("AddPicture failed: %v", err)
		}
		if err := p.AddNote("note"); err != nil {
			t.Fatalf("AddNote failed: %v", err)
		}
	}
	p.flushSlide()

	seen := make(map[string]string)
	record := func(owner string, rels *Relationships) {
		if rels == nil {
			return
		}
		for _, rel := range rels.List() {
			if prev, dup := seen[rel.ID]; dup {
				t.Errorf("relationship id %s allocated in both %s and %s", rel.ID, prev, owner)
			}
			seen[rel.ID] = owner
		}
	}
	for _, partPath := range p.store.Paths() {
		part, err := p.store.Get(partPath)
		if err != nil {
			t.Fatalf("Get %s failed: %v", partPath, err)
		}
		record(partPath, part.Rels)
	}
	if len(seen) == 0 {
		t.Fatal("no allocated relationship ids found")
	}
}

func TestSwitchSlideFlushDurability(t *testing.T) {
	p := newTestPackage(t, Options{})
	for i := 0; i < 2; i++ {
		if _, err := p.AddSlide(SlideOptions{}); err != nil {
			t.Fatalf("AddSlide failed: %v", err)
		}
	}
	if err := p.SwitchSlide(1); err != nil {
		t.Fatalf("SwitchSlide failed: %v", err)
	}
	if err := p.AddTextbox("durable", Geometry{Width: Inch(2), Height: Inch(1)}, TextboxOptions{}); err != nil {
		t.Fatalf("AddTextbox failed: %v", err)
	}
	if err := p.SwitchSlide(2); err != nil {
		t.Fatalf("SwitchSlide failed: %v", err)
	}
	if err := p.SwitchSlide(1); err != nil {
		t.Fatalf("SwitchSlide back failed: %v", err)
	}
	shapes := p.buffer.doc.FindAll("p:sp")
	if len(shapes) != 1 {
		t.Fatalf("reloaded slide has %d text shapes, want 1", len(shapes))
	}
	txt, err := p.buffer.doc.FindFirst("a:t")
	if err != nil {
		t.Fatalf("reloaded text missing: %v", err)
	}
	if txt.Text != "durable" {
		t.Errorf("reloaded text = %q, want \"durable\"", txt.Text)
	}
}

func TestSwitchSlideEdgeCases(t *testing.T) {
	p := newTestPackage(t, Options{})
	if _, err := p.AddSlide(SlideOptions{}); err != nil {
		t.Fatalf("AddSlide failed: %v", err)
	}
	if err := p.SwitchSlide(1); err != nil {
		t.Errorf("same-ordinal switch should be a no-op, got %v", err)
	}
	if err := p.SwitchSlide(0); !errors.Is(err, ErrSlideNotFound) {
		t.Errorf("SwitchSlide(0) error = %v, want slide-not-found", err)
	}
	if err := p.SwitchSlide(5); !errors.Is(err, ErrSlideNotFound) {
		t.Errorf("SwitchSlide(5) error = %v, want slide-not-found", err)
	}
}

func TestRoundTripSlideCountAndDimensions(t *testing.T) {
	p := newTestPackage(t, Options{Width: 12, Height: 6, Title: "deck"})
	for i := 0; i < 3; i++ {
		if _, err := p.AddSlide(SlideOptions{}); err != nil {
			t.Fatalf("AddSlide failed: %v", err)
		}
	}
	reopened := roundTripFile(t, p)
	if got := reopened.SlideCount(); got != 3 {
		t.Errorf("reopened slide count = %d, want 3", got)
	}
	w, h := reopened.Dimensions()
	if w != Inch(12) || h != Inch(6) {
		t.Errorf("reopened dimensions = %dx%d, want %dx%d", w, h, Inch(12), Inch(6))
	}
	if reopened.title != "deck" {
		t.Errorf("reopened title = %q, want \"deck\"", reopened.title)
	}
	if len(reopened.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", reopened.Warnings())
	}
	if reopened.buffer == nil || reopened.buffer.ordinal != 3 {
		t.Error("last slide should be active after open")
	}
}

func TestAddNoteOverwrite(t *testing.T) {
	p := newTestPackage(t, Options{})
	if _, err := p.AddSlide(SlideOptions{}); err != nil {
		t.Fatalf("AddSlide failed: %v", err)
	}
	if err := p.AddNote("first"); err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	if err := p.AddNote("second"); err != nil {
		t.Fatalf("second AddNote failed: %v", err)
	}

	var notesParts []string
	for _, partPath := range p.store.Paths() {
		if strings.HasPrefix(partPath, "ppt/notesSlides/") {
			notesParts = append(notesParts, partPath)
		}
	}
	if len(notesParts) != 1 {
		t.Fatalf("notes parts = %v, want exactly one", notesParts)
	}
	doc, err := p.store.Doc(notesParts[0])
	if err != nil {
		t.Fatalf("notes doc failed: %v", err)
	}
	txt, err := doc.FindFirst("a:t")
	if err != nil {
		t.Fatalf("notes text missing: %v", err)
	}
	if txt.Text != "second" {
		t.Errorf("notes text = %q, want \"second\"", txt.Text)
	}
}

func TestPictureScaleMaxFixedFillsMatchingAspect(t *testing.T) {
	p := newTestPackage(t, Options{Width: 12, Height: 6})
	if _, err := p.AddSlide(SlideOptions{}); err != nil {
		t.Fatalf("AddSlide failed: %v", err)
	}
	// 2:1 image on a 2:1 canvas fills it exactly, anchored at the origin.
	if err := p.AddPicture(makePNG(t, 200, 100), PictureOptions{Scale: ScaleMaxFixed}); err != nil {
		t.Fatalf("AddPicture failed: %v", err)
	}
	pic, err := p.buffer.doc.FindFirst("p:pic")
	if err != nil {
		t.Fatalf("picture shape missing: %v", err)
	}
	off, err := pic.FindFirst("a:off")
	if err != nil {
		t.Fatalf("offset missing: %v", err)
	}
	if off.Attr("x") != "0" || off.Attr("y") != "0" {
		t.Errorf("offset = (%s,%s), want (0,0)", off.Attr("x"), off.Attr("y"))
	}
	ext, err := pic.FindFirst("a:ext")
	if err != nil {
		t.Fatalf("extent missing: %v", err)
	}
	if ext.Attr("cx") != formatInt(Inch(12)) || ext.Attr("cy") != formatInt(Inch(6)) {
		t.Errorf("extent = (%s,%s), want (%d,%d)", ext.Attr("cx"), ext.Attr("cy"), Inch(12), Inch(6))
	}
}

func TestPictureScaleNoneCentersNativeSize(t *testing.T) {
	p := newTestPackage(t, Options{}) // 10 x 7.5 inches
	if _, err := p.AddSlide(SlideOptions{}); err != nil {
		t.Fatalf("AddSlide failed: %v", err)
	}
	if err := p.AddPicture(makePNG(t, 96, 48), PictureOptions{Scale: ScaleNone}); err != nil {
		t.Fatalf("AddPicture failed: %v", err)
	}
	pic, err := p.buffer.doc.FindFirst("p:pic")
	if err != nil {
		t.Fatalf("picture shape missing: %v", err)
	}
	off, err := pic.FindFirst("a:off")
	if err != nil {
		t.Fatalf("offset missing: %v", err)
	}
	wantX := (Inch(10) - Pixel(96)) / 2
	wantY := (Inch(7.5) - Pixel(48)) / 2
	if off.Attr("x") != formatInt(wantX) || off.Attr("y") != formatInt(wantY) {
		t.Errorf("offset = (%s,%s), want (%d,%d)", off.Attr("x"), off.Attr("y"), wantX, wantY)
	}
	ext, err := pic.FindFirst("a:ext")
	if err != nil {
		t.Fatalf("extent missing: %v", err)
	}
	if ext.Attr("cx") != formatInt(Pixel(96)) || ext.Attr("cy") != formatInt(Pixel(48)) {
		t.Errorf("extent = (%s,%s), want native (%d,%d)", ext.Attr("cx"), ext.Attr("cy"), Pixel(96), Pixel(48))
	}
}

func TestPictureRegistersMediaAndRelationship(t *testing.T) {
	p := newTestPackage(t, Options{})
	if _, err := p.AddSlide(SlideOptions{}); err != nil {
		t.Fatalf("AddSlide failed: %v", err)
	}
	if err := p.AddPicture(makePNG(t, 4, 4), PictureOptions{Scale: ScaleMax}); err != nil {
		t.Fatalf("AddPicture failed: %v", err)
	}
	if !p.store.Has("ppt/media/image1_2.png") {
		t.Errorf("media part missing; store has %v", p.store.Paths())
	}
	if !p.contentTypes.HasDefault("png") {
		t.Error("png default content type not registered")
	}
	if _, ok := p.buffer.rels.FindByType(relTypeImage); !ok {
		t.Error("image relationship missing from slide table")
	}
}

func TestPictureRejectsUndecodableWithoutGeometry(t *testing.T) {
	p := newTestPackage(t, Options{})
	if _, err := p.AddSlide(SlideOptions{}); err != nil {
		t.Fatalf("AddSlide failed: %v", err)
	}
	err := p.AddPicture([]byte("not an image"), PictureOptions{Scale: ScaleMaxFixed})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("error = %v, want a validation error", err)
	}

	// With explicit geometry the payload is accepted as-is.
	if err := p.AddPicture(makePNG(t, 4, 4), PictureOptions{
		Geometry: &Geometry{OffsetX: Inch(1), OffsetY: Inch(1), Width: Inch(2), Height: Inch(2)},
	}); err != nil {
		t.Errorf("explicit-geometry AddPicture failed: %v", err)
	}
}

func TestTextboxParagraphsShareAlignment(t *testing.T) {
	p := newTestPackage(t, Options{})
	if _, err := p.AddSlide(SlideOptions{}); err != nil {
		t.Fatalf("AddSlide failed: %v", err)
	}
	opts := TextboxOptions{
		HorizontalAlign: "center",
		VerticalAlign:   "middle",
		FontSize:        20,
	}
	if err := p.AddTextbox("one\ntwo\nthree", Geometry{Width: Inch(4), Height: Inch(2)}, opts); err != nil {
		t.Fatalf("AddTextbox failed: %v", err)
	}

	paras := p.buffer.doc.FindAll("a:p")
	if len(paras) != 3 {
		t.Fatalf("paragraph count = %d, want 3", len(paras))
	}
	for i, para := range paras {
		pPr, err := para.FindFirst("a:pPr")
		if err != nil {
			t.Fatalf("paragraph %d missing properties: %v", i+1, err)
		}
		if pPr.Attr("algn") != string(HorizontalCenter) {
			t.Errorf("paragraph %d algn = %q, want %q", i+1, pPr.Attr("algn"), HorizontalCenter)
		}
		rPr, err := para.FindFirst("a:rPr")
		if err != nil {
			t.Fatalf("paragraph %d missing run properties: %v", i+1, err)
		}
		if rPr.Attr("sz") != "2000" {
			t.Errorf("paragraph %d sz = %q, want 2000", i+1, rPr.Attr("sz"))
		}
	}
	bodyPr, err := p.buffer.doc.FindFirst("a:bodyPr")
	if err != nil {
		t.Fatalf("bodyPr missing: %v", err)
	}
	if bodyPr.Attr("anchor") != string(AnchorMiddle) {
		t.Errorf("anchor = %q, want %q", bodyPr.Attr("anchor"), AnchorMiddle)
	}
}

func TestInvalidStyleLeavesBufferUnmodified(t *testing.T) {
	p := newTestPackage(t, Options{})
	if _, err := p.AddSlide(SlideOptions{}); err != nil {
		t.Fatalf("AddSlide failed: %v", err)
	}
	tree, err := p.buffer.spTree()
	if err != nil {
		t.Fatalf("spTree failed: %v", err)
	}
	before := len(tree.Children)

	err = p.AddTextbox("x", Geometry{}, TextboxOptions{HorizontalAlign: "diagonal"})
	if !errors.Is(err, ErrInvalidStyleValue) {
		t.Errorf("error = %v, want invalid style value", err)
	}
	if len(tree.Children) != before {
		t.Error("failed insertion mutated the shape tree")
	}
	if p.buffer.lastObjectID != 1 {
		t.Errorf("failed insertion advanced object ids to %d", p.buffer.lastObjectID)
	}
}

func TestStateErrors(t *testing.T) {
	p := newTestPackage(t, Options{})

	if err := p.AddTextbox("x", Geometry{}, TextboxOptions{}); !errors.Is(err, ErrNoActiveSlide) {
		t.Errorf("AddTextbox error = %v, want no-active-slide", err)
	}
	if err := p.AddPicture(makePNG(t, 2, 2), PictureOptions{}); !errors.Is(err, ErrNoActiveSlide) {
		t.Errorf("AddPicture error = %v, want no-active-slide", err)
	}
	if err := p.AddNote("x"); !errors.Is(err, ErrNoActiveSlide) {
		t.Errorf("AddNote error = %v, want no-active-slide", err)
	}
	if err := p.Save(filepath.Join(t.TempDir(), "empty.pptx")); !errors.Is(err, ErrNoSlides) {
		t.Errorf("Save error = %v, want no-slides", err)
	}

	if _, err := p.AddSlide(SlideOptions{}); err != nil {
		t.Fatalf("AddSlide failed: %v", err)
	}
	if err := p.Save(""); !errors.Is(err, ErrNoDestination) {
		t.Errorf("pathless Save error = %v, want no-destination", err)
	}
}

func TestCloseGuards(t *testing.T) {
	p, err := New(Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	staging := p.staging
	if err := p.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, statErr := os.Stat(staging); !os.IsNotExist(statErr) {
		t.Errorf("staging dir %s not removed", staging)
	}
	if err := p.Close(); !errors.Is(err, ErrNoOpenPackage) {
		t.Errorf("second Close error = %v, want no-open-package", err)
	}
	if _, err := p.AddSlide(SlideOptions{}); !errors.Is(err, ErrNoOpenPackage) {
		t.Errorf("AddSlide after Close error = %v, want no-open-package", err)
	}
}

func TestSaveThenContinueEditing(t *testing.T) {
	p := newTestPackage(t, Options{})
	path := filepath.Join(t.TempDir(), "grow.pptx")
	if _, err := p.AddSlide(SlideOptions{}); err != nil {
		t.Fatalf("AddSlide failed: %v", err)
	}
	if err := p.Save(path); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	rev1 := p.Revision()
	if _, err := p.AddSlide(SlideOptions{}); err != nil {
		t.Fatalf("AddSlide after Save failed: %v", err)
	}
	if err := p.Save(""); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if p.Revision() != rev1+1 {
		t.Errorf("revision = %d, want %d", p.Revision(), rev1+1)
	}

	reopened, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer reopened.Close()
	if got := reopened.SlideCount(); got != 2 {
		t.Errorf("reopened slide count = %d, want 2", got)
	}
	if reopened.Revision() != rev1+1 {
		t.Errorf("reopened revision = %d, want %d", reopened.Revision(), rev1+1)
	}
}

func TestValidateCleanPackage(t *testing.T) {
	p := newTestPackage(t, Options{})
	if _, err := p.AddSlide(SlideOptions{}); err != nil {
		t.Fatalf("AddSlide failed: %v", err)
	}
	if err := p.AddPicture(makePNG(t, 8, 8), PictureOptions{Scale: ScaleMax}); err != nil {
		t.Fatalf("AddPicture failed: %v", err)
	}
	if err := p.AddNote("speaker note"); err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}

	reopened := roundTripFile(t, p)
	if err := reopened.Validate(); err != nil {
		t.Errorf("Validate after reopen failed: %v", err)
	}
}

func TestIntegrityWarningOnDeclaredCountMismatch(t *testing.T) {
	p := newTestPackage(t, Options{})
	for i := 0; i < 4; i++ {
		if _, err := p.AddSlide(SlideOptions{}); err != nil {
			t.Fatalf("AddSlide failed: %v", err)
		}
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "mismatch.pptx")
	if err := p.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	tampered := filepath.Join(dir, "tampered.pptx")
	rewriteZipEntry(t, path, tampered, pathAppProps, func(data []byte) []byte {
		return bytes.Replace(data, []byte("<Slides>4</Slides>"), []byte("<Slides>5</Slides>"), 1)
	})

	reopened, err := Open(tampered, Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer reopened.Close()

	warnings := reopened.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
	if warnings[0].Declared != 5 || warnings[0].Observed != 4 {
		t.Errorf("warning = %+v, want declared 5 observed 4", warnings[0])
	}
	// The linked-parts count is what the engine trusts going forward.
	if got := reopened.SlideCount(); got != 4 {
		t.Errorf("slide count = %d, want 4", got)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.pptx"), Options{})
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Errorf("error = %v, want an IO error", err)
	}
}

// rewriteZipEntry copies src to dst, transforming the named entry.
func rewriteZipEntry(t *testing.T, src, dst, name string, transform func([]byte) []byte) {
	t.Helper()
	zr, err := zip.OpenReader(src)
	if err != nil {
		t.Fatalf("open zip failed: %v", err)
	}
	defer zr.Close()

	out, err := os.Create(dst)
	if err != nil {
		t.Fatalf("create zip failed: %v", err)
	}
	defer out.Close()
	zw := zip.NewWriter(out)
	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			t.Fatalf("open entry %s failed: %v", zf.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read entry %s failed: %v", zf.Name, err)
		}
		if zf.Name == name {
			data = transform(data)
		}
		w, err := zw.Create(zf.Name)
		if err != nil {
			t.Fatalf("write entry %s failed: %v", zf.Name, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("write entry %s failed: %v", zf.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip failed: %v", err)
	}
}
