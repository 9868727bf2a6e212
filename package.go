// Package pptxpack builds presentation-document packages in the Office
// Open XML (OOXML) format: a ZIP container holding a tree of
// interrelated XML parts (presentation, slides, relationships,
// content-type registry, themes, masters).
//
// The engine keeps exactly one slide editable in memory at a time (the
// slide buffer); moving between slides flushes the current slide to
// the part store. Supplied images are treated as opaque byte payloads.
// Multiple Package instances may coexist in one process; each owns a
// private staging directory released by Close.
package pptxpack

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// slideIDBaseline is the last identifier value reserved by the format;
// slide identifiers start above it.
const slideIDBaseline = 255

// Options configures a new or opened package. The zero value selects a
// 10 x 7.5 inch canvas, generic metadata, and the default logger.
type Options struct {
	// Path is the destination file. It may be left empty at creation
	// and supplied later to Save.
	Path string

	Title       string
	Author      string
	Subject     string
	Description string
	Company     string

	// Width and Height are the slide dimensions in inches.
	Width  float64
	Height float64

	Logger *slog.Logger
}

func (o *Options) defaults() {
	if o.Width <= 0 {
		o.Width = 10
	}
	if o.Height <= 0 {
		o.Height = 7.5
	}
	if o.Author == "" {
		o.Author = "pptxpack"
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// slideRecord tracks one slide's place in the package: its persistent
// identifier, its part path, and (implicitly, by slice position) its
// 1-based ordinal. File numbering, identifier, and ordinal are three
// separate sequences and need not agree.
type slideRecord struct {
	id   int
	path string
}

// Package is the root aggregate: it owns every part exclusively, the
// content-type registry, the single relationship-id allocator, and the
// slide buffer. Nothing is shared between instances.
type Package struct {
	path    string
	staging string
	logger  *slog.Logger

	store        *PartStore
	contentTypes *ContentTypes

	widthEMU  int64
	heightEMU int64

	lastRelID   int
	lastSlideID int
	lastFileNum int // largest N of any slideN.xml written or found

	slides []*slideRecord
	buffer *slideBuffer

	title       string
	author      string
	subject     string
	description string
	company     string
	created     time.Time
	modified    time.Time
	revision    int

	warnings []IntegrityWarning
	closed   bool
}

// Info is the result of Query.
type Info struct {
	Path       string
	WidthEMU   int64
	HeightEMU  int64
	SlideCount int
}

// New creates an empty package with the fixed auxiliary parts seeded
// and no slides. The caller must Close the package exactly once to
// release its staging directory.
func New(opts Options) (*Package, error) {
	opts.defaults()
	staging, err := newStagingDir()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	p := &Package{
		path:         opts.Path,
		staging:      staging,
		logger:       opts.Logger,
		store:        NewPartStore(),
		contentTypes: NewContentTypes(),
		lastSlideID:  slideIDBaseline,
		title:        opts.Title,
		author:       opts.Author,
		subject:      opts.Subject,
		description:  opts.Description,
		company:      opts.Company,
		created:      now,
		modified:     now,
	}
	p.widthEMU = Inch(opts.Width)
	p.heightEMU = Inch(opts.Height)
	p.seedSkeleton()
	p.logger.Debug("package created", "staging", staging, "width_emu", p.widthEMU, "height_emu", p.heightEMU)
	return p, nil
}

// newStagingDir acquires a private staging directory under the system
// temp directory.
func newStagingDir() (string, error) {
	dir := filepath.Join(os.TempDir(), "pptxpack-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", ioError("create staging directory", err)
	}
	return dir, nil
}

// Close releases the package's staging directory. It must be called
// exactly once per created or opened package; further operations on
// the package fail with a state error.
func (p *Package) Close() error {
	if p.closed {
		return stateError("close", ErrNoOpenPackage)
	}
	p.closed = true
	p.buffer = nil
	if err := os.RemoveAll(p.staging); err != nil {
		return ioError("remove staging directory", err)
	}
	return nil
}

// ensureOpen guards every operation against use after Close.
func (p *Package) ensureOpen(op string) error {
	if p.closed {
		return stateError(op, ErrNoOpenPackage)
	}
	return nil
}

// nextRelID advances the package's single relationship-id sequence.
// Every table records the ids handed to it, so ids never collide
// across the whole package and are never reused.
func (p *Package) nextRelID() string {
	p.lastRelID++
	return relIDPrefix + strconv.Itoa(p.lastRelID)
}

// nextSlideID advances the slide-identifier sequence. Identifiers are
// monotonically increasing for the life of the package and survive
// save/reopen cycles.
func (p *Package) nextSlideID() int {
	p.lastSlideID++
	return p.lastSlideID
}

// Query returns the package's destination path, canvas dimensions, and
// slide count.
func (p *Package) Query() Info {
	return Info{
		Path:       p.path,
		WidthEMU:   p.widthEMU,
		HeightEMU:  p.heightEMU,
		SlideCount: len(p.slides),
	}
}

// SlideCount returns the number of slides in the package.
func (p *Package) SlideCount() int { return len(p.slides) }

// Dimensions returns the canvas width and height in EMU.
func (p *Package) Dimensions() (int64, int64) { return p.widthEMU, p.heightEMU }

// Path returns the destination path, or "" when none was supplied yet.
func (p *Package) Path() string { return p.path }

// Warnings returns the integrity warnings collected while opening an
// existing package.
func (p *Package) Warnings() []IntegrityWarning { return p.warnings }

// Revision returns the package revision counter.
func (p *Package) Revision() int { return p.revision }

func formatInt(v int64) string { return strconv.FormatInt(v, 10) }

func parseIntAttr(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func (p *Package) String() string {
	return fmt.Sprintf("Package(%q, %d slides)", p.path, len(p.slides))
}
