package pptxpack

// Geometry positions a shape on the slide canvas. All linear values
// are EMU; rotation is in degrees and converted at write time.
type Geometry struct {
	OffsetX  int64
	OffsetY  int64
	Width    int64
	Height   int64
	Rotation float64
}

// ScaleMode selects how a picture without explicit geometry is sized
// against the slide canvas.
type ScaleMode int

const (
	// ScaleNone centers the image at its native pixel size.
	ScaleNone ScaleMode = iota
	// ScaleMaxFixed uniformly scales the image to fit the canvas,
	// preserving aspect ratio, centered on the unused axis.
	ScaleMaxFixed
	// ScaleMax stretches the image to fill the canvas exactly,
	// ignoring aspect ratio.
	ScaleMax
)

// PictureOptions controls picture insertion. When Geometry is nil the
// Scale policy decides the final placement from the image's intrinsic
// pixel dimensions.
type PictureOptions struct {
	Geometry *Geometry
	Scale    ScaleMode
	Border   *Border
	Name     string
}

// TextboxOptions controls textbox insertion. Alignment, weight, and
// slant accept keyword values validated before any mutation; Color and
// BackgroundColor are 3-component RGB vectors in [0, 1]. Zero values
// select the defaults (left/top, normal, black, 12pt, no fill, no
// border).
type TextboxOptions struct {
	FontSize        float64
	FontWeight      string
	FontSlant       string
	Color           []float64
	HorizontalAlign string
	VerticalAlign   string
	BackgroundColor []float64
	Border          *Border
	Name            string
}

// textStyle is the validated form of TextboxOptions.
type textStyle struct {
	sizeUnits int64 // hundredths of a point
	bold      bool
	italic    bool
	color     Color
	align     HorizontalAlignment
	anchor    VerticalAnchor
	fill      *Fill
	border    *Border
}

// resolveTextStyle validates every option value up front so a
// malformed style never touches the slide buffer.
func resolveTextStyle(opts TextboxOptions) (textStyle, error) {
	st := textStyle{
		sizeUnits: FontPoint(12),
		color:     ColorBlack,
		border:    opts.Border,
	}
	if opts.FontSize != 0 {
		if opts.FontSize < 0 {
			return textStyle{}, styleError("font size", opts.FontSize)
		}
		st.sizeUnits = FontPoint(opts.FontSize)
	}
	var err error
	if st.bold, err = parseFontWeight(opts.FontWeight); err != nil {
		return textStyle{}, err
	}
	if st.italic, err = parseFontSlant(opts.FontSlant); err != nil {
		return textStyle{}, err
	}
	if opts.Color != nil {
		if st.color, err = ColorVec(opts.Color); err != nil {
			return textStyle{}, err
		}
	}
	if st.align, err = parseHorizontalAlignment(opts.HorizontalAlign); err != nil {
		return textStyle{}, err
	}
	if st.anchor, err = parseVerticalAnchor(opts.VerticalAlign); err != nil {
		return textStyle{}, err
	}
	if opts.BackgroundColor != nil {
		c, err := ColorVec(opts.BackgroundColor)
		if err != nil {
			return textStyle{}, err
		}
		st.fill = &Fill{Color: c}
	}
	return st, nil
}
