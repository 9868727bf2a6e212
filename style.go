package pptxpack

import (
	"fmt"
	"strings"
)

// Color represents an ARGB color.
type Color struct {
	ARGB string // 8-character hex string, e.g., "FF000000" for black
}

// Predefined colors.
var (
	ColorBlack = Color{ARGB: "FF000000"}
	ColorWhite = Color{ARGB: "FFFFFFFF"}
	ColorRed   = Color{ARGB: "FFFF0000"}
	ColorGreen = Color{ARGB: "FF00FF00"}
	ColorBlue  = Color{ARGB: "FF0000FF"}
)

// NewColor creates a new Color from an ARGB hex string.
// Accepts 6-char RGB (e.g. "FF0000") or 8-char ARGB (e.g. "FFFF0000").
// A leading "#" is stripped automatically.
func NewColor(argb string) Color {
	argb = strings.TrimPrefix(argb, "#")
	if len(argb) == 6 {
		argb = "FF" + argb
	}
	argb = strings.ToUpper(argb)
	if !isValidARGB(argb) {
		return Color{ARGB: "FF000000"} // fallback to black
	}
	return Color{ARGB: argb}
}

// ColorVec builds a Color from a 3-component RGB vector with channel
// values in [0, 1], the form style options accept. Wrong arity or an
// out-of-range component is a validation error.
func ColorVec(vec []float64) (Color, error) {
	if len(vec) != 3 {
		return Color{}, styleError("color", vec)
	}
	var rgb [3]uint8
	for i, v := range vec {
		if v < 0 || v > 1 {
			return Color{}, styleError("color", vec)
		}
		rgb[i] = uint8(v*255 + 0.5)
	}
	return Color{ARGB: fmt.Sprintf("FF%02X%02X%02X", rgb[0], rgb[1], rgb[2])}, nil
}

// isValidARGB checks that s is exactly 8 hex characters.
func isValidARGB(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// RGB returns the 6-character RGB portion written into srgbClr values.
func (c Color) RGB() string {
	if len(c.ARGB) >= 8 {
		return c.ARGB[2:]
	}
	if len(c.ARGB) == 6 {
		return c.ARGB
	}
	return "000000"
}

// IsZero reports whether the color is unset.
func (c Color) IsZero() bool { return c.ARGB == "" }

// HorizontalAlignment represents horizontal text alignment.
type HorizontalAlignment string

const (
	HorizontalLeft    HorizontalAlignment = "l"
	HorizontalCenter  HorizontalAlignment = "ctr"
	HorizontalRight   HorizontalAlignment = "r"
	HorizontalJustify HorizontalAlignment = "just"
)

// VerticalAnchor represents the vertical anchoring of text in a box.
type VerticalAnchor string

const (
	AnchorTop    VerticalAnchor = "t"
	AnchorMiddle VerticalAnchor = "ctr"
	AnchorBottom VerticalAnchor = "b"
)

// parseHorizontalAlignment maps a style keyword to its stored value.
func parseHorizontalAlignment(kw string) (HorizontalAlignment, error) {
	switch strings.ToLower(kw) {
	case "", "left":
		return HorizontalLeft, nil
	case "center", "centre":
		return HorizontalCenter, nil
	case "right":
		return HorizontalRight, nil
	case "justify":
		return HorizontalJustify, nil
	default:
		return "", styleError("horizontal alignment", kw)
	}
}

// parseVerticalAnchor maps a style keyword to its stored value.
func parseVerticalAnchor(kw string) (VerticalAnchor, error) {
	switch strings.ToLower(kw) {
	case "", "top":
		return AnchorTop, nil
	case "middle", "center", "centre":
		return AnchorMiddle, nil
	case "bottom":
		return AnchorBottom, nil
	default:
		return "", styleError("vertical alignment", kw)
	}
}

// parseFontWeight maps a weight keyword to the bold flag.
func parseFontWeight(kw string) (bool, error) {
	switch strings.ToLower(kw) {
	case "", "normal":
		return false, nil
	case "bold":
		return true, nil
	default:
		return false, styleError("font weight", kw)
	}
}

// parseFontSlant maps a slant keyword to the italic flag.
func parseFontSlant(kw string) (bool, error) {
	switch strings.ToLower(kw) {
	case "", "normal":
		return false, nil
	case "italic":
		return true, nil
	default:
		return false, styleError("font slant", kw)
	}
}

// Border represents a shape border.
type Border struct {
	Width float64 // in points
	Color Color
}

// Fill represents a solid shape fill.
type Fill struct {
	Color Color
}
