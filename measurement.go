package pptxpack

import "math"

// EMU (English Metric Units) conversion helpers.
// 1 inch = 914400 EMU, 1 point = 12700 EMU, 1 cm = 360000 EMU.
// Rotation is stored in 60000ths of a degree, font sizes in
// hundredths of a point. Fractional native units are never persisted;
// every conversion rounds to the nearest integer.

const (
	emuPerInch       = 914400
	emuPerPoint      = 12700
	emuPerCentimeter = 360000
	// maxEMU is the maximum safe EMU value to prevent overflow.
	maxEMU = math.MaxInt64 / 2

	angleUnitsPerDegree = 60000
	sizeUnitsPerPoint   = 100

	// emuPerPixel assumes the conventional 96 DPI raster density used
	// when placing an image at its native size.
	emuPerPixel = emuPerInch / 96
)

// Inch converts inches to EMU. Clamps to safe range.
func Inch(n float64) int64 {
	return clampEMU(math.Round(n * emuPerInch))
}

// Point converts points to EMU.
func Point(n float64) int64 {
	return clampEMU(math.Round(n * emuPerPoint))
}

// Centimeter converts centimeters to EMU.
func Centimeter(n float64) int64 {
	return clampEMU(math.Round(n * emuPerCentimeter))
}

// Degree converts degrees to the format's rotation unit. The stored
// convention is clockwise-positive, so the sign is inverted.
func Degree(n float64) int64 {
	return clampEMU(math.Round(-n * angleUnitsPerDegree))
}

// FontPoint converts a font size in points to the format's text-size
// unit (hundredths of a point).
func FontPoint(n float64) int64 {
	return clampEMU(math.Round(n * sizeUnitsPerPoint))
}

// Pixel converts raster pixels to EMU at 96 DPI.
func Pixel(n int) int64 {
	return clampEMU(float64(n) * emuPerPixel)
}

// EMUToInch converts EMU to inches.
func EMUToInch(emu int64) float64 {
	return float64(emu) / emuPerInch
}

// EMUToPoint converts EMU to points.
func EMUToPoint(emu int64) float64 {
	return float64(emu) / emuPerPoint
}

// clampEMU converts a float64 to int64, clamping to prevent overflow.
func clampEMU(v float64) int64 {
	if v > float64(maxEMU) {
		return maxEMU
	}
	if v < -float64(maxEMU) {
		return -maxEMU
	}
	return int64(v)
}
