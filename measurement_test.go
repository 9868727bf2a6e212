package pptxpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitConversions(t *testing.T) {
	assert.Equal(t, int64(914400), Inch(1))
	assert.Equal(t, int64(457200), Inch(0.5))
	assert.Equal(t, int64(12700), Point(1))
	assert.Equal(t, int64(360000), Centimeter(1))
	assert.Equal(t, int64(9525), Pixel(1))
	assert.Equal(t, int64(914400), Pixel(96))
}

func TestDegreeInvertsSign(t *testing.T) {
	assert.Equal(t, int64(-5400000), Degree(90))
	assert.Equal(t, int64(5400000), Degree(-90))
	assert.Equal(t, int64(0), Degree(0))
}

func TestFontPointHundredths(t *testing.T) {
	assert.Equal(t, int64(1200), FontPoint(12))
	assert.Equal(t, int64(1050), FontPoint(10.5))
}

func TestFractionalUnitsRound(t *testing.T) {
	// 0.0000005 inch is less than half an EMU and rounds to zero.
	assert.Equal(t, int64(0), Inch(0.0000001))
	assert.Equal(t, int64(1), Inch(1.4/emuPerInch))
}

func TestClampPreventsOverflow(t *testing.T) {
	assert.Equal(t, int64(maxEMU), Inch(1e30))
	assert.Equal(t, int64(-maxEMU), Inch(-1e30))
}

func TestEMURoundTrip(t *testing.T) {
	assert.InDelta(t, 2.5, EMUToInch(Inch(2.5)), 1e-9)
	assert.InDelta(t, 18, EMUToPoint(Point(18)), 1e-9)
}
