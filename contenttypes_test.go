package pptxpack

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySeedsBaselineDefaults(t *testing.T) {
	ct := NewContentTypes()
	assert.True(t, ct.HasDefault("rels"))
	assert.True(t, ct.HasDefault("xml"))
}

func TestRegisterDefaultIdempotentSameMIME(t *testing.T) {
	ct := NewContentTypes()
	require.NoError(t, ct.RegisterDefault("png", "image/png"))
	require.NoError(t, ct.RegisterDefault("png", "image/png"))
	require.NoError(t, ct.RegisterDefault(".PNG", "image/png"))

	mime, err := ct.Resolve("ppt/media/image1_2.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
}

func TestRegisterDefaultConflict(t *testing.T) {
	ct := NewContentTypes()
	require.NoError(t, ct.RegisterDefault("png", "image/png"))
	err := ct.RegisterDefault("png", "image/jpeg")
	assert.True(t, errors.Is(err, ErrConflictingType))
}

func TestResolveOverrideBeatsDefault(t *testing.T) {
	ct := NewContentTypes()
	ct.RegisterOverride("ppt/slides/slide1.xml", ctSlide)
	mime, err := ct.Resolve("ppt/slides/slide1.xml")
	require.NoError(t, err)
	assert.Equal(t, ctSlide, mime)

	// Non-overridden .xml paths fall back to the extension default.
	mime, err = ct.Resolve("ppt/presProps.xml")
	require.NoError(t, err)
	assert.Equal(t, "application/xml", mime)
}

func TestResolveUnresolvedPart(t *testing.T) {
	ct := NewContentTypes()
	_, err := ct.Resolve("ppt/media/image1_2.bin")
	assert.True(t, errors.Is(err, ErrUnresolvedPart))
}

func TestContentTypesMarshalParse(t *testing.T) {
	ct := NewContentTypes()
	require.NoError(t, ct.RegisterDefault("png", "image/png"))
	ct.RegisterOverride("ppt/slides/slide1.xml", ctSlide)

	parsed, err := parseContentTypes(ct.marshal())
	require.NoError(t, err)

	mime, err := parsed.Resolve("ppt/slides/slide1.xml")
	require.NoError(t, err)
	assert.Equal(t, ctSlide, mime)
	assert.True(t, parsed.HasDefault("png"))
	assert.True(t, parsed.HasDefault("rels"))
}
