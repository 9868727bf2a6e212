package pptxpack

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAttributesOverwrites(t *testing.T) {
	n := NewNode("p:sp")
	n.SetAttributes(Attr{Name: "id", Value: "1"}, Attr{Name: "name", Value: "a"})
	n.SetAttributes(Attr{Name: "id", Value: "2"})
	assert.Equal(t, "2", n.Attr("id"))
	assert.Equal(t, "a", n.Attr("name"))
	assert.Len(t, n.Attrs, 2)
}

func TestFindFirstPrefixAgnostic(t *testing.T) {
	root := NewNode("p:sld")
	root.CreateChild("p:cSld").CreateChild("p:spTree").CreateChild("p:sp")

	exact, err := root.FindFirst("p:spTree")
	require.NoError(t, err)
	assert.Equal(t, "p:spTree", exact.Tag)

	// A search term without a prefix matches any prefix.
	loose, err := root.FindFirst("spTree")
	require.NoError(t, err)
	assert.Same(t, exact, loose)

	_, err = root.FindFirst("p:missing")
	assert.True(t, errors.Is(err, ErrNodeNotFound))
}

func TestFindAllDocumentOrder(t *testing.T) {
	root := NewNode("root")
	root.CreateChild("a:p").AppendText("one")
	mid := root.CreateChild("mid")
	mid.CreateChild("a:p").AppendText("two")
	root.CreateChild("a:p").AppendText("three")

	got := root.FindAll("a:p")
	require.Len(t, got, 3)
	assert.Equal(t, "one", got[0].Text)
	assert.Equal(t, "two", got[1].Text)
	assert.Equal(t, "three", got[2].Text)
}

func TestSetTextReplacesInPlace(t *testing.T) {
	root := NewNode("p:notes")
	root.CreateChild("a:p").CreateChild("a:t").AppendText("first")
	require.NoError(t, root.SetText("a:t", "second"))
	n, err := root.FindFirst("a:t")
	require.NoError(t, err)
	assert.Equal(t, "second", n.Text)
}

func TestMarshalSelfClosesEmptyElements(t *testing.T) {
	n := NewNode("p:sld")
	n.SetAttributes(Attr{Name: "xmlns:p", Value: nsPresentationML})
	n.CreateChild("p:cSld").CreateChild("p:spTree")

	want := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<p:sld xmlns:p="` + nsPresentationML + `"><p:cSld><p:spTree/></p:cSld></p:sld>`
	assert.Equal(t, want, string(n.Marshal()))
}

func TestMarshalEscapesSpecialCharacters(t *testing.T) {
	n := NewNode("a:t")
	n.AppendText(`Q1 <review> & "plans"`)
	out := string(n.Marshal())
	assert.Contains(t, out, "Q1 &lt;review&gt; &amp;")
	assert.NotContains(t, out, "<review>")
}

func TestParseNodeRoundTrip(t *testing.T) {
	src := []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="x" xmlns:a="y"><p:cSld><p:spTree><p:sp id="2"><a:t>hello &amp; goodbye</a:t></p:sp></p:spTree></p:cSld></p:sld>`)
	root, err := ParseNode(src)
	require.NoError(t, err)
	assert.Equal(t, "p:sld", root.Tag)

	sp, err := root.FindFirst("p:sp")
	require.NoError(t, err)
	assert.Equal(t, "2", sp.Attr("id"))

	txt, err := root.FindFirst("a:t")
	require.NoError(t, err)
	assert.Equal(t, "hello & goodbye", txt.Text)

	// Reparse of the serialized output yields the same structure.
	again, err := ParseNode(root.Marshal())
	require.NoError(t, err)
	assert.Equal(t, root.Marshal(), again.Marshal())
}

func TestParseNodeRejectsMalformed(t *testing.T) {
	_, err := ParseNode([]byte(`<a><b></a>`))
	assert.Error(t, err)
}
