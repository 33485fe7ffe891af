package skilltree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateLabels(t *testing.T) {
	doc := parse(diagram("Handstand", "  Back Tuck  ", ""))

	refs, err := LocateLabels(doc, DefaultLabelPath)
	require.NoError(t, err)
	require.Len(t, refs, 3)

	assert.Equal(t, []string{"Handstand", "Back Tuck", ""}, []string{refs[0].Label, refs[1].Label, refs[2].Label})
	for i, ref := range refs {
		assert.Equal(t, i, ref.Index)
		assert.True(t, isElement(ref.Shape, "rect"))
		assert.True(t, isElement(ref.Container, "div"))
	}
}

func TestLocateLabels_SkipsWhitespaceSiblings(t *testing.T) {
	markup := svgHeader + "<rect/>\n\n   <!-- note -->\n<g><switch><foreignObject><div><div><div>Kip</div></div></div></foreignObject></switch></g>" + svgFooter
	refs, err := LocateLabels(parse([]byte(markup)), DefaultLabelPath)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "Kip", refs[0].Label)
}

func TestLocateLabels_Violation(t *testing.T) {
	_, err := LocateLabels(parse([]byte(svgHeader+`<rect/>`+svgFooter)), DefaultLabelPath)

	var sv *StructuralViolation
	require.True(t, errors.As(err, &sv))
	assert.Equal(t, 0, sv.Shape)
	assert.Equal(t, "shape 0: rect has no following sibling element", sv.Error())

	sv.Package, sv.Tab = "gymnastics", "Floor"
	assert.Equal(t, "gymnastics/Floor: shape 0: rect has no following sibling element", sv.Error())
}

func TestLabelPath_Resolve(t *testing.T) {
	doc := parse([]byte(`<section><p><span>a</span></p><span>b</span></section>`))
	section := firstDescendant(doc, "section")
	require.NotNil(t, section)

	got, err := LabelPath{"p", "span"}.Resolve(section)
	require.NoError(t, err)
	assert.Equal(t, "a", textContent(got))

	got, err = LabelPath{"SPAN"}.Resolve(section)
	require.NoError(t, err)
	assert.Equal(t, "a", textContent(got), "first descendant in document order, case-insensitive")

	_, err = LabelPath{"p", "em"}.Resolve(section)
	assert.EqualError(t, err, "no <em> below <p>")

	assert.Equal(t, "switch > foreignObject > div > div > div", DefaultLabelPath.String())
}
