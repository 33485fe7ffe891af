package skilltree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpressions(t *testing.T) {
	assert.Equal(t,
		"{% if skills.backtuck %}{{ skills.backtuck }}{% else %}0{% endif %}",
		ValueExpression("backtuck"))
	assert.Equal(t,
		"hsl({% if skills.backtuck %}{{ skills.backtuck }}{% else %}0{% endif %}, 50%, 50%)",
		FillExpression("backtuck"))
}

func TestContextKey(t *testing.T) {
	assert.Equal(t, "handstand", ContextKey("handstand"))
	assert.Equal(t, "kip2", ContextKey("kip2"))
	assert.Equal(t, "k_3132616972706c616e65", ContextKey("12airplane"))
	assert.Equal(t, "k_c3bf", ContextKey("\u00ff"))
	assert.NotEqual(t, ContextKey("1"), ContextKey("x31"))
	assert.Equal(t, "k_6e6f74", ContextKey("not"))

	assert.Equal(t,
		"{% if skills.k_3132616972706c616e65 %}{{ skills.k_3132616972706c616e65 }}{% else %}0{% endif %}",
		ValueExpression("12airplane"))

	assert.Equal(t,
		map[string]int{"handstand": 40, "k_3132616972706c616e65": 70},
		ContextValues(map[string]int{"handstand": 40, "12airplane": 70}))
}

func TestSkeleton(t *testing.T) {
	assert.True(t, TabSkeleton.Valid())
	assert.True(t, SkillSkeleton.Valid())
	assert.False(t, Skeleton("no placeholder").Valid())
	assert.False(t, Skeleton(ContentPlaceholder+ContentPlaceholder).Valid())

	assert.Equal(t,
		"{% extends \"docs.html\" %}\n{% block content %}\n<p>x</p>\n{% endblock %}\n",
		SkillSkeleton.Fill("<p>x</p>"))

	// Content that happens to contain the placeholder is inserted untouched.
	assert.Equal(t, "<"+ContentPlaceholder+">", Skeleton("<"+ContentPlaceholder+">").Fill(ContentPlaceholder))
}

func TestLiteral(t *testing.T) {
	assert.Equal(t, "Handstand", Literal("Handstand"))
	assert.Equal(t, "50% {x}", Literal("50% {x}"))
	assert.Equal(t, "{% verbatim %}Front {{ Flip{% endverbatim %}", Literal("Front {{ Flip"))
	assert.Equal(t, "{% verbatim %}{# note{% endverbatim %}", Literal("{# note"))
	assert.Equal(t,
		"{% verbatim %}a {% endverbatim %}{% templatetag openblock %} endverbatim {% templatetag closeblock %}{% verbatim %} b{% endverbatim %}",
		Literal("a {% endverbatim %} b"))
	assert.Equal(t,
		"{% templatetag openblock %} endverbatim {% templatetag closeblock %}{% templatetag openblock %} endverbatim {% templatetag closeblock %}",
		Literal("{% endverbatim %}{% endverbatim %}"))
}

func TestRenderBody(t *testing.T) {
	doc := parse([]byte("<?xml version=\"1.0\"?>\n<!DOCTYPE svg>\n  <svg><g></g></svg>\n  "))
	out, err := renderBody(doc)
	require.NoError(t, err)
	assert.Equal(t, "<svg><g></g></svg>", out)
}

func TestAddClassAndSetAttr(t *testing.T) {
	n := element(0)
	n.Data = "rect"

	addClass(n, "skill")
	addClass(n, "skill")
	v, _ := getAttr(n, "class")
	assert.Equal(t, "skill", v)

	setAttr(n, "class", "  box ")
	addClass(n, "skill")
	v, _ = getAttr(n, "class")
	assert.Equal(t, "box skill", v)

	setAttr(n, "fill", "#fff")
	setAttr(n, "fill", "red")
	assert.Len(t, n.Attr, 2)
	v, ok := getAttr(n, "fill")
	assert.True(t, ok)
	assert.Equal(t, "red", v)
}

type stubMarkdown struct {
	out string
	err error
}

func (s stubMarkdown) Render([]byte) (string, error) { return s.out, s.err }

func TestBuildSkillPage(t *testing.T) {
	page, err := BuildSkillPage(stubMarkdown{out: "<h1>Title</h1>\n<p>Body</p>\n"}, []byte("# Title\n\nBody"), SkillSkeleton)
	require.NoError(t, err)
	assert.Equal(t, SkillSkeleton.Fill("<h1>Title</h1>\n<p>Body</p>\n"), page)

	_, err = BuildSkillPage(stubMarkdown{err: errors.New("boom")}, nil, SkillSkeleton)
	assert.ErrorContains(t, err, "E7002")
}
