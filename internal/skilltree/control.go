package skilltree

import (
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/skilltreedocs/skilltreedocs/consts"
)

// Endpoints are the URLs the injected controls talk to.
type Endpoints struct {
	// Update receives PUT ?u=<session>&s=<skill>&v=<value>.
	Update string
	// SkillPrefix is joined with the identifier to link a label to its page.
	SkillPrefix string
}

// DefaultEndpoints match the routes served by the API package.
var DefaultEndpoints = Endpoints{
	Update:      "/update",
	SkillPrefix: "/skills/",
}

// Control fragment class names, styled by the user layout.
const (
	ControlClass = "skill-control"
	LinkClass    = "skill-link"
	SliderClass  = "skill-slider"
)

// injectControls runs pass two: each recorded container is swapped, in place,
// for a control fragment bound to the same identifier as its shape.
func injectControls(table *sideTable, ep Endpoints) int {
	injected := 0
	for _, container := range table.order {
		parent := container.Parent
		if !attached(container) {
			// An enclosing container was already replaced.
			continue
		}
		b := table.byContainer[container]
		parent.InsertBefore(controlFragment(b, ep), container)
		parent.RemoveChild(container)
		injected++
	}
	return injected
}

// controlFragment builds:
//
//	<div class="skill-control" data-skill="id">
//	  <a class="skill-link" href="/skills/id">Label</a>
//	  <input class="skill-slider" type="range" min="0" max="100" value="{% if ... %}" ...>
//	</div>
func controlFragment(b binding, ep Endpoints) *html.Node {
	wrapper := element(atom.Div,
		attr("class", ControlClass),
		attr(SkillAttr, b.id),
	)

	link := element(atom.A,
		attr("class", LinkClass),
		attr("href", ep.SkillPrefix+b.id),
	)
	link.AppendChild(&html.Node{Type: html.TextNode, Data: Literal(b.label)})

	slider := element(atom.Input,
		attr("class", SliderClass),
		attr("type", "range"),
		attr("min", fmt.Sprint(consts.MinSkillValue)),
		attr("max", fmt.Sprint(consts.MaxSkillValue)),
		attr("step", "1"),
		attr("value", ValueExpression(b.id)),
		attr(SkillAttr, b.id),
		attr("oninput", recolourScript(b.id)),
		attr("onchange", updateScript(b.id, ep)),
	)

	wrapper.AppendChild(link)
	wrapper.AppendChild(slider)
	return wrapper
}

// recolourScript updates every shape bound to id from the slider value.
func recolourScript(id string) string {
	return fmt.Sprintf(
		`var h = this.value; document.querySelectorAll('rect[%s="%s"]').forEach(function (r) { r.setAttribute('fill', 'hsl(' + h + ', 50%%, 50%%)'); });`,
		SkillAttr, id)
}

// updateScript reports the new value for the session rendered into the page.
func updateScript(id string, ep Endpoints) string {
	return fmt.Sprintf(
		`fetch('%s?u={{ %s }}&s=%s&v=' + this.value, { method: 'PUT' });`,
		ep.Update, SessionVar, id)
}

func attached(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n.Type == html.DocumentNode {
			return true
		}
	}
	return false
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}
