package skilltree

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/skilltreedocs/skilltreedocs/internal/model"
)

// ShapeClass is added to every shape bound to a skill.
const ShapeClass = "skill"

// SkillAttr carries the skill identifier on shapes and controls.
const SkillAttr = "data-skill"

// binding is the pass-one record for one label container.
type binding struct {
	id    string
	label string
	shape *html.Node
}

// sideTable maps label containers to their bindings, remembering insertion
// order so pass two rewrites in document order.
type sideTable struct {
	byContainer map[*html.Node]binding
	order       []*html.Node
}

func newSideTable(n int) *sideTable {
	return &sideTable{byContainer: make(map[*html.Node]binding, n)}
}

func (t *sideTable) put(container *html.Node, b binding) {
	if _, exists := t.byContainer[container]; exists {
		return
	}
	t.byContainer[container] = b
	t.order = append(t.order, container)
}

func (t *sideTable) len() int {
	return len(t.order)
}

// annotate runs pass one: classify each label, stamp the shapes that carry a
// non-empty identifier, and record their containers. Unknown identifiers are
// returned as missing references but are still annotated.
func annotate(refs []LabelRef, known SkillSet, pkg, tab string) (*sideTable, []model.MissingReference) {
	table := newSideTable(len(refs))
	var missing []model.MissingReference

	for _, ref := range refs {
		id := Normalize(ref.Label)
		if id == "" {
			continue
		}
		if !known.Has(id) {
			missing = append(missing, model.MissingReference{
				PackageIdentifier: pkg,
				TabIdentifier:     tab,
				RawLabel:          ref.Label,
			})
		}

		addClass(ref.Shape, ShapeClass)
		setAttr(ref.Shape, "fill", FillExpression(id))
		setAttr(ref.Shape, SkillAttr, id)
		table.put(ref.Container, binding{id: id, label: ref.Label, shape: ref.Shape})
	}
	return table, missing
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// setAttr replaces the first attribute named key or appends a new one.
func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func addClass(n *html.Node, class string) {
	current, _ := getAttr(n, "class")
	for _, c := range strings.Fields(current) {
		if c == class {
			return
		}
	}
	if current = strings.TrimSpace(current); current != "" {
		class = current + " " + class
	}
	setAttr(n, "class", class)
}
