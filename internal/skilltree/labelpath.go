package skilltree

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// LabelPath is the chain of element names leading from the group that follows
// a shape down to the element holding the shape's label. Each step matches the
// first descendant with that name, case-insensitively.
type LabelPath []string

// DefaultLabelPath is the nesting produced by the diagram exporter for
// text-wrapped shapes.
var DefaultLabelPath = LabelPath{"switch", "foreignObject", "div", "div", "div"}

// Resolve walks the path below group and returns the label container.
func (p LabelPath) Resolve(group *html.Node) (*html.Node, error) {
	cur := group
	for _, step := range p {
		next := firstDescendant(cur, step)
		if next == nil {
			return nil, fmt.Errorf("no <%s> below <%s>", step, cur.Data)
		}
		cur = next
	}
	return cur, nil
}

func (p LabelPath) String() string {
	return strings.Join(p, " > ")
}

// LabelRef ties a shape to the container holding its label.
type LabelRef struct {
	// Index is the shape's position among all rects in document order.
	Index     int
	Shape     *html.Node
	Container *html.Node
	// Label is the container's trimmed text.
	Label string
}

// StructuralViolation reports a diagram that breaks the shape/label nesting
// convention. Loading must stop: a partially transformed tab is never served.
type StructuralViolation struct {
	Package string
	Tab     string
	Shape   int
	Reason  string
}

func (e *StructuralViolation) Error() string {
	if e.Package == "" && e.Tab == "" {
		return fmt.Sprintf("shape %d: %s", e.Shape, e.Reason)
	}
	return fmt.Sprintf("%s/%s: shape %d: %s", e.Package, e.Tab, e.Shape, e.Reason)
}

// LocateLabels finds the label of every rect under root, in document order.
// A rect without a following sibling element, or whose sibling lacks the
// path, yields a *StructuralViolation.
func LocateLabels(root *html.Node, path LabelPath) ([]LabelRef, error) {
	var shapes []*html.Node
	walk(root, func(n *html.Node) {
		if isElement(n, "rect") {
			shapes = append(shapes, n)
		}
	})

	refs := make([]LabelRef, 0, len(shapes))
	for i, shape := range shapes {
		group := nextElementSibling(shape)
		if group == nil {
			return nil, &StructuralViolation{Shape: i, Reason: "rect has no following sibling element"}
		}
		container, err := path.Resolve(group)
		if err != nil {
			return nil, &StructuralViolation{Shape: i, Reason: err.Error()}
		}
		refs = append(refs, LabelRef{
			Index:     i,
			Shape:     shape,
			Container: container,
			Label:     strings.TrimSpace(textContent(container)),
		})
	}
	return refs, nil
}

// walk visits n and its descendants in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func isElement(n *html.Node, name string) bool {
	return n.Type == html.ElementNode && strings.EqualFold(n.Data, name)
}

func firstDescendant(n *html.Node, name string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, name) {
			return c
		}
		if found := firstDescendant(c, name); found != nil {
			return found
		}
	}
	return nil
}

func nextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	})
	return sb.String()
}
