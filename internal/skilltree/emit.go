package skilltree

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ContentPlaceholder marks where a skeleton receives its content.
const ContentPlaceholder = "[[content]]"

// Skeleton is a page-level template with a single ContentPlaceholder.
type Skeleton string

// Layout skeletons for tabs and skill pages. Both extend a layout registered
// with the renderer and fill its content block.
const (
	TabSkeleton   Skeleton = "{% extends \"user.html\" %}\n{% block content %}\n" + ContentPlaceholder + "\n{% endblock %}\n"
	SkillSkeleton Skeleton = "{% extends \"docs.html\" %}\n{% block content %}\n" + ContentPlaceholder + "\n{% endblock %}\n"
)

// Fill substitutes content for the placeholder.
func (s Skeleton) Fill(content string) string {
	return strings.Replace(string(s), ContentPlaceholder, content, 1)
}

// Valid reports whether the skeleton carries exactly one placeholder.
func (s Skeleton) Valid() bool {
	return strings.Count(string(s), ContentPlaceholder) == 1
}

// protectSource applies Literal to every text node, comment and attribute
// value of the parsed diagram. It runs before any placeholder is added.
func protectSource(root *html.Node) {
	walk(root, func(n *html.Node) {
		switch n.Type {
		case html.TextNode, html.CommentNode:
			n.Data = Literal(n.Data)
		case html.ElementNode:
			for i := range n.Attr {
				n.Attr[i].Val = Literal(n.Attr[i].Val)
			}
		}
	})
}

// renderBody serializes what the parser placed in <body>, leaving out the
// html/head/body wrappers it synthesized, the doctype, and the XML
// declaration the parser turns into a comment.
func renderBody(doc *html.Node) (string, error) {
	root := findBody(doc)
	if root == nil {
		root = doc
	}

	var buf bytes.Buffer
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if isXMLDeclaration(c) || c.Type == html.DoctypeNode {
			continue
		}
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

func findBody(doc *html.Node) *html.Node {
	var body *html.Node
	walk(doc, func(n *html.Node) {
		if body == nil && n.Type == html.ElementNode && n.DataAtom == atom.Body {
			body = n
		}
	})
	return body
}

func isXMLDeclaration(n *html.Node) bool {
	return n.Type == html.CommentNode && strings.HasPrefix(strings.TrimSpace(n.Data), "?xml")
}
