package skilltree

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

const svgHeader = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" version="1.1" width="400px" height="300px" viewBox="-0.5 -0.5 400 300"><defs/><g>`

const svgFooter = `</g></svg>`

// shapeMarkup mirrors one text-wrapped rectangle as exported by the diagram tool.
func shapeMarkup(i int, label string, rectAttrs string) string {
	return fmt.Sprintf(`
<rect x="%d" y="0" width="120" height="60" rx="9" ry="9" fill="#cce5ff" stroke="#36393d" pointer-events="all"%s/>
<g transform="translate(-0.5 -0.5)"><switch><foreignObject pointer-events="none" width="100%%" height="100%%" requiredFeatures="http://www.w3.org/TR/SVG11/feature#Extensibility" style="overflow: visible; text-align: left;"><div xmlns="http://www.w3.org/1999/xhtml" style="display: flex; align-items: unsafe center;"><div style="box-sizing: border-box; font-size: 0px; text-align: center;"><div style="display: inline-block; font-size: 12px;">%s</div></div></div></foreignObject><text x="60" y="34" fill="#000000" font-family="Helvetica" font-size="12px" text-anchor="middle">%s</text></switch></g>`,
		i*130, rectAttrs, label, strings.ReplaceAll(label, "<br/>", " "))
}

func diagram(labels ...string) []byte {
	var sb strings.Builder
	sb.WriteString(svgHeader)
	for i, l := range labels {
		sb.WriteString(shapeMarkup(i, l, ""))
	}
	sb.WriteString(svgFooter)
	return []byte(sb.String())
}

func parse(markup []byte) *html.Node {
	doc, err := html.Parse(strings.NewReader(string(markup)))
	if err != nil {
		panic(err)
	}
	return doc
}

// shapeInfo and controlInfo describe what a transformed tab exposes.
type shapeInfo struct {
	class string
	fill  string
	skill string
}

type controlInfo struct {
	skill    string
	href     string
	text     string
	slider   map[string]string
	children int
}

// inspect re-parses transformed content and reports every rect and control.
func inspect(content string) (shapes []shapeInfo, controls []controlInfo) {
	doc := parse([]byte(content))
	walk(doc, func(n *html.Node) {
		switch {
		case isElement(n, "rect"):
			class, _ := getAttr(n, "class")
			fill, _ := getAttr(n, "fill")
			skill, _ := getAttr(n, SkillAttr)
			shapes = append(shapes, shapeInfo{class: class, fill: fill, skill: skill})
		case isElement(n, "div"):
			class, _ := getAttr(n, "class")
			if class != ControlClass {
				return
			}
			c := controlInfo{slider: map[string]string{}}
			c.skill, _ = getAttr(n, SkillAttr)
			for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
				c.children++
				switch {
				case isElement(ch, "a"):
					c.href, _ = getAttr(ch, "href")
					c.text = textContent(ch)
				case isElement(ch, "input"):
					for _, a := range ch.Attr {
						c.slider[a.Key] = a.Val
					}
				}
			}
			controls = append(controls, c)
		}
	})
	return shapes, controls
}
