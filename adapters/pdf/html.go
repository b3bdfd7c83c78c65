// Package pdf assembles render trees into paginated PDF documents via a
// headless Chromium print step.
package pdf

import (
	"encoding/base64"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-quotedoc/render"
)

// SerializeHTML lays a render tree out as a standalone HTML document ready
// for the print engine. The tree is inert data, so serialization is pure.
func SerializeHTML(tree *render.Tree, doc *render.Document) ([]byte, error) {
	if tree == nil {
		return nil, render.NewError(render.KindValidation, "render tree is required", nil)
	}

	background := "#ffffff"
	title := "Document"
	if doc != nil {
		if doc.Theme.Colors.Background != "" {
			background = doc.Theme.Colors.Background
		}
		if doc.Name != "" {
			title = doc.Name
		}
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	b.WriteString("<style>body{margin:0;background:" + background + ";} .row{display:flex;flex-direction:row;} .col{display:flex;flex-direction:column;}</style>\n")
	b.WriteString("</head>\n<body>\n")
	for _, node := range tree.Nodes {
		writeNode(&b, node)
	}
	b.WriteString("</body>\n</html>\n")
	return []byte(b.String()), nil
}

func writeNode(b *strings.Builder, node *render.Node) {
	if node == nil {
		return
	}
	switch node.Kind {
	case render.NodeText:
		b.WriteString("<div" + styleAttr(node.Style) + ">" + html.EscapeString(node.Text) + "</div>\n")
	case render.NodeImage:
		writeImage(b, node)
	case render.NodeRule:
		b.WriteString("<div" + styleAttr(node.Style) + "></div>\n")
	case render.NodeGap:
		b.WriteString(fmt.Sprintf("<div style=\"height:%gpx\"></div>\n", node.Style.Height))
	case render.NodeCanvas:
		writeCanvas(b, node)
	default:
		class := "col"
		if node.Style.Direction == "row" {
			class = "row"
		}
		b.WriteString("<div class=\"" + class + "\"" + styleAttr(node.Style) + ">\n")
		for _, child := range node.Children {
			writeNode(b, child)
		}
		b.WriteString("</div>\n")
	}
}

func writeImage(b *strings.Builder, node *render.Node) {
	image := node.Image
	if image == nil {
		return
	}
	src := image.URL
	if len(image.PNG) > 0 {
		src = "data:image/png;base64," + base64.StdEncoding.EncodeToString(image.PNG)
	}
	if src == "" {
		return
	}
	b.WriteString(fmt.Sprintf("<img src=%q alt=%q width=\"%g\" height=\"%g\">\n",
		src, image.Alt, image.Width, image.Height))
}

func writeCanvas(b *strings.Builder, node *render.Node) {
	canvas := node.Canvas
	if canvas == nil {
		return
	}
	b.WriteString(fmt.Sprintf("<svg width=\"%g\" height=\"%g\" viewBox=\"0 0 %g %g\" xmlns=\"http://www.w3.org/2000/svg\">\n",
		canvas.Width, canvas.Height, canvas.Width, canvas.Height))
	for _, child := range node.Children {
		switch {
		case child.Kind == render.NodePath && child.Path != nil:
			b.WriteString(fmt.Sprintf("<path d=%q fill=%q", child.Path.D, child.Path.Fill))
			if child.Path.Stroke != "" {
				b.WriteString(fmt.Sprintf(" stroke=%q stroke-width=\"%g\"", child.Path.Stroke, child.Path.StrokeWidth))
			}
			b.WriteString("/>\n")
		case child.Kind == render.NodeText && child.At != nil:
			b.WriteString(fmt.Sprintf("<text x=\"%g\" y=\"%g\" text-anchor=\"middle\" font-size=\"%g\">%s</text>\n",
				child.At.X, child.At.Y, child.Style.FontSize, html.EscapeString(child.Text)))
		}
	}
	b.WriteString("</svg>\n")
}

func styleAttr(style render.Style) string {
	var rules []string
	add := func(rule string) { rules = append(rules, rule) }

	if style.FontFamily != "" {
		add("font-family:" + style.FontFamily)
	}
	if style.FontSize > 0 {
		add(fmt.Sprintf("font-size:%gpt", style.FontSize))
	}
	if style.FontWeight > 0 {
		add(fmt.Sprintf("font-weight:%d", style.FontWeight))
	}
	if style.Color != "" {
		add("color:" + style.Color)
	}
	if style.Background != "" {
		add("background:" + style.Background)
	}
	if style.Align != "" {
		add("justify-content:" + style.Align)
	}
	if style.Width != "" {
		width := style.Width
		if !strings.HasSuffix(width, "%") {
			width += "px"
		}
		add("width:" + width)
	}
	if style.Height > 0 {
		add(fmt.Sprintf("height:%gpx", style.Height))
	}
	if style.Padding > 0 {
		add(fmt.Sprintf("padding:%gpx", style.Padding))
	}
	if style.MarginTop > 0 {
		add(fmt.Sprintf("margin-top:%gpx", style.MarginTop))
	}
	if style.MarginBottom > 0 {
		add(fmt.Sprintf("margin-bottom:%gpx", style.MarginBottom))
	}
	if style.Border != "" {
		add("border:" + style.Border)
	}
	if style.BorderBottom != "" {
		add("border-bottom:" + style.BorderBottom)
	}
	if style.BorderRadius > 0 {
		add(fmt.Sprintf("border-radius:%gpx", style.BorderRadius))
	}

	if len(rules) == 0 {
		return ""
	}
	return " style=\"" + strings.Join(rules, ";") + "\""
}
