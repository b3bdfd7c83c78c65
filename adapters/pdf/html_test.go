package pdf

import (
	"strings"
	"testing"

	"github.com/goliatone/go-quotedoc/render"
)

func TestSerializeHTML(t *testing.T) {
	tree := &render.Tree{Nodes: []*render.Node{
		{
			Kind:  render.NodeBox,
			Style: render.Style{Direction: "row", Background: "#f8fafc"},
			Children: []*render.Node{
				{Kind: render.NodeText, Text: "Acme <Studio>", Style: render.Style{FontSize: 10, Color: "#0f172a"}},
			},
		},
		{Kind: render.NodeGap, Style: render.Style{Height: 20}},
		{Kind: render.NodeRule, Style: render.Style{BorderBottom: "1px solid #64748b"}},
	}}
	doc := &render.Document{Name: "Modern <Quote>"}
	doc.Theme.Colors.Background = "#fafafa"

	payload, err := SerializeHTML(tree, doc)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	page := string(payload)

	for _, want := range []string{
		"<title>Modern &lt;Quote&gt;</title>",
		"background:#fafafa",
		`<div class="row"`,
		"Acme &lt;Studio&gt;",
		"font-size:10pt",
		`<div style="height:20px"></div>`,
		"border-bottom:1px solid #64748b",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if !strings.HasPrefix(page, "<!DOCTYPE html>") {
		t.Error("page must be a standalone document")
	}
}

func TestSerializeHTML_Image(t *testing.T) {
	tree := &render.Tree{Nodes: []*render.Node{
		{Kind: render.NodeImage, Image: &render.ImageData{PNG: []byte{1, 2, 3}, Width: 120, Height: 120, Alt: "qr code"}},
		{Kind: render.NodeImage, Image: &render.ImageData{URL: "https://example.test/logo.png", Width: 80, Height: 40}},
		{Kind: render.NodeImage, Image: &render.ImageData{}},
	}}
	payload, err := SerializeHTML(tree, nil)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	page := string(payload)
	if !strings.Contains(page, "data:image/png;base64,AQID") {
		t.Error("png bytes must inline as a data url")
	}
	if !strings.Contains(page, `src="https://example.test/logo.png"`) {
		t.Error("url images must pass through")
	}
	if strings.Count(page, "<img") != 2 {
		t.Errorf("sourceless image must be skipped, got %d imgs", strings.Count(page, "<img"))
	}
}

func TestSerializeHTML_Canvas(t *testing.T) {
	tree := &render.Tree{Nodes: []*render.Node{{
		Kind:   render.NodeCanvas,
		Canvas: &render.CanvasData{Width: 160, Height: 160},
		Children: []*render.Node{
			{Kind: render.NodePath, Path: &render.PathData{D: "M 0 0 L 10 10 Z", Fill: "#2563eb", Stroke: "#ffffff", StrokeWidth: 2}},
			{Kind: render.NodeText, Text: "$800.00", Style: render.Style{FontSize: 8}, At: &render.Point{X: 40, Y: 10}},
		},
	}}}
	payload, err := SerializeHTML(tree, nil)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	page := string(payload)
	for _, want := range []string{
		`<svg width="160" height="160" viewBox="0 0 160 160"`,
		`<path d="M 0 0 L 10 10 Z" fill="#2563eb" stroke="#ffffff" stroke-width="2"/>`,
		`<text x="40" y="10" text-anchor="middle" font-size="8">$800.00</text>`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestSerializeHTML_NilTree(t *testing.T) {
	if _, err := SerializeHTML(nil, nil); render.KindFromError(err) != render.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
