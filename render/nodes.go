package render

// NodeKind discriminates render tree nodes.
type NodeKind string

const (
	NodeBox    NodeKind = "box"
	NodeText   NodeKind = "text"
	NodeImage  NodeKind = "image"
	NodeCanvas NodeKind = "canvas"
	NodePath   NodeKind = "path"
	NodeRule   NodeKind = "rule"
	NodeGap    NodeKind = "gap"
)

// Style carries visual attributes for a node. Zero values mean "inherit or
// unset"; the downstream assembler maps these onto its own style system.
type Style struct {
	FontFamily   string
	FontSize     float64
	FontWeight   int
	Color        string
	Background   string
	Align        string
	Direction    string
	Width        string
	Height       float64
	Padding      float64
	MarginTop    float64
	MarginBottom float64
	Border       string
	BorderBottom string
	BorderRadius float64
}

// ImageData holds an embeddable image, either by URL or inline PNG bytes.
type ImageData struct {
	URL    string
	PNG    []byte
	Width  float64
	Height float64
	Alt    string
}

// PathData holds one vector path in SVG path syntax.
type PathData struct {
	D           string
	Fill        string
	Stroke      string
	StrokeWidth float64
}

// Point positions a node inside a canvas parent.
type Point struct {
	X float64
	Y float64
}

// Node is one unit of the render tree. The tree is plain data: the
// assembler walking it must not need any further resolution or IO.
// At is set only on children of canvas nodes.
type Node struct {
	Kind     NodeKind
	Style    Style
	Text     string
	Image    *ImageData
	Path     *PathData
	Canvas   *CanvasData
	At       *Point
	Children []*Node
}

// CanvasData sizes a vector drawing surface for path children.
type CanvasData struct {
	Width  float64
	Height float64
}

// Tree is the fully resolved output of one render pass, ordered by element
// order. Diagnostics describe every degraded or omitted element.
type Tree struct {
	Nodes       []*Node
	Diagnostics []Diagnostic
}

func newBox(style Style, children ...*Node) *Node {
	return &Node{Kind: NodeBox, Style: style, Children: children}
}

func newText(text string, style Style) *Node {
	return &Node{Kind: NodeText, Style: style, Text: text}
}
