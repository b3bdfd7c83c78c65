package render

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func summaryElement(id string, properties map[string]any) Element {
	if properties == nil {
		properties = map[string]any{}
	}
	return Element{ID: id, Type: ElementSummaryBox, Properties: properties}
}

func countRows(node *Node, label string) int {
	if node == nil {
		return 0
	}
	count := 0
	for _, row := range node.Children {
		for _, cell := range row.Children {
			if cell.Kind == NodeText && cell.Text == label {
				count++
			}
		}
	}
	return count
}

func TestRenderSummaryBox_DiscountRow(t *testing.T) {
	r := NewRenderer()
	rc := testContext()

	node, diags, err := r.RenderElement(context.Background(), summaryElement("sum", map[string]any{"showDiscount": true}), rc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if got := countRows(node, "Discount"); got != 1 {
		t.Fatalf("discount 150 should render exactly one discount row, got %d", got)
	}

	rc.Quote.Discount = 0
	node, _, err = r.RenderElement(context.Background(), summaryElement("sum", map[string]any{"showDiscount": true}), rc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := countRows(node, "Discount"); got != 0 {
		t.Fatalf("zero discount should suppress the discount row, got %d", got)
	}
}

func TestRenderSummaryBox_Toggles(t *testing.T) {
	r := NewRenderer()
	node, _, err := r.RenderElement(context.Background(), summaryElement("sum", map[string]any{
		"showSubtotal": false,
		"showTax":      false,
	}), testContext())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if countRows(node, "Subtotal") != 0 {
		t.Error("showSubtotal: false should suppress the subtotal row")
	}
	if countRows(node, "Grand Total") != 1 {
		t.Error("grand total row should remain")
	}
}

func TestRenderDocument_ConditionGatesElement(t *testing.T) {
	r := NewRenderer()
	doc := &Document{Elements: []Element{{
		ID:         "sum",
		Type:       ElementSummaryBox,
		Properties: map[string]any{},
		Conditions: []Condition{{
			Field:    "status",
			Operator: OpIn,
			Value:    []any{"SENT", "ACCEPTED"},
		}},
	}}}

	rc := testContext()
	tree, err := r.RenderDocument(context.Background(), doc, rc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(tree.Nodes) != 1 {
		t.Fatalf("status SENT should render the element, got %d nodes", len(tree.Nodes))
	}

	rc.Quote.Status = "DRAFT"
	tree, err = r.RenderDocument(context.Background(), doc, rc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(tree.Nodes) != 0 {
		t.Fatalf("status DRAFT should omit the element, got %d nodes", len(tree.Nodes))
	}
}

func TestRenderClientDetails_NilClientAlwaysOmitted(t *testing.T) {
	r := NewRenderer()
	rc := testContext()
	rc.Quote.Client = nil

	// A condition that would pass must not resurrect a data-gated element.
	el := Element{
		ID:         "client",
		Type:       ElementClientDetails,
		Properties: map[string]any{},
		Conditions: []Condition{{Field: "status", Operator: OpEquals, Value: "SENT"}},
	}
	node, diags, err := r.RenderElement(context.Background(), el, rc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if node != nil {
		t.Fatal("clientDetails without a client must render nothing")
	}
	if len(diags) != 0 {
		t.Fatalf("missing client is not a diagnostic: %+v", diags)
	}
}

func TestRenderDocument_OrdersByElementOrder(t *testing.T) {
	r := NewRenderer()
	doc := &Document{Elements: []Element{
		{ID: "second", Type: ElementSpacer, Order: 5, Properties: map[string]any{"height": 2.0}},
		{ID: "first", Type: ElementDivider, Order: 1, Properties: map[string]any{}},
	}}

	tree, err := r.RenderDocument(context.Background(), doc, testContext())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(tree.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(tree.Nodes))
	}
	if tree.Nodes[0].Kind != NodeRule || tree.Nodes[1].Kind != NodeGap {
		t.Fatalf("elements must render in ascending order, got %q then %q", tree.Nodes[0].Kind, tree.Nodes[1].Kind)
	}
	if doc.Elements[0].ID != "second" {
		t.Fatal("sorting must not mutate the document")
	}
}

func TestRenderDocument_UnknownTypeWarns(t *testing.T) {
	r := NewRenderer()
	doc := &Document{Elements: []Element{
		{ID: "mystery", Type: "hologram", Properties: map[string]any{}},
		{ID: "gap", Type: ElementSpacer, Properties: map[string]any{}},
	}}

	tree, err := r.RenderDocument(context.Background(), doc, testContext())
	if err != nil {
		t.Fatalf("unknown type must not fail the render: %v", err)
	}
	if len(tree.Nodes) != 1 {
		t.Fatalf("unknown element must be skipped, got %d nodes", len(tree.Nodes))
	}
	if len(tree.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", tree.Diagnostics)
	}
	diag := tree.Diagnostics[0]
	if diag.Level != LevelWarning || diag.ElementID != "mystery" || !strings.Contains(diag.Message, "hologram") {
		t.Fatalf("diagnostic = %+v", diag)
	}
}

func TestRenderDocument_NilDocument(t *testing.T) {
	r := NewRenderer()
	if _, err := r.RenderDocument(context.Background(), nil, testContext()); KindFromError(err) != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRenderDocument_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRenderer()
	doc := &Document{Elements: []Element{{ID: "gap", Type: ElementSpacer, Properties: map[string]any{}}}}
	if _, err := r.RenderDocument(ctx, doc, testContext()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRenderQRCode(t *testing.T) {
	encoded := []QRRequest{}
	r := NewRenderer()
	r.QR = QREncoderFunc(func(ctx context.Context, req QRRequest) ([]byte, error) {
		encoded = append(encoded, req)
		return []byte{0x89, 'P', 'N', 'G'}, nil
	})

	el := Element{ID: "qr", Type: ElementQRCode, Properties: map[string]any{
		"content": "https://example.com/quotes/{{quoteNumber}}",
		"label":   "Scan to view",
	}}
	node, diags, err := r.RenderElement(context.Background(), el, testContext())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if len(encoded) != 1 {
		t.Fatalf("expected one encode call, got %d", len(encoded))
	}
	if encoded[0].Content != "https://example.com/quotes/Q-2024-0042" {
		t.Errorf("content not interpolated: %q", encoded[0].Content)
	}
	if encoded[0].Level != "M" || encoded[0].Size != 120 {
		t.Errorf("defaults not applied: %+v", encoded[0])
	}
	if node == nil || len(node.Children) != 2 {
		t.Fatalf("expected image and caption children, got %+v", node)
	}
	if node.Children[0].Kind != NodeImage || node.Children[0].Image == nil {
		t.Fatal("first child must be the image node")
	}
	if node.Children[1].Text != "Scan to view" {
		t.Errorf("caption = %q", node.Children[1].Text)
	}
}

func TestRenderQRCode_Degraded(t *testing.T) {
	el := Element{ID: "qr", Type: ElementQRCode, Properties: map[string]any{"content": "x"}}

	// No encoder configured.
	node, diags, err := NewRenderer().RenderElement(context.Background(), el, testContext())
	if err != nil || node != nil {
		t.Fatalf("missing encoder must degrade, node=%v err=%v", node, err)
	}
	if len(diags) != 1 {
		t.Fatalf("expected a diagnostic, got %+v", diags)
	}

	// Encoder failure.
	r := NewRenderer()
	r.QR = QREncoderFunc(func(ctx context.Context, req QRRequest) ([]byte, error) {
		return nil, errors.New("boom")
	})
	node, diags, err = r.RenderElement(context.Background(), el, testContext())
	if err != nil || node != nil {
		t.Fatalf("encode failure must degrade, node=%v err=%v", node, err)
	}
	if len(diags) != 1 || !strings.Contains(diags[0].Message, "boom") {
		t.Fatalf("diagnostics = %+v", diags)
	}

	// Empty content after interpolation.
	r.QR = QREncoderFunc(func(ctx context.Context, req QRRequest) ([]byte, error) {
		t.Fatal("encoder must not run for empty content")
		return nil, nil
	})
	empty := Element{ID: "qr", Type: ElementQRCode, Properties: map[string]any{"content": ""}}
	node, diags, _ = r.RenderElement(context.Background(), empty, testContext())
	if node != nil || len(diags) != 1 {
		t.Fatalf("empty content must warn and omit, node=%v diags=%+v", node, diags)
	}
}

func TestRenderChart(t *testing.T) {
	r := NewRenderer()
	el := Element{ID: "chart", Type: ElementChart, Properties: map[string]any{"chartType": "donut"}}
	node, diags, err := r.RenderElement(context.Background(), el, testContext())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if node == nil || len(node.Children) != 2 {
		t.Fatalf("expected canvas and legend, got %+v", node)
	}
	canvas := node.Children[0]
	if canvas.Kind != NodeCanvas {
		t.Fatalf("first child kind = %q", canvas.Kind)
	}
	if len(canvas.Children) != 2 {
		t.Fatalf("two categories should yield two slices, got %d", len(canvas.Children))
	}
	legend := node.Children[1]
	if len(legend.Children) != 2 {
		t.Fatalf("legend should list both categories, got %d", len(legend.Children))
	}
}

func TestRenderChart_NoData(t *testing.T) {
	r := NewRenderer()
	rc := &RenderContext{Quote: &Quote{}}
	el := Element{ID: "chart", Type: ElementChart, Properties: map[string]any{}}
	node, diags, err := r.RenderElement(context.Background(), el, rc)
	if err != nil || node != nil {
		t.Fatalf("empty chart must degrade, node=%v err=%v", node, err)
	}
	if len(diags) != 1 || !strings.Contains(diags[0].Message, "no data") {
		t.Fatalf("diagnostics = %+v", diags)
	}
}

func TestRenderHeader_InterpolatesTitle(t *testing.T) {
	r := NewRenderer()
	el := Element{ID: "head", Type: ElementHeader, Properties: map[string]any{}}
	node, _, err := r.RenderElement(context.Background(), el, testContext())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if node == nil {
		t.Fatal("header must render")
	}
	var found bool
	var walk func(*Node)
	walk = func(n *Node) {
		if n.Kind == NodeText && n.Text == "Acme Studio" {
			found = true
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(node)
	if !found {
		t.Fatal("default header title must resolve to the company name")
	}
}
