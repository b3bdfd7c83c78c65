package render

import (
	"context"
	"sort"
	"time"
)

// QRRequest describes one QR code to encode.
type QRRequest struct {
	Content    string
	Size       int
	Margin     int
	Level      string
	Foreground string
	Background string
}

// QREncoder produces an embeddable PNG for a QR request. Encoding is the
// only element step allowed to perform IO, so it takes a context.
type QREncoder interface {
	Encode(ctx context.Context, req QRRequest) ([]byte, error)
}

// QREncoderFunc adapts a function to a QREncoder.
type QREncoderFunc func(ctx context.Context, req QRRequest) ([]byte, error)

func (f QREncoderFunc) Encode(ctx context.Context, req QRRequest) ([]byte, error) {
	if f == nil {
		return nil, NewError(KindNotImpl, "qr encoder func is nil", nil)
	}
	return f(ctx, req)
}

// Renderer resolves template documents into render trees. A Renderer is
// stateless across calls; concurrent renders are safe as long as callers do
// not mutate documents they have submitted.
type Renderer struct {
	QR     QREncoder
	Logger Logger
	Now    func() time.Time
}

// NewRenderer creates a renderer with default dependencies. Without a QR
// encoder, qrCode elements are omitted with a diagnostic.
func NewRenderer() *Renderer {
	return &Renderer{Logger: NopLogger{}, Now: time.Now}
}

func (r *Renderer) logger() Logger {
	if r == nil || r.Logger == nil {
		return NopLogger{}
	}
	return r.Logger
}

func (r *Renderer) now() time.Time {
	if r == nil || r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// RenderDocument resolves every element of doc against rc and returns the
// ordered render tree. Content problems degrade into omitted nodes plus
// diagnostics; an error return means infrastructure failure or context
// cancellation, never bad template data.
func (r *Renderer) RenderDocument(ctx context.Context, doc *Document, rc *RenderContext) (*Tree, error) {
	if doc == nil {
		return nil, NewError(KindValidation, "document is required", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if rc == nil {
		rc = &RenderContext{}
	}

	theme := mergeTheme(doc.Theme)
	diags := &Diagnostics{}
	tree := &Tree{}

	for _, el := range sortedElements(doc.Elements) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		node := r.renderElement(ctx, el, theme, rc, diags)
		if node != nil {
			tree.Nodes = append(tree.Nodes, node)
		}
	}

	tree.Diagnostics = diags.Entries()
	return tree, nil
}

// RenderElement resolves a single element against rc using default theme
// values. A nil node means "omit, reserve no space".
func (r *Renderer) RenderElement(ctx context.Context, el Element, rc *RenderContext) (*Node, []Diagnostic, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if rc == nil {
		rc = &RenderContext{}
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	diags := &Diagnostics{}
	node := r.renderElement(ctx, el, DefaultTheme(), rc, diags)
	return node, diags.Entries(), nil
}

func (r *Renderer) renderElement(ctx context.Context, el Element, theme Theme, rc *RenderContext, diags *Diagnostics) *Node {
	if !Evaluate(el.Conditions, rc, diags) {
		return nil
	}

	p := elementProps(el)
	now := r.now()

	switch el.Type {
	case ElementHeader:
		return r.renderHeader(el, p, theme, rc, now)
	case ElementLogo:
		return r.renderLogo(el, p, rc)
	case ElementTextBlock:
		return r.renderTextBlock(el, p, theme, rc, now)
	case ElementClientDetails:
		return r.renderClientDetails(el, p, theme, rc)
	case ElementTable, ElementItemTable:
		return r.renderItemTable(el, p, theme, rc)
	case ElementSummaryBox:
		return r.renderSummaryBox(el, p, theme, rc)
	case ElementSignature, ElementSignatureAlt:
		return r.renderSignature(el, p, theme)
	case ElementDivider:
		return r.renderDivider(el, p, theme)
	case ElementSpacer:
		return r.renderSpacer(el, p)
	case ElementQRCode:
		return r.renderQRCode(ctx, el, p, theme, rc, diags, now)
	case ElementChart:
		return r.renderChart(el, p, theme, rc, diags)
	default:
		r.logger().Debugf("skipping unknown element type %q", el.Type)
		diags.Warnf(el.ID, "unknown element type %q", el.Type)
		return nil
	}
}

// sortedElements returns elements ordered by ascending Order without
// mutating the input. Order values need not be contiguous; ties keep their
// document order.
func sortedElements(elements []Element) []Element {
	ordered := make([]Element, len(elements))
	copy(ordered, elements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})
	return ordered
}
