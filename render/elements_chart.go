package render

import (
	"context"
	"time"
)

func (r *Renderer) renderChart(el Element, p props, theme Theme, rc *RenderContext, diags *Diagnostics) *Node {
	source := p.str("dataSource", "categories")
	if source != "categories" {
		diags.Warnf(el.ID, "unsupported chart data source %q", source)
		return nil
	}

	var points []ChartPoint
	if rc != nil {
		points = CategoryBreakdown(rc.Quote)
	}
	if len(points) == 0 {
		diags.Warnf(el.ID, "chart has no data points")
		return nil
	}

	palette := chartPalette(p)
	chartType := ChartType(p.str("chartType", string(ChartPie)))
	switch chartType {
	case ChartPie, ChartDonut, ChartBar:
	default:
		chartType = ChartPie
	}

	var canvas *Node
	if chartType == ChartBar {
		canvas = barCanvas(points, p, palette)
	} else {
		canvas = pieCanvas(points, chartType == ChartDonut, p, palette)
	}

	container := newBox(Style{Direction: "row", MarginBottom: 12}, canvas)
	if p.boolean("showLegend", true) {
		container.Children = append(container.Children, chartLegend(points, palette, theme, p.boolean("showPercentages", true)))
	}
	return container
}

func chartPalette(p props) []string {
	raw := p.array("colors")
	if len(raw) == 0 {
		return DefaultChartPalette
	}
	var palette []string
	for _, entry := range raw {
		if color, ok := entry.(string); ok && color != "" {
			palette = append(palette, color)
		}
	}
	if len(palette) == 0 {
		return DefaultChartPalette
	}
	return palette
}

func pieCanvas(points []ChartPoint, donut bool, p props, palette []string) *Node {
	size := p.number("size", 160)
	radius := size/2 - sliceStrokeWidth
	canvas := &Node{
		Kind:   NodeCanvas,
		Canvas: &CanvasData{Width: size, Height: size},
	}
	for _, slice := range PieSlices(points, size/2, size/2, radius, donut, palette) {
		canvas.Children = append(canvas.Children, &Node{
			Kind: NodePath,
			Path: &PathData{
				D:           slice.Path,
				Fill:        slice.Color,
				Stroke:      sliceStroke,
				StrokeWidth: sliceStrokeWidth,
			},
		})
	}
	return canvas
}

func barCanvas(points []ChartPoint, p props, palette []string) *Node {
	width := p.number("width", 220)
	height := p.number("height", 140)
	labelGutter := 0.0
	showValues := p.boolean("showValues", true)
	if showValues {
		labelGutter = 14
	}

	canvas := &Node{
		Kind:   NodeCanvas,
		Canvas: &CanvasData{Width: width, Height: height + labelGutter},
	}
	for _, bar := range BarLayout(points, width, height, palette) {
		canvas.Children = append(canvas.Children, &Node{
			Kind: NodePath,
			Path: &PathData{D: rectPath(bar.X, bar.Y+labelGutter, bar.Width, bar.Height), Fill: bar.Color},
		})
		if showValues {
			canvas.Children = append(canvas.Children, &Node{
				Kind:  NodeText,
				Text:  FormatCurrency(bar.Value),
				Style: Style{FontSize: 8},
				At:    &Point{X: bar.X + bar.Width/2, Y: bar.Y + labelGutter - 4},
			})
		}
	}
	return canvas
}

func rectPath(x, y, width, height float64) string {
	return "M " + coord(x) + " " + coord(y) +
		" h " + coord(width) +
		" v " + coord(height) +
		" h " + coord(-width) +
		" Z"
}

func chartLegend(points []ChartPoint, palette []string, theme Theme, showPercentages bool) *Node {
	legend := newBox(Style{Direction: "column", Padding: 8})
	entryStyle := fontStyle(theme.Fonts.Small, theme.Colors.TextPrimary)
	for i, point := range points {
		swatch := newBox(Style{
			Background: palette[i%len(palette)],
			Width:      "8",
			Height:     8,
		})
		label := point.Label + "  " + FormatCurrency(point.Value)
		if showPercentages {
			label += " (" + FormatPercent(point.Percentage) + ")"
		}
		legend.Children = append(legend.Children, newBox(Style{Direction: "row", Padding: 2},
			swatch,
			newText(label, entryStyle),
		))
	}
	return legend
}

func (r *Renderer) renderQRCode(ctx context.Context, el Element, p props, theme Theme, rc *RenderContext, diags *Diagnostics, now time.Time) *Node {
	content := interpolateAt(p.str("content", ""), rc, now)
	if content == "" {
		diags.Warnf(el.ID, "qr code has no content")
		return nil
	}
	if r == nil || r.QR == nil {
		diags.Warnf(el.ID, "qr encoder not configured")
		return nil
	}

	level := p.str("errorCorrection", "M")
	switch level {
	case "L", "M", "Q", "H":
	default:
		level = "M"
	}

	size := int(p.number("size", 120))
	png, err := r.QR.Encode(ctx, QRRequest{
		Content:    content,
		Size:       size,
		Margin:     int(p.number("margin", 2)),
		Level:      level,
		Foreground: p.str("foreground", "#000000"),
		Background: p.str("background", "#ffffff"),
	})
	if err != nil {
		// Encoding failure omits this element; siblings are unaffected.
		r.logger().Errorf("qr encode failed: %v", err)
		diags.Warnf(el.ID, "qr encoding failed: %v", err)
		return nil
	}

	container := newBox(Style{
		Direction: "column",
		Align:     alignTo(p.str("alignment", "left")),
	})
	container.Children = append(container.Children, &Node{
		Kind:  NodeImage,
		Image: &ImageData{PNG: png, Width: float64(size), Height: float64(size), Alt: "qr code"},
	})
	if caption := interpolateAt(p.str("label", ""), rc, now); caption != "" {
		container.Children = append(container.Children, newText(caption, fontStyle(theme.Fonts.Small, theme.Colors.TextSecondary)))
	}
	return container
}
