package render

import (
	"math"
	"strconv"
	"strings"
)

// ChartType selects the chart geometry.
type ChartType string

const (
	ChartPie   ChartType = "pie"
	ChartDonut ChartType = "donut"
	ChartBar   ChartType = "bar"
)

// ChartPoint is one chart bucket, derived on the fly from quote line items.
type ChartPoint struct {
	Label      string
	Value      float64
	Percentage float64
}

// DefaultChartPalette is the fixed slice color sequence, reused cyclically
// when the point count exceeds its length.
var DefaultChartPalette = []string{
	"#2563eb", "#10b981", "#f59e0b", "#ef4444",
	"#8b5cf6", "#ec4899", "#14b8a6", "#f97316",
}

// CategoryBreakdown sums each line item's total into its category bucket and
// computes each bucket's share of the grand sum. Returns nil when the quote
// has no items or the sum is zero.
func CategoryBreakdown(q *Quote) []ChartPoint {
	if q == nil || len(q.Items) == 0 {
		return nil
	}

	totals := make(map[string]float64)
	var order []string
	var sum float64
	for _, item := range q.Items {
		name := itemCategoryName(item)
		if _, ok := totals[name]; !ok {
			order = append(order, name)
		}
		total := item.Total()
		totals[name] += total
		sum += total
	}
	if sum == 0 {
		return nil
	}

	points := make([]ChartPoint, len(order))
	for i, name := range order {
		points[i] = ChartPoint{
			Label:      name,
			Value:      totals[name],
			Percentage: totals[name] / sum * 100,
		}
	}
	return points
}

// Slice is one rendered pie or donut wedge.
type Slice struct {
	ChartPoint
	Color string
	Path  string
	Sweep float64
}

const (
	// sliceStartAngle puts the first slice boundary at 12 o'clock.
	sliceStartAngle = -90.0
	// donutHoleRatio is the inner radius as a fraction of the outer.
	donutHoleRatio = 0.6
	// sliceStrokeWidth separates adjacent slices visually.
	sliceStrokeWidth = 2.0
	sliceStroke      = "#ffffff"
)

// PieSlices converts chart points into wedge paths around (cx, cy). Donut
// mode punches an inner hole by tracing the inner arc in the opposite
// winding direction. An empty palette falls back to the default palette.
func PieSlices(points []ChartPoint, cx, cy, radius float64, donut bool, palette []string) []Slice {
	if len(palette) == 0 {
		palette = DefaultChartPalette
	}

	slices := make([]Slice, 0, len(points))
	angle := sliceStartAngle
	for i, point := range points {
		sweep := point.Percentage / 100 * 360
		if sweep <= 0 {
			continue
		}
		end := angle + sweep
		slices = append(slices, Slice{
			ChartPoint: point,
			Color:      palette[i%len(palette)],
			Path:       slicePath(cx, cy, radius, angle, end, donut),
			Sweep:      sweep,
		})
		angle = end
	}
	return slices
}

// fullSweepTolerance treats sweeps this close to 360 degrees as a full
// disc. A single arc whose endpoints coincide fills nothing.
const fullSweepTolerance = 0.01

func slicePath(cx, cy, radius, start, end float64, donut bool) string {
	if end-start >= 360-fullSweepTolerance {
		return discPath(cx, cy, radius, start, donut)
	}

	largeArc := "0"
	if end-start > 180 {
		largeArc = "1"
	}

	ox0, oy0 := arcPoint(cx, cy, radius, start)
	ox1, oy1 := arcPoint(cx, cy, radius, end)

	if !donut {
		return strings.Join([]string{
			"M", coord(cx), coord(cy),
			"L", coord(ox0), coord(oy0),
			"A", coord(radius), coord(radius), "0", largeArc, "1", coord(ox1), coord(oy1),
			"Z",
		}, " ")
	}

	inner := radius * donutHoleRatio
	ix0, iy0 := arcPoint(cx, cy, inner, start)
	ix1, iy1 := arcPoint(cx, cy, inner, end)
	return strings.Join([]string{
		"M", coord(ox0), coord(oy0),
		"A", coord(radius), coord(radius), "0", largeArc, "1", coord(ox1), coord(oy1),
		"L", coord(ix1), coord(iy1),
		"A", coord(inner), coord(inner), "0", largeArc, "0", coord(ix0), coord(iy0),
		"Z",
	}, " ")
}

// discPath draws a complete circle (or ring in donut mode) as two half
// arcs so the path encloses the full area.
func discPath(cx, cy, radius, start float64, donut bool) string {
	ox0, oy0 := arcPoint(cx, cy, radius, start)
	ox1, oy1 := arcPoint(cx, cy, radius, start+180)
	parts := []string{
		"M", coord(ox0), coord(oy0),
		"A", coord(radius), coord(radius), "0", "1", "1", coord(ox1), coord(oy1),
		"A", coord(radius), coord(radius), "0", "1", "1", coord(ox0), coord(oy0),
	}
	if donut {
		inner := radius * donutHoleRatio
		ix0, iy0 := arcPoint(cx, cy, inner, start)
		ix1, iy1 := arcPoint(cx, cy, inner, start+180)
		parts = append(parts,
			"M", coord(ix0), coord(iy0),
			"A", coord(inner), coord(inner), "0", "1", "0", coord(ix1), coord(iy1),
			"A", coord(inner), coord(inner), "0", "1", "0", coord(ix0), coord(iy0),
		)
	}
	parts = append(parts, "Z")
	return strings.Join(parts, " ")
}

func arcPoint(cx, cy, radius, degrees float64) (float64, float64) {
	radians := degrees * math.Pi / 180
	return cx + radius*math.Cos(radians), cy + radius*math.Sin(radians)
}

func coord(value float64) string {
	return strconv.FormatFloat(math.Round(value*100)/100, 'f', -1, 64)
}

// Bar is one rendered bar including its plot rectangle.
type Bar struct {
	ChartPoint
	Color  string
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// barGap separates bars and pads the plot edges.
const barGap = 10.0

// BarLayout lays out N bars over a shared baseline inside width x height.
// Bar width comes from the available width minus N+1 equal gaps; the
// tallest bar spans the full plot height.
func BarLayout(points []ChartPoint, width, height float64, palette []string) []Bar {
	if len(points) == 0 || width <= 0 || height <= 0 {
		return nil
	}
	if len(palette) == 0 {
		palette = DefaultChartPalette
	}

	var maxValue float64
	for _, point := range points {
		if point.Value > maxValue {
			maxValue = point.Value
		}
	}
	if maxValue <= 0 {
		return nil
	}

	n := float64(len(points))
	barWidth := (width - barGap*(n+1)) / n
	if barWidth <= 0 {
		barWidth = width / n
	}

	bars := make([]Bar, len(points))
	for i, point := range points {
		barHeight := point.Value / maxValue * height
		bars[i] = Bar{
			ChartPoint: point,
			Color:      palette[i%len(palette)],
			X:          barGap + float64(i)*(barWidth+barGap),
			Y:          height - barHeight,
			Width:      barWidth,
			Height:     barHeight,
		}
	}
	return bars
}
