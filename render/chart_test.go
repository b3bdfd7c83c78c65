package render

import (
	"math"
	"strings"
	"testing"
)

func TestCategoryBreakdown(t *testing.T) {
	q := testQuote()
	points := CategoryBreakdown(q)
	if len(points) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(points))
	}
	if points[0].Label != "Design" || points[0].Value != 800 {
		t.Errorf("design bucket = %+v", points[0])
	}
	if points[1].Label != "Development" || points[1].Value != 1200 {
		t.Errorf("development bucket = %+v", points[1])
	}

	var total float64
	for _, point := range points {
		total += point.Percentage
	}
	if math.Abs(total-100) > 1e-9 {
		t.Fatalf("percentages sum to %v, want 100", total)
	}
}

func TestCategoryBreakdown_EmptyOrZero(t *testing.T) {
	if points := CategoryBreakdown(nil); points != nil {
		t.Fatal("nil quote should yield no points")
	}
	if points := CategoryBreakdown(&Quote{}); points != nil {
		t.Fatal("no items should yield no points")
	}
	zero := &Quote{Items: []LineItem{{Quantity: 1, Rate: 0}}}
	if points := CategoryBreakdown(zero); points != nil {
		t.Fatal("zero sum should yield no points")
	}
}

func TestCategoryBreakdown_UncategorizedBucket(t *testing.T) {
	q := &Quote{Items: []LineItem{{Quantity: 1, Rate: 100}}}
	points := CategoryBreakdown(q)
	if len(points) != 1 || points[0].Label != "Uncategorized" {
		t.Fatalf("got %+v", points)
	}
}

func TestPieSlices_SweepSumsToFullCircle(t *testing.T) {
	points := []ChartPoint{
		{Label: "a", Value: 10, Percentage: 25},
		{Label: "b", Value: 10, Percentage: 25},
		{Label: "c", Value: 20, Percentage: 50},
	}
	slices := PieSlices(points, 100, 100, 80, false, nil)
	if len(slices) != 3 {
		t.Fatalf("expected 3 slices, got %d", len(slices))
	}
	var sweep float64
	for _, slice := range slices {
		sweep += slice.Sweep
	}
	if math.Abs(sweep-360) > 1e-9 {
		t.Fatalf("sweep sum = %v, want 360", sweep)
	}
}

func TestPieSlices_LargeArcFlag(t *testing.T) {
	points := []ChartPoint{
		{Label: "big", Value: 3, Percentage: 75},
		{Label: "small", Value: 1, Percentage: 25},
	}
	slices := PieSlices(points, 100, 100, 80, false, nil)
	if !strings.Contains(slices[0].Path, " 0 1 1 ") {
		t.Errorf("slice over 180 degrees must set the large-arc flag: %q", slices[0].Path)
	}
	if !strings.Contains(slices[1].Path, " 0 0 1 ") {
		t.Errorf("slice under 180 degrees must clear the large-arc flag: %q", slices[1].Path)
	}
}

func TestPieSlices_DonutTracesInnerArc(t *testing.T) {
	points := []ChartPoint{{Label: "a", Value: 1, Percentage: 100}}
	slices := PieSlices(points, 100, 100, 80, true, nil)
	path := slices[0].Path
	// Inner radius is 60% of the outer, wound in the opposite direction.
	if !strings.Contains(path, "48") {
		t.Errorf("donut path missing inner radius: %q", path)
	}
	if strings.Contains(path, "L "+coord(100.0)+" "+coord(100.0)) {
		t.Errorf("donut path must not pass through the center: %q", path)
	}
	if !strings.HasSuffix(path, "Z") {
		t.Errorf("path must close: %q", path)
	}
}

func TestPieSlices_SingleBucketDrawsFullDisc(t *testing.T) {
	// Every line item in one category collapses to a single 100% slice.
	// A lone arc whose start and end coincide would fill nothing, so the
	// wedge must be emitted as two half arcs.
	points := []ChartPoint{{Label: "Design", Value: 100, Percentage: 100}}

	slices := PieSlices(points, 80, 80, 70, false, nil)
	if len(slices) != 1 {
		t.Fatalf("expected 1 slice, got %d", len(slices))
	}
	want := "M 80 10 A 70 70 0 1 1 80 150 A 70 70 0 1 1 80 10 Z"
	if slices[0].Path != want {
		t.Errorf("pie path = %q, want %q", slices[0].Path, want)
	}

	slices = PieSlices(points, 80, 80, 70, true, nil)
	path := slices[0].Path
	if strings.Count(path, "A ") != 4 {
		t.Errorf("donut disc needs two outer and two inner arcs: %q", path)
	}
	if !strings.Contains(path, "M 80 38 A 42 42 0 1 0 80 122") {
		t.Errorf("donut disc missing reverse-wound inner ring: %q", path)
	}
}

func TestPieSlices_PaletteCyclesAndOverrides(t *testing.T) {
	points := make([]ChartPoint, len(DefaultChartPalette)+1)
	for i := range points {
		points[i] = ChartPoint{Value: 1, Percentage: 100 / float64(len(points))}
	}
	slices := PieSlices(points, 50, 50, 40, false, nil)
	if slices[len(slices)-1].Color != DefaultChartPalette[0] {
		t.Fatal("palette must cycle when point count exceeds its length")
	}

	custom := []string{"#111111", "#222222"}
	slices = PieSlices(points[:3], 50, 50, 40, false, custom)
	if slices[0].Color != "#111111" || slices[2].Color != "#111111" {
		t.Fatal("explicit palette override must be respected and cycled")
	}
}

func TestBarLayout(t *testing.T) {
	points := []ChartPoint{
		{Label: "a", Value: 50},
		{Label: "b", Value: 100},
		{Label: "c", Value: 25},
	}
	bars := BarLayout(points, 220, 140, nil)
	if len(bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(bars))
	}

	wantWidth := (220.0 - barGap*4) / 3
	for _, bar := range bars {
		if math.Abs(bar.Width-wantWidth) > 1e-9 {
			t.Errorf("bar width = %v, want %v", bar.Width, wantWidth)
		}
		if bar.Y+bar.Height != 140 {
			t.Errorf("bar %q not anchored to the baseline", bar.Label)
		}
	}

	if bars[1].Height != 140 {
		t.Errorf("tallest bar should span the full plot height, got %v", bars[1].Height)
	}
	if bars[0].Height != 70 {
		t.Errorf("half-value bar height = %v, want 70", bars[0].Height)
	}
	if bars[0].X >= bars[1].X || bars[1].X >= bars[2].X {
		t.Error("bars must lay out left to right")
	}
}

func TestBarLayout_Degenerate(t *testing.T) {
	if bars := BarLayout(nil, 200, 100, nil); bars != nil {
		t.Fatal("no points should yield no bars")
	}
	points := []ChartPoint{{Value: 0}}
	if bars := BarLayout(points, 200, 100, nil); bars != nil {
		t.Fatal("all-zero values should yield no bars")
	}
}
