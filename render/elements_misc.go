package render

import "strconv"

const (
	defaultCustomerLabel = "Customer Signature"
	defaultCompanyLabel  = "Company Signature"
)

func (r *Renderer) renderSignature(el Element, p props, theme Theme) *Node {
	labels := p.object("labels")
	customerLabel := labels.str("customer", defaultCustomerLabel)
	companyLabel := labels.str("company", defaultCompanyLabel)
	showDate := p.boolean("showDate", true)

	block := func(label string) *Node {
		column := newBox(Style{Direction: "column", Width: "45%"})
		line := &Node{Kind: NodeRule, Style: Style{
			BorderBottom: "1px solid " + theme.Colors.TextSecondary,
			MarginTop:    24,
			MarginBottom: 4,
		}}
		column.Children = append(column.Children, line)
		column.Children = append(column.Children, newText(label, fontStyle(theme.Fonts.Small, theme.Colors.TextSecondary)))
		if showDate {
			column.Children = append(column.Children, newText("Date:", fontStyle(theme.Fonts.Small, theme.Colors.TextSecondary)))
		}
		return column
	}

	// "dual" renders customer and company blocks side by side; any other
	// layout renders the company block alone.
	if p.str("layout", "dual") == "dual" {
		return newBox(Style{Direction: "row", MarginTop: 16},
			block(customerLabel),
			block(companyLabel),
		)
	}
	return newBox(Style{Direction: "row", MarginTop: 16}, block(companyLabel))
}

func (r *Renderer) renderDivider(el Element, p props, theme Theme) *Node {
	thickness := p.number("thickness", 1)
	color := p.str("color", theme.Colors.Secondary)
	lineStyle := p.str("style", "solid")
	if lineStyle != "dashed" {
		lineStyle = "solid"
	}

	rule := &Node{Kind: NodeRule, Style: Style{
		BorderBottom: strconv.FormatFloat(thickness, 'f', -1, 64) + "px " + lineStyle + " " + color,
		MarginTop:    4,
		MarginBottom: 4,
	}}

	// A fractional width yields a centered short rule.
	if fraction := p.number("width", 1); fraction > 0 && fraction < 1 {
		rule.Style.Width = percentWidth(fraction * 100)
		return newBox(Style{Direction: "row", Align: "center"}, rule)
	}
	return rule
}

// renderSpacer always renders: a spacer is gated by its conditions only,
// never by data presence.
func (r *Renderer) renderSpacer(el Element, p props) *Node {
	return &Node{Kind: NodeGap, Style: Style{Height: p.number("height", 20)}}
}
