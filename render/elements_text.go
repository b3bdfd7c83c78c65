package render

import "time"

func (r *Renderer) renderHeader(el Element, p props, theme Theme, rc *RenderContext, now time.Time) *Node {
	title := interpolateAt(p.str("title", "{{companyName}}"), rc, now)
	subtitle := interpolateAt(p.str("subtitle", ""), rc, now)

	text := newBox(Style{Direction: "column"})
	text.Children = append(text.Children, newText(title, fontStyle(theme.Fonts.Heading, theme.Colors.Primary)))
	if subtitle != "" {
		text.Children = append(text.Children, newText(subtitle, fontStyle(theme.Fonts.Small, theme.Colors.TextSecondary)))
	}

	row := newBox(Style{
		Direction: "row",
		Align:     alignTo(p.str("alignment", "left")),
	})
	row.Children = append(row.Children, text)

	if p.boolean("showLogo", false) {
		if logo := logoImage(p, rc); logo != nil {
			row.Children = append(row.Children, logo)
		}
	}

	container := newBox(Style{Direction: "column", MarginBottom: 12}, row)
	if p.boolean("showBorder", true) {
		container.Style.BorderBottom = "2px solid " + p.str("borderColor", theme.Colors.Primary)
		container.Style.Padding = p.number("padding", 8)
	}
	return container
}

// logoImage resolves the logo asset slot. Asset resolution is external: the
// slot is simply omitted when no URL is available.
func logoImage(p props, rc *RenderContext) *Node {
	url := p.str("logoUrl", "")
	if url == "" && rc != nil && rc.Company != nil {
		url = rc.Company.LogoURL
	}
	if url == "" {
		return nil
	}
	return &Node{
		Kind: NodeImage,
		Image: &ImageData{
			URL:    url,
			Width:  p.number("logoWidth", 80),
			Height: p.number("logoHeight", 40),
			Alt:    "logo",
		},
	}
}

func (r *Renderer) renderLogo(el Element, p props, rc *RenderContext) *Node {
	logo := logoImage(p, rc)
	if logo == nil {
		return nil
	}
	return newBox(Style{
		Direction:    "row",
		Align:        alignTo(p.str("alignment", "left")),
		MarginBottom: 8,
	}, logo)
}

func (r *Renderer) renderTextBlock(el Element, p props, theme Theme, rc *RenderContext, now time.Time) *Node {
	content := interpolateAt(p.str("content", ""), rc, now)
	label := interpolateAt(p.str("label", ""), rc, now)

	block := newBox(Style{Direction: "column", MarginBottom: 8})
	if label != "" {
		labelStyle := fontStyle(theme.Fonts.Small, theme.Colors.TextSecondary)
		labelStyle.FontWeight = 700
		labelStyle.MarginBottom = 2
		block.Children = append(block.Children, newText(label, labelStyle))
	}
	block.Children = append(block.Children, newText(content, fontStyle(theme.Fonts.Body, theme.Colors.TextPrimary)))

	if background := p.str("backgroundColor", ""); background != "" {
		block.Style.Background = background
		block.Style.Padding = p.number("padding", 8)
		block.Style.BorderRadius = p.number("borderRadius", 4)
	}
	if border := p.str("borderColor", ""); border != "" {
		block.Style.Border = "1px solid " + border
		if block.Style.Padding == 0 {
			block.Style.Padding = p.number("padding", 8)
		}
	}
	return block
}

// renderClientDetails renders nothing when the quote has no linked client.
// That gate is data presence, independent of the element's conditions.
func (r *Renderer) renderClientDetails(el Element, p props, theme Theme, rc *RenderContext) *Node {
	if rc == nil || rc.Quote == nil || rc.Quote.Client == nil {
		return nil
	}
	client := rc.Quote.Client

	grid := newBox(Style{Direction: "column", MarginBottom: 8})

	titleStyle := fontStyle(theme.Fonts.Small, theme.Colors.TextSecondary)
	titleStyle.FontWeight = 700
	titleStyle.MarginBottom = 4
	grid.Children = append(grid.Children, newText(p.str("label", "Bill To"), titleStyle))

	rows := []struct {
		label string
		value string
	}{
		{"Name", client.Name},
		{"Email", client.Email},
		{"Phone", client.Phone},
		{"Address", client.Address},
	}
	labelStyle := fontStyle(theme.Fonts.Small, theme.Colors.TextSecondary)
	labelStyle.Width = "25%"
	valueStyle := fontStyle(theme.Fonts.Body, theme.Colors.TextPrimary)
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		grid.Children = append(grid.Children, newBox(Style{Direction: "row"},
			newText(row.label, labelStyle),
			newText(row.value, valueStyle),
		))
	}

	if background := p.str("backgroundColor", ""); background != "" {
		grid.Style.Background = background
		grid.Style.Padding = p.number("padding", 8)
		grid.Style.BorderRadius = p.number("borderRadius", 4)
	}
	return grid
}
