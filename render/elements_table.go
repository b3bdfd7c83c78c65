package render

import "strconv"

// tableColumn is one resolved item-table column.
type tableColumn struct {
	Key   string
	Label string
	Width float64
	Align string
}

// defaultTableColumns is the built-in column set applied when the element
// carries no columns property.
func defaultTableColumns() []tableColumn {
	return []tableColumn{
		{Key: "index", Label: "#", Width: 5, Align: "left"},
		{Key: "description", Label: "Description", Width: 40, Align: "left"},
		{Key: "quantity", Label: "Qty", Width: 15, Align: "center"},
		{Key: "rate", Label: "Rate", Width: 20, Align: "right"},
		{Key: "total", Label: "Total", Width: 20, Align: "right"},
	}
}

func resolveTableColumns(p props) []tableColumn {
	raw := p.array("columns")
	if len(raw) == 0 {
		return defaultTableColumns()
	}
	columns := make([]tableColumn, 0, len(raw))
	for _, entry := range raw {
		object, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		cp := props(object)
		column := tableColumn{
			Key:   cp.str("key", ""),
			Label: cp.str("label", ""),
			Width: cp.number("width", 0),
			Align: cp.str("align", "left"),
		}
		if column.Key == "" {
			continue
		}
		if column.Label == "" {
			column.Label = column.Key
		}
		columns = append(columns, column)
	}
	if len(columns) == 0 {
		return defaultTableColumns()
	}
	return columns
}

// itemGroup is one run of items rendered under a shared banner.
type itemGroup struct {
	Name  string
	Items []LineItem
}

func groupItems(q *Quote, byCategory bool) []itemGroup {
	if !byCategory {
		return []itemGroup{{Name: "All Items", Items: q.Items}}
	}
	index := make(map[string]int)
	var groups []itemGroup
	for _, item := range q.Items {
		name := itemCategoryName(item)
		at, ok := index[name]
		if !ok {
			at = len(groups)
			index[name] = at
			groups = append(groups, itemGroup{Name: name})
		}
		groups[at].Items = append(groups[at].Items, item)
	}
	return groups
}

func (r *Renderer) renderItemTable(el Element, p props, theme Theme, rc *RenderContext) *Node {
	if rc == nil || rc.Quote == nil {
		return nil
	}

	columns := resolveTableColumns(p)
	byCategory := p.boolean("showCategoryGroups", false)
	striped := p.boolean("alternateRowColors", true)
	stripeColor := p.str("stripeColor", "#f8fafc")

	table := newBox(Style{Direction: "column", MarginBottom: 12})

	headerRow := newBox(Style{
		Direction:    "row",
		Background:   theme.Colors.Primary,
		Padding:      4,
		BorderRadius: 2,
	})
	headerStyle := fontStyle(theme.Fonts.Small, "#ffffff")
	headerStyle.FontWeight = 700
	for _, column := range columns {
		cell := newText(column.Label, headerStyle)
		cell.Style.Width = percentWidth(column.Width)
		cell.Style.Align = alignTo(column.Align)
		headerRow.Children = append(headerRow.Children, cell)
	}
	table.Children = append(table.Children, headerRow)

	bannerStyle := fontStyle(theme.Fonts.Small, theme.Colors.Primary)
	bannerStyle.FontWeight = 700
	ordinal := 0
	for _, group := range groupItems(rc.Quote, byCategory) {
		if byCategory {
			banner := newBox(Style{
				Direction:  "row",
				Background: theme.Colors.Background,
				Padding:    3,
			}, newText(group.Name, bannerStyle))
			table.Children = append(table.Children, banner)
		}
		for i, item := range group.Items {
			ordinal++
			row := newBox(Style{Direction: "row", Padding: 4})
			if striped && i%2 == 1 {
				row.Style.Background = stripeColor
			}
			for _, column := range columns {
				row.Children = append(row.Children, r.tableCell(column, item, ordinal, theme))
			}
			table.Children = append(table.Children, row)
		}
	}
	return table
}

func percentWidth(width float64) string {
	if width <= 0 {
		return ""
	}
	return strconv.FormatFloat(width, 'f', -1, 64) + "%"
}

// tableCell maps a column key to its computed cell. Unrecognized keys render
// as empty cells.
func (r *Renderer) tableCell(column tableColumn, item LineItem, ordinal int, theme Theme) *Node {
	cellStyle := fontStyle(theme.Fonts.Body, theme.Colors.TextPrimary)
	cellStyle.Width = percentWidth(column.Width)
	cellStyle.Align = alignTo(column.Align)

	text := ""
	switch column.Key {
	case "index", "#":
		text = strconv.Itoa(ordinal)
	case "description", "product", "name":
		cell := newBox(Style{
			Direction: "column",
			Width:     cellStyle.Width,
			Align:     cellStyle.Align,
		})
		name := item.Description
		if item.Product != nil && item.Product.Name != "" {
			name = item.Product.Name
		}
		cell.Children = append(cell.Children, newText(name, fontStyle(theme.Fonts.Body, theme.Colors.TextPrimary)))
		if item.Product != nil && item.Product.Name != "" && item.Description != "" {
			cell.Children = append(cell.Children, newText(item.Description, fontStyle(theme.Fonts.Small, theme.Colors.TextSecondary)))
		}
		return cell
	case "category":
		text = itemCategoryName(item)
	case "quantity", "qty":
		text = FormatQuantity(item.Quantity)
		if unit := itemUnit(item); unit != "" {
			text += " " + unit
		}
	case "rate", "price", "unitPrice":
		text = FormatCurrency(item.Rate)
	case "discount":
		text = FormatPercent(item.Discount)
	case "total", "amount":
		text = FormatCurrency(item.Total())
	}
	return newText(text, cellStyle)
}

func itemUnit(item LineItem) string {
	if item.Unit != "" {
		return item.Unit
	}
	if item.Product != nil {
		return item.Product.Unit
	}
	return ""
}

func (r *Renderer) renderSummaryBox(el Element, p props, theme Theme, rc *RenderContext) *Node {
	if rc == nil || rc.Quote == nil {
		return nil
	}
	q := rc.Quote

	box := newBox(Style{
		Direction:    "column",
		Align:        "flex-end",
		Width:        p.str("width", "40%"),
		MarginBottom: 12,
	})

	labelStyle := fontStyle(theme.Fonts.Body, theme.Colors.TextSecondary)
	valueStyle := fontStyle(theme.Fonts.Body, theme.Colors.TextPrimary)

	row := func(label, value string, ls, vs Style) *Node {
		return newBox(Style{Direction: "row", Padding: 2},
			newText(label, ls),
			newText(value, vs),
		)
	}

	if p.boolean("showSubtotal", true) {
		box.Children = append(box.Children, row("Subtotal", FormatCurrency(q.Subtotal()), labelStyle, valueStyle))
	}
	// A zero discount suppresses its row even when the flag asks for it.
	if p.boolean("showDiscount", true) && q.Discount != 0 {
		box.Children = append(box.Children, row("Discount", "-"+FormatCurrency(q.Discount), labelStyle, valueStyle))
	}
	if p.boolean("showTax", true) {
		box.Children = append(box.Children, row("Tax ("+FormatPercent(q.TaxRate)+")", FormatCurrency(q.Tax()), labelStyle, valueStyle))
	}
	if p.boolean("showGrandTotal", true) {
		grandLabel := fontStyle(theme.Fonts.Heading, theme.Colors.Primary)
		grandLabel.FontSize = theme.Fonts.Body.Size + 2
		grandValue := grandLabel
		total := row("Grand Total", FormatCurrency(q.GrandTotal()), grandLabel, grandValue)
		total.Style.BorderBottom = ""
		total.Style.Border = ""
		total.Style.Padding = 4
		total.Style.MarginTop = 2
		total.Style.Background = p.str("totalBackground", "#f1f5f9")
		box.Children = append(box.Children, total)
	}
	return box
}
