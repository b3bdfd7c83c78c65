// Package xlsx exports a quote's line items as an XLSX workbook.
package xlsx

import (
	"context"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-quotedoc/render"
)

const sheetName = "Quote"

var headerLabels = []string{"#", "Description", "Category", "Qty", "Unit", "Rate", "Discount", "Total"}

// WorkbookRenderer renders quote line items into an XLSX workbook with a
// totals block under the item rows.
type WorkbookRenderer struct{}

// Render streams the quote into w.
func (r WorkbookRenderer) Render(ctx context.Context, q *render.Quote, w io.Writer) error {
	if q == nil {
		return render.NewError(render.KindValidation, "quote is required", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	file := excelize.NewFile()
	defer func() {
		_ = file.Close()
	}()

	defaultSheet := file.GetSheetName(0)
	if defaultSheet != sheetName {
		file.SetSheetName(defaultSheet, sheetName)
	}

	stream, err := file.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}

	headerStyle, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	moneyStyle, err := file.NewStyle(&excelize.Style{CustomNumFmt: strPtr(`"$"#,##0.00`)})
	if err != nil {
		return err
	}

	headers := make([]any, len(headerLabels))
	for i, label := range headerLabels {
		headers[i] = excelize.Cell{StyleID: headerStyle, Value: label}
	}
	rowIndex := 1
	if err := stream.SetRow(cellRef(rowIndex), headers); err != nil {
		return err
	}
	rowIndex++

	for i, item := range q.Items {
		if err := ctx.Err(); err != nil {
			return err
		}
		description := item.Description
		if item.Product != nil && item.Product.Name != "" {
			description = item.Product.Name
		}
		category := ""
		if item.Product != nil && item.Product.Category != nil {
			category = item.Product.Category.Name
		}
		row := []any{
			i + 1,
			description,
			category,
			item.Quantity,
			item.Unit,
			excelize.Cell{StyleID: moneyStyle, Value: item.Rate},
			item.Discount / 100,
			excelize.Cell{StyleID: moneyStyle, Value: item.Total()},
		}
		if err := stream.SetRow(cellRef(rowIndex), row); err != nil {
			return err
		}
		rowIndex++
	}

	rowIndex++
	totals := []struct {
		label string
		value float64
	}{
		{"Subtotal", q.Subtotal()},
		{"Discount", -q.Discount},
		{"Tax", q.Tax()},
		{"Grand Total", q.GrandTotal()},
	}
	for _, total := range totals {
		if total.label == "Discount" && q.Discount == 0 {
			continue
		}
		row := []any{
			excelize.Cell{StyleID: headerStyle, Value: total.label},
			nil, nil, nil, nil, nil, nil,
			excelize.Cell{StyleID: moneyStyle, Value: total.value},
		}
		if err := stream.SetRow(cellRef(rowIndex), row); err != nil {
			return err
		}
		rowIndex++
	}

	if err := stream.Flush(); err != nil {
		return err
	}
	return file.Write(w)
}

func cellRef(row int) string {
	return "A" + strconv.Itoa(row)
}

func strPtr(s string) *string { return &s }
