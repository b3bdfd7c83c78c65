package render

import (
	"strconv"
	"strings"
	"time"
)

// VariableInfo describes one supported template variable. The catalog is a
// public surface for template authors and is generated from the same table
// the resolver dispatches on, so the two cannot drift apart.
type VariableInfo struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// Variable categories as shown in the authoring UI.
const (
	CategoryCompany   = "company"
	CategoryQuote     = "quote"
	CategoryClient    = "client"
	CategoryFinancial = "financial"
	CategoryMetadata  = "metadata"
)

const dateLayout = "Jan 2, 2006"
const timeLayout = "3:04 PM"

type variableDef struct {
	VariableInfo
	resolve func(rc *RenderContext, now time.Time) string
}

func companyField(pick func(*Company) string) func(*RenderContext, time.Time) string {
	return func(rc *RenderContext, _ time.Time) string {
		if rc == nil || rc.Company == nil {
			return ""
		}
		return pick(rc.Company)
	}
}

func quoteField(pick func(*Quote) string) func(*RenderContext, time.Time) string {
	return func(rc *RenderContext, _ time.Time) string {
		if rc == nil || rc.Quote == nil {
			return ""
		}
		return pick(rc.Quote)
	}
}

func clientField(pick func(*Client) string) func(*RenderContext, time.Time) string {
	return func(rc *RenderContext, _ time.Time) string {
		if rc == nil || rc.Quote == nil || rc.Quote.Client == nil {
			return ""
		}
		return pick(rc.Quote.Client)
	}
}

func moneyField(pick func(*Quote) float64) func(*RenderContext, time.Time) string {
	return func(rc *RenderContext, _ time.Time) string {
		if rc == nil || rc.Quote == nil {
			return ""
		}
		return FormatCurrency(pick(rc.Quote))
	}
}

var variableDefs = []variableDef{
	{VariableInfo{"companyName", "Company Name", CategoryCompany, "Issuing company name", "Acme Studio"},
		companyField(func(c *Company) string { return c.Name })},
	{VariableInfo{"companyEmail", "Company Email", CategoryCompany, "Issuing company email address", "hello@acme.test"},
		companyField(func(c *Company) string { return c.Email })},
	{VariableInfo{"companyPhone", "Company Phone", CategoryCompany, "Issuing company phone number", "+1 555 0100"},
		companyField(func(c *Company) string { return c.Phone })},
	{VariableInfo{"companyAddress", "Company Address", CategoryCompany, "Issuing company postal address", "1 Main St, Springfield"},
		companyField(func(c *Company) string { return c.Address })},

	{VariableInfo{"quoteNumber", "Quote Number", CategoryQuote, "Unique quote reference", "Q-2024-0042"},
		quoteField(func(q *Quote) string { return q.Number })},
	{VariableInfo{"quoteTitle", "Quote Title", CategoryQuote, "Quote title or subject", "Website redesign"},
		quoteField(func(q *Quote) string { return q.Title })},
	{VariableInfo{"quoteStatus", "Quote Status", CategoryQuote, "Current quote status", "SENT"},
		quoteField(func(q *Quote) string { return q.Status })},
	{VariableInfo{"quoteDate", "Quote Date", CategoryQuote, "Quote creation date", "Mar 4, 2024"},
		quoteField(func(q *Quote) string {
			if q.CreatedAt.IsZero() {
				return ""
			}
			return q.CreatedAt.Format(dateLayout)
		})},
	{VariableInfo{"validUntil", "Valid Until", CategoryQuote, "Quote expiry date, 30 days after creation", "Apr 3, 2024"},
		quoteField(func(q *Quote) string {
			if q.CreatedAt.IsZero() {
				return ""
			}
			return q.ValidUntil().Format(dateLayout)
		})},

	{VariableInfo{"clientName", "Client Name", CategoryClient, "Client full name", "Jordan Reyes"},
		clientField(func(c *Client) string { return c.Name })},
	{VariableInfo{"clientEmail", "Client Email", CategoryClient, "Client email address", "jordan@example.test"},
		clientField(func(c *Client) string { return c.Email })},
	{VariableInfo{"clientPhone", "Client Phone", CategoryClient, "Client phone number", "+1 555 0199"},
		clientField(func(c *Client) string { return c.Phone })},
	{VariableInfo{"clientAddress", "Client Address", CategoryClient, "Client postal address", "42 Oak Ave, Portland"},
		clientField(func(c *Client) string { return c.Address })},

	{VariableInfo{"subtotal", "Subtotal", CategoryFinancial, "Sum of line totals before the quote discount", "$1,200.00"},
		moneyField(func(q *Quote) float64 { return q.Subtotal() })},
	{VariableInfo{"discount", "Discount", CategoryFinancial, "Quote-level discount amount", "$150.00"},
		moneyField(func(q *Quote) float64 { return q.Discount })},
	{VariableInfo{"tax", "Tax", CategoryFinancial, "Tax amount on the discounted subtotal", "$84.00"},
		moneyField(func(q *Quote) float64 { return q.Tax() })},
	{VariableInfo{"taxRate", "Tax Rate", CategoryFinancial, "Tax rate percentage", "8%"},
		quoteField(func(q *Quote) string { return FormatPercent(q.TaxRate) })},
	{VariableInfo{"grandTotal", "Grand Total", CategoryFinancial, "Amount due", "$1,134.00"},
		moneyField(func(q *Quote) float64 { return q.GrandTotal() })},

	{VariableInfo{"itemCount", "Item Count", CategoryMetadata, "Number of line items on the quote", "5"},
		quoteField(func(q *Quote) string { return strconv.Itoa(len(q.Items)) })},
	{VariableInfo{"categoryCount", "Category Count", CategoryMetadata, "Number of distinct item categories", "2"},
		quoteField(func(q *Quote) string { return strconv.Itoa(len(q.CategoryNames())) })},
	{VariableInfo{"currentDate", "Current Date", CategoryMetadata, "Date the document is rendered", "Mar 4, 2024"},
		func(_ *RenderContext, now time.Time) string { return now.Format(dateLayout) }},
	{VariableInfo{"currentTime", "Current Time", CategoryMetadata, "Time the document is rendered", "2:30 PM"},
		func(_ *RenderContext, now time.Time) string { return now.Format(timeLayout) }},
}

var variableIndex = buildVariableIndex()

func buildVariableIndex() map[string]variableDef {
	index := make(map[string]variableDef, len(variableDefs))
	for _, def := range variableDefs {
		index[strings.ToLower(def.Key)] = def
	}
	return index
}

// Variables returns the catalog of supported variables in declaration order.
func Variables() []VariableInfo {
	infos := make([]VariableInfo, len(variableDefs))
	for i, def := range variableDefs {
		infos[i] = def.VariableInfo
	}
	return infos
}

// IsSupportedVariable reports whether name resolves, matching
// case-insensitively.
func IsSupportedVariable(name string) bool {
	_, ok := variableIndex[strings.ToLower(name)]
	return ok
}
