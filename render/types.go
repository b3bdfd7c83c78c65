package render

import (
	"encoding/json"
	"time"
)

// PageSize is the document page size.
type PageSize string

const (
	PageA4     PageSize = "A4"
	PageLetter PageSize = "Letter"
	PageLegal  PageSize = "Legal"
)

// Orientation is the document page orientation.
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// Margins holds page margins in document units.
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// PageMetadata describes the page geometry of a document.
type PageMetadata struct {
	PageSize    PageSize    `json:"pageSize"`
	Orientation Orientation `json:"orientation"`
	Margins     Margins     `json:"margins"`
}

// Font describes one typographic slot in a theme.
type Font struct {
	Family string  `json:"family"`
	Size   float64 `json:"size"`
	Weight int     `json:"weight"`
}

// Palette holds the theme color set.
type Palette struct {
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	TextPrimary   string `json:"textPrimary"`
	TextSecondary string `json:"textSecondary"`
	Background    string `json:"background"`
}

// FontSet holds the three theme font slots.
type FontSet struct {
	Heading Font `json:"heading"`
	Body    Font `json:"body"`
	Small   Font `json:"small"`
}

// Theme holds document-wide style defaults. Element properties override
// theme values per element.
type Theme struct {
	Colors Palette `json:"colors"`
	Fonts  FontSet `json:"fonts"`
}

// ElementType discriminates template elements.
type ElementType string

const (
	ElementHeader        ElementType = "header"
	ElementLogo          ElementType = "logo"
	ElementTextBlock     ElementType = "textBlock"
	ElementClientDetails ElementType = "clientDetails"
	ElementTable         ElementType = "table"
	ElementItemTable     ElementType = "itemTable"
	ElementSummaryBox    ElementType = "summaryBox"
	ElementSignature     ElementType = "signature"
	ElementSignatureAlt  ElementType = "signatureBlock"
	ElementDivider       ElementType = "divider"
	ElementSpacer        ElementType = "spacer"
	ElementQRCode        ElementType = "qrCode"
	ElementChart         ElementType = "chart"
)

// KnownElementTypes lists every element type the renderer understands.
// Unknown types are tolerated with a warning so newer documents still load.
func KnownElementTypes() []ElementType {
	return []ElementType{
		ElementHeader, ElementLogo, ElementTextBlock, ElementClientDetails,
		ElementTable, ElementItemTable, ElementSummaryBox,
		ElementSignature, ElementSignatureAlt,
		ElementDivider, ElementSpacer, ElementQRCode, ElementChart,
	}
}

// IsKnownElementType reports whether the renderer has a handler for t.
func IsKnownElementType(t ElementType) bool {
	for _, known := range KnownElementTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Position is either automatic flow placement or an explicit point.
// Its JSON form is the literal string "auto" or an {x,y} object.
type Position struct {
	Auto bool
	X    float64
	Y    float64
}

func (p Position) MarshalJSON() ([]byte, error) {
	if p.Auto {
		return json.Marshal("auto")
	}
	return json.Marshal(map[string]float64{"x": p.X, "y": p.Y})
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var literal string
	if err := json.Unmarshal(data, &literal); err == nil {
		if literal != "auto" {
			return NewError(KindValidation, "position string must be \"auto\"", nil)
		}
		*p = Position{Auto: true}
		return nil
	}
	var point struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := json.Unmarshal(data, &point); err != nil {
		return err
	}
	*p = Position{X: point.X, Y: point.Y}
	return nil
}

// Dimension is either the literal "auto" or a positive number.
type Dimension struct {
	Auto  bool
	Value float64
}

func (d Dimension) MarshalJSON() ([]byte, error) {
	if d.Auto {
		return json.Marshal("auto")
	}
	return json.Marshal(d.Value)
}

func (d *Dimension) UnmarshalJSON(data []byte) error {
	var literal string
	if err := json.Unmarshal(data, &literal); err == nil {
		if literal != "auto" {
			return NewError(KindValidation, "dimension string must be \"auto\"", nil)
		}
		*d = Dimension{Auto: true}
		return nil
	}
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*d = Dimension{Value: value}
	return nil
}

// Size holds element dimensions.
type Size struct {
	Width  Dimension `json:"width"`
	Height Dimension `json:"height"`
}

// Element is one visual unit in a template document. The renderer treats
// elements as immutable inputs and never mutates them.
type Element struct {
	ID         string         `json:"id"`
	Type       ElementType    `json:"type"`
	Order      int            `json:"order"`
	Position   Position       `json:"position"`
	Size       Size           `json:"size"`
	Properties map[string]any `json:"properties"`
	Conditions []Condition    `json:"conditions,omitempty"`
}

// Document is the full declarative description of a rendered document.
type Document struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category,omitempty"`
	IsPublic    bool         `json:"isPublic,omitempty"`
	Metadata    PageMetadata `json:"metadata"`
	Theme       Theme        `json:"theme"`
	Elements    []Element    `json:"elements"`
}

// Category is a product grouping.
type Category struct {
	ID   string
	Name string
}

// Product is a sellable item attached to quote line items.
type Product struct {
	ID          string
	Name        string
	Description string
	Unit        string
	Category    *Category
}

// Client is the quote recipient.
type Client struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Company identifies the document issuer.
type Company struct {
	Name    string
	Email   string
	Phone   string
	Address string
	LogoURL string
}

// Clause is an active policy clause attached to a quote.
type Clause struct {
	Title string
	Body  string
}

// LineItem is one priced row of a quote. Discount is a percentage applied
// to this line only.
type LineItem struct {
	Description string
	Quantity    float64
	Unit        string
	Rate        float64
	Discount    float64
	Product     *Product
}

// Total returns the line amount after the line discount.
func (i LineItem) Total() float64 {
	return i.Quantity * i.Rate * (1 - i.Discount/100)
}

// Quote is the fully joined quote aggregate supplied by the data layer.
// Discount is an absolute amount, TaxRate a percentage.
type Quote struct {
	Number    string
	Title     string
	Status    string
	Notes     string
	Discount  float64
	TaxRate   float64
	CreatedAt time.Time
	Client    *Client
	Items     []LineItem
	Clauses   []Clause
}

// quoteValidity is the fixed offset from creation to expiry.
const quoteValidity = 30 * 24 * time.Hour

// ValidUntil returns the quote expiry date.
func (q *Quote) ValidUntil() time.Time {
	return q.CreatedAt.Add(quoteValidity)
}

// Subtotal sums all line totals before the quote-level discount.
func (q *Quote) Subtotal() float64 {
	var sum float64
	for _, item := range q.Items {
		sum += item.Total()
	}
	return sum
}

// Tax returns the tax amount on the discounted subtotal.
func (q *Quote) Tax() float64 {
	return (q.Subtotal() - q.Discount) * q.TaxRate / 100
}

// GrandTotal returns the amount due.
func (q *Quote) GrandTotal() float64 {
	return q.Subtotal() - q.Discount + q.Tax()
}

// CategoryNames returns the distinct category names across line items in
// first-seen order. Items without a category fall under "Uncategorized".
func (q *Quote) CategoryNames() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, item := range q.Items {
		name := itemCategoryName(item)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

func itemCategoryName(item LineItem) string {
	if item.Product != nil && item.Product.Category != nil && item.Product.Category.Name != "" {
		return item.Product.Category.Name
	}
	return "Uncategorized"
}

// RenderContext is the per-render data bundle. It is never persisted and is
// rebuilt for every render pass.
type RenderContext struct {
	Quote    *Quote
	Company  *Company
	Metadata map[string]any
}
