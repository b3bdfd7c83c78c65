package render

import (
	"strconv"
	"strings"
)

// contextTree builds the dotted-path view of a render context. The condition
// evaluator traverses this explicit map form rather than reflecting over the
// typed aggregate, so the set of reachable fields is enumerable.
func contextTree(rc *RenderContext) map[string]any {
	tree := map[string]any{}
	if rc == nil {
		return tree
	}
	if rc.Quote != nil {
		tree["quote"] = quoteTree(rc.Quote)
	}
	if rc.Company != nil {
		tree["company"] = map[string]any{
			"name":    rc.Company.Name,
			"email":   rc.Company.Email,
			"phone":   rc.Company.Phone,
			"address": rc.Company.Address,
			"logoUrl": rc.Company.LogoURL,
		}
	}
	if rc.Metadata != nil {
		tree["metadata"] = rc.Metadata
	}
	return tree
}

func quoteTree(q *Quote) map[string]any {
	tree := map[string]any{
		"number":     q.Number,
		"title":      q.Title,
		"status":     q.Status,
		"notes":      q.Notes,
		"discount":   q.Discount,
		"taxRate":    q.TaxRate,
		"subtotal":   q.Subtotal(),
		"tax":        q.Tax(),
		"grandTotal": q.GrandTotal(),
	}
	if !q.CreatedAt.IsZero() {
		tree["createdAt"] = q.CreatedAt
		tree["validUntil"] = q.ValidUntil()
	}
	if q.Client != nil {
		tree["client"] = map[string]any{
			"name":    q.Client.Name,
			"email":   q.Client.Email,
			"phone":   q.Client.Phone,
			"address": q.Client.Address,
		}
	}
	items := make([]any, len(q.Items))
	for i, item := range q.Items {
		items[i] = itemTree(item)
	}
	tree["items"] = items
	clauses := make([]any, len(q.Clauses))
	for i, clause := range q.Clauses {
		clauses[i] = map[string]any{"title": clause.Title, "body": clause.Body}
	}
	tree["clauses"] = clauses
	return tree
}

func itemTree(item LineItem) map[string]any {
	tree := map[string]any{
		"description": item.Description,
		"quantity":    item.Quantity,
		"unit":        item.Unit,
		"rate":        item.Rate,
		"discount":    item.Discount,
		"total":       item.Total(),
	}
	if item.Product != nil {
		product := map[string]any{
			"id":          item.Product.ID,
			"name":        item.Product.Name,
			"description": item.Product.Description,
			"unit":        item.Product.Unit,
		}
		if item.Product.Category != nil {
			product["categoryId"] = item.Product.Category.ID
			product["category"] = map[string]any{
				"id":   item.Product.Category.ID,
				"name": item.Product.Category.Name,
			}
		}
		tree["product"] = product
	}
	return tree
}

// FieldValue resolves a dotted path against the context. A leading quote,
// company, or metadata segment selects the root explicitly; otherwise the
// quote is the implicit root. Numeric segments index into arrays. Traversal
// returns nil the moment any intermediate is missing or an index is out of
// range; it never fails on absent data.
func FieldValue(path string, rc *RenderContext) any {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	tree := contextTree(rc)
	segments := strings.Split(path, ".")

	var current any
	switch segments[0] {
	case "quote", "company", "metadata":
		current = tree[segments[0]]
		segments = segments[1:]
	default:
		current = tree["quote"]
	}

	for _, segment := range segments {
		if current == nil {
			return nil
		}
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil
			}
			current = node[index]
		default:
			return nil
		}
	}
	return current
}
