package query

import (
	"context"

	"github.com/goliatone/go-errors"

	"github.com/goliatone/go-quotedoc/render"
	"github.com/goliatone/go-quotedoc/templates"
)

// GetTemplateHandler returns a single stored template.
type GetTemplateHandler struct {
	Store templates.Store
}

func NewGetTemplateHandler(store templates.Store) *GetTemplateHandler {
	return &GetTemplateHandler{Store: store}
}

func (h *GetTemplateHandler) Query(ctx context.Context, msg GetTemplate) (templates.Record, error) {
	if h == nil || h.Store == nil {
		return templates.Record{}, errors.New("template store is required", errors.CategoryInternal).
			WithTextCode("STORE_REQUIRED")
	}
	return h.Store.Get(ctx, msg.ID)
}

// ListTemplatesHandler returns stored templates, filtered by category when
// one is given.
type ListTemplatesHandler struct {
	Store templates.Store
}

func NewListTemplatesHandler(store templates.Store) *ListTemplatesHandler {
	return &ListTemplatesHandler{Store: store}
}

func (h *ListTemplatesHandler) Query(ctx context.Context, msg ListTemplates) ([]templates.Record, error) {
	if h == nil || h.Store == nil {
		return nil, errors.New("template store is required", errors.CategoryInternal).
			WithTextCode("STORE_REQUIRED")
	}
	records, err := h.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	if msg.Category == "" {
		return records, nil
	}
	category, _ := templates.NormalizeCategory(msg.Category)
	// List may hand back a shared backing array, so filter into a new slice.
	filtered := make([]templates.Record, 0, len(records))
	for _, record := range records {
		if record.Document.Category == category {
			filtered = append(filtered, record)
		}
	}
	return filtered, nil
}

// ListVariablesHandler returns the variable catalog for template editors.
type ListVariablesHandler struct{}

func NewListVariablesHandler() *ListVariablesHandler {
	return &ListVariablesHandler{}
}

func (h *ListVariablesHandler) Query(ctx context.Context, msg ListVariables) ([]render.VariableInfo, error) {
	_ = ctx
	_ = msg
	return render.Variables(), nil
}
