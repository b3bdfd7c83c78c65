// Package query exposes read-side template lookups as go-command queries.
package query

import (
	"github.com/goliatone/go-errors"
)

// GetTemplate requests a single stored template by ID.
type GetTemplate struct {
	ID string
}

func (GetTemplate) Type() string { return "quotedoc:templates:get" }

func (msg GetTemplate) Validate() error {
	if msg.ID == "" {
		return errors.New("template ID is required", errors.CategoryValidation).
			WithTextCode("TEMPLATE_ID_REQUIRED")
	}
	return nil
}

// ListTemplates requests stored templates, optionally filtered by category.
type ListTemplates struct {
	Category string
}

func (ListTemplates) Type() string { return "quotedoc:templates:list" }

func (ListTemplates) Validate() error { return nil }

// ListVariables requests the supported interpolation variable catalog.
type ListVariables struct{}

func (ListVariables) Type() string { return "quotedoc:variables:list" }

func (ListVariables) Validate() error { return nil }
