// Package command exposes document rendering and template transfer as
// go-command messages.
package command

import (
	"github.com/goliatone/go-errors"

	"github.com/goliatone/go-quotedoc/render"
	"github.com/goliatone/go-quotedoc/templates"
)

// RenderDocument resolves a template document against a render context.
type RenderDocument struct {
	Document *render.Document
	Context  *render.RenderContext
	Result   **render.Tree
}

func (RenderDocument) Type() string { return "quotedoc:render" }

func (msg RenderDocument) Validate() error {
	if msg.Document == nil {
		return errors.New("document is required", errors.CategoryValidation).
			WithTextCode("DOCUMENT_REQUIRED")
	}
	return nil
}

// ImportTemplates imports one or many templates from an uploaded payload.
type ImportTemplates struct {
	Payload       []byte
	ExistingNames []string
	Result        *templates.Report
}

func (ImportTemplates) Type() string { return "quotedoc:templates:import" }

func (msg ImportTemplates) Validate() error {
	if len(msg.Payload) == 0 {
		return errors.New("import payload is required", errors.CategoryValidation).
			WithTextCode("PAYLOAD_REQUIRED")
	}
	return nil
}

// ExportTemplates serializes stored templates into an export envelope.
type ExportTemplates struct {
	Records []templates.Record
	Result  *[]byte
}

func (ExportTemplates) Type() string { return "quotedoc:templates:export" }

func (msg ExportTemplates) Validate() error {
	if len(msg.Records) == 0 {
		return errors.New("at least one template is required", errors.CategoryValidation).
			WithTextCode("TEMPLATES_REQUIRED")
	}
	return nil
}
