package command

import (
	"context"

	gcmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-errors"

	"github.com/goliatone/go-quotedoc/render"
	"github.com/goliatone/go-quotedoc/templates"
)

// DocumentRenderer resolves documents into render trees.
type DocumentRenderer interface {
	RenderDocument(ctx context.Context, doc *render.Document, rc *render.RenderContext) (*render.Tree, error)
}

// TemplateImporter runs the template import pipeline.
type TemplateImporter interface {
	Import(ctx context.Context, payload []byte, existingNames []string) (templates.Report, error)
}

// RenderDocumentHandler handles render requests.
type RenderDocumentHandler struct {
	Renderer DocumentRenderer
}

func NewRenderDocumentHandler(renderer DocumentRenderer) *RenderDocumentHandler {
	return &RenderDocumentHandler{Renderer: renderer}
}

func (h *RenderDocumentHandler) Execute(ctx context.Context, msg RenderDocument) error {
	if h == nil || h.Renderer == nil {
		return errors.New("document renderer is required", errors.CategoryInternal).
			WithTextCode("RENDERER_REQUIRED")
	}
	tree, err := h.Renderer.RenderDocument(ctx, msg.Document, msg.Context)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = tree
	}
	if res := gcmd.ResultFromContext[*render.Tree](ctx); res != nil {
		res.Store(tree)
	}
	return nil
}

// ImportTemplatesHandler handles template imports.
type ImportTemplatesHandler struct {
	Importer TemplateImporter
}

func NewImportTemplatesHandler(importer TemplateImporter) *ImportTemplatesHandler {
	return &ImportTemplatesHandler{Importer: importer}
}

func (h *ImportTemplatesHandler) Execute(ctx context.Context, msg ImportTemplates) error {
	if h == nil || h.Importer == nil {
		return errors.New("template importer is required", errors.CategoryInternal).
			WithTextCode("IMPORTER_REQUIRED")
	}
	report, err := h.Importer.Import(ctx, msg.Payload, msg.ExistingNames)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = report
	}
	if res := gcmd.ResultFromContext[templates.Report](ctx); res != nil {
		res.Store(report)
	}
	return nil
}

// ExportTemplatesHandler handles template exports.
type ExportTemplatesHandler struct {
	Exporter templates.Exporter
}

func NewExportTemplatesHandler(exporter templates.Exporter) *ExportTemplatesHandler {
	return &ExportTemplatesHandler{Exporter: exporter}
}

func (h *ExportTemplatesHandler) Execute(ctx context.Context, msg ExportTemplates) error {
	if h == nil {
		return errors.New("template exporter is required", errors.CategoryInternal).
			WithTextCode("EXPORTER_REQUIRED")
	}
	var payload []byte
	var err error
	if len(msg.Records) == 1 {
		payload, err = h.Exporter.ExportOne(msg.Records[0])
	} else {
		payload, err = h.Exporter.ExportMany(msg.Records)
	}
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = payload
	}
	if res := gcmd.ResultFromContext[[]byte](ctx); res != nil {
		res.Store(payload)
	}
	return nil
}
