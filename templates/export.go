package templates

import (
	"encoding/json"
	"time"

	"github.com/goliatone/go-quotedoc/render"
)

// ExportVersion is the current export envelope format version.
const ExportVersion = "1.0"

// Envelope wraps exported templates. Exactly one of Template or Templates
// is set.
type Envelope struct {
	ExportVersion string            `json:"exportVersion"`
	ExportDate    time.Time         `json:"exportDate"`
	Template      *render.Document  `json:"template,omitempty"`
	Templates     []render.Document `json:"templates,omitempty"`
}

// Exporter serializes stored templates for transfer. Storage-specific
// fields (ids, timestamps, ownership, version counters, default flag) never
// leave the system: the envelope carries documents only.
type Exporter struct {
	Now func() time.Time
}

func (e Exporter) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// ExportOne serializes a single template as pretty-printed JSON.
func (e Exporter) ExportOne(record Record) ([]byte, error) {
	doc := exportDocument(record)
	envelope := Envelope{
		ExportVersion: ExportVersion,
		ExportDate:    e.now().UTC(),
		Template:      &doc,
	}
	return json.MarshalIndent(envelope, "", "  ")
}

// ExportMany serializes multiple templates into one envelope.
func (e Exporter) ExportMany(records []Record) ([]byte, error) {
	if len(records) == 0 {
		return nil, render.NewError(render.KindValidation, "no templates to export", nil)
	}
	docs := make([]render.Document, len(records))
	for i, record := range records {
		docs[i] = exportDocument(record)
	}
	envelope := Envelope{
		ExportVersion: ExportVersion,
		ExportDate:    e.now().UTC(),
		Templates:     docs,
	}
	return json.MarshalIndent(envelope, "", "  ")
}

// exportDocument projects a record onto its wire document. The record name
// wins over a stale document name.
func exportDocument(record Record) render.Document {
	doc := record.Document
	if record.Name != "" {
		doc.Name = record.Name
	}
	return doc
}
