package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-quotedoc/render"
)

// importSuffix disambiguates imported templates that collide with an
// existing name.
const importSuffix = " (Imported)"

// CandidateResult is the per-template outcome of a batch import.
type CandidateResult struct {
	OriginalName string
	StoredName   string
	ID           string
	Imported     bool
	Errors       []string
	Warnings     []string
}

// Report accumulates per-candidate results so a batch can partially
// succeed.
type Report struct {
	Total    int
	Imported int
	Failed   int
	Results  []CandidateResult
}

// Importer extracts, validates, renames, and persists template documents.
type Importer struct {
	Store       Store
	Logger      render.Logger
	Now         func() time.Time
	IDGenerator func() string
}

// NewImporter creates an importer backed by store.
func NewImporter(store Store) *Importer {
	return &Importer{
		Store:  store,
		Logger: render.NopLogger{},
		Now:    time.Now,
		IDGenerator: func() string {
			return uuid.NewString()
		},
	}
}

func (i *Importer) logger() render.Logger {
	if i == nil || i.Logger == nil {
		return render.NopLogger{}
	}
	return i.Logger
}

func (i *Importer) now() time.Time {
	if i == nil || i.Now == nil {
		return time.Now()
	}
	return i.Now()
}

func (i *Importer) nextID() string {
	if i == nil || i.IDGenerator == nil {
		return uuid.NewString()
	}
	return i.IDGenerator()
}

// Import processes an uploaded payload. The payload may be a single
// template document, an export envelope, or a bare array of documents.
// Candidates persist strictly sequentially so name disambiguation observes
// prior imports within the same batch. existingNames is the caller's list
// of names already in use.
func (i *Importer) Import(ctx context.Context, payload []byte, existingNames []string) (Report, error) {
	if i == nil || i.Store == nil {
		return Report{}, render.NewError(render.KindNotImpl, "importer store is not configured", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	candidates, err := extractCandidates(payload)
	if err != nil {
		return Report{}, err
	}

	taken := make(map[string]struct{}, len(existingNames))
	for _, name := range existingNames {
		taken[strings.ToLower(name)] = struct{}{}
	}

	report := Report{Total: len(candidates)}
	for _, doc := range candidates {
		result := CandidateResult{OriginalName: doc.Name}

		validation := Validate(&doc)
		result.Warnings = validation.Warnings
		if !validation.Valid {
			result.Errors = validation.Errors
			report.Failed++
			report.Results = append(report.Results, result)
			continue
		}

		doc.Category, _ = NormalizeCategory(doc.Category)

		stored := resolveName(doc.Name, taken)
		taken[strings.ToLower(stored)] = struct{}{}
		doc.Name = stored

		now := i.now()
		record := Record{
			ID:        i.nextID(),
			Name:      stored,
			IsDefault: false, // an import must never usurp the system default
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
			Document:  doc,
		}
		if err := i.Store.Create(ctx, record); err != nil {
			i.logger().Errorf("template import %q failed: %v", stored, err)
			result.Errors = append(result.Errors, err.Error())
			report.Failed++
			report.Results = append(report.Results, result)
			continue
		}

		result.StoredName = stored
		result.ID = record.ID
		result.Imported = true
		report.Imported++
		report.Results = append(report.Results, result)
	}
	return report, nil
}

// resolveName appends the import suffix on collision and an incrementing
// numeric disambiguator on repeated collision. Matching is
// case-insensitive.
func resolveName(name string, taken map[string]struct{}) string {
	name = strings.TrimSpace(name)
	if _, clash := taken[strings.ToLower(name)]; !clash {
		return name
	}
	candidate := name + importSuffix
	if _, clash := taken[strings.ToLower(candidate)]; !clash {
		return candidate
	}
	for n := 2; ; n++ {
		candidate = fmt.Sprintf("%s (Imported %d)", name, n)
		if _, clash := taken[strings.ToLower(candidate)]; !clash {
			return candidate
		}
	}
}

// extractCandidates detects the payload shape and pulls out the template
// documents.
func extractCandidates(payload []byte) ([]render.Document, error) {
	trimmed := strings.TrimSpace(string(payload))
	if trimmed == "" {
		return nil, render.NewError(render.KindValidation, "import payload is empty", nil)
	}

	if strings.HasPrefix(trimmed, "[") {
		var docs []render.Document
		if err := json.Unmarshal(payload, &docs); err != nil {
			return nil, render.NewError(render.KindValidation, "invalid template array payload", err)
		}
		if len(docs) == 0 {
			return nil, render.NewError(render.KindValidation, "import payload has no templates", nil)
		}
		return docs, nil
	}

	var envelope Envelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, render.NewError(render.KindValidation, "invalid import payload", err)
	}
	if envelope.Template != nil {
		return []render.Document{*envelope.Template}, nil
	}
	if len(envelope.Templates) > 0 {
		return envelope.Templates, nil
	}

	// Not an envelope: treat the object as a bare template document.
	var doc render.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, render.NewError(render.KindValidation, "invalid template payload", err)
	}
	if doc.Name == "" && doc.Elements == nil {
		return nil, render.NewError(render.KindValidation, "payload does not contain a template", nil)
	}
	return []render.Document{doc}, nil
}
