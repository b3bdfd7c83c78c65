package templates

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func exportRecord(name string) Record {
	return Record{
		ID:        "11111111-2222-3333-4444-555555555555",
		Name:      name,
		OwnerID:   "user-1",
		IsDefault: true,
		Version:   7,
		CreatedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Document:  *validDocument(),
	}
}

func TestExportOne(t *testing.T) {
	exporter := Exporter{Now: func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}}

	payload, err := exporter.ExportOne(exportRecord("Modern"))
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(payload, &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(envelope["exportVersion"]) != `"1.0"` {
		t.Errorf("exportVersion = %s", envelope["exportVersion"])
	}
	if _, ok := envelope["exportDate"]; !ok {
		t.Error("envelope missing exportDate")
	}
	if _, ok := envelope["template"]; !ok {
		t.Error("envelope missing template")
	}
	if _, ok := envelope["templates"]; ok {
		t.Error("single export must not carry a templates array")
	}
}

func TestExport_StripsStorageFields(t *testing.T) {
	payload, err := Exporter{}.ExportOne(exportRecord("Modern"))
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	text := string(payload)
	for _, leaked := range []string{"11111111-2222", "user-1", "isDefault", "ownerId", `"version"`} {
		if strings.Contains(text, leaked) {
			t.Errorf("export leaked storage field %q", leaked)
		}
	}
}

func TestExport_RecordNameWins(t *testing.T) {
	record := exportRecord("Renamed After Save")
	payload, err := Exporter{}.ExportOne(record)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var envelope Envelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if envelope.Template == nil || envelope.Template.Name != "Renamed After Save" {
		t.Fatalf("template name = %+v", envelope.Template)
	}
}

func TestExportMany(t *testing.T) {
	payload, err := Exporter{}.ExportMany([]Record{exportRecord("A"), exportRecord("B")})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var envelope Envelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if envelope.Template != nil {
		t.Error("batch export must not carry a single template")
	}
	if len(envelope.Templates) != 2 {
		t.Fatalf("templates = %d, want 2", len(envelope.Templates))
	}
	if envelope.Templates[0].Name != "A" || envelope.Templates[1].Name != "B" {
		t.Fatalf("names = %q, %q", envelope.Templates[0].Name, envelope.Templates[1].Name)
	}
	if envelope.ExportVersion != ExportVersion {
		t.Errorf("exportVersion = %q", envelope.ExportVersion)
	}
}

func TestExportMany_Empty(t *testing.T) {
	if _, err := (Exporter{}).ExportMany(nil); err == nil {
		t.Fatal("empty export must fail")
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	payload, err := Exporter{}.ExportOne(exportRecord("Round Trip"))
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	importer, store := testImporter(t)
	report, err := importer.Import(context.Background(), payload, nil)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Imported != 1 {
		t.Fatalf("report = %+v", report)
	}
	record, err := store.Get(context.Background(), report.Results[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if record.Name != "Round Trip" || record.IsDefault {
		t.Fatalf("record = %+v", record)
	}
	if len(record.Document.Elements) != 2 {
		t.Fatalf("elements survived = %d, want 2", len(record.Document.Elements))
	}
}
