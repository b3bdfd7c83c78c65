package storefs

import (
	"context"
	"testing"

	"github.com/goliatone/go-quotedoc/render"
	"github.com/goliatone/go-quotedoc/templates"
)

func testRecord(id, name string) templates.Record {
	return templates.Record{
		ID:      id,
		Name:    name,
		Version: 1,
		Document: render.Document{
			Name:     name,
			Category: "modern",
			Elements: []render.Element{
				{ID: "head", Type: render.ElementHeader, Properties: map[string]any{}},
			},
		},
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	ctx := context.Background()

	if err := store.Create(ctx, testRecord("t-1", "Modern")); err != nil {
		t.Fatalf("create: %v", err)
	}

	record, err := store.Get(ctx, "t-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if record.Name != "Modern" || len(record.Document.Elements) != 1 {
		t.Fatalf("record = %+v", record)
	}

	if err := store.Create(ctx, testRecord("t-1", "Duplicate")); err == nil {
		t.Fatal("duplicate ID must fail")
	}
}

func TestStore_ListSortsByName(t *testing.T) {
	store := NewStore(t.TempDir())
	ctx := context.Background()
	for _, record := range []templates.Record{
		testRecord("t-2", "Zen"),
		testRecord("t-1", "Atlas"),
	} {
		if err := store.Create(ctx, record); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 || records[0].Name != "Atlas" || records[1].Name != "Zen" {
		t.Fatalf("records = %+v", records)
	}
}

func TestStore_ListMissingRoot(t *testing.T) {
	store := NewStore(t.TempDir() + "/never-created")
	records, err := store.List(context.Background())
	if err != nil || records != nil {
		t.Fatalf("missing root should list empty, got %v, %v", records, err)
	}
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(t.TempDir())
	ctx := context.Background()
	if err := store.Create(ctx, testRecord("t-1", "Modern")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Delete(ctx, "t-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, "t-1"); render.KindFromError(err) != render.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStore_RejectsPathEscapes(t *testing.T) {
	store := NewStore(t.TempDir())
	for _, id := range []string{"", "../escape", "a/b", `a\b`} {
		if err := store.Create(context.Background(), testRecord(id, "Evil")); err == nil {
			t.Errorf("id %q must be rejected", id)
		}
	}
}
