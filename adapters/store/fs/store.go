// Package storefs provides filesystem-backed template storage, one JSON
// file per template record.
package storefs

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-quotedoc/render"
	"github.com/goliatone/go-quotedoc/templates"
)

// Store persists template records under a root directory.
type Store struct {
	Root string
}

// NewStore creates a filesystem-backed template store.
func NewStore(root string) *Store {
	return &Store{Root: root}
}

func (s *Store) path(id string) (string, error) {
	if s == nil || s.Root == "" {
		return "", render.NewError(render.KindValidation, "store root is required", nil)
	}
	if id == "" {
		return "", render.NewError(render.KindValidation, "template ID is required", nil)
	}
	// IDs are caller-supplied; keep them from escaping the root.
	cleaned := filepath.Base(filepath.Clean(id))
	if cleaned != id || strings.ContainsAny(id, `/\`) {
		return "", render.NewError(render.KindValidation, "template ID is not a valid file name", nil)
	}
	return filepath.Join(s.Root, id+".json"), nil
}

func (s *Store) Create(ctx context.Context, record templates.Record) error {
	_ = ctx
	target, err := s.path(record.ID)
	if err != nil {
		return err
	}
	if _, err := os.Stat(target); err == nil {
		return render.NewError(render.KindValidation, "template ID already exists", nil)
	}
	if err := os.MkdirAll(s.Root, 0o755); err != nil {
		return render.NewError(render.KindInternal, "create store root", err)
	}
	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return render.NewError(render.KindInternal, "encode template record", err)
	}
	if err := os.WriteFile(target, payload, 0o644); err != nil {
		return render.NewError(render.KindInternal, "write template record", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (templates.Record, error) {
	_ = ctx
	target, err := s.path(id)
	if err != nil {
		return templates.Record{}, err
	}
	payload, err := os.ReadFile(target)
	if errors.Is(err, fs.ErrNotExist) {
		return templates.Record{}, render.NewError(render.KindNotFound, "template not found", err)
	}
	if err != nil {
		return templates.Record{}, render.NewError(render.KindInternal, "read template record", err)
	}
	var record templates.Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return templates.Record{}, render.NewError(render.KindInternal, "decode template record", err)
	}
	return record, nil
}

func (s *Store) List(ctx context.Context) ([]templates.Record, error) {
	if s == nil || s.Root == "" {
		return nil, render.NewError(render.KindValidation, "store root is required", nil)
	}
	entries, err := os.ReadDir(s.Root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, render.NewError(render.KindInternal, "read store root", err)
	}

	var records []templates.Record
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		record, err := s.Get(ctx, strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_ = ctx
	target, err := s.path(id)
	if err != nil {
		return err
	}
	err = os.Remove(target)
	if errors.Is(err, fs.ErrNotExist) {
		return render.NewError(render.KindNotFound, "template not found", err)
	}
	if err != nil {
		return render.NewError(render.KindInternal, "delete template record", err)
	}
	return nil
}
