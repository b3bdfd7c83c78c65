// Package storebun persists template records through uptrace/bun.
package storebun

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-quotedoc/render"
	"github.com/goliatone/go-quotedoc/templates"
)

// Store is a Bun-backed template store.
type Store struct {
	DB *bun.DB
}

// NewStore creates a Bun-backed store.
func NewStore(db *bun.DB) *Store {
	return &Store{DB: db}
}

type recordModel struct {
	bun.BaseModel `bun:"table:quote_templates,alias:qt"`

	ID        string    `bun:"id,pk"`
	Name      string    `bun:"name,notnull"`
	OwnerID   string    `bun:"owner_id"`
	IsDefault bool      `bun:"is_default,notnull,default:false"`
	Version   int       `bun:"version,notnull,default:1"`
	Document  string    `bun:"document,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// EnsureSchema creates the template table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return render.NewError(render.KindNotImpl, "store database not configured", nil)
	}
	_, err := s.DB.NewCreateTable().Model((*recordModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

func (s *Store) Create(ctx context.Context, record templates.Record) error {
	if s == nil || s.DB == nil {
		return render.NewError(render.KindNotImpl, "store database not configured", nil)
	}
	if record.ID == "" {
		return render.NewError(render.KindValidation, "template ID is required", nil)
	}
	model, err := modelFromRecord(record)
	if err != nil {
		return err
	}
	_, err = s.DB.NewInsert().Model(&model).Exec(ctx)
	return err
}

func (s *Store) Get(ctx context.Context, id string) (templates.Record, error) {
	if s == nil || s.DB == nil {
		return templates.Record{}, render.NewError(render.KindNotImpl, "store database not configured", nil)
	}
	var model recordModel
	err := s.DB.NewSelect().Model(&model).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return templates.Record{}, render.NewError(render.KindNotFound, "template not found", nil)
	}
	if err != nil {
		return templates.Record{}, err
	}
	return recordFromModel(model)
}

func (s *Store) List(ctx context.Context) ([]templates.Record, error) {
	if s == nil || s.DB == nil {
		return nil, render.NewError(render.KindNotImpl, "store database not configured", nil)
	}
	var models []recordModel
	if err := s.DB.NewSelect().Model(&models).Order("name ASC").Scan(ctx); err != nil {
		return nil, err
	}
	records := make([]templates.Record, 0, len(models))
	for _, model := range models {
		record, err := recordFromModel(model)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if s == nil || s.DB == nil {
		return render.NewError(render.KindNotImpl, "store database not configured", nil)
	}
	result, err := s.DB.NewDelete().Model((*recordModel)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return render.NewError(render.KindNotFound, "template not found", nil)
	}
	return nil
}

func modelFromRecord(record templates.Record) (recordModel, error) {
	document, err := json.Marshal(record.Document)
	if err != nil {
		return recordModel{}, render.NewError(render.KindInternal, "failed to serialize template document", err)
	}
	return recordModel{
		ID:        record.ID,
		Name:      record.Name,
		OwnerID:   record.OwnerID,
		IsDefault: record.IsDefault,
		Version:   record.Version,
		Document:  string(document),
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

func recordFromModel(model recordModel) (templates.Record, error) {
	var document render.Document
	if model.Document != "" {
		if err := json.Unmarshal([]byte(model.Document), &document); err != nil {
			return templates.Record{}, render.NewError(render.KindInternal, "failed to decode template document", err)
		}
	}
	return templates.Record{
		ID:        model.ID,
		Name:      model.Name,
		OwnerID:   model.OwnerID,
		IsDefault: model.IsDefault,
		Version:   model.Version,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		Document:  document,
	}, nil
}
