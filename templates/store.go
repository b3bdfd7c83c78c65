package templates

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-quotedoc/render"
)

// Record is a stored template: the document plus storage bookkeeping the
// export envelope strips.
type Record struct {
	ID        string
	Name      string
	OwnerID   string
	IsDefault bool
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
	Document  render.Document
}

// Store persists template records. Implementations must be safe for
// concurrent use.
type Store interface {
	Create(ctx context.Context, record Record) error
	Get(ctx context.Context, id string) (Record, error)
	List(ctx context.Context) ([]Record, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore is an in-memory Store for tests and previews.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Create(_ context.Context, record Record) error {
	if record.ID == "" {
		return render.NewError(render.KindValidation, "template ID is required", nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.ID]; exists {
		return render.NewError(render.KindValidation, "template ID already exists", nil)
	}
	s.records[record.ID] = record
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return Record{}, render.NewError(render.KindNotFound, "template not found", nil)
	}
	return record, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]Record, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return render.NewError(render.KindNotFound, "template not found", nil)
	}
	delete(s.records, id)
	return nil
}
