package searchport

import (
	"context"
	"sort"
	"sync"
)

// Fake is an in-memory Port used by producer/loader/service tests,
// following the teacher's interface-fake pattern rather than a mocking
// framework.
type Fake struct {
	mu      sync.Mutex
	indices map[string]map[string][]byte // resource -> id -> body
	Created []string
}

// NewFake returns an empty Fake search backend.
func NewFake() *Fake {
	return &Fake{indices: make(map[string]map[string][]byte)}
}

func (f *Fake) Get(_ context.Context, resource, id string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	docs, ok := f.indices[resource]
	if !ok {
		return nil, false, nil
	}
	body, ok := docs[id]
	return body, ok, nil
}

func (f *Fake) List(ctx context.Context, resource string, pageSize, pageNumber int, sortKey string) ([][]byte, error) {
	f.mu.Lock()
	ids := make([]string, 0, len(f.indices[resource]))
	for id := range f.indices[resource] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	docs := f.indices[resource]
	f.mu.Unlock()

	return paginate(ids, docs, pageSize, pageNumber), nil
}

func (f *Fake) SearchByField(ctx context.Context, resource, field, query string, pageSize, pageNumber int, sortKey string) ([][]byte, error) {
	return f.List(ctx, resource, pageSize, pageNumber, sortKey)
}

func (f *Fake) SearchRaw(ctx context.Context, resource string, query Query, pageSize, pageNumber int, sortKey string) ([][]byte, error) {
	return f.List(ctx, resource, pageSize, pageNumber, sortKey)
}

func (f *Fake) BulkIndex(_ context.Context, resource string, docs []Document) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.indices[resource] == nil {
		f.indices[resource] = make(map[string][]byte)
	}
	for _, d := range docs {
		f.indices[resource][d.ID] = d.Body
	}
	return len(docs), nil
}

func (f *Fake) CreateIndex(_ context.Context, resource string, _ []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.indices[resource] == nil {
		f.indices[resource] = make(map[string][]byte)
	}
	f.Created = append(f.Created, resource)
	return nil
}

func paginate(ids []string, docs map[string][]byte, pageSize, pageNumber int) [][]byte {
	start := offset(pageSize, pageNumber)
	if start >= len(ids) {
		return [][]byte{}
	}
	end := start + pageSize
	if end > len(ids) {
		end = len(ids)
	}
	out := make([][]byte, 0, end-start)
	for _, id := range ids[start:end] {
		out = append(out, docs[id])
	}
	return out
}
