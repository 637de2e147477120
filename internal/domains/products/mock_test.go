package products

import (
	"context"
	"strconv"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mock Repository. The id scheme is pluggable so the same mock stands in
// for either store.
type mockRepository struct {
	mu    sync.Mutex
	rows  map[string]Product
	order []string

	newID   func() string
	validID func(string) bool

	saveErr   error
	findErr   error
	updateErr error
	deleteErr error

	// forceUnmodified makes Update report no change, as when a concurrent
	// delete lands between the lookup and the write.
	forceUnmodified bool
	// onWrite, when set, stands in for store-side normalisation of a row.
	onWrite func(Product) Product

	findCalls   int
	saveCalls   int
	updateCalls int
	deleteCalls int
}

func newSerialMock() *mockRepository {
	var seq int64
	return &mockRepository{
		rows: make(map[string]Product),
		newID: func() string {
			seq++
			return strconv.FormatInt(seq, 10)
		},
		validID: func(id string) bool {
			_, ok := parseSerial(id)
			return ok
		},
	}
}

func newObjectIDMock() *mockRepository {
	return &mockRepository{
		rows:    make(map[string]Product),
		newID:   func() string { return primitive.NewObjectID().Hex() },
		validID: primitive.IsValidObjectID,
	}
}

func (m *mockRepository) ValidID(id string) bool {
	return m.validID(id)
}

func (m *mockRepository) Save(ctx context.Context, p Product) (Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCalls++
	if m.saveErr != nil {
		return Product{}, m.saveErr
	}
	p.ID = m.newID()
	m.rows[p.ID] = p
	m.order = append(m.order, p.ID)
	return p, nil
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (Product, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCalls++
	if m.findErr != nil {
		return Product{}, false, m.findErr
	}
	p, ok := m.rows[id]
	return p, ok, nil
}

func (m *mockRepository) FindAll(ctx context.Context) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []Product
	for _, id := range m.order {
		if p, ok := m.rows[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepository) Update(ctx context.Context, p Product) (Product, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.updateErr != nil {
		return Product{}, false, m.updateErr
	}
	if m.forceUnmodified {
		return Product{}, false, nil
	}
	existing, ok := m.rows[p.ID]
	if !ok || existing.Equal(p) {
		return Product{}, false, nil
	}
	if m.onWrite != nil {
		p = m.onWrite(p)
	}
	m.rows[p.ID] = p
	return p, true, nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls++
	if m.deleteErr != nil {
		return false, m.deleteErr
	}
	if _, ok := m.rows[id]; !ok {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

func (m *mockRepository) storeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findCalls + m.saveCalls + m.updateCalls + m.deleteCalls
}

var _ Repository = (*mockRepository)(nil)
