package customers

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Mock Repository backed by a map. Errors can be injected per operation.
type mockRepository struct {
	mu     sync.Mutex
	rows   map[int64]Customer
	nextID int64

	saveErr   error
	findErr   error
	listErr   error
	updateErr error
	deleteErr error

	saveCalls   int
	updateCalls int
	deleteCalls int
}

func newMockRepository() *mockRepository {
	return &mockRepository{rows: make(map[int64]Customer)}
}

func (m *mockRepository) Save(ctx context.Context, c Customer) (Customer, error) {
	m.mu.Lock()
	m.saveCalls++
	if m.saveErr != nil {
		m.mu.Unlock()
		return Customer{}, m.saveErr
	}
	if c.ID != 0 {
		m.mu.Unlock()
		return m.Update(ctx, c)
	}
	m.nextID++
	c.ID = m.nextID
	m.rows[c.ID] = c
	m.mu.Unlock()
	return c, nil
}

func (m *mockRepository) FindByID(ctx context.Context, id int64) (Customer, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return Customer{}, false, m.findErr
	}
	c, ok := m.rows[id]
	return c, ok, nil
}

func (m *mockRepository) FindAll(ctx context.Context) ([]Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []Customer
	for _, c := range m.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockRepository) Update(ctx context.Context, c Customer) (Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.updateErr != nil {
		return Customer{}, m.updateErr
	}
	if _, ok := m.rows[c.ID]; !ok {
		return Customer{}, fmt.Errorf("update customer %d: %w", c.ID, ErrNoRowsAffected)
	}
	m.rows[c.ID] = c
	return c, nil
}

func (m *mockRepository) UpdateEmail(ctx context.Context, id int64, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.updateErr != nil {
		return m.updateErr
	}
	c, ok := m.rows[id]
	if !ok {
		return fmt.Errorf("update customer %d email: %w", id, ErrNoRowsAffected)
	}
	m.rows[id] = c.WithEmail(email)
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) (bool, error) {
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

var _ Repository = (*mockRepository)(nil)

// Mock Notifier
type published struct {
	topic string
	value any
}

type mockNotifier struct {
	mu     sync.Mutex
	events []published
}

func (m *mockNotifier) Publish(ctx context.Context, topic string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, published{topic: topic, value: value})
}

func (m *mockNotifier) published() []published {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]published(nil), m.events...)
}
