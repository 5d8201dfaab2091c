package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mountainops/lifthire/internal/hiring"
)

// Memory is the default in-process applicant store. Records are kept as
// deep copies so callers can only change the store through Put.
type Memory struct {
	mu    sync.RWMutex
	byID  map[string]*hiring.Applicant
	order []string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{byID: make(map[string]*hiring.Applicant)}
}

func (m *Memory) Get(id string) (*hiring.Applicant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return cloneApplicant(a)
}

func (m *Memory) List() (*hiring.Applicants, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := &hiring.Applicants{Items: make([]*hiring.Applicant, 0, len(m.order))}
	for _, id := range m.order {
		copied, err := cloneApplicant(m.byID[id])
		if err != nil {
			return nil, err
		}
		all.Items = append(all.Items, copied)
	}
	return all, nil
}

func (m *Memory) Put(a *hiring.Applicant) error {
	if a == nil || a.ID == "" {
		return fmt.Errorf("applicant id is required")
	}

	copied, err := cloneApplicant(a)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[a.ID]; !exists {
		m.order = append(m.order, a.ID)
	}
	m.byID[a.ID] = copied
	return nil
}

func (m *Memory) Reset(roster []*hiring.Applicant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.byID = make(map[string]*hiring.Applicant, len(roster))
	m.order = m.order[:0]
	for _, a := range roster {
		copied, err := cloneApplicant(a)
		if err != nil {
			return err
		}
		m.byID[a.ID] = copied
		m.order = append(m.order, a.ID)
	}
	return nil
}

func (m *Memory) Close() error { return nil }

// cloneApplicant deep-copies via JSON. Applicant records are small and
// fully serializable, so the round trip is the simplest correct copy.
func cloneApplicant(a *hiring.Applicant) (*hiring.Applicant, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("clone applicant %s: %w", a.ID, err)
	}
	var copied hiring.Applicant
	if err := json.Unmarshal(data, &copied); err != nil {
		return nil, fmt.Errorf("clone applicant %s: %w", a.ID, err)
	}
	return &copied, nil
}
