package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nationsapi/nations-service/internal/domain"
	"github.com/nationsapi/nations-service/internal/query"
	"github.com/nationsapi/nations-service/internal/repository"
)

type memoryUsers struct {
	mu     sync.Mutex
	byMail map[string]domain.Principal
	nextID int64
	err    error
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byMail: map[string]domain.Principal{}}
}

func (m *memoryUsers) Create(_ context.Context, p *domain.Principal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byMail[p.Email]; ok {
		return repository.ErrDuplicate
	}
	m.nextID++
	p.ID = m.nextID
	p.CreatedAt = time.Now()
	m.byMail[p.Email] = *p
	return nil
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*domain.Principal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.byMail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

type stubNations struct {
	countries []domain.CountryEntry
	languages map[string][]string
	err       error

	lastQuery query.ComposedQuery
	calls     int
}

func (s *stubNations) ListCountries(_ context.Context, q query.ComposedQuery) ([]domain.CountryEntry, error) {
	s.calls++
	s.lastQuery = q
	return s.countries, s.err
}

func (s *stubNations) ListMaxGDPPerCapita(_ context.Context, q query.ComposedQuery) ([]domain.MaxGDPPerCapitaEntry, error) {
	s.calls++
	s.lastQuery = q
	return []domain.MaxGDPPerCapitaEntry{}, s.err
}

func (s *stubNations) ListStats(_ context.Context, q query.ComposedQuery) ([]domain.StatsEntry, error) {
	s.calls++
	s.lastQuery = q
	return []domain.StatsEntry{}, s.err
}

func (s *stubNations) CountryExists(_ context.Context, name string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.languages[name]
	return ok, nil
}

func (s *stubNations) LanguagesOfCountry(_ context.Context, name string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.languages[name], nil
}

var errBackend = errors.New("backend down")
