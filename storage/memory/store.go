package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"player-registry/models"
	"player-registry/storage"
)

// Store keeps players in a map. Used for tests and STORE_BACKEND=memory.
type Store struct {
	mu      sync.RWMutex
	players map[int64]models.Player
	nextID  int64
}

func New() *Store {
	return &Store{
		players: make(map[int64]models.Player),
		nextID:  1,
	}
}

var _ storage.PlayerStore = (*Store)(nil)

func (s *Store) Find(ctx context.Context, filter models.PlayerFilter) ([]models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Player, 0, len(s.players))
	for _, p := range s.players {
		if filter.Matches(p) {
			result = append(result, p)
		}
	}
	slices.SortFunc(result, func(a, b models.Player) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}

func (s *Store) Count(ctx context.Context, filter models.PlayerFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, p := range s.players {
		if filter.Matches(p) {
			n++
		}
	}
	return n, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	if !ok {
		return nil, models.ErrPlayerNotFound
	}
	return &p, nil
}

func (s *Store) Exists(ctx context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.players[id]
	return ok, nil
}

func (s *Store) Save(ctx context.Context, p *models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		p.ID = s.nextID
		s.nextID++
	} else if p.ID >= s.nextID {
		s.nextID = p.ID + 1
	}
	s.players[p.ID] = *p
	return nil
}

func (s *Store) SetLevel(ctx context.Context, id int64, experience, level, untilNext int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[id]
	if !ok || p.Experience != experience {
		return false, nil
	}
	p.Level = level
	p.UntilNextLevel = untilNext
	s.players[id] = p
	return true, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.players, id)
	return nil
}

func (s *Store) Close() error {
	return nil
}

