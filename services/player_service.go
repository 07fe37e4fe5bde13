package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"

	"player-registry/models"
	"player-registry/storage"
)

var idPattern = regexp.MustCompile(`^[1-9]\d*$`)

// ParseID accepts only positive decimal ids that fit in an int64.
func ParseID(raw string) (int64, error) {
	if !idPattern.MatchString(raw) {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidID, raw)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidID, raw)
	}
	return id, nil
}

type PlayerService struct {
	store  storage.PlayerStore
	logger *slog.Logger
}

func NewPlayerService(store storage.PlayerStore, logger *slog.Logger) *PlayerService {
	return &PlayerService{store: store, logger: logger}
}

// List returns one sorted page of the players matching q.Filter.
func (s *PlayerService) List(ctx context.Context, q ListQuery) ([]models.Player, error) {
	players, err := s.store.Find(ctx, q.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	SortPlayers(players, q.Order)
	return Paginate(players, q.PageNumber, q.PageSize), nil
}

// Count returns how many players match filter, ignoring paging.
func (s *PlayerService) Count(ctx context.Context, filter models.PlayerFilter) (int64, error) {
	n, err := s.store.Count(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return n, nil
}

func (s *PlayerService) Get(ctx context.Context, id int64) (*models.Player, error) {
	return s.store.Get(ctx, id)
}

func (s *PlayerService) Create(ctx context.Context, in models.PlayerInput) (*models.Player, error) {
	p, err := NewPlayer(in)
	if err != nil {
		return nil, err
	}
	applyLevel(p)

	if err := s.store.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	s.logger.Info("player created",
		slog.Int64("id", p.ID),
		slog.String("name", p.Name),
		slog.Int("level", p.Level),
	)
	return p, nil
}

// Update applies the present fields of in to the stored player. Nothing is
// written unless every present field is valid.
func (s *PlayerService) Update(ctx context.Context, id int64, in models.PlayerInput) (*models.Player, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ApplyPatch(p, in); err != nil {
		return nil, err
	}
	applyLevel(p)

	if err := s.store.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save player %d: %w", id, err)
	}

	s.logger.Info("player updated", slog.Int64("id", p.ID), slog.Int("level", p.Level))
	return p, nil
}

// Delete removes the player and confirms it is gone.
func (s *PlayerService) Delete(ctx context.Context, id int64) error {
	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check player %d: %w", id, err)
	}
	if !exists {
		return models.ErrPlayerNotFound
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete player %d: %w", id, err)
	}

	exists, err = s.store.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to confirm deletion of player %d: %w", id, err)
	}
	if exists {
		return fmt.Errorf("%w: player %d still present after delete", models.ErrPlayerNotFound, id)
	}

	s.logger.Info("player deleted", slog.Int64("id", id))
	return nil
}

// Relevel rewrites level and untilNextLevel for every stored player whose
// values disagree with its experience and returns how many were fixed. Only
// the derived columns are written, and a player whose experience changed since
// it was loaded is left to the write that changed it.
func (s *PlayerService) Relevel(ctx context.Context) (int, error) {
	players, err := s.store.Find(ctx, models.PlayerFilter{})
	if err != nil {
		return 0, fmt.Errorf("failed to load players: %w", err)
	}

	fixed := 0
	for i := range players {
		p := players[i]
		if !levelDrifted(p) {
			continue
		}
		level, untilNext := LevelFor(p.Experience)
		updated, err := s.store.SetLevel(ctx, p.ID, p.Experience, level, untilNext)
		if err != nil {
			return fixed, fmt.Errorf("failed to update level of player %d: %w", p.ID, err)
		}
		if updated {
			fixed++
		}
	}

	if fixed > 0 {
		s.logger.Warn("derived levels corrected", slog.Int("players", fixed))
	}
	return fixed, nil
}

// Snapshot returns every stored player ordered by id.
func (s *PlayerService) Snapshot(ctx context.Context) ([]models.Player, error) {
	players, err := s.store.Find(ctx, models.PlayerFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	SortPlayers(players, models.OrderID)
	return players, nil
}
