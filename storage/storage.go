package storage

import (
	"context"

	"player-registry/models"
)

// PlayerStore persists players. Get returns models.ErrPlayerNotFound for an
// unknown id. Save inserts when p.ID is zero, assigning the new id to p, and
// overwrites the stored record otherwise. SetLevel writes only the derived
// level columns, and only while the stored experience still equals experience;
// it reports whether a record was changed.
type PlayerStore interface {
	Find(ctx context.Context, filter models.PlayerFilter) ([]models.Player, error)
	Count(ctx context.Context, filter models.PlayerFilter) (int64, error)
	Get(ctx context.Context, id int64) (*models.Player, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Save(ctx context.Context, p *models.Player) error
	SetLevel(ctx context.Context, id int64, experience, level, untilNext int) (bool, error)
	Delete(ctx context.Context, id int64) error
	Close() error
}
