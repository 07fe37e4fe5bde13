// Package sqlstore is the gorm-backed PlayerStore used in production against Postgres.
package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"player-registry/models"
	"player-registry/storage"
)

type Store struct {
	DB *gorm.DB
}

// Open connects to Postgres at dsn.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return New(db), nil
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

var _ storage.PlayerStore = (*Store)(nil)

// Migrate creates or updates the player table.
func (s *Store) Migrate() error {
	if err := s.DB.AutoMigrate(&models.Player{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (s *Store) Find(ctx context.Context, filter models.PlayerFilter) ([]models.Player, error) {
	var players []models.Player
	err := s.DB.WithContext(ctx).
		Scopes(FilterScopes(filter)...).
		Order("id").
		Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}

func (s *Store) Count(ctx context.Context, filter models.PlayerFilter) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).
		Model(&models.Player{}).
		Scopes(FilterScopes(filter)...).
		Count(&n).Error
	return n, err
}

func (s *Store) Get(ctx context.Context, id int64) (*models.Player, error) {
	var p models.Player
	if err := s.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).
		Model(&models.Player{}).
		Where("id = ?", id).
		Count(&n).Error
	return n > 0, err
}

func (s *Store) Save(ctx context.Context, p *models.Player) error {
	if p.ID == 0 {
		return s.DB.WithContext(ctx).Create(p).Error
	}
	return s.DB.WithContext(ctx).Save(p).Error
}

func (s *Store) SetLevel(ctx context.Context, id int64, experience, level, untilNext int) (bool, error) {
	res := s.DB.WithContext(ctx).
		Model(&models.Player{}).
		Where("id = ? AND experience = ?", id, experience).
		Updates(map[string]any{"level": level, "until_next_level": untilNext})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	return s.DB.WithContext(ctx).Delete(&models.Player{}, id).Error
}

func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
