package testutil

import (
	"io"
	"log/slog"
	"time"

	"player-registry/models"
)

// NopLogger returns a logger that discards all output.
// Use this in tests to avoid log noise.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// Millis returns the epoch milliseconds of midnight UTC on the given date.
func Millis(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).UnixMilli()
}

// ValidInput returns a create payload that passes validation.
func ValidInput(name string, experience int) models.PlayerInput {
	return models.PlayerInput{
		Name:       models.Some(name),
		Title:      models.Some("Wanderer"),
		Race:       models.Some(models.RaceHuman),
		Profession: models.Some(models.ProfessionWarrior),
		Birthday:   models.Some(Millis(2005, time.March, 14)),
		Experience: models.Some(experience),
	}
}
