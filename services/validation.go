package services

import (
	"fmt"
	"unicode/utf8"

	"player-registry/models"
)

// NewPlayer validates a create payload and builds the player it describes.
// Derived fields are left for the caller.
func NewPlayer(in models.PlayerInput) (*models.Player, error) {
	required := []struct {
		field string
		set   bool
	}{
		{"name", in.Name.IsSet()},
		{"title", in.Title.IsSet()},
		{"race", in.Race.IsSet()},
		{"profession", in.Profession.IsSet()},
		{"birthday", in.Birthday.IsSet()},
		{"experience", in.Experience.IsSet()},
	}
	for _, r := range required {
		if !r.set {
			return nil, fmt.Errorf("%w: %s is required", models.ErrInvalidPlayer, r.field)
		}
	}

	p := &models.Player{}
	if err := applyInput(p, in); err != nil {
		return nil, err
	}
	return p, nil
}

// ApplyPatch validates every present field of in before writing any of them
// to p. On error p is left untouched.
func ApplyPatch(p *models.Player, in models.PlayerInput) error {
	next := *p
	if err := applyInput(&next, in); err != nil {
		return err
	}
	*p = next
	return nil
}

func applyInput(p *models.Player, in models.PlayerInput) error {
	if v, ok := in.Name.Get(); ok {
		if err := checkLength("name", v, models.MaxNameLength); err != nil {
			return err
		}
		p.Name = v
	}
	if v, ok := in.Title.Get(); ok {
		if err := checkLength("title", v, models.MaxTitleLength); err != nil {
			return err
		}
		p.Title = v
	}
	if v, ok := in.Race.Get(); ok {
		if !v.Valid() {
			return invalid("race", "unknown race %q", v)
		}
		p.Race = v
	}
	if v, ok := in.Profession.Get(); ok {
		if !v.Valid() {
			return invalid("profession", "unknown profession %q", v)
		}
		p.Profession = v
	}
	if v, ok := in.Birthday.Get(); ok {
		if v < 0 {
			return invalid("birthday", "must not be before the epoch")
		}
		day := models.DayOf(v)
		if day.Year() < models.MinBirthYear || day.Year() > models.MaxBirthYear {
			return invalid("birthday", "year must be between %d and %d", models.MinBirthYear, models.MaxBirthYear)
		}
		p.Birthday = day
	}
	if v, ok := in.Experience.Get(); ok {
		if v < 0 || v > models.MaxExperience {
			return invalid("experience", "must be between 0 and %d", models.MaxExperience)
		}
		p.Experience = v
	}
	if v, ok := in.Banned.Get(); ok {
		p.Banned = v
	}
	return nil
}

func checkLength(field, v string, max int) error {
	n := utf8.RuneCountInString(v)
	if n == 0 {
		return invalid(field, "must not be empty")
	}
	if n > max {
		return invalid(field, "must be at most %d characters", max)
	}
	return nil
}

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s %s", models.ErrInvalidPlayer, field, fmt.Sprintf(format, args...))
}
