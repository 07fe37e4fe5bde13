package models

import (
	"encoding/json"
	"time"
)

const (
	MaxNameLength  = 12
	MaxTitleLength = 30
	MaxExperience  = 10_000_000
	MinBirthYear   = 2000
	MaxBirthYear   = 3000
)

// Player is a game profile. Level and UntilNextLevel are derived from Experience
// and are rewritten on every save.
type Player struct {
	ID             int64      `gorm:"primaryKey;autoIncrement"`
	Name           string     `gorm:"size:12;not null"`
	Title          string     `gorm:"size:30;not null"`
	Race           Race       `gorm:"size:16;not null;index"`
	Profession     Profession `gorm:"size:16;not null;index"`
	Birthday       time.Time  `gorm:"not null"`
	Banned         bool       `gorm:"not null;default:false"`
	Experience     int        `gorm:"not null;check:experience >= 0"`
	Level          int        `gorm:"not null;index"`
	UntilNextLevel int        `gorm:"not null"`
}

func (Player) TableName() string {
	return "player"
}

// playerJSON is the wire form; birthday travels as epoch milliseconds.
type playerJSON struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Title          string     `json:"title"`
	Race           Race       `json:"race"`
	Profession     Profession `json:"profession"`
	Birthday       int64      `json:"birthday"`
	Banned         bool       `json:"banned"`
	Experience     int        `json:"experience"`
	Level          int        `json:"level"`
	UntilNextLevel int        `json:"untilNextLevel"`
}

func (p Player) MarshalJSON() ([]byte, error) {
	return json.Marshal(playerJSON{
		ID:             p.ID,
		Name:           p.Name,
		Title:          p.Title,
		Race:           p.Race,
		Profession:     p.Profession,
		Birthday:       p.Birthday.UnixMilli(),
		Banned:         p.Banned,
		Experience:     p.Experience,
		Level:          p.Level,
		UntilNextLevel: p.UntilNextLevel,
	})
}

func (p *Player) UnmarshalJSON(data []byte) error {
	var raw playerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Player{
		ID:             raw.ID,
		Name:           raw.Name,
		Title:          raw.Title,
		Race:           raw.Race,
		Profession:     raw.Profession,
		Birthday:       time.UnixMilli(raw.Birthday).UTC(),
		Banned:         raw.Banned,
		Experience:     raw.Experience,
		Level:          raw.Level,
		UntilNextLevel: raw.UntilNextLevel,
	}
	return nil
}

// PlayerInput is a create or update payload. Every field is optional so that a
// missing key and an explicit null can both be told apart from a zero value.
type PlayerInput struct {
	Name       Optional[string]     `json:"name"`
	Title      Optional[string]     `json:"title"`
	Race       Optional[Race]       `json:"race"`
	Profession Optional[Profession] `json:"profession"`
	Birthday   Optional[int64]      `json:"birthday"`
	Banned     Optional[bool]       `json:"banned"`
	Experience Optional[int]        `json:"experience"`
}

// DayOf converts epoch milliseconds to midnight UTC of the same day.
func DayOf(ms int64) time.Time {
	t := time.UnixMilli(ms).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
