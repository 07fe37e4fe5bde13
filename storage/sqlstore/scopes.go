package sqlstore

import (
	"strings"

	"gorm.io/gorm"

	"player-registry/models"
)

type scope = func(*gorm.DB) *gorm.DB

// FilterScopes turns each set criterion into a parameterized WHERE clause.
// gorm joins successive Where calls with AND.
func FilterScopes(f models.PlayerFilter) []scope {
	var scopes []scope
	if v, ok := f.Name.Get(); ok {
		scopes = append(scopes, contains("name", v))
	}
	if v, ok := f.Title.Get(); ok {
		scopes = append(scopes, contains("title", v))
	}
	if v, ok := f.Race.Get(); ok {
		scopes = append(scopes, where("race = ?", string(v)))
	}
	if v, ok := f.Profession.Get(); ok {
		scopes = append(scopes, where("profession = ?", string(v)))
	}
	if v, ok := f.Banned.Get(); ok {
		scopes = append(scopes, where("banned = ?", v))
	}
	if v, ok := f.After.Get(); ok {
		scopes = append(scopes, where("birthday >= ?", v.UTC()))
	}
	if v, ok := f.Before.Get(); ok {
		scopes = append(scopes, where("birthday <= ?", v.UTC()))
	}
	if v, ok := f.MinExperience.Get(); ok {
		scopes = append(scopes, where("experience >= ?", v))
	}
	if v, ok := f.MaxExperience.Get(); ok {
		scopes = append(scopes, where("experience <= ?", v))
	}
	if v, ok := f.MinLevel.Get(); ok {
		scopes = append(scopes, where("level >= ?", v))
	}
	if v, ok := f.MaxLevel.Get(); ok {
		scopes = append(scopes, where("level <= ?", v))
	}
	return scopes
}

func where(clause string, arg any) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause, arg)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func contains(column, substr string) scope {
	return where(column+` LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(substr)+"%")
}

