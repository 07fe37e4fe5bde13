package models

import (
	"strings"
	"time"
)

// PlayerFilter is the set of optional criteria a player list is narrowed by.
// Unset criteria never constrain the result.
type PlayerFilter struct {
	Name          Optional[string]
	Title         Optional[string]
	Race          Optional[Race]
	Profession    Optional[Profession]
	Banned        Optional[bool]
	After         Optional[time.Time]
	Before        Optional[time.Time]
	MinExperience Optional[int]
	MaxExperience Optional[int]
	MinLevel      Optional[int]
	MaxLevel      Optional[int]
}

// Matches reports whether p satisfies every set criterion. Stores that cannot
// push the filter down to a query engine evaluate it with this.
func (f PlayerFilter) Matches(p Player) bool {
	if v, ok := f.Name.Get(); ok && !strings.Contains(p.Name, v) {
		return false
	}
	if v, ok := f.Title.Get(); ok && !strings.Contains(p.Title, v) {
		return false
	}
	if v, ok := f.Race.Get(); ok && p.Race != v {
		return false
	}
	if v, ok := f.Profession.Get(); ok && p.Profession != v {
		return false
	}
	if v, ok := f.Banned.Get(); ok && p.Banned != v {
		return false
	}
	if v, ok := f.After.Get(); ok && p.Birthday.Before(v) {
		return false
	}
	if v, ok := f.Before.Get(); ok && p.Birthday.After(v) {
		return false
	}
	if v, ok := f.MinExperience.Get(); ok && p.Experience < v {
		return false
	}
	if v, ok := f.MaxExperience.Get(); ok && p.Experience > v {
		return false
	}
	if v, ok := f.MinLevel.Get(); ok && p.Level < v {
		return false
	}
	if v, ok := f.MaxLevel.Get(); ok && p.Level > v {
		return false
	}
	return true
}
