package services

import (
	"cmp"
	"slices"
	"strings"

	"player-registry/models"
)

const (
	DefaultPageNumber = 0
	DefaultPageSize   = 3
)

// ListQuery selects, orders and pages a player list.
type ListQuery struct {
	Filter     models.PlayerFilter
	Order      models.PlayerOrder
	PageNumber int
	PageSize   int
}

// SortPlayers orders players ascending by the given field, keeping the
// relative order of equal elements. An empty order sorts by id.
func SortPlayers(players []models.Player, order models.PlayerOrder) {
	slices.SortStableFunc(players, comparator(order))
}

func comparator(order models.PlayerOrder) func(a, b models.Player) int {
	switch order {
	case models.OrderName:
		return func(a, b models.Player) int { return strings.Compare(a.Name, b.Name) }
	case models.OrderExperience:
		return func(a, b models.Player) int { return cmp.Compare(a.Experience, b.Experience) }
	case models.OrderBirthday:
		return func(a, b models.Player) int { return a.Birthday.Compare(b.Birthday) }
	case models.OrderLevel:
		return func(a, b models.Player) int { return cmp.Compare(a.Level, b.Level) }
	default:
		return func(a, b models.Player) int { return cmp.Compare(a.ID, b.ID) }
	}
}

// Paginate returns page pageNumber (zero based) of size pageSize. A page past
// the end is empty.
func Paginate(players []models.Player, pageNumber, pageSize int) []models.Player {
	if pageNumber < 0 || pageSize <= 0 {
		return []models.Player{}
	}
	if pageNumber > len(players)/pageSize {
		return []models.Player{}
	}
	skip := pageNumber * pageSize
	if skip >= len(players) {
		return []models.Player{}
	}
	end := min(skip+pageSize, len(players))
	return players[skip:end]
}
