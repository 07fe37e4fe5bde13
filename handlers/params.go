package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"player-registry/models"
	"player-registry/services"
)

// parseFilter reads the optional filter criteria from the query string.
// Absent parameters leave the matching criterion unset.
func parseFilter(c *fiber.Ctx) (models.PlayerFilter, error) {
	var f models.PlayerFilter

	if v := c.Query("name"); v != "" {
		f.Name = models.Some(v)
	}
	if v := c.Query("title"); v != "" {
		f.Title = models.Some(v)
	}
	if v := c.Query("race"); v != "" {
		race := models.Race(v)
		if !race.Valid() {
			return f, badParam("race", v)
		}
		f.Race = models.Some(race)
	}
	if v := c.Query("profession"); v != "" {
		profession := models.Profession(v)
		if !profession.Valid() {
			return f, badParam("profession", v)
		}
		f.Profession = models.Some(profession)
	}
	if v := c.Query("banned"); v != "" {
		banned, err := strconv.ParseBool(v)
		if err != nil {
			return f, badParam("banned", v)
		}
		f.Banned = models.Some(banned)
	}

	dates := []struct {
		param string
		dst   *models.Optional[time.Time]
	}{
		{"after", &f.After},
		{"before", &f.Before},
	}
	for _, d := range dates {
		ms, ok, err := queryInt64(c, d.param)
		if err != nil {
			return f, err
		}
		if ok {
			*d.dst = models.Some(models.DayOf(ms))
		}
	}

	ints := []struct {
		param string
		dst   *models.Optional[int]
	}{
		{"minExperience", &f.MinExperience},
		{"maxExperience", &f.MaxExperience},
		{"minLevel", &f.MinLevel},
		{"maxLevel", &f.MaxLevel},
	}
	for _, n := range ints {
		v, ok, err := queryInt64(c, n.param)
		if err != nil {
			return f, err
		}
		if ok {
			*n.dst = models.Some(int(v))
		}
	}

	return f, nil
}

// parseListQuery reads the filter plus paging and ordering parameters.
func parseListQuery(c *fiber.Ctx, defaultPageSize int) (services.ListQuery, error) {
	filter, err := parseFilter(c)
	if err != nil {
		return services.ListQuery{}, err
	}

	q := services.ListQuery{
		Filter:     filter,
		Order:      models.OrderID,
		PageNumber: services.DefaultPageNumber,
		PageSize:   defaultPageSize,
	}

	if v := c.Query("order"); v != "" {
		order := models.PlayerOrder(v)
		if !order.Valid() {
			return q, badParam("order", v)
		}
		q.Order = order
	}

	if n, ok, err := queryInt64(c, "pageNumber"); err != nil {
		return q, err
	} else if ok {
		if n < 0 {
			return q, badParam("pageNumber", c.Query("pageNumber"))
		}
		q.PageNumber = int(n)
	}

	if n, ok, err := queryInt64(c, "pageSize"); err != nil {
		return q, err
	} else if ok {
		if n < 1 {
			return q, badParam("pageSize", c.Query("pageSize"))
		}
		q.PageSize = int(n)
	}

	return q, nil
}

func queryInt64(c *fiber.Ctx, param string) (int64, bool, error) {
	v := c.Query(param)
	if v == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, badParam(param, v)
	}
	return n, true, nil
}

func badParam(param, value string) error {
	return fmt.Errorf("%w: %s=%q", models.ErrInvalidQuery, param, value)
}
