// Package storagetest holds the behavior every PlayerStore must share.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"player-registry/models"
	"player-registry/storage"
)

// StoreSuite runs against the store returned by NewStore, which is called
// before every test and must return an empty store.
type StoreSuite struct {
	suite.Suite
	NewStore func() storage.PlayerStore

	store storage.PlayerStore
	ctx   context.Context
}

func (s *StoreSuite) SetupTest() {
	s.store = s.NewStore()
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

func player(name, title string, race models.Race, xp, level int, birthYear int, banned bool) models.Player {
	return models.Player{
		Name:       name,
		Title:      title,
		Race:       race,
		Profession: models.ProfessionRogue,
		Birthday:   time.Date(birthYear, time.June, 15, 0, 0, 0, 0, time.UTC),
		Banned:     banned,
		Experience: xp,
		Level:      level,
	}
}

func (s *StoreSuite) seed() {
	for _, p := range []models.Player{
		player("Aragorn", "King of Gondor", models.RaceHuman, 9000, 12, 2001, false),
		player("Legolas", "Prince_of 100% Mirkwood", models.RaceElf, 5000, 9, 2003, false),
		player("Gimli", "Lord of the Glittering Caves", models.RaceDwarf, 300, 2, 2007, true),
		player("aragorn", "Impostor", models.RaceOrc, 0, 0, 2010, true),
	} {
		s.Require().NoError(s.store.Save(s.ctx, &p))
	}
}

func (s *StoreSuite) TestSaveAssignsIDAndGet() {
	p := player("Frodo", "Ring-bearer", models.RaceHobbit, 100, 1, 2002, false)
	s.Require().NoError(s.store.Save(s.ctx, &p))
	s.Positive(p.ID)

	got, err := s.store.Get(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(p.Name, got.Name)
	s.Equal(p.Title, got.Title)
	s.Equal(p.Race, got.Race)
	s.Equal(p.Profession, got.Profession)
	s.True(p.Birthday.Equal(got.Birthday), "birthday %v != %v", p.Birthday, got.Birthday)
	s.Equal(p.Experience, got.Experience)
	s.Equal(p.Level, got.Level)

	q := player("Sam", "Gardener", models.RaceHobbit, 0, 0, 2002, false)
	s.Require().NoError(s.store.Save(s.ctx, &q))
	s.NotEqual(p.ID, q.ID)
}

func (s *StoreSuite) TestSaveUpdatesExisting() {
	p := player("Frodo", "Ring-bearer", models.RaceHobbit, 100, 1, 2002, false)
	s.Require().NoError(s.store.Save(s.ctx, &p))
	id := p.ID

	p.Title = "Mr Underhill"
	p.Banned = true
	s.Require().NoError(s.store.Save(s.ctx, &p))
	s.Equal(id, p.ID)

	got, err := s.store.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("Mr Underhill", got.Title)
	s.True(got.Banned)

	n, err := s.store.Count(s.ctx, models.PlayerFilter{})
	s.Require().NoError(err)
	s.EqualValues(1, n)
}

func (s *StoreSuite) TestGetNotFound() {
	_, err := s.store.Get(s.ctx, 12345)
	s.ErrorIs(err, models.ErrPlayerNotFound)
}

func (s *StoreSuite) TestExistsAndDelete() {
	p := player("Boromir", "Captain", models.RaceHuman, 100, 1, 2000, false)
	s.Require().NoError(s.store.Save(s.ctx, &p))

	ok, err := s.store.Exists(s.ctx, p.ID)
	s.Require().NoError(err)
	s.True(ok)

	s.Require().NoError(s.store.Delete(s.ctx, p.ID))

	ok, err = s.store.Exists(s.ctx, p.ID)
	s.Require().NoError(err)
	s.False(ok)

	_, err = s.store.Get(s.ctx, p.ID)
	s.ErrorIs(err, models.ErrPlayerNotFound)

	found, err := s.store.Find(s.ctx, models.PlayerFilter{})
	s.Require().NoError(err)
	s.Empty(found)
}

func (s *StoreSuite) TestSetLevelOnlyWritesDerivedColumns() {
	p := player("Frodo", "Ring-bearer", models.RaceHobbit, 2500, 0, 2002, false)
	s.Require().NoError(s.store.Save(s.ctx, &p))

	ok, err := s.store.SetLevel(s.ctx, p.ID, 2500, 6, 300)
	s.Require().NoError(err)
	s.True(ok)

	got, err := s.store.Get(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(6, got.Level)
	s.Equal(300, got.UntilNextLevel)
	s.Equal("Frodo", got.Name)
	s.Equal("Ring-bearer", got.Title)
	s.Equal(2500, got.Experience)
}

func (s *StoreSuite) TestSetLevelSkipsChangedExperience() {
	p := player("Frodo", "Ring-bearer", models.RaceHobbit, 2500, 0, 2002, false)
	s.Require().NoError(s.store.Save(s.ctx, &p))

	p.Name = "Baggins"
	p.Experience = 9000
	p.Level = 12
	s.Require().NoError(s.store.Save(s.ctx, &p))

	ok, err := s.store.SetLevel(s.ctx, p.ID, 2500, 6, 300)
	s.Require().NoError(err)
	s.False(ok)

	got, err := s.store.Get(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("Baggins", got.Name)
	s.Equal(9000, got.Experience)
	s.Equal(12, got.Level)

	ok, err = s.store.SetLevel(s.ctx, 12345, 0, 0, 100)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *StoreSuite) TestFindWithoutFilterReturnsAllByID() {
	s.seed()

	found, err := s.store.Find(s.ctx, models.PlayerFilter{})
	s.Require().NoError(err)
	s.Equal([]string{"Aragorn", "Legolas", "Gimli", "aragorn"}, names(found))
}

func (s *StoreSuite) TestFindFilters() {
	s.seed()

	tests := []struct {
		name   string
		filter models.PlayerFilter
		want   []string
	}{
		{"name substring is case sensitive", models.PlayerFilter{Name: models.Some("ragorn")}, []string{"Aragorn", "aragorn"}},
		{"name exact case", models.PlayerFilter{Name: models.Some("Ara")}, []string{"Aragorn"}},
		{"title with LIKE wildcards is literal", models.PlayerFilter{Title: models.Some("_of 100%")}, []string{"Legolas"}},
		{"percent alone matches only literal percent", models.PlayerFilter{Title: models.Some("%")}, []string{"Legolas"}},
		{"race", models.PlayerFilter{Race: models.Some(models.RaceDwarf)}, []string{"Gimli"}},
		{"profession", models.PlayerFilter{Profession: models.Some(models.ProfessionRogue)}, []string{"Aragorn", "Legolas", "Gimli", "aragorn"}},
		{"banned", models.PlayerFilter{Banned: models.Some(true)}, []string{"Gimli", "aragorn"}},
		{"not banned", models.PlayerFilter{Banned: models.Some(false)}, []string{"Aragorn", "Legolas"}},
		{"experience range", models.PlayerFilter{MinExperience: models.Some(300), MaxExperience: models.Some(5000)}, []string{"Legolas", "Gimli"}},
		{"level range", models.PlayerFilter{MinLevel: models.Some(2), MaxLevel: models.Some(9)}, []string{"Legolas", "Gimli"}},
		{"combined", models.PlayerFilter{Name: models.Some("a"), Banned: models.Some(true), MaxLevel: models.Some(0)}, []string{"aragorn"}},
		{"no match", models.PlayerFilter{Race: models.Some(models.RaceTroll)}, []string{}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			found, err := s.store.Find(s.ctx, tt.filter)
			s.Require().NoError(err)
			s.Equal(tt.want, names(found))

			n, err := s.store.Count(s.ctx, tt.filter)
			s.Require().NoError(err)
			s.EqualValues(len(tt.want), n)
		})
	}
}

func (s *StoreSuite) TestFindBirthdayBounds() {
	s.seed()

	after := models.PlayerFilter{After: models.Some(time.Date(2003, time.June, 15, 0, 0, 0, 0, time.UTC))}
	found, err := s.store.Find(s.ctx, after)
	s.Require().NoError(err)
	s.Equal([]string{"Legolas", "Gimli", "aragorn"}, names(found))

	before := models.PlayerFilter{Before: models.Some(time.Date(2003, time.June, 15, 0, 0, 0, 0, time.UTC))}
	found, err = s.store.Find(s.ctx, before)
	s.Require().NoError(err)
	s.Equal([]string{"Aragorn", "Legolas"}, names(found))

	window := models.PlayerFilter{
		After:  models.Some(time.Date(2002, time.January, 1, 0, 0, 0, 0, time.UTC)),
		Before: models.Some(time.Date(2008, time.January, 1, 0, 0, 0, 0, time.UTC)),
	}
	found, err = s.store.Find(s.ctx, window)
	s.Require().NoError(err)
	s.Equal([]string{"Legolas", "Gimli"}, names(found))
}

func names(players []models.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}
