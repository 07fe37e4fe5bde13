package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"player-registry/models"
	"player-registry/storage/memory"
	"player-registry/testutil"
)

type PlayerServiceSuite struct {
	suite.Suite
	store   *memory.Store
	service *PlayerService
	ctx     context.Context
}

func TestPlayerServiceSuite(t *testing.T) {
	suite.Run(t, new(PlayerServiceSuite))
}

func (s *PlayerServiceSuite) SetupTest() {
	s.store = memory.New()
	s.service = NewPlayerService(s.store, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *PlayerServiceSuite) create(name string, xp int) *models.Player {
	p, err := s.service.Create(s.ctx, testutil.ValidInput(name, xp))
	s.Require().NoError(err)
	return p
}

func (s *PlayerServiceSuite) TestCreateComputesLevel() {
	p := s.create("Hero", 0)
	s.Positive(p.ID)
	s.Equal(0, p.Level)
	s.Equal(100, p.UntilNextLevel)

	p = s.create("Veteran", 100_000)
	s.Equal(44, p.Level)
	s.Equal(3500, p.UntilNextLevel)

	stored, err := s.service.Get(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(*p, *stored)
}

func (s *PlayerServiceSuite) TestCreateInvalidDoesNotPersist() {
	in := testutil.ValidInput("Hero", 0)
	in.Race = models.None[models.Race]()

	_, err := s.service.Create(s.ctx, in)
	s.ErrorIs(err, models.ErrInvalidPlayer)

	n, err := s.service.Count(s.ctx, models.PlayerFilter{})
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *PlayerServiceSuite) TestGetUnknown() {
	_, err := s.service.Get(s.ctx, 42)
	s.ErrorIs(err, models.ErrPlayerNotFound)
}

func (s *PlayerServiceSuite) TestUpdateRecomputesLevel() {
	p := s.create("Hero", 0)

	updated, err := s.service.Update(s.ctx, p.ID, models.PlayerInput{Experience: models.Some(2500)})
	s.Require().NoError(err)
	s.Equal(2500, updated.Experience)
	s.Equal(6, updated.Level)
	s.Equal(300, updated.UntilNextLevel)
	s.Equal("Hero", updated.Name)

	stored, err := s.service.Get(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(*updated, *stored)
}

func (s *PlayerServiceSuite) TestUpdateRejectedLeavesStoreUnchanged() {
	p := s.create("Hero", 100)

	_, err := s.service.Update(s.ctx, p.ID, models.PlayerInput{
		Title:    models.Some("Brand new title"),
		Birthday: models.Some(testutil.Millis(1990, time.January, 1)),
	})
	s.ErrorIs(err, models.ErrInvalidPlayer)

	stored, err := s.service.Get(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(*p, *stored)
}

func (s *PlayerServiceSuite) TestUpdateUnknown() {
	_, err := s.service.Update(s.ctx, 99, models.PlayerInput{Name: models.Some("Ghost")})
	s.ErrorIs(err, models.ErrPlayerNotFound)
}

func (s *PlayerServiceSuite) TestDelete() {
	p := s.create("Hero", 0)

	s.Require().NoError(s.service.Delete(s.ctx, p.ID))

	_, err := s.service.Get(s.ctx, p.ID)
	s.ErrorIs(err, models.ErrPlayerNotFound)

	s.ErrorIs(s.service.Delete(s.ctx, p.ID), models.ErrPlayerNotFound)
}

func (s *PlayerServiceSuite) TestListFiltersSortsAndPages() {
	s.create("Delta", 5000)
	s.create("Alpha", 100)
	s.create("Charlie", 300)
	s.create("Bravo", 9000)

	page, err := s.service.List(s.ctx, ListQuery{
		Order:      models.OrderName,
		PageNumber: 0,
		PageSize:   3,
	})
	s.Require().NoError(err)
	s.Equal([]string{"Alpha", "Bravo", "Charlie"}, names(page))

	page, err = s.service.List(s.ctx, ListQuery{
		Order:      models.OrderName,
		PageNumber: 1,
		PageSize:   3,
	})
	s.Require().NoError(err)
	s.Equal([]string{"Delta"}, names(page))

	page, err = s.service.List(s.ctx, ListQuery{
		Filter:   models.PlayerFilter{MinExperience: models.Some(300)},
		Order:    models.OrderExperience,
		PageSize: 10,
	})
	s.Require().NoError(err)
	s.Equal([]string{"Charlie", "Delta", "Bravo"}, names(page))
}

func (s *PlayerServiceSuite) TestFilteringNeverGrowsTheResult() {
	s.create("Alpha", 100)
	s.create("Bravo", 9000)
	s.create("Charlie", 300)

	total, err := s.service.Count(s.ctx, models.PlayerFilter{})
	s.Require().NoError(err)
	s.EqualValues(3, total)

	filters := []models.PlayerFilter{
		{Name: models.Some("a")},
		{Race: models.Some(models.RaceElf)},
		{MinLevel: models.Some(1)},
		{Banned: models.Some(false)},
		{After: models.Some(time.Date(2005, time.January, 1, 0, 0, 0, 0, time.UTC))},
	}
	for _, f := range filters {
		n, err := s.service.Count(s.ctx, f)
		s.Require().NoError(err)
		s.LessOrEqual(n, total)
	}
}

func (s *PlayerServiceSuite) TestRelevelFixesDrift() {
	p := s.create("Hero", 2500)

	drifted := *p
	drifted.Level = 99
	drifted.UntilNextLevel = 1
	s.Require().NoError(s.store.Save(s.ctx, &drifted))

	fixed, err := s.service.Relevel(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, fixed)

	stored, err := s.service.Get(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(6, stored.Level)
	s.Equal(300, stored.UntilNextLevel)

	fixed, err = s.service.Relevel(s.ctx)
	s.Require().NoError(err)
	s.Zero(fixed)
}

func (s *PlayerServiceSuite) TestSnapshotOrderedByID() {
	s.create("Bravo", 0)
	s.create("Alpha", 0)

	players, err := s.service.Snapshot(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Bravo", "Alpha"}, names(players))
}

func names(players []models.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}

func TestParseID(t *testing.T) {
	id, err := ParseID("17")
	require.NoError(t, err)
	assert.EqualValues(t, 17, id)

	for _, raw := range []string{"0", "-1", "abc", "", "01", "1.5", " 1", "99999999999999999999"} {
		_, err := ParseID(raw)
		assert.ErrorIs(t, err, models.ErrInvalidID, "id %q", raw)
	}
}

// stuckStore reports every record as still present after deletion.
type stuckStore struct {
	*memory.Store
}

func (stuckStore) Delete(ctx context.Context, id int64) error {
	return nil
}

func TestDeleteReportsNotFoundWhenRecordSurvives(t *testing.T) {
	store := stuckStore{memory.New()}
	svc := NewPlayerService(store, testutil.NopLogger())

	p, err := svc.Create(context.Background(), testutil.ValidInput("Hero", 0))
	require.NoError(t, err)

	err = svc.Delete(context.Background(), p.ID)
	require.ErrorIs(t, err, models.ErrPlayerNotFound)
	assert.Contains(t, err.Error(), "still present")
}

// racingStore runs onFind once, right after the first Find returns, to model
// an API write landing while Relevel works through its loaded records.
type racingStore struct {
	*memory.Store
	onFind func()
}

func (s *racingStore) Find(ctx context.Context, f models.PlayerFilter) ([]models.Player, error) {
	players, err := s.Store.Find(ctx, f)
	if s.onFind != nil {
		hook := s.onFind
		s.onFind = nil
		hook()
	}
	return players, err
}

func TestRelevelKeepsConcurrentUpdate(t *testing.T) {
	ctx := context.Background()
	store := &racingStore{Store: memory.New()}
	svc := NewPlayerService(store, testutil.NopLogger())

	p, err := svc.Create(ctx, testutil.ValidInput("Hero", 2500))
	require.NoError(t, err)

	drifted := *p
	drifted.Level = 99
	require.NoError(t, store.Save(ctx, &drifted))

	store.onFind = func() {
		_, err := svc.Update(ctx, p.ID, models.PlayerInput{
			Name:       models.Some("Renamed"),
			Experience: models.Some(9000),
		})
		require.NoError(t, err)
	}

	fixed, err := svc.Relevel(ctx)
	require.NoError(t, err)
	assert.Zero(t, fixed)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, 9000, got.Experience)
	level, untilNext := LevelFor(9000)
	assert.Equal(t, level, got.Level)
	assert.Equal(t, untilNext, got.UntilNextLevel)
}

func (s *PlayerServiceSuite) TestRelevelLeavesOtherFieldsAlone() {
	p := s.create("Hero", 2500)

	drifted := *p
	drifted.Level = 0
	s.Require().NoError(s.store.Save(s.ctx, &drifted))

	fixed, err := s.service.Relevel(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, fixed)

	stored, err := s.service.Get(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(*p, *stored)
}
