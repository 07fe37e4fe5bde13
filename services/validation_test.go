package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"player-registry/models"
	"player-registry/testutil"
)

func TestNewPlayer(t *testing.T) {
	in := testutil.ValidInput("Hero", 0)

	p, err := NewPlayer(in)
	require.NoError(t, err)
	assert.Equal(t, "Hero", p.Name)
	assert.Equal(t, "Wanderer", p.Title)
	assert.Equal(t, models.RaceHuman, p.Race)
	assert.Equal(t, models.ProfessionWarrior, p.Profession)
	assert.Equal(t, time.Date(2005, time.March, 14, 0, 0, 0, 0, time.UTC), p.Birthday)
	assert.False(t, p.Banned, "banned defaults to false")
	assert.Zero(t, p.ID)
}

func TestNewPlayerNormalizesBirthdayToDay(t *testing.T) {
	in := testutil.ValidInput("Hero", 0)
	in.Birthday = models.Some(time.Date(2005, time.March, 14, 17, 30, 0, 0, time.UTC).UnixMilli())

	p, err := NewPlayer(in)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2005, time.March, 14, 0, 0, 0, 0, time.UTC), p.Birthday)
}

func TestNewPlayerRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *models.PlayerInput)
	}{
		{"missing name", func(in *models.PlayerInput) { in.Name = models.None[string]() }},
		{"missing title", func(in *models.PlayerInput) { in.Title = models.None[string]() }},
		{"missing race", func(in *models.PlayerInput) { in.Race = models.None[models.Race]() }},
		{"missing profession", func(in *models.PlayerInput) { in.Profession = models.None[models.Profession]() }},
		{"missing birthday", func(in *models.PlayerInput) { in.Birthday = models.None[int64]() }},
		{"missing experience", func(in *models.PlayerInput) { in.Experience = models.None[int]() }},
		{"empty name", func(in *models.PlayerInput) { in.Name = models.Some("") }},
		{"empty title", func(in *models.PlayerInput) { in.Title = models.Some("") }},
		{"name too long", func(in *models.PlayerInput) { in.Name = models.Some(strings.Repeat("a", 13)) }},
		{"title too long", func(in *models.PlayerInput) { in.Title = models.Some(strings.Repeat("a", 31)) }},
		{"unknown race", func(in *models.PlayerInput) { in.Race = models.Some(models.Race("DRAGON")) }},
		{"unknown profession", func(in *models.PlayerInput) { in.Profession = models.Some(models.Profession("BARD")) }},
		{"negative experience", func(in *models.PlayerInput) { in.Experience = models.Some(-1) }},
		{"experience too high", func(in *models.PlayerInput) { in.Experience = models.Some(models.MaxExperience + 1) }},
		{"negative birthday", func(in *models.PlayerInput) { in.Birthday = models.Some(int64(-1)) }},
		{"birthday before 2000", func(in *models.PlayerInput) { in.Birthday = models.Some(testutil.Millis(1999, time.December, 31)) }},
		{"birthday after 3000", func(in *models.PlayerInput) { in.Birthday = models.Some(testutil.Millis(3001, time.January, 1)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := testutil.ValidInput("Hero", 100)
			tt.mutate(&in)
			p, err := NewPlayer(in)
			assert.ErrorIs(t, err, models.ErrInvalidPlayer)
			assert.Nil(t, p)
		})
	}
}

func TestNewPlayerAcceptsBounds(t *testing.T) {
	in := testutil.ValidInput(strings.Repeat("n", 12), models.MaxExperience)
	in.Title = models.Some(strings.Repeat("t", 30))
	in.Birthday = models.Some(testutil.Millis(3000, time.December, 31))

	_, err := NewPlayer(in)
	assert.NoError(t, err)

	in.Birthday = models.Some(testutil.Millis(2000, time.January, 1))
	in.Name = models.Some("Żółw")
	_, err = NewPlayer(in)
	assert.NoError(t, err, "length counts characters, not bytes")
}

func TestNewPlayerAcceptsWhitespaceText(t *testing.T) {
	in := testutil.ValidInput(" ", 0)
	in.Title = models.Some("   ")

	p, err := NewPlayer(in)
	require.NoError(t, err)
	assert.Equal(t, " ", p.Name)
	assert.Equal(t, "   ", p.Title)
}

func TestApplyPatchOnlyTouchesPresentFields(t *testing.T) {
	p, err := NewPlayer(testutil.ValidInput("Hero", 100))
	require.NoError(t, err)
	before := *p

	err = ApplyPatch(p, models.PlayerInput{
		Title:  models.Some("Champion"),
		Banned: models.Some(true),
	})
	require.NoError(t, err)

	assert.Equal(t, "Champion", p.Title)
	assert.True(t, p.Banned)
	assert.Equal(t, before.Name, p.Name)
	assert.Equal(t, before.Race, p.Race)
	assert.Equal(t, before.Profession, p.Profession)
	assert.Equal(t, before.Birthday, p.Birthday)
	assert.Equal(t, before.Experience, p.Experience)
}

func TestApplyPatchIsAllOrNothing(t *testing.T) {
	p, err := NewPlayer(testutil.ValidInput("Hero", 100))
	require.NoError(t, err)
	before := *p

	err = ApplyPatch(p, models.PlayerInput{
		Name:       models.Some("Renamed"),
		Experience: models.Some(-5),
	})
	assert.ErrorIs(t, err, models.ErrInvalidPlayer)
	assert.Equal(t, before, *p)
}

func TestApplyPatchEmptyIsNoop(t *testing.T) {
	p, err := NewPlayer(testutil.ValidInput("Hero", 100))
	require.NoError(t, err)
	before := *p

	require.NoError(t, ApplyPatch(p, models.PlayerInput{}))
	assert.Equal(t, before, *p)
}
