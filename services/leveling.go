package services

import (
	"math"

	"player-registry/models"
)

// LevelFor returns the level reached with xp experience and the experience
// still missing to reach the next one.
//
//	level          = floor((sqrt(2500 + 200*xp) - 50) / 100)
//	untilNextLevel = 50*(level+1)*(level+2) - xp
func LevelFor(xp int) (level, untilNext int) {
	level = int((math.Sqrt(2500+200*float64(xp)) - 50) / 100)
	untilNext = 50*(level+1)*(level+2) - xp
	return level, untilNext
}

// applyLevel rewrites the derived fields of p from its experience.
func applyLevel(p *models.Player) {
	p.Level, p.UntilNextLevel = LevelFor(p.Experience)
}

// levelDrifted reports whether the stored derived fields disagree with experience.
func levelDrifted(p models.Player) bool {
	level, untilNext := LevelFor(p.Experience)
	return p.Level != level || p.UntilNextLevel != untilNext
}
