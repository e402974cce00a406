package scoring

import (
	"math"
	"time"

	"github.com/wordtide/wordtide-go/internal/model"
)

// Water level constants. The level drains a fixed amount per accepted
// word and climbs in proportion to time wasted on a missed turn.
const (
	// WaterCeiling ends the match when reached
	WaterCeiling = 100.0

	waterRelief        = 10.0
	waterRisePerSecond = 3.0
)

// Base points per letter before multipliers
const pointsPerLetter = 10

// Service computes word scores and water-level advancement. All
// methods are pure functions of their inputs.
type Service struct{}

// New creates a new scoring service
func New() *Service {
	return &Service{}
}

// Multiplier returns the difficulty multiplier applied to word scores
func (s *Service) Multiplier(d model.Difficulty) float64 {
	switch d {
	case model.DifficultyEasy:
		return 1.0
	case model.DifficultyHard:
		return 2.0
	default:
		return 1.5
	}
}

// TimeFactor returns the remaining fraction of the turn time limit,
// clamped to [0, 1]. Submitting instantly yields 1, at the buzzer 0.
func (s *Service) TimeFactor(elapsed time.Duration, limit time.Duration) float64 {
	if limit <= 0 {
		return 0
	}
	remaining := 1 - elapsed.Seconds()/limit.Seconds()
	return math.Max(0, math.Min(1, remaining))
}

// WordPoints computes the point value of an accepted word: ten points
// per letter, scaled by difficulty, with up to a 50% bonus for speed.
func (s *Service) WordPoints(wordLength int, difficulty model.Difficulty, timeFactor float64) int {
	base := float64(wordLength * pointsPerLetter)
	return int(math.Round(base * s.Multiplier(difficulty) * (1 + 0.5*timeFactor)))
}

// WaterAfterSuccess returns the level after an accepted word drains it
func (s *Service) WaterAfterSuccess(level float64) float64 {
	return math.Max(0, level-waterRelief)
}

// WaterAfterSkip returns the level after a missed turn raises it
func (s *Service) WaterAfterSkip(level float64, elapsed time.Duration) float64 {
	return math.Min(WaterCeiling, level+waterRisePerSecond*elapsed.Seconds())
}

// Flooded reports whether the level has reached the ceiling
func (s *Service) Flooded(level float64) bool {
	return level >= WaterCeiling
}
