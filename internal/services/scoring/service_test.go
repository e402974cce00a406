package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wordtide/wordtide-go/internal/model"
)

func TestMultiplier(t *testing.T) {
	s := New()

	assert.Equal(t, 1.0, s.Multiplier(model.DifficultyEasy))
	assert.Equal(t, 1.5, s.Multiplier(model.DifficultyNormal))
	assert.Equal(t, 2.0, s.Multiplier(model.DifficultyHard))
	assert.Equal(t, 1.5, s.Multiplier(model.Difficulty("unknown")))
}

func TestTimeFactor(t *testing.T) {
	s := New()
	limit := 30 * time.Second

	assert.Equal(t, 1.0, s.TimeFactor(0, limit))
	assert.Equal(t, 0.5, s.TimeFactor(15*time.Second, limit))
	assert.Equal(t, 0.0, s.TimeFactor(30*time.Second, limit))

	// Overrunning the limit clamps to zero rather than going negative
	assert.Equal(t, 0.0, s.TimeFactor(45*time.Second, limit))

	// Degenerate limit yields no bonus
	assert.Equal(t, 0.0, s.TimeFactor(time.Second, 0))
}

func TestWordPoints(t *testing.T) {
	s := New()

	// 3 letters, normal, no speed bonus: 30 * 1.5 = 45
	assert.Equal(t, 45, s.WordPoints(3, model.DifficultyNormal, 0))

	// Instant submission gets a 50% bonus: 30 * 1.5 * 1.5 = 67.5, rounded
	assert.Equal(t, 68, s.WordPoints(3, model.DifficultyNormal, 1))

	// Difficulty scales the base
	assert.Equal(t, 30, s.WordPoints(3, model.DifficultyEasy, 0))
	assert.Equal(t, 60, s.WordPoints(3, model.DifficultyHard, 0))

	// Longer words are worth proportionally more
	assert.Equal(t, 90, s.WordPoints(6, model.DifficultyNormal, 0))
}

func TestWordPointsNeverDecreasesWithTimeFactor(t *testing.T) {
	s := New()

	slow := s.WordPoints(5, model.DifficultyNormal, 0)
	fast := s.WordPoints(5, model.DifficultyNormal, 1)
	assert.Greater(t, fast, slow)
}

func TestWaterAfterSuccess(t *testing.T) {
	s := New()

	assert.Equal(t, 40.0, s.WaterAfterSuccess(50))
	assert.Equal(t, 0.0, s.WaterAfterSuccess(5))
	assert.Equal(t, 0.0, s.WaterAfterSuccess(0))
}

func TestWaterAfterSkip(t *testing.T) {
	s := New()

	// 10 seconds of wasted turn raise the level by 30
	assert.Equal(t, 30.0, s.WaterAfterSkip(0, 10*time.Second))
	assert.Equal(t, 80.0, s.WaterAfterSkip(50, 10*time.Second))

	// The level caps at the ceiling
	assert.Equal(t, WaterCeiling, s.WaterAfterSkip(90, time.Minute))
}

func TestFlooded(t *testing.T) {
	s := New()

	assert.False(t, s.Flooded(99.9))
	assert.True(t, s.Flooded(WaterCeiling))
	assert.True(t, s.Flooded(150))
}
