package factory

import (
	"time"

	membus "github.com/wordtide/wordtide-go/internal/bus/memory"
	"github.com/wordtide/wordtide-go/internal/dependencies/mocks"
	"github.com/wordtide/wordtide-go/internal/storage/memory"
	"github.com/wordtide/wordtide-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	logger := testutil.NopLogger()
	eventBus := membus.New(logger)
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, eventBus, mockClock, mockRandom, 1, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestLexicon loads a small word list covering the pattern pools
func (t *TestApp) LoadTestLexicon() error {
	return t.LexiconService.LoadWords([]string{
		"cat", "catch", "cattle", "car", "care", "cart",
		"barrel", "basket", "batch", "bath",
		"dog", "dodge", "door", "dot",
		"make", "march", "mask", "match",
		"pan", "park", "part", "pattern",
		"sea", "seal", "search", "season", "seat",
		"she", "shell", "shield", "ship", "shore",
		"tide", "tidal", "time", "tin",
		"water", "wave", "whale", "wharf",
		"strong", "stream", "street", "stretch",
	})
}
