package factory

import (
	"time"

	"github.com/drawdash/drawdash/internal/dependencies/mocks"
	"github.com/drawdash/drawdash/internal/game"
	"github.com/drawdash/drawdash/internal/storage/memory"
	"github.com/drawdash/drawdash/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked
// dependencies. The tick interval is long enough that the round timer
// never fires during a test, and the grace interval between rounds is
// short so rotation can be observed without real waits.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	gameCfg := game.DefaultConfig()
	gameCfg.Session.TickInterval = time.Hour
	gameCfg.NextRoundDelay = 20 * time.Millisecond

	app := newWithDependencies(store, mockClock, mockRandom, gameCfg, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestWords installs a small deterministic word list. With an empty
// mock random queue every round draws the first word.
func (t *TestApp) LoadTestWords() {
	t.WordsService.LoadWords([]string{"cat", "dog", "fish"})
}
