package factory

import (
	"time"

	"github.com/mcoot/battleshipgame-go/internal/dependencies/clock"
	"github.com/mcoot/battleshipgame-go/internal/dependencies/random"
	"github.com/mcoot/battleshipgame-go/internal/storage/memory"
	"github.com/mcoot/battleshipgame-go/internal/testutil"
)

// NewForTesting creates an App on memory storage with the given mockable
// dependencies and a silent logger
func NewForTesting(clk clock.Clock, rnd random.Random) *App {
	return newWithDependencies(memory.New(), clk, rnd, time.Millisecond, testutil.NopLogger())
}
