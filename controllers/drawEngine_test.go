package controllers

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"color-rush/models"
)

// newTestEngine returns an engine that is ticked manually; the real
// ticker never runs in tests.
func newTestEngine(startRound int64, betWindow, revealDelay int) *DrawEngine {
	e := NewDrawEngine(startRound, betWindow, revealDelay)
	e.tickEvery = time.Hour
	return e
}

// advance the engine through one full round: betting window plus reveal
// delay.
func runFullRound(e *DrawEngine) {
	snap := e.Snapshot()
	for i := 0; i < snap.SecondsRemaining; i++ {
		e.Tick()
	}
	for e.Snapshot().Phase == models.PhaseResolving {
		e.Tick()
	}
}

func TestRoundIDMonotonic(t *testing.T) {
	e := newTestEngine(100, 3, 2)

	var resolved []int64
	e.Subscribe(func(s models.RoundState) {
		if s.Phase == models.PhaseResolving && s.Outcome != nil {
			if len(resolved) == 0 || resolved[len(resolved)-1] != s.Outcome.RoundID {
				resolved = append(resolved, s.Outcome.RoundID)
			}
		}
	})

	for i := 0; i < 5; i++ {
		runFullRound(e)
	}

	require.Len(t, resolved, 5)
	for i, id := range resolved {
		assert.Equal(t, int64(100+i), id)
	}
}

func TestOutcomeDomainAndDerivation(t *testing.T) {
	e := newTestEngine(1, 1, 1)
	digit := 0
	e.draw = func() int {
		d := digit
		digit = (digit + 1) % 10
		return d
	}

	seen := make(map[int]models.RoundOutcome)
	e.Subscribe(func(s models.RoundState) {
		if s.Phase == models.PhaseResolving && s.Outcome != nil {
			seen[s.Outcome.Number] = *s.Outcome
		}
	})

	for i := 0; i < 10; i++ {
		runFullRound(e)
	}

	require.Len(t, seen, 10)
	for n, out := range seen {
		assert.GreaterOrEqual(t, n, 0)
		assert.LessOrEqual(t, n, 9)
		switch n {
		case 0, 5:
			assert.Equal(t, models.ColorViolet, out.Color)
		case 1, 3, 7, 9:
			assert.Equal(t, models.ColorGreen, out.Color)
		default:
			assert.Equal(t, models.ColorRed, out.Color)
		}
		if n >= 5 {
			assert.Equal(t, models.SizeBig, out.Size)
		} else {
			assert.Equal(t, models.SizeSmall, out.Size)
		}
	}
}

func TestRecentOutcomesBoundedNewestFirst(t *testing.T) {
	e := newTestEngine(1, 1, 1)

	for i := 0; i < RecentOutcomeLimit+20; i++ {
		runFullRound(e)
	}

	recent := e.Snapshot().RecentOutcomes
	require.Len(t, recent, RecentOutcomeLimit)
	// newest first: round ids strictly descending from the last resolved
	for i := range recent {
		assert.Equal(t, int64(RecentOutcomeLimit+20-i), recent[i].RoundID)
	}
}

func TestSubscribeImmediateReplay(t *testing.T) {
	e := newTestEngine(7, 10, 3)

	var snapshots []models.RoundState
	unsubscribe := e.Subscribe(func(s models.RoundState) {
		snapshots = append(snapshots, s)
	})

	// Immediate replay: one snapshot before any tick.
	require.Len(t, snapshots, 1)
	assert.Equal(t, int64(7), snapshots[0].RoundID)
	assert.Equal(t, models.PhaseBetting, snapshots[0].Phase)
	assert.Equal(t, 10, snapshots[0].SecondsRemaining)

	e.Tick()
	require.Len(t, snapshots, 2)
	assert.Equal(t, 9, snapshots[1].SecondsRemaining)

	unsubscribe()
	e.Tick()
	assert.Len(t, snapshots, 2)

	// Unsubscribing twice is a no-op.
	unsubscribe()
	e.Tick()
	assert.Len(t, snapshots, 2)
}

// Once unsubscribe returns, not even a tick already in flight on
// another goroutine may deliver to the observer.
func TestUnsubscribeStopsDeliveryImmediately(t *testing.T) {
	e := newTestEngine(1, 5, 2)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			e.Tick()
		}
	}()

	var mu sync.Mutex
	removed := false
	unsubscribe := e.Subscribe(func(models.RoundState) {
		mu.Lock()
		defer mu.Unlock()
		if removed {
			t.Errorf("snapshot delivered after unsubscribe returned")
		}
	})

	unsubscribe()
	mu.Lock()
	removed = true
	mu.Unlock()

	wg.Wait()
}

// DuringBetting admits work only while its round's window is open.
func TestDuringBettingTracksWindow(t *testing.T) {
	e := newTestEngine(10, 2, 1)

	ran := false
	assert.True(t, e.DuringBetting(10, func() { ran = true }))
	assert.True(t, ran)

	// Wrong round, window still open.
	assert.False(t, e.DuringBetting(11, func() { t.Error("ran for wrong round") }))

	e.Tick()
	e.Tick() // window closes, round 10 resolves
	require.Equal(t, models.PhaseResolving, e.Snapshot().Phase)
	assert.False(t, e.DuringBetting(10, func() { t.Error("ran after close") }))
}

func TestObserversNeverSeeTornState(t *testing.T) {
	e := newTestEngine(1, 2, 1)
	e.Subscribe(func(s models.RoundState) {
		if s.Phase == models.PhaseResolving {
			assert.NotNil(t, s.Outcome)
		}
		if s.Phase == models.PhaseBetting {
			assert.Nil(t, s.Outcome)
		}
	})
	for i := 0; i < 12; i++ {
		e.Tick()
	}
}

func TestStartTwiceKeepsOneTicker(t *testing.T) {
	e := newTestEngine(1, 30, 3)

	e.Start()
	first := e.ticker
	require.NotNil(t, first)

	e.Start()
	assert.Same(t, first, e.ticker)
	first.Stop()
}

func TestSeedHistory(t *testing.T) {
	e := newTestEngine(1000, 30, 3)
	e.SeedHistory(10)

	recent := e.Snapshot().RecentOutcomes
	require.Len(t, recent, 10)
	for i, out := range recent {
		assert.Equal(t, int64(999-i), out.RoundID)
	}
}
