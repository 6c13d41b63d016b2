// controllers/drawEngine.go
package controllers

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"color-rush/models"
)

// RecentOutcomeLimit bounds the outcome history carried in every
// snapshot, newest first.
const RecentOutcomeLimit = 50

// RoundObserver receives a round snapshot on every publish. Observers
// run synchronously within the publishing tick, under the engine's
// lock: an observer must not call back into the engine.
type RoundObserver func(models.RoundState)

// DrawEngine owns the round clock for the color-prediction game: a
// fixed betting window counted down one second per tick, a reveal at
// zero with a uniformly drawn digit, a short resolving pause, then the
// next round. It is the single writer of RoundState; everyone else
// subscribes for copies.
type DrawEngine struct {
	mu          sync.Mutex
	state       models.RoundState
	observers   map[int]RoundObserver
	nextObsID   int
	started     bool
	ticker      *time.Ticker
	tickEvery   time.Duration
	betWindow   int
	revealDelay int
	revealLeft  int
	draw        func() int
}

// NewDrawEngine creates an engine parked at the start of round
// startRound with a full betting window. Nothing moves until Start.
func NewDrawEngine(startRound int64, betWindow, revealDelay int) *DrawEngine {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &DrawEngine{
		state: models.RoundState{
			RoundID:          startRound,
			Phase:            models.PhaseBetting,
			SecondsRemaining: betWindow,
		},
		observers:   make(map[int]RoundObserver),
		tickEvery:   time.Second,
		betWindow:   betWindow,
		revealDelay: revealDelay,
		draw:        func() int { return rng.Intn(10) },
	}
}

// SeedHistory prepopulates the recent-outcome list with draws for the
// rounds preceding the starting round, so fresh clients see a filled
// results strip instead of an empty one.
func (e *DrawEngine) SeedHistory(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := int64(n); i >= 1; i-- {
		out := models.NewRoundOutcome(e.state.RoundID-i, e.draw())
		e.state.RecentOutcomes = append([]models.RoundOutcome{out}, e.state.RecentOutcomes...)
	}
	if len(e.state.RecentOutcomes) > RecentOutcomeLimit {
		e.state.RecentOutcomes = e.state.RecentOutcomes[:RecentOutcomeLimit]
	}
}

// Start launches the ticker loop. Calling Start again is a no-op; there
// is never more than one ticker per engine.
func (e *DrawEngine) Start() {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		log.Println("Draw engine already started.")
		return
	}
	e.started = true
	e.ticker = time.NewTicker(e.tickEvery)
	roundID := e.state.RoundID
	e.mu.Unlock()

	go func() {
		for range e.ticker.C {
			e.Tick()
		}
	}()
	log.Printf("Draw engine started at round %d (%ds window, %ds reveal).", roundID, e.betWindow, e.revealDelay)
}

// Tick advances the round clock by one second. During the betting
// window it counts down and publishes; the tick that hits zero draws
// the outcome and flips to resolving in the same publish, so observers
// never see resolving without an outcome. After the reveal delay the
// next round begins.
func (e *DrawEngine) Tick() {
	e.mu.Lock()
	switch e.state.Phase {
	case models.PhaseBetting:
		if e.state.SecondsRemaining > 0 {
			e.state.SecondsRemaining--
		}
		if e.state.SecondsRemaining == 0 {
			outcome := models.NewRoundOutcome(e.state.RoundID, e.draw())
			e.state.Outcome = &outcome
			e.state.Phase = models.PhaseResolving
			e.state.RecentOutcomes = append([]models.RoundOutcome{outcome}, e.state.RecentOutcomes...)
			if len(e.state.RecentOutcomes) > RecentOutcomeLimit {
				e.state.RecentOutcomes = e.state.RecentOutcomes[:RecentOutcomeLimit]
			}
			e.revealLeft = e.revealDelay
			log.Printf("Round %d resolved: drew %d (%s, %s).", outcome.RoundID, outcome.Number, outcome.Color, outcome.Size)
		}
	case models.PhaseResolving:
		e.revealLeft--
		if e.revealLeft <= 0 {
			e.state.RoundID++
			e.state.Phase = models.PhaseBetting
			e.state.SecondsRemaining = e.betWindow
			e.state.Outcome = nil
		}
	}
	// Deliver under the lock: once an unsubscribe returns, no further
	// snapshot can reach that observer, and nothing can interleave with
	// the mutation that produced this snapshot.
	snapshot := e.state.Copy()
	for _, fn := range e.observers {
		fn(snapshot)
	}
	e.mu.Unlock()
}

// Snapshot returns a copy of the current round state.
func (e *DrawEngine) Snapshot() models.RoundState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Copy()
}

// Subscribe registers an observer and immediately invokes it with the
// current snapshot, so late subscribers are not blind to the phase in
// progress. The returned function removes the observer; calling it more
// than once is a no-op, and once it returns the observer receives no
// further snapshots.
func (e *DrawEngine) Subscribe(fn RoundObserver) func() {
	e.mu.Lock()
	id := e.nextObsID
	e.nextObsID++
	e.observers[id] = fn
	fn(e.state.Copy())
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.observers, id)
	}
}

// DuringBetting runs fn while the round clock is held on roundID's open
// betting window, so no resolution can interleave with fn. Returns
// false without running fn if that window has already closed.
func (e *DrawEngine) DuringBetting(roundID int64, fn func()) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Phase != models.PhaseBetting || e.state.RoundID != roundID {
		return false
	}
	fn()
	return true
}
