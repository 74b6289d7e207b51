// internal/tui/app.go
//
// Terminal front end.
//
// Responsibilities:
//   - Translate tcell key and mouse events into input events for the engine.
//   - Feed returned feedback streams to a feedback.Player and colour tiles and
//     keys only as their reveal events come due.
//   - Settle the engine and show the win/lose message on the Done event.
//   - Show transient notices (incomplete guess, unknown word) for NoticeTTL.
//
// The App never reads the clock itself: HandleEvent and Tick receive now, so
// tests drive it with a fake clock on a simulation screen.

package tui

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/robalobadob/develordle/internal/engine"
	"github.com/robalobadob/develordle/internal/feedback"
	"github.com/robalobadob/develordle/internal/game"
	"github.com/robalobadob/develordle/internal/input"
)

const frame = 16 * time.Millisecond // ~60 FPS

// tile is what the board currently shows for one cell.
type tile struct {
	shown bool
	class game.Classification
}

type App struct {
	screen    tcell.Screen
	eng       *engine.Engine
	player    *feedback.Player
	log       zerolog.Logger
	noticeTTL time.Duration

	tiles [game.MaxAttempts][game.WordLength]tile
	keys  game.Keys // as revealed so far, lags the engine's projection

	message      string
	messageUntil time.Time // zero: stays until the next game

	hits []keyBox // on-screen keyboard hit boxes from the last Draw
}

type Options struct {
	NoticeTTL time.Duration
	Logger    zerolog.Logger
}

func New(screen tcell.Screen, eng *engine.Engine, opts Options) *App {
	if opts.NoticeTTL <= 0 {
		opts.NoticeTTL = 2 * time.Second
	}
	a := &App{
		screen:    screen,
		eng:       eng,
		player:    feedback.NewPlayer(),
		log:       opts.Logger,
		noticeTTL: opts.NoticeTTL,
	}
	a.player.Reset(eng.SessionID())
	return a
}

// Run drives the UI until ctx is done or the player quits. The screen must
// already be initialised; Run does not call Fini.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return // screen finalised
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !a.HandleEvent(ev, time.Now()) {
				return nil
			}
			a.Draw()
		case now := <-ticker.C:
			if a.due(now) && a.Tick(now) {
				a.Draw()
			}
		}
	}
}

// HandleEvent processes one terminal event. It returns false when the
// player asked to quit.
func (a *App) HandleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyCtrlN:
			a.newGame()
		case tcell.KeyEnter:
			a.route(input.Submit(), now)
		case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
			a.route(input.Delete(), now)
		case tcell.KeyRune:
			a.route(input.Letter(ev.Rune()), now)
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			break
		}
		x, y := ev.Position()
		if label, ok := a.hitTest(x, y); ok {
			if in, ok := input.ParseKey(label); ok {
				a.route(in, now)
			}
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

// Tick delivers feedback events that are due. It reports whether anything
// visible changed.
func (a *App) Tick(now time.Time) bool {
	changed := false
	for _, ev := range a.player.Due(now) {
		a.apply(ev)
		changed = true
	}
	if !a.messageUntil.IsZero() && !now.Before(a.messageUntil) {
		a.message, a.messageUntil = "", time.Time{}
		changed = true
	}
	return changed
}

// due reports whether a Tick at now has anything to deliver or expire.
func (a *App) due(now time.Time) bool {
	if !a.messageUntil.IsZero() && !now.Before(a.messageUntil) {
		return true
	}
	if a.player.Pending() == 0 {
		return false
	}
	next, _ := a.player.Next()
	return !now.Before(next)
}

func (a *App) apply(ev feedback.Event) {
	switch ev.Kind {
	case feedback.Reveal:
		a.tiles[ev.Row][ev.Col] = tile{shown: true, class: ev.Class}
		a.keys.Observe(ev.Letter, ev.Class)
	case feedback.Done:
		a.eng.Settle(ev.SessionID)
		if msg := feedback.Resolution(ev); msg != "" {
			a.message, a.messageUntil = msg, time.Time{}
		}
	}
}

func (a *App) route(ev input.Event, now time.Time) {
	res, err := a.eng.Route(ev)
	switch {
	case errors.Is(err, engine.ErrRevealPending):
		return
	case err != nil:
		if msg, ok := feedback.Notice(err); ok {
			a.message, a.messageUntil = msg, now.Add(a.noticeTTL)
			return
		}
		a.log.Error().Err(err).Msg("route input")
		return
	}
	if res.Events != nil {
		a.player.Schedule(res.Events, now)
	}
}

func (a *App) newGame() {
	id := a.eng.NewSession()
	a.player.Reset(id)
	a.tiles = [game.MaxAttempts][game.WordLength]tile{}
	a.keys = game.Keys{}
	a.message, a.messageUntil = "", time.Time{}
}
