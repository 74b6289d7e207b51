// internal/engine/engine.go
//
// Engine is the single entry point presentation layers use to play.
//
// Responsibilities:
//   - Own the current game.Session and a monotonically increasing session id.
//   - Route input through package input and turn scored guesses into
//     feedback streams.
//   - Hold back the next submission until the previous stream has been
//     acknowledged with Settle (or immediately, with WithAutoSettle).
//   - Notify observers (metrics) about session lifecycle.
//
// An Engine is not safe for concurrent use; callers serialize access
// (the TUI runs a single loop, the HTTP store locks per game).

package engine

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/develordle/internal/feedback"
	"github.com/robalobadob/develordle/internal/game"
	"github.com/robalobadob/develordle/internal/input"
)

// ErrRevealPending is returned for a submission made before the previous
// row's feedback stream was settled.
var ErrRevealPending = errors.New("previous guess is still being revealed")

// Picker draws the target for a new session.
type Picker interface {
	Pick() string
}

// Observer receives session lifecycle notifications.
type Observer interface {
	SessionStarted(id uint64)
	GuessScored(o game.Outcome)
	SessionFinished(o game.Outcome)
}

// Result is what a routed event produced. Both fields are empty for edits
// and discarded events.
type Result struct {
	Outcome *game.Outcome
	Events  feedback.Stream
}

// Snapshot is a read-only copy of the board for rendering.
type Snapshot struct {
	SessionID uint64
	Rows      []string
	Results   [][]game.Classification
	ActiveRow int
	Cursor    int
	Status    game.Status
	Keys      game.Keys
	Target    string // empty while active
	Attempts  int
	Pending   bool // a feedback stream has not been settled yet
}

type Option func(*Engine)

func WithLogger(l zerolog.Logger) Option { return func(e *Engine) { e.log = l } }

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

func WithSequencer(s feedback.Sequencer) Option { return func(e *Engine) { e.seq = s } }

// WithAutoSettle treats every stream as delivered as soon as it is returned.
func WithAutoSettle() Option { return func(e *Engine) { e.autoSettle = true } }

// WithSessionOptions passes options to every session the engine creates.
func WithSessionOptions(opts ...game.Option) Option {
	return func(e *Engine) { e.sessionOpts = append(e.sessionOpts, opts...) }
}

type Engine struct {
	picker      Picker
	seq         feedback.Sequencer
	log         zerolog.Logger
	observers   []Observer
	autoSettle  bool
	sessionOpts []game.Option

	lastID  uint64
	session *game.Session
	pending bool
}

// New builds an Engine and starts its first session.
func New(picker Picker, opts ...Option) *Engine {
	e := &Engine{
		picker: picker,
		seq:    feedback.NewSequencer(feedback.DefaultUnit),
		log:    log.Logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.NewSession()
	return e
}

// NewSession discards the current game and starts a fresh one. Streams
// still in flight for the old session carry its id and are stale from now on.
func (e *Engine) NewSession() uint64 {
	e.lastID++
	e.session = game.NewSession(e.lastID, e.picker.Pick(), e.sessionOpts...)
	e.pending = false
	e.log.Debug().Uint64("session", e.lastID).Msg("session started")
	for _, o := range e.observers {
		o.SessionStarted(e.lastID)
	}
	return e.lastID
}

func (e *Engine) SessionID() uint64 { return e.session.ID() }

// Route applies one input event to the current session.
func (e *Engine) Route(ev input.Event) (Result, error) {
	if e.session.Status() != game.Active {
		return Result{}, nil
	}
	if ev.Kind == input.KindSubmit && e.pending {
		return Result{}, ErrRevealPending
	}
	o, err := input.Route(e.session, ev)
	if err != nil || o == nil {
		return Result{}, err
	}

	stream := e.seq.Sequence(*o)
	e.pending = !e.autoSettle

	e.log.Debug().
		Uint64("session", o.SessionID).
		Int("row", o.Row).
		Str("status", o.Status.String()).
		Msg("guess scored")
	for _, obs := range e.observers {
		obs.GuessScored(*o)
	}
	if o.Status.Terminal() {
		e.log.Info().
			Uint64("session", o.SessionID).
			Str("status", o.Status.String()).
			Int("attempts", e.session.Attempts()).
			Msg("session finished")
		for _, obs := range e.observers {
			obs.SessionFinished(*o)
		}
	}
	return Result{Outcome: o, Events: stream}, nil
}

// Settle acknowledges that the stream for session id has been fully
// delivered. It reports false for a stale id.
func (e *Engine) Settle(id uint64) bool {
	if id != e.session.ID() {
		return false
	}
	e.pending = false
	return true
}

// Pending reports whether a stream is waiting to be settled.
func (e *Engine) Pending() bool { return e.pending }

// Status of the current session.
func (e *Engine) Status() game.Status { return e.session.Status() }

func (e *Engine) Snapshot() Snapshot {
	s := e.session
	snap := Snapshot{
		SessionID: s.ID(),
		Rows:      make([]string, game.MaxAttempts),
		Results:   make([][]game.Classification, game.MaxAttempts),
		ActiveRow: s.ActiveRow(),
		Cursor:    s.Cursor(),
		Status:    s.Status(),
		Keys:      s.Keys(),
		Target:    s.Target(),
		Attempts:  s.Attempts(),
		Pending:   e.pending,
	}
	for i := range snap.Rows {
		snap.Rows[i] = s.Row(i)
		snap.Results[i] = s.Result(i)
	}
	return snap
}
