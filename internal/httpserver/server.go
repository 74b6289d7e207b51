// internal/httpserver/server.go
//
// HTTP API for hosted develordle games.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     per-client rate limiting on mutating routes).
//   - Public endpoints: "/", "/health", "/debug/words", "/metrics".
//   - Game endpoints: POST /game/new, then with the returned bearer token
//     GET /game/{id}, POST /game/{id}/input, POST /game/{id}/guess,
//     DELETE /game/{id}.
//   - Daily endpoints: mounted under /daily.
//
// Notes:
//   - Every game is an engine.Engine in the store. Engines run with auto-settle:
//     a submission returns its whole feedback stream and clients animate it
//     from each event's delayMs.
//   - Incomplete or unknown words are not HTTP errors; the response carries a
//     notice and the unchanged state.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/robalobadob/develordle/internal/daily"
	"github.com/robalobadob/develordle/internal/engine"
	"github.com/robalobadob/develordle/internal/feedback"
	"github.com/robalobadob/develordle/internal/game"
	"github.com/robalobadob/develordle/internal/input"
	"github.com/robalobadob/develordle/internal/store"
	"github.com/robalobadob/develordle/internal/telemetry"
	"github.com/robalobadob/develordle/internal/words"
)

// Options carries everything the server needs besides the store.
type Options struct {
	Vocabulary   *words.Vocabulary
	Picker       engine.Picker // target source for /game/new; defaults to Vocabulary
	Daily        *daily.Picker // nil disables /daily
	Metrics      *telemetry.Metrics
	Logger       zerolog.Logger
	Secret       []byte
	TokenTTL     time.Duration
	ClientOrigin string
	RevealDelay  time.Duration
	StrictWords  bool
	RateRPS      float64
	RateBurst    int
}

// Server bundles router, game store and dependencies.
type Server struct {
	r        *chi.Mux
	store    store.Store
	opts     Options
	tokens   gameTokens
	log      zerolog.Logger
	validate *validator.Validate
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	if opts.Picker == nil {
		opts.Picker = opts.Vocabulary
	}
	s := &Server{
		r:        chi.NewRouter(),
		store:    st,
		opts:     opts,
		tokens:   gameTokens{secret: opts.Secret, ttl: opts.TokenTTL, now: time.Now},
		log:      opts.Logger,
		validate: validator.New(),
	}
	limited := newClientLimiter(opts.RateRPS, opts.RateBurst).middleware

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(s.requestLogger)                 // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "develordle",
			"endpoints": []string{"/health", "POST /game/new", "POST /game/{id}/input", "POST /game/{id}/guess", "GET /game/{id}", "DELETE /game/{id}", "POST /daily/new"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"words": opts.Vocabulary.Len(), "length": opts.Vocabulary.WordLength()})
	})
	if opts.Metrics != nil {
		opts.Metrics.RegisterActiveGames(func() float64 { return float64(st.Len()) })
		s.r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	// --- game ---
	s.r.With(limited).Post("/game/new", s.handleNewGame)
	s.r.Route("/game/{id}", func(r chi.Router) {
		r.Use(s.requireGameToken)
		r.Get("/", s.handleState)
		r.Delete("/", s.handleAbandon)
		r.With(limited).Post("/input", s.handleInput)
		r.With(limited).Post("/guess", s.handleGuess)
	})

	if opts.Daily != nil {
		s.mountDaily(s.r.With(limited))
	}

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors allows a single browser origin to call the API with a bearer token.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("requestId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http request")
	})
}

// ------------------------------ GAME ---------------------------------------

// newEngine builds a hosted engine drawing targets from picker.
func (s *Server) newEngine(id string, picker engine.Picker) *engine.Engine {
	opts := []engine.Option{
		engine.WithAutoSettle(),
		engine.WithSequencer(feedback.NewSequencer(s.opts.RevealDelay)),
		engine.WithLogger(s.log.With().Str("gameId", id).Logger()),
	}
	if s.opts.Metrics != nil {
		opts = append(opts, engine.WithObserver(s.opts.Metrics))
	}
	if s.opts.StrictWords {
		opts = append(opts, engine.WithSessionOptions(game.RequireKnownWords(s.opts.Vocabulary)))
	}
	return engine.New(picker, opts...)
}

// startGame hosts a new game and writes its id, token and initial state.
func (s *Server) startGame(w http.ResponseWriter, r *http.Request, picker engine.Picker, date string) {
	id := uuid.NewString()
	eng := s.newEngine(id, picker)
	if err := s.store.Save(r.Context(), id, eng); err != nil {
		s.log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.tokens.Issue(id)
	if err != nil {
		s.log.Error().Err(err).Msg("sign game token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.log.Info().Str("gameId", id).Str("date", date).Msg("game created")
	writeJSON(w, http.StatusOK, newGameRes{
		GameID:    id,
		Token:     tok,
		ExpiresAt: exp.Unix(),
		Date:      date,
		State:     toState(eng.Snapshot()),
	})
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	s.startGame(w, r, s.opts.Picker, "")
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var res playRes
	err := s.store.Update(r.Context(), gameID(r), func(e *engine.Engine) error {
		res.State = toState(e.Snapshot())
		return nil
	})
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleAbandon drops the caller's game; its token stops working with it.
func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), gameID(r)); err != nil {
		s.storeError(w, err)
		return
	}
	s.log.Info().Str("gameId", gameID(r)).Msg("game abandoned")
	w.WriteHeader(http.StatusNoContent)
}

// inputReq is one key press.
type inputReq struct {
	Type   string `json:"type" validate:"required,oneof=letter delete submit"`
	Letter string `json:"letter" validate:"required_if=Type letter,max=1"`
}

func (r inputReq) event() input.Event {
	switch r.Type {
	case "delete":
		return input.Delete()
	case "submit":
		return input.Submit()
	}
	return input.Letter([]rune(r.Letter)[0])
}

func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	var req inputReq
	if !s.decode(w, r, &req) {
		return
	}
	s.play(w, r, []input.Event{req.event()})
}

// guessReq replaces whatever is typed in the active row with Guess and submits it.
// Guess must be a whole word; anything else is rejected before the row is touched.
type guessReq struct {
	Guess string `json:"guess" validate:"required,len=5,alpha"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if !s.decode(w, r, &req) {
		return
	}
	evs := make([]input.Event, 0, game.WordLength*2+1)
	for i := 0; i < game.WordLength; i++ {
		evs = append(evs, input.Delete())
	}
	for _, ch := range req.Guess {
		evs = append(evs, input.Letter(ch))
	}
	s.play(w, r, append(evs, input.Submit()))
}

// play routes evs into the caller's game and writes the resulting state.
func (s *Server) play(w http.ResponseWriter, r *http.Request, evs []input.Event) {
	var res playRes
	err := s.store.Update(r.Context(), gameID(r), func(e *engine.Engine) error {
		for _, ev := range evs {
			out, err := e.Route(ev)
			if msg, ok := feedback.Notice(err); ok {
				res.Notice = msg
				break
			}
			if err != nil {
				return err
			}
			if out.Events != nil {
				res.Events = toEvents(out.Events)
				res.RevealMs = out.Events.Duration().Milliseconds()
			}
		}
		res.State = toState(e.Snapshot())
		return nil
	})
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// decode reads and validates a JSON body, answering 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return false
	}
	return true
}

func (s *Server) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	s.log.Error().Err(err).Msg("game update")
	writeError(w, http.StatusInternalServerError, "internal")
}
