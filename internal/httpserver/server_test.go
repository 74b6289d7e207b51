package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/develordle/internal/daily"
	"github.com/robalobadob/develordle/internal/feedback"
	"github.com/robalobadob/develordle/internal/store"
	"github.com/robalobadob/develordle/internal/telemetry"
	"github.com/robalobadob/develordle/internal/words"
)

func setupTestServer(t *testing.T, mutate ...func(*Options)) *Server {
	t.Helper()
	vocab, err := words.New([]string{"STACK"})
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{
		Vocabulary:  vocab,
		Daily:       daily.NewPicker(vocab, "salt"),
		Metrics:     telemetry.NewMetrics(),
		Logger:      zerolog.Nop(),
		Secret:      []byte("test_secret_123"),
		TokenTTL:    time.Hour,
		RevealDelay: 300 * time.Millisecond,
		RateRPS:     1000,
		RateBurst:   1000,
	}
	for _, m := range mutate {
		m(&opts)
	}
	return New(store.NewMemoryStore(), opts)
}

func do(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func newGame(t *testing.T, s *Server) newGameRes {
	t.Helper()
	w := do(t, s, http.MethodPost, "/game/new", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("POST /game/new = %d %s", w.Code, w.Body.String())
	}
	return decodeBody[newGameRes](t, w)
}

func TestHealth(t *testing.T) {
	s := setupTestServer(t)
	w := do(t, s, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Errorf("GET /health = %d %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("content type = %q", ct)
	}
}

func TestNewGame(t *testing.T) {
	s := setupTestServer(t)
	g := newGame(t, s)
	if g.GameID == "" || g.Token == "" {
		t.Fatalf("missing id/token: %+v", g)
	}
	if len(g.State.Rows) != 6 || g.State.Status != "active" || g.State.Target != "" {
		t.Errorf("state = %+v", g.State)
	}
}

func TestPlayToWin(t *testing.T) {
	s := setupTestServer(t)
	g := newGame(t, s)
	base := "/game/" + g.GameID

	w := do(t, s, http.MethodPost, base+"/guess", g.Token, map[string]string{"guess": "crane"})
	if w.Code != http.StatusOK {
		t.Fatalf("guess = %d %s", w.Code, w.Body.String())
	}
	res := decodeBody[playRes](t, w)
	if len(res.Events) != 6 {
		t.Fatalf("events = %+v", res.Events)
	}
	wantMarks := []string{"present", "absent", "correct", "absent", "absent"}
	for i, m := range wantMarks {
		ev := res.Events[i]
		if ev.Kind != "reveal" || ev.Col != i || ev.Mark != m || ev.DelayMs != int64(i*300) {
			t.Errorf("event %d = %+v", i, ev)
		}
	}
	if last := res.Events[5]; last.Kind != "done" || last.Status != "active" || last.DelayMs != 1500 {
		t.Errorf("done = %+v", last)
	}
	if res.RevealMs != 1500 {
		t.Errorf("revealMs = %d", res.RevealMs)
	}
	if res.State.ActiveRow != 1 || res.State.Keys["A"] != "correct" || res.State.Keys["R"] != "absent" {
		t.Errorf("state = %+v", res.State)
	}

	// type the winning word key by key
	for _, ch := range "stack" {
		w = do(t, s, http.MethodPost, base+"/input", g.Token, map[string]string{"type": "letter", "letter": string(ch)})
		if w.Code != http.StatusOK {
			t.Fatalf("letter = %d %s", w.Code, w.Body.String())
		}
	}
	res = decodeBody[playRes](t, do(t, s, http.MethodPost, base+"/input", g.Token, map[string]string{"type": "submit"}))
	last := res.Events[len(res.Events)-1]
	if last.Status != "won" || last.Target != "STACK" || last.Message != feedback.MsgWon {
		t.Errorf("done = %+v", last)
	}
	if res.State.Status != "won" || res.State.Target != "STACK" || res.State.Attempts != 2 {
		t.Errorf("state = %+v", res.State)
	}

	// input after the game is over is ignored
	res = decodeBody[playRes](t, do(t, s, http.MethodPost, base+"/input", g.Token, map[string]string{"type": "letter", "letter": "A"}))
	if res.State.Rows[1].Letters != "STACK" || res.State.Rows[2].Letters != "" || len(res.Events) != 0 {
		t.Errorf("input accepted after win: %+v", res)
	}
}

func TestIncompleteGuessNotice(t *testing.T) {
	s := setupTestServer(t)
	g := newGame(t, s)
	base := "/game/" + g.GameID
	for _, ch := range "cra" {
		do(t, s, http.MethodPost, base+"/input", g.Token, map[string]string{"type": "letter", "letter": string(ch)})
	}
	w := do(t, s, http.MethodPost, base+"/input", g.Token, map[string]string{"type": "submit"})
	if w.Code != http.StatusOK {
		t.Fatalf("submit = %d", w.Code)
	}
	res := decodeBody[playRes](t, w)
	if res.Notice != feedback.MsgIncomplete || len(res.Events) != 0 {
		t.Errorf("res = %+v", res)
	}
	if res.State.ActiveRow != 0 || res.State.Rows[0].Letters != "CRA" {
		t.Errorf("state = %+v", res.State)
	}
}

func TestGuessMustBeWholeWord(t *testing.T) {
	s := setupTestServer(t)
	g := newGame(t, s)
	base := "/game/" + g.GameID
	for _, ch := range "cr" {
		do(t, s, http.MethodPost, base+"/input", g.Token, map[string]string{"type": "letter", "letter": string(ch)})
	}

	for _, guess := range []string{"stacks", "st ack", "stackXYZ", "s-t-a-c-k", "cra", "stäck"} {
		if w := do(t, s, http.MethodPost, base+"/guess", g.Token, map[string]string{"guess": guess}); w.Code != http.StatusBadRequest {
			t.Errorf("%q: code = %d %s", guess, w.Code, w.Body.String())
		}
	}

	st := decodeBody[playRes](t, do(t, s, http.MethodGet, base, g.Token, nil)).State
	if st.Status != "active" || st.Attempts != 0 || st.Rows[0].Letters != "CR" {
		t.Errorf("rejected guesses touched the game: %+v", st)
	}
}
func TestStrictWordsNotice(t *testing.T) {
	s := setupTestServer(t, func(o *Options) { o.StrictWords = true })
	g := newGame(t, s)
	res := decodeBody[playRes](t, do(t, s, http.MethodPost, "/game/"+g.GameID+"/guess", g.Token, map[string]string{"guess": "qqqqq"}))
	if res.Notice != feedback.MsgUnknownWord || res.State.ActiveRow != 0 {
		t.Errorf("res = %+v", res)
	}
}

func TestTokenRequired(t *testing.T) {
	s := setupTestServer(t)
	a := newGame(t, s)
	b := newGame(t, s)

	cases := []struct {
		name  string
		token string
		code  int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "not-a-jwt", http.StatusUnauthorized},
		{"other game", b.Token, http.StatusForbidden},
		{"own game", a.Token, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := do(t, s, http.MethodGet, "/game/"+a.GameID, tc.token, nil); w.Code != tc.code {
				t.Errorf("code = %d, want %d", w.Code, tc.code)
			}
		})
	}

	forged := gameTokens{secret: []byte("another_secret"), ttl: time.Hour, now: time.Now}
	tok, _, _ := forged.Issue(a.GameID)
	if w := do(t, s, http.MethodGet, "/game/"+a.GameID, tok, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("forged token accepted: %d", w.Code)
	}
}

func TestExpiredToken(t *testing.T) {
	s := setupTestServer(t)
	g := newGame(t, s)
	old := gameTokens{secret: []byte("test_secret_123"), ttl: time.Minute, now: func() time.Time { return time.Now().Add(-time.Hour) }}
	tok, _, _ := old.Issue(g.GameID)
	if w := do(t, s, http.MethodGet, "/game/"+g.GameID, tok, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expired token accepted: %d", w.Code)
	}
}

func TestUnknownGame(t *testing.T) {
	s := setupTestServer(t)
	tok, _, err := s.tokens.Issue("ghost")
	if err != nil {
		t.Fatal(err)
	}
	if w := do(t, s, http.MethodGet, "/game/ghost", tok, nil); w.Code != http.StatusNotFound {
		t.Errorf("code = %d", w.Code)
	}
}

func TestAbandonGame(t *testing.T) {
	s := setupTestServer(t)
	g := newGame(t, s)
	path := "/game/" + g.GameID
	if w := do(t, s, http.MethodDelete, path, g.Token, nil); w.Code != http.StatusNoContent {
		t.Fatalf("DELETE = %d %s", w.Code, w.Body.String())
	}
	if w := do(t, s, http.MethodGet, path, g.Token, nil); w.Code != http.StatusNotFound {
		t.Errorf("GET after abandon = %d", w.Code)
	}
	if w := do(t, s, http.MethodDelete, path, g.Token, nil); w.Code != http.StatusNotFound {
		t.Errorf("second DELETE = %d", w.Code)
	}
}

func TestInvalidInput(t *testing.T) {
	s := setupTestServer(t)
	g := newGame(t, s)
	for _, body := range []map[string]string{
		{"type": "jump"},
		{"type": "letter"},
		{"type": "letter", "letter": "ab"},
	} {
		if w := do(t, s, http.MethodPost, "/game/"+g.GameID+"/input", g.Token, body); w.Code != http.StatusBadRequest {
			t.Errorf("%v: code = %d", body, w.Code)
		}
	}
	// a non-letter key is valid JSON but silently ignored
	res := decodeBody[playRes](t, do(t, s, http.MethodPost, "/game/"+g.GameID+"/input", g.Token, map[string]string{"type": "letter", "letter": "7"}))
	if res.State.Cursor != 0 {
		t.Errorf("cursor = %d", res.State.Cursor)
	}
}

func TestDailyNew(t *testing.T) {
	s := setupTestServer(t)
	w := do(t, s, http.MethodPost, "/daily/new", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d %s", w.Code, w.Body.String())
	}
	g := decodeBody[newGameRes](t, w)
	if g.Date != daily.DateKey(time.Now()) || g.Token == "" {
		t.Errorf("daily = %+v", g)
	}
	if w := do(t, s, http.MethodGet, "/game/"+g.GameID, g.Token, nil); w.Code != http.StatusOK {
		t.Errorf("daily game not playable: %d", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	s := setupTestServer(t, func(o *Options) { o.RateRPS = 0.001; o.RateBurst = 2 })
	codes := []int{}
	for i := 0; i < 3; i++ {
		codes = append(codes, do(t, s, http.MethodPost, "/game/new", "", nil).Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}
	if w := do(t, s, http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
		t.Errorf("health must not be rate limited: %d", w.Code)
	}
}

func TestMetricsAndDebug(t *testing.T) {
	s := setupTestServer(t)
	newGame(t, s)
	w := do(t, s, http.MethodGet, "/metrics", "", nil)
	if !strings.Contains(w.Body.String(), "develordle_sessions_started_total 1") ||
		!strings.Contains(w.Body.String(), "develordle_active_games 1") {
		t.Errorf("metrics = %s", w.Body.String())
	}
	dbg := decodeBody[map[string]int](t, do(t, s, http.MethodGet, "/debug/words", "", nil))
	if dbg["words"] != 1 || dbg["length"] != 5 {
		t.Errorf("debug = %v", dbg)
	}
}

func TestNotFound(t *testing.T) {
	s := setupTestServer(t)
	if w := do(t, s, http.MethodGet, "/nope", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("code = %d", w.Code)
	}
}
