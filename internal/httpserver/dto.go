package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/samber/lo"

	"github.com/robalobadob/develordle/internal/engine"
	"github.com/robalobadob/develordle/internal/feedback"
	"github.com/robalobadob/develordle/internal/game"
)

// rowDTO is one board row. Marks is empty until the row is submitted.
type rowDTO struct {
	Letters string   `json:"letters"`
	Marks   []string `json:"marks,omitempty"`
}

type stateDTO struct {
	SessionID uint64            `json:"sessionId"`
	Rows      []rowDTO          `json:"rows"`
	ActiveRow int               `json:"activeRow"`
	Cursor    int               `json:"cursor"`
	Status    string            `json:"status"` // active | won | lost
	Keys      map[string]string `json:"keys"`   // letter -> absent | present | correct
	Target    string            `json:"target,omitempty"`
	Attempts  int               `json:"attempts"`
}

// eventDTO is a feedback event; clients animate it DelayMs after the response.
type eventDTO struct {
	Kind    string `json:"kind"` // reveal | done
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Letter  string `json:"letter,omitempty"`
	Mark    string `json:"mark,omitempty"`
	Key     string `json:"key,omitempty"`
	Status  string `json:"status,omitempty"`
	Target  string `json:"target,omitempty"`
	Message string `json:"message,omitempty"`
	DelayMs int64  `json:"delayMs"`
}

type newGameRes struct {
	GameID    string   `json:"gameId"`
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expiresAt"`
	Date      string   `json:"date,omitempty"` // daily games only
	State     stateDTO `json:"state"`
}

type playRes struct {
	State    stateDTO   `json:"state"`
	Events   []eventDTO `json:"events,omitempty"`
	RevealMs int64      `json:"revealMs,omitempty"` // when the last event is due
	Notice   string     `json:"notice,omitempty"`
}

func toState(s engine.Snapshot) stateDTO {
	rows := lo.Map(s.Rows, func(letters string, i int) rowDTO {
		return rowDTO{Letters: letters, Marks: lo.Map(s.Results[i], func(c game.Classification, _ int) string { return c.String() })}
	})
	return stateDTO{
		SessionID: s.SessionID,
		Rows:      rows,
		ActiveRow: s.ActiveRow,
		Cursor:    s.Cursor,
		Status:    s.Status.String(),
		Keys:      lo.MapValues(s.Keys.Known(), func(k game.KeyStatus, _ string) string { return k.String() }),
		Target:    s.Target,
		Attempts:  s.Attempts,
	}
}

func toEvents(stream feedback.Stream) []eventDTO {
	return lo.Map(stream, func(ev feedback.Event, _ int) eventDTO {
		d := eventDTO{Kind: ev.Kind.String(), Row: ev.Row, DelayMs: ev.Delay.Milliseconds()}
		switch ev.Kind {
		case feedback.Reveal:
			d.Col = ev.Col
			d.Letter = string(rune(ev.Letter))
			d.Mark = ev.Class.String()
			d.Key = ev.Key.String()
		case feedback.Done:
			d.Status = ev.Status.String()
			d.Target = ev.Target
			d.Message = feedback.Resolution(ev)
		}
		return d
	})
}

// writeJSON encodes v with status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {"error": code} the way every endpoint reports failures.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
