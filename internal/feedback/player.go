package feedback

import (
	"sort"
	"time"
)

type scheduled struct {
	at time.Time
	ev Event
}

// Player releases scheduled events as a caller-supplied clock advances.
// It never reads the wall clock itself; the presentation loop passes now.
//
// A Player follows one session at a time. Events tagged with an older
// session id are dropped on Schedule and on Due, so reveals from a game that
// was replaced mid-animation never reach the new board.
type Player struct {
	session uint64
	queue   []scheduled
}

func NewPlayer() *Player { return &Player{} }

// Reset drops everything pending and follows session id from now on.
func (p *Player) Reset(id uint64) {
	p.session = id
	p.queue = p.queue[:0]
}

// Session is the id the player currently follows.
func (p *Player) Session() uint64 { return p.session }

// Schedule queues a stream relative to now. A stream from a newer session
// implies Reset; one from an older session is ignored.
func (p *Player) Schedule(s Stream, now time.Time) {
	for _, ev := range s {
		switch {
		case ev.SessionID > p.session:
			p.Reset(ev.SessionID)
		case ev.SessionID < p.session:
			continue
		}
		p.queue = append(p.queue, scheduled{at: now.Add(ev.Delay), ev: ev})
	}
	sort.SliceStable(p.queue, func(i, j int) bool { return p.queue[i].at.Before(p.queue[j].at) })
}

// Due removes and returns, in order, every event scheduled at or before now.
func (p *Player) Due(now time.Time) []Event {
	n := 0
	for n < len(p.queue) && !p.queue[n].at.After(now) {
		n++
	}
	if n == 0 {
		return nil
	}
	out := make([]Event, 0, n)
	for _, s := range p.queue[:n] {
		if s.ev.SessionID == p.session {
			out = append(out, s.ev)
		}
	}
	p.queue = append(p.queue[:0], p.queue[n:]...)
	return out
}

// Pending is the number of events still queued.
func (p *Player) Pending() int { return len(p.queue) }

// Next reports when the next event is due.
func (p *Player) Next() (time.Time, bool) {
	if len(p.queue) == 0 {
		return time.Time{}, false
	}
	return p.queue[0].at, true
}
