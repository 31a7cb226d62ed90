package session

import (
	"sync"
)

// Playback remembers what the client player last reported. The engine reads
// the position through a requestPlayer, so a request may override it.
type Playback struct {
	mu         sync.Mutex
	positionMs int64
	durationMs int64
}

// Set records a position report and, when given, the media duration
func (p *Playback) Set(positionMs int64, durationMs *int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.positionMs = max(positionMs, 0)
	if durationMs != nil {
		p.durationMs = max(*durationMs, 0)
	}
}

// Reset rewinds to the start of a newly opened video
func (p *Playback) Reset(durationMs int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.positionMs = 0
	p.durationMs = durationMs
}

// Get returns the last reported position and the duration
func (p *Playback) Get() (positionMs, durationMs int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionMs, p.durationMs
}

// requestPlayer implements annotations.Player for a single request
type requestPlayer struct {
	playback *Playback
	override *int64
	seekMs   *int64
}

func newRequestPlayer(playback *Playback, positionMs *int64) *requestPlayer {
	p := &requestPlayer{playback: playback}
	if positionMs != nil {
		pos := max(*positionMs, 0)
		playback.Set(pos, nil)
		p.override = &pos
	}
	return p
}

func (p *requestPlayer) PositionMs() int64 {
	if p.override != nil {
		return *p.override
	}
	pos, _ := p.playback.Get()
	return pos
}

func (p *requestPlayer) DurationMs() int64 {
	_, dur := p.playback.Get()
	return dur
}

// Seek records the target so the response can tell the client where to move
func (p *requestPlayer) Seek(ms int64) {
	p.seekMs = &ms
	p.override = &ms
	p.playback.Set(ms, nil)
}
