package stats

import (
	"sync"
	"time"
)

// Snapshot is the JSON view of the render statistics
type Snapshot struct {
	FPS       uint64  `json:"fps"`
	Frames    uint64  `json:"frames"`
	DrawCalls uint64  `json:"draw_calls"`
	Uptime    float64 `json:"uptime"`
	Objects   int     `json:"objects"`
	WsClients int     `json:"ws_clients"`
}

// Stats is updated by the render thread and read by the api
type Stats struct {
	mu   sync.Mutex
	snap Snapshot

	frameCounter uint64
	frameTimer   time.Time
	start        time.Time
}

func New(objects int) *Stats {
	s := &Stats{}
	s.start = time.Now()
	s.frameTimer = s.start
	s.snap.Objects = objects
	return s
}

func (s *Stats) Update(drawCalls int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frameCounter++
	s.snap.Frames++
	s.snap.DrawCalls += uint64(drawCalls)
	if time.Since(s.frameTimer) > 1*time.Second {
		s.snap.FPS = s.frameCounter
		s.frameCounter = 0
		s.frameTimer = time.Now()
	}

	s.snap.Uptime = float64(time.Since(s.start).Nanoseconds()) / 1e9
}

func (s *Stats) SetWsClients(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.WsClients = n
}

func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}
