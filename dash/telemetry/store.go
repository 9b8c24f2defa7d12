package telemetry

import "time"

// Store holds the latest decoded record plus the freshness clock. It is owned
// by the main cycle; downstream components read it between ingest passes.
type Store struct {
	dec Decoder

	rec      Record
	lastByte time.Time
	frames   uint64

	accepted uint64
	dropped  uint64
}

func NewStore(now time.Time) *Store {
	return &Store{lastByte: now}
}

// Ingest feeds raw bytes through the decoder. Every byte refreshes the clock:
// byte arrival is evidence the link is alive even before a full line parses.
func (s *Store) Ingest(p []byte, now time.Time) {
	for _, b := range p {
		if now.After(s.lastByte) {
			s.lastByte = now
		}
		rec, st := s.dec.Feed(b)
		switch st {
		case FeedFrame:
			s.rec = rec
			s.frames++
			s.accepted++
		case FeedDropped:
			s.dropped++
		}
	}
}

// Latest returns the last good record; the zero Record before any frame.
func (s *Store) Latest() Record { return s.rec }

// Frames returns the decoded-frame sequence number.
func (s *Store) Frames() uint64 { return s.frames }

// SinceLastByte reports how long the feed has been silent.
func (s *Store) SinceLastByte(now time.Time) time.Duration {
	return now.Sub(s.lastByte)
}

// Stats returns accepted and dropped line counts.
func (s *Store) Stats() (accepted, dropped uint64) {
	return s.accepted, s.dropped
}
