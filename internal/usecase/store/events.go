package store

import (
	"sync"
	"time"

	"supplier-quotes/internal/domain/quote"

	"github.com/google/uuid"
)

type EventType string

const (
	EventRefreshed EventType = "refreshed"
	EventCreated   EventType = "created"
	EventUpdated   EventType = "updated"
)

// Event tells subscribers the working set changed. Quote is set for creates and updates.
type Event struct {
	Type       EventType
	QuoteID    uuid.UUID
	Quote      *quote.Quote
	Count      int
	Generation uint64
	At         time.Time
}

func (s *QuoteStore) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 0 {
		buffer = 0
	}
	ch := make(chan Event, buffer)

	s.subsMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = ch
	s.subsMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// publish never blocks; a subscriber that falls behind misses events.
func (s *QuoteStore) publish(ev Event) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for id, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			s.logger.Debug("dropping quote store event for slow subscriber",
				"subscriber", id,
				"type", string(ev.Type))
		}
	}
}
