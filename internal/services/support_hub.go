package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"petstore/internal/models"

	"go.uber.org/zap"
)

const subscriberBuffer = 16

// SupportHub fans support events out to every open inbox view. A subscriber
// that is not keeping up misses events; Publish never blocks.
type SupportHub struct {
	mu     sync.RWMutex
	subs   map[chan models.SupportEvent]struct{}
	closed bool
	logger *zap.Logger
}

// NewSupportHub creates an empty hub.
func NewSupportHub(logger *zap.Logger) *SupportHub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupportHub{
		subs:   make(map[chan models.SupportEvent]struct{}),
		logger: logger,
	}
}

// Subscribe registers a new subscriber. The returned function unsubscribes and
// closes the channel; calling it more than once is safe.
func (h *SupportHub) Subscribe() (<-chan models.SupportEvent, func()) {
	ch := make(chan models.SupportEvent, subscriberBuffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[ch]; ok {
				delete(h.subs, ch)
				close(ch)
			}
		})
	}
}

// Publish delivers ev to every subscriber with room in its buffer.
func (h *SupportHub) Publish(ev models.SupportEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.logger.Debug("dropping support event for slow subscriber", zap.String("ticket_id", ev.TicketID))
		}
	}
}

// HandleMessage decodes a support event delivered by the message broker and
// publishes it.
func (h *SupportHub) HandleMessage(body []byte) error {
	var ev models.SupportEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("failed to decode support event: %w", err)
	}
	if ev.Type == "" {
		return errors.New("support event without type")
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	h.Publish(ev)
	return nil
}

// Subscribers returns the number of active subscribers.
func (h *SupportHub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close closes every subscriber channel. Later subscriptions receive a closed
// channel.
func (h *SupportHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}
