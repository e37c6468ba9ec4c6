package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const sessionEventsChannel = "auth:session-events"

// Session event kinds pushed to subscribed clients.
const (
	EventSignedIn  = "signed_in"
	EventSignedOut = "signed_out"
)

// SessionEvent is a session-changed notification. Clients merge these into
// their auth state last-write-wins; At orders concurrent events.
type SessionEvent struct {
	Kind     string    `json:"kind"`
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username,omitempty"`
	At       time.Time `json:"at"`
}

// SessionEvents broadcasts session-changed events over a Redis pub/sub
// channel so every server instance can fan them out to its own subscribers.
type SessionEvents struct {
	rdb    *redis.Client
	logger zerolog.Logger
}

func NewSessionEvents(rdb *redis.Client) *SessionEvents {
	return &SessionEvents{
		rdb:    rdb,
		logger: log.With().Str("service", "sessionEvents").Logger(),
	}
}

// Publish sends a session event. Failures are logged, not returned: a missed
// notification must never fail the sign-in or sign-out that caused it.
func (s *SessionEvents) Publish(ctx context.Context, event SessionEvent) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to marshal session event")
		return
	}
	if err := s.rdb.Publish(ctx, sessionEventsChannel, payload).Err(); err != nil {
		s.logger.Error().Err(err).Str("kind", event.Kind).Msg("Failed to publish session event")
	}
}

// Subscribe opens a per-connection subscription and returns a channel of
// decoded events. The channel closes when ctx is done.
func (s *SessionEvents) Subscribe(ctx context.Context) <-chan SessionEvent {
	sub := s.rdb.Subscribe(ctx, sessionEventsChannel)
	out := make(chan SessionEvent)

	go func() {
		defer close(out)
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var event SessionEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					s.logger.Error().Err(err).Msg("Dropping undecodable session event")
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
