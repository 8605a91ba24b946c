package messaging

import (
	"fmt"
	"log/slog"
)

// Publisher sends raw data on a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// PlayerSubject is the subject a player's output is published on.
func PlayerSubject(charId string) string {
	return fmt.Sprintf("player-%s", charId)
}

// NatsPublisher delivers text to individual players.
type NatsPublisher struct {
	pub Publisher
}

// NewNatsPublisher wraps a publisher for per-player message delivery.
func NewNatsPublisher(pub Publisher) *NatsPublisher {
	return &NatsPublisher{pub: pub}
}

// Send satisfies actions.Messenger. Delivery failures are logged, not returned.
func (p *NatsPublisher) Send(charId string, msg string) {
	if err := p.pub.Publish(PlayerSubject(charId), []byte(msg)); err != nil {
		slog.Warn("publishing to player", "player", charId, "error", err)
	}
}
