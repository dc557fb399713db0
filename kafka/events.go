package kafka

import (
	"time"

	"github.com/tair/starwars-api/internal/favorite/domain"
)

// FavoriteChangedEvent is the wire form of a committed favorite change
type FavoriteChangedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Kind      string    `json:"kind"`
	UserID    uint      `json:"user_id"`
	TargetID  uint      `json:"target_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeFavoriteAdded   = "favorite.added"
	EventTypeFavoriteRemoved = "favorite.removed"
)

// Kafka topics
const (
	TopicFavoritesChanged = "favorites-changed"
)

func eventTypeFor(action domain.Action) string {
	if action == domain.ActionRemoved {
		return EventTypeFavoriteRemoved
	}
	return EventTypeFavoriteAdded
}
