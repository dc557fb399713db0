package domain

import "context"

// Action is what happened to a favorite
type Action string

const (
	ActionAdded   Action = "added"
	ActionRemoved Action = "removed"
)

// FavoriteEvent describes a committed favorite change
type FavoriteEvent struct {
	Action   Action
	Kind     Kind
	UserID   uint
	TargetID uint
}

// EventPublisher publishes favorite changes after they are committed
type EventPublisher interface {
	PublishFavoriteChanged(ctx context.Context, event FavoriteEvent) error
}
