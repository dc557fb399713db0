package command

import (
	"context"
	"fmt"

	"github.com/tair/starwars-api/internal/favorite/domain"
)

// RemoveFavoriteCommand represents the command to remove a favorite
type RemoveFavoriteCommand struct {
	Kind     domain.Kind
	UserID   uint
	TargetID uint
}

// RemoveFavoriteHandler handles remove favorite command
type RemoveFavoriteHandler struct {
	repo      domain.FavoriteRepository
	publisher domain.EventPublisher
}

// NewRemoveFavoriteHandler creates a new remove favorite handler
func NewRemoveFavoriteHandler(repo domain.FavoriteRepository, publisher domain.EventPublisher) *RemoveFavoriteHandler {
	return &RemoveFavoriteHandler{repo: repo, publisher: publisher}
}

// Handle executes the remove favorite command
func (h *RemoveFavoriteHandler) Handle(ctx context.Context, cmd RemoveFavoriteCommand) error {
	if cmd.UserID == 0 {
		return domain.ErrUserIDRequired
	}

	if err := h.repo.Remove(ctx, cmd.Kind, cmd.UserID, cmd.TargetID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	publish(ctx, h.publisher, domain.FavoriteEvent{
		Action:   domain.ActionRemoved,
		Kind:     cmd.Kind,
		UserID:   cmd.UserID,
		TargetID: cmd.TargetID,
	})

	return nil
}
