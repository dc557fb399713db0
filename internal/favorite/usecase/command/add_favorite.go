package command

import (
	"context"
	"fmt"

	"github.com/tair/starwars-api/internal/favorite/domain"
	"github.com/tair/starwars-api/pkg/logger"
)

// AddFavoriteCommand represents the command to add a favorite for a user
type AddFavoriteCommand struct {
	Kind     domain.Kind
	UserID   uint
	TargetID uint
}

// AddFavoriteHandler handles add favorite command
type AddFavoriteHandler struct {
	repo      domain.FavoriteRepository
	publisher domain.EventPublisher
}

// NewAddFavoriteHandler creates a new add favorite handler
func NewAddFavoriteHandler(repo domain.FavoriteRepository, publisher domain.EventPublisher) *AddFavoriteHandler {
	return &AddFavoriteHandler{repo: repo, publisher: publisher}
}

// Handle checks the user and target, inserts the favorite and returns the
// user's favorites after the insert. The checks and the insert share one
// transaction.
func (h *AddFavoriteHandler) Handle(ctx context.Context, cmd AddFavoriteCommand) (*domain.UserFavorites, error) {
	if cmd.UserID == 0 {
		return nil, domain.ErrUserIDRequired
	}

	err := h.repo.WithinTx(ctx, func(tx domain.FavoriteRepository) error {
		if _, err := tx.FindUser(ctx, cmd.UserID); err != nil {
			return err
		}

		ok, err := tx.TargetExists(ctx, cmd.Kind, cmd.TargetID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s %d: %w", cmd.Kind, cmd.TargetID, cmd.Kind.TargetNotFound())
		}

		exists, err := tx.Exists(ctx, cmd.Kind, cmd.UserID, cmd.TargetID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%s %d: %w", cmd.Kind, cmd.TargetID, domain.ErrAlreadyFavorite)
		}

		return tx.Add(ctx, cmd.Kind, cmd.UserID, cmd.TargetID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	publish(ctx, h.publisher, domain.FavoriteEvent{
		Action:   domain.ActionAdded,
		Kind:     cmd.Kind,
		UserID:   cmd.UserID,
		TargetID: cmd.TargetID,
	})

	favs, err := h.repo.ListByUser(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	return favs, nil
}

// publish sends event and only logs a failure; the change is already
// committed at this point.
func publish(ctx context.Context, publisher domain.EventPublisher, event domain.FavoriteEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishFavoriteChanged(ctx, event); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("action", string(event.Action)).
			Str("kind", string(event.Kind)).
			Uint("user_id", event.UserID).
			Uint("target_id", event.TargetID).
			Msg("Failed to publish favorite event")
	}
}
