package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tair/starwars-api/kafka"
	"github.com/tair/starwars-api/pkg/logger"
)

func (a *app) newEventsCommand() *cobra.Command {
	var groupID string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Follow favorite change events published to Kafka",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			brokers := a.cfg.Brokers()
			if len(brokers) == 0 {
				return errors.New("KAFKA_BROKERS is required")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			consumer, err := kafka.NewConsumer(brokers, groupID, []string{kafka.TopicFavoritesChanged})
			if err != nil {
				return err
			}
			defer consumer.Close()

			consumer.RegisterHandler(kafka.EventTypeFavoriteAdded, logEvent)
			consumer.RegisterHandler(kafka.EventTypeFavoriteRemoved, logEvent)
			return consumer.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&groupID, "group", "starwars-events", "Kafka consumer group id")
	return cmd
}

func logEvent(ctx context.Context, event kafka.FavoriteChangedEvent) error {
	logger.Info(ctx).
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Str("kind", event.Kind).
		Uint("user_id", event.UserID).
		Uint("target_id", event.TargetID).
		Time("timestamp", event.Timestamp).
		Msg("Favorite changed")
	return nil
}
