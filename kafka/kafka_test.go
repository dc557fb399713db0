package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/starwars-api/internal/favorite/domain"
)

func TestPublishFavoriteChanged(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewProducerConfig())
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var event FavoriteChangedEvent
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		if event.EventType != EventTypeFavoriteRemoved || event.Kind != "planet" || event.UserID != 1 || event.TargetID != 5 {
			return errors.New("unexpected event payload")
		}
		if event.EventID == "" {
			return errors.New("missing event id")
		}
		return nil
	})

	p := NewPublisherWithProducer(producer)
	err := p.PublishFavoriteChanged(context.Background(), domain.FavoriteEvent{
		Action:   domain.ActionRemoved,
		Kind:     domain.KindPlanet,
		UserID:   1,
		TargetID: 5,
	})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestPublishFavoriteChangedSendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewProducerConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewPublisherWithProducer(producer)
	err := p.PublishFavoriteChanged(context.Background(), domain.FavoriteEvent{
		Action: domain.ActionAdded, Kind: domain.KindPerson, UserID: 2, TargetID: 3,
	})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestNopPublisher(t *testing.T) {
	var p NopPublisher
	assert.NoError(t, p.PublishFavoriteChanged(context.Background(), domain.FavoriteEvent{}))
	assert.NoError(t, p.Close())
}

func TestHandleMessageDispatchesByEventType(t *testing.T) {
	c := newConsumer(nil, "test", []string{TopicFavoritesChanged})

	var got []FavoriteChangedEvent
	c.RegisterHandler(EventTypeFavoriteAdded, func(ctx context.Context, event FavoriteChangedEvent) error {
		got = append(got, event)
		return nil
	})

	payload, err := json.Marshal(FavoriteChangedEvent{EventID: "e1", EventType: EventTypeFavoriteAdded, Kind: "vehicle", UserID: 1, TargetID: 4})
	require.NoError(t, err)

	msg := &sarama.ConsumerMessage{
		Topic: TopicFavoritesChanged,
		Value: payload,
		Headers: []*sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(EventTypeFavoriteAdded)},
			{Key: []byte("event_id"), Value: []byte("e1")},
		},
	}
	require.NoError(t, c.handleMessage(context.Background(), msg))
	require.Len(t, got, 1)
	assert.Equal(t, uint(4), got[0].TargetID)

	// no handler for removals: skipped without error
	msg.Headers[0].Value = []byte(EventTypeFavoriteRemoved)
	assert.NoError(t, c.handleMessage(context.Background(), msg))
	assert.Len(t, got, 1)

	assert.Error(t, c.handleMessage(context.Background(), &sarama.ConsumerMessage{Value: payload}))

	msg.Headers[0].Value = []byte(EventTypeFavoriteAdded)
	msg.Value = []byte("{")
	assert.Error(t, c.handleMessage(context.Background(), msg))
}
