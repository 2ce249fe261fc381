package kafka_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/origon-auth/internal/application/events"
	"github.com/jhoicas/origon-auth/internal/domain/entity"
	"github.com/jhoicas/origon-auth/internal/infrastructure/kafka"
)

func TestPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, kafka.NewSaramaConfig())
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var e events.Event
		if err := json.Unmarshal(val, &e); err != nil {
			return err
		}
		if e.Type != events.PasswordChanged || e.Kind != entity.KindHost {
			return errors.New("evento inesperado")
		}
		return nil
	})

	pub := kafka.NewPublisherWithProducer(producer, "origon.accounts", zerolog.Nop())
	err := pub.Publish(context.Background(), events.Event{
		Type:        events.PasswordChanged,
		Kind:        entity.KindHost,
		PrincipalID: "host-1",
		At:          time.Now().UTC(),
		Attributes:  map[string]any{"sessions_revoked": 1},
	})
	require.NoError(t, err)
	require.NoError(t, pub.Close())
}

func TestPublisher_PublishError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, kafka.NewSaramaConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := kafka.NewPublisherWithProducer(producer, "origon.accounts", zerolog.Nop())
	err := pub.Publish(context.Background(), events.Event{Type: events.Registered, Kind: entity.KindUser, PrincipalID: "u1"})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, pub.Close())
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	pub := kafka.NewLogPublisher(zerolog.New(&buf))

	require.NoError(t, pub.Publish(context.Background(), events.Event{Type: events.LoggedIn, Kind: entity.KindUser, PrincipalID: "u1"}))
	assert.Contains(t, buf.String(), `"event":"account.logged_in"`)
	assert.NotContains(t, buf.String(), "password")
}
