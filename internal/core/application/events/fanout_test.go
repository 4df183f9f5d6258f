package events_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"orderflow/internal/core/application/events"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, event order.StatusChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func TestFanout_Publish(t *testing.T) {
	ctx := context.Background()
	event := order.StatusChanged{
		OrderID:    kernel.NewUUID(),
		UserID:     "user-1",
		From:       order.Pending,
		To:         order.Preparing,
		Location:   order.LocationKitchen,
		OccurredAt: time.Now(),
	}

	failing := new(MockPublisher)
	failing.On("Publish", ctx, event).Return(errors.New("broker down")).Once()
	healthy := new(MockPublisher)
	healthy.On("Publish", ctx, event).Return(nil).Once()

	fanout := events.NewFanout(slog.New(slog.NewTextHandler(io.Discard, nil)), failing)
	fanout.Add(healthy)

	err := fanout.Publish(ctx, event)

	require.ErrorContains(t, err, "broker down")
	failing.AssertExpectations(t)
	healthy.AssertExpectations(t)
}

func TestFanout_NoSinks(t *testing.T) {
	fanout := events.NewFanout(slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.NoError(t, fanout.Publish(context.Background(), order.StatusChanged{}))
}
