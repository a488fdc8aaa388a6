package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/Freeeeeet/class_widget/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingSDK struct{}

func (failingSDK) Init(context.Context, DataHandler) (InitResult, error) {
	return InitResult{}, errors.New("host offline")
}

func TestChannelDeliversSnapshotsWholesale(t *testing.T) {
	ch := NewChannel([]model.Reservation{{ID: "r1"}})

	var got [][]model.Reservation
	err := Attach(context.Background(), ch, HandlerFunc(func(rs []model.Reservation) {
		got = append(got, rs)
	}), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0][0].ID)

	ch.Publish([]model.Reservation{{ID: "r2"}, {ID: "r3"}})
	require.Len(t, got, 2)
	assert.Len(t, got[1], 2)

	ch.Close()
	ch.Publish(nil)
	assert.Len(t, got, 2)

	res, err := ch.Init(context.Background(), HandlerFunc(func([]model.Reservation) {}))
	require.NoError(t, err)
	assert.False(t, res.OK)
}

func TestAttachFailures(t *testing.T) {
	noop := HandlerFunc(func([]model.Reservation) {})

	assert.ErrorIs(t, Attach(context.Background(), nil, noop, zap.NewNop()), ErrUnavailable)
	assert.ErrorIs(t, Attach(context.Background(), failingSDK{}, noop, zap.NewNop()), ErrUnavailable)

	closed := NewChannel(nil)
	closed.Close()
	assert.ErrorIs(t, Attach(context.Background(), closed, noop, zap.NewNop()), ErrUnavailable)
}
