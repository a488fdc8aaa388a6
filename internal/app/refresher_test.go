package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/class_widget/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSource struct {
	sessions    []*model.ClassSession
	sessionsErr error
	byVisitor   map[string][]model.Reservation
}

func (s *stubSource) Sessions(context.Context) ([]*model.ClassSession, error) {
	return s.sessions, s.sessionsErr
}

func (s *stubSource) Reservations(_ context.Context, visitor string) ([]model.Reservation, error) {
	rs, ok := s.byVisitor[visitor]
	if !ok {
		return nil, errors.New("unknown visitor")
	}
	return rs, nil
}

type recordingSink struct {
	catalogs     [][]*model.ClassSession
	reservations map[string][]model.Reservation
	visitors     []string
}

func (s *recordingSink) ApplyCatalog(sessions []*model.ClassSession) {
	s.catalogs = append(s.catalogs, sessions)
}

func (s *recordingSink) Visitors() []string { return s.visitors }

func (s *recordingSink) ApplyReservations(visitor string, reservations []model.Reservation) {
	if s.reservations == nil {
		s.reservations = make(map[string][]model.Reservation)
	}
	s.reservations[visitor] = reservations
}

func TestRefreshPushesCatalogAndReservations(t *testing.T) {
	src := &stubSource{
		sessions:  []*model.ClassSession{{ID: "1"}},
		byVisitor: map[string][]model.Reservation{"ola": {{ID: "r1"}}},
	}
	sink := &recordingSink{visitors: []string{"ola", "ghost"}}

	NewRefresher(src, sink, time.Hour, zap.NewNop()).Refresh(context.Background())

	require.Len(t, sink.catalogs, 1)
	assert.Equal(t, "1", sink.catalogs[0][0].ID)
	assert.Len(t, sink.reservations["ola"], 1)
	_, ok := sink.reservations["ghost"]
	assert.False(t, ok)
}

func TestRefreshKeepsDataOnSourceError(t *testing.T) {
	src := &stubSource{sessionsErr: errors.New("db down")}
	sink := &recordingSink{visitors: []string{"ola"}}

	NewRefresher(src, sink, time.Hour, zap.NewNop()).Refresh(context.Background())

	assert.Empty(t, sink.catalogs)
	assert.Empty(t, sink.reservations)
}

func TestRunStopsOnStop(t *testing.T) {
	src := &stubSource{byVisitor: map[string][]model.Reservation{}}
	sink := &recordingSink{}
	r := NewRefresher(src, sink, time.Hour, zap.NewNop())

	done := make(chan struct{})
	go func() {
		r.Run(context.Background())
		close(done)
	}()

	r.Stop()
	r.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("refresher did not stop")
	}
	assert.Len(t, sink.catalogs, 1)
}
