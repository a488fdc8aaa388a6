package state

import (
	"testing"

	"github.com/Freeeeeet/class_widget/internal/capability"
	"github.com/Freeeeeet/class_widget/internal/feed"
	"github.com/Freeeeeet/class_widget/internal/model"
	"github.com/Freeeeeet/class_widget/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(chatID int64, visitor string) *Session {
	return NewSession(chatID, visitor, surface.NewPage(), capability.NewLocalHost(nil), feed.NewChannel(nil))
}

func TestManagerPutReplacesSession(t *testing.T) {
	m := NewManager()

	first := newSession(1, "ola")
	assert.Nil(t, m.Put(first))

	second := newSession(1, "ola")
	assert.Same(t, first, m.Put(second))

	got, ok := m.Get(1)
	require.True(t, ok)
	assert.Same(t, second, got)

	removed, ok := m.Remove(1)
	require.True(t, ok)
	assert.Same(t, second, removed)

	_, ok = m.Get(1)
	assert.False(t, ok)
}

func TestManagerVisitorsAreUnique(t *testing.T) {
	m := NewManager()
	m.Put(newSession(1, "ola"))
	m.Put(newSession(2, "ola"))
	m.Put(newSession(3, "adam"))
	m.Put(newSession(4, ""))

	assert.Equal(t, []string{"adam", "ola"}, m.Visitors())
}

func TestManagerApplyReservationsPublishesToVisitorSessions(t *testing.T) {
	m := NewManager()
	ola := newSession(1, "ola")
	adam := newSession(2, "adam")
	m.Put(ola)
	m.Put(adam)

	m.ApplyReservations("ola", []model.Reservation{{ID: "r1"}})

	assert.Len(t, ola.Feed.Current(), 1)
	assert.Empty(t, adam.Feed.Current())
}

func TestManagerApplyCatalogSkipsDetachedSessions(t *testing.T) {
	m := NewManager()
	m.Put(newSession(1, "ola"))

	assert.NotPanics(t, func() {
		m.ApplyCatalog([]*model.ClassSession{{ID: "1"}})
	})
}

func TestSessionDirtyCoalesces(t *testing.T) {
	s := newSession(1, "ola")
	s.MarkDirty()
	s.MarkDirty()

	<-s.Dirty()
	select {
	case <-s.Dirty():
		t.Fatal("expected a single pending mark")
	default:
	}
}

func TestSessionFingerprint(t *testing.T) {
	s := newSession(1, "ola")

	assert.True(t, s.Changed("a"))
	assert.False(t, s.Changed("a"))
	assert.True(t, s.Changed("b"))

	s.SetMessage(42, "c")
	id, ok := s.Message()
	assert.True(t, ok)
	assert.Equal(t, 42, id)
	assert.False(t, s.Changed("c"))

	s.Forget()
	assert.True(t, s.Changed("c"))
}

func TestSessionScreen(t *testing.T) {
	s := newSession(1, "ola")
	assert.Equal(t, ScreenCalendar, s.Screen())
	assert.False(t, s.SetScreen(ScreenCalendar))
	assert.True(t, s.SetScreen(ScreenBookings))
	assert.Equal(t, ScreenBookings, s.Screen())
}
