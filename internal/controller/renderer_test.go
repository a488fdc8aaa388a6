package controller

import (
	"testing"

	"github.com/Freeeeeet/class_widget/internal/capability"
	"github.com/Freeeeeet/class_widget/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/class_widget/internal/controller/state"
	"github.com/Freeeeeet/class_widget/internal/feed"
	"github.com/Freeeeeet/class_widget/internal/locale"
	"github.com/Freeeeeet/class_widget/internal/model"
	"github.com/Freeeeeet/class_widget/internal/surface"
	"github.com/Freeeeeet/class_widget/internal/view"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestBuildScreenFollowsSessionScreen(t *testing.T) {
	messages := locale.For("pl")
	page := surface.NewPage()
	theme := capability.DefaultSchema(messages).Resolve(nil)

	bookings := view.NewBookingsView(page, messages)
	bookings.ApplyTheme(theme)
	bookings.Render(model.NewReservationSet(nil))
	view.NewCalendarView(page, messages).ApplyTheme(theme)

	session := state.NewSession(1, "ola", page, capability.NewLocalHost(nil), feed.NewChannel(nil))

	calendar := BuildScreen(session)
	assert.Contains(t, calendar.Text, "Kalendarz Zajęć Sportowych")

	session.SetScreen(state.ScreenBookings)
	list := BuildScreen(session)
	assert.Contains(t, list.Text, "Moje rezerwacje")
	assert.NotEqual(t, calendar.Fingerprint(), list.Fingerprint())

	last := list.Keyboard.InlineKeyboard[len(list.Keyboard.InlineKeyboard)-1]
	assert.Equal(t, callbacktypes.ShowCalendar, last[0].CallbackData)
}

func TestRefreshMarksSessionDirty(t *testing.T) {
	r := NewRenderer(nil, zap.NewNop())
	session := state.NewSession(1, "ola", surface.NewPage(), capability.NewLocalHost(nil), feed.NewChannel(nil))

	r.Refresh(session)
	select {
	case <-session.Dirty():
	default:
		t.Fatal("refresh must mark the session dirty")
	}
}
