package callbacks

import (
	"testing"

	"github.com/Freeeeeet/class_widget/internal/capability"
	"github.com/Freeeeeet/class_widget/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/class_widget/internal/controller/state"
	"github.com/Freeeeeet/class_widget/internal/feed"
	"github.com/Freeeeeet/class_widget/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveKnownData(t *testing.T) {
	known := []string{
		callbacktypes.PrevWeek,
		callbacktypes.NextWeek,
		callbacktypes.CloseDetail,
		callbacktypes.Book,
		callbacktypes.ConfirmCancel,
		callbacktypes.DismissCancel,
		callbacktypes.ShowBookings,
		callbacktypes.ShowCalendar,
		callbacktypes.OpenData("yoga", 2),
		callbacktypes.CancelData("r1"),
	}

	for _, data := range known {
		action, ok := Resolve(data)
		assert.True(t, ok, data)
		assert.NotNil(t, action, data)
	}
}

func TestResolveRejectsUnknownData(t *testing.T) {
	for _, data := range []string{"", "subjects_page:1", "open:yoga", "open:yoga:9", "cancel:"} {
		_, ok := Resolve(data)
		assert.False(t, ok, data)
	}
}

func TestScreenSwitchMarksDirty(t *testing.T) {
	s := state.NewSession(1, "ola", surface.NewPage(), capability.NewLocalHost(nil), feed.NewChannel(nil))

	action, ok := Resolve(callbacktypes.ShowBookings)
	require.True(t, ok)
	action(s)

	assert.Equal(t, state.ScreenBookings, s.Screen())
	select {
	case <-s.Dirty():
	default:
		t.Fatal("screen switch must request a redraw")
	}
}
