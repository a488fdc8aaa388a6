package catalog

import (
	"slices"
	"testing"
	"time"

	"github.com/Freeeeeet/class_widget/internal/clock"
	"github.com/Freeeeeet/class_widget/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(c *Catalog, w clock.WeekWindow, offset int) []string {
	var out []string
	for s := range c.SessionsOn(w.DateAt(offset), offset) {
		out = append(out, s.ID)
	}
	return out
}

func TestSessionsOnOrdersByStartTime(t *testing.T) {
	window := clock.NewWeekWindow(time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC))
	c := New([]*model.ClassSession{
		{ID: "late", StartTime: "18:30", Day: model.DayIndex(0)},
		{ID: "early", StartTime: "07:00", Day: model.DayIndex(0)},
		{ID: "nine", StartTime: "9:00", Day: model.DayIndex(0)},
		{ID: "tie-a", StartTime: "12:00", Day: model.DayIndex(0)},
		{ID: "tie-b", StartTime: "12:00", Day: model.DayIndex(0)},
		{ID: "tuesday", StartTime: "06:00", Day: model.DayIndex(1)},
	})

	assert.Equal(t, []string{"early", "nine", "tie-a", "tie-b", "late"}, ids(c, window, 0))
	assert.Equal(t, []string{"tuesday"}, ids(c, window, 1))
	assert.Empty(t, ids(c, window, 2))
}

func TestSessionsOnExplicitDateWins(t *testing.T) {
	window := clock.NewWeekWindow(time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC))
	c := New([]*model.ClassSession{
		// дата в следующей неделе, хотя индекс дня совпадает с понедельником
		{ID: "dated-next-week", StartTime: "10:00", Date: "2026-10-19", Day: model.DayIndex(0)},
		{ID: "dated-wednesday", StartTime: "10:00", Date: "2026-10-14", Day: model.DayIndex(0)},
		{ID: "weekly", StartTime: "11:00", Day: model.DayIndex(0)},
	})

	assert.Equal(t, []string{"weekly"}, ids(c, window, 0))
	assert.Equal(t, []string{"dated-wednesday"}, ids(c, window, 2))

	next := window.Shift(1)
	assert.Equal(t, []string{"dated-next-week", "weekly"}, ids(c, next, 0))
}

func TestSessionsOnDatedSessionsStayInTheirWeek(t *testing.T) {
	c := New([]*model.ClassSession{
		{ID: "dated", StartTime: "10:00", Date: "2026-10-14", Day: model.DayIndex(2)},
	})

	base := clock.NewWeekWindow(time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC))
	for delta := -3; delta <= 3; delta++ {
		window := base.Shift(delta)
		var seen int
		for offset := 0; offset < clock.DaysInWeek; offset++ {
			seen += len(ids(c, window, offset))
		}
		if delta == 0 {
			assert.Equal(t, 1, seen)
		} else {
			assert.Zero(t, seen, "delta %d", delta)
		}
	}
}

func TestSessionsOnIsReevaluated(t *testing.T) {
	window := clock.NewWeekWindow(time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC))
	c := New([]*model.ClassSession{{ID: "a", StartTime: "10:00", Day: model.DayIndex(0)}})

	seq := c.SessionsOn(window.DateAt(0), 0)
	assert.Len(t, slices.Collect(seq), 1)

	c.Replace([]*model.ClassSession{
		{ID: "b", StartTime: "09:00", Day: model.DayIndex(0)},
		{ID: "c", StartTime: "08:00", Day: model.DayIndex(0)},
	})

	var got []string
	for s := range seq {
		got = append(got, s.ID)
	}
	assert.Equal(t, []string{"c", "b"}, got)
}

func TestApplySpotUpdate(t *testing.T) {
	a := &model.ClassSession{ID: "a", Spots: 10}
	b := &model.ClassSession{ID: "b", Spots: 5}
	c := New([]*model.ClassSession{a, b})

	require.True(t, c.ApplySpotUpdate("a", 3))
	assert.Equal(t, 3, a.Spots)
	assert.Equal(t, 5, b.Spots)

	assert.False(t, c.ApplySpotUpdate("missing", 1))
	assert.Equal(t, 3, a.Spots)
	assert.Equal(t, 5, b.Spots)
}

func TestReplaceSkipsNil(t *testing.T) {
	c := New([]*model.ClassSession{nil, {ID: "a"}})
	assert.Equal(t, 1, c.Len())

	_, ok := c.Find("a")
	assert.True(t, ok)
}
