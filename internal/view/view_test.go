package view

import (
	"testing"
	"time"

	"github.com/Freeeeeet/class_widget/internal/capability"
	"github.com/Freeeeeet/class_widget/internal/catalog"
	"github.com/Freeeeeet/class_widget/internal/clock"
	"github.com/Freeeeeet/class_widget/internal/locale"
	"github.com/Freeeeeet/class_widget/internal/model"
	"github.com/Freeeeeet/class_widget/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var messages = locale.For("pl")

func window() clock.WeekWindow {
	return clock.NewWeekWindow(time.Date(2025, time.March, 5, 15, 0, 0, 0, time.UTC))
}

func sampleCatalog() *catalog.Catalog {
	return catalog.New([]*model.ClassSession{
		{ID: "yoga", Name: "Joga", StartTime: "18:00", Duration: 60, Instructor: "Anna", Spots: 4, Day: model.DayIndex(0)},
		{ID: "box", Name: "Boks", StartTime: "07:30", Duration: 45, Instructor: "Marek", Spots: 0, Day: model.DayIndex(0),
			IsSubstitution: true, SubstitutedFor: "Piotr"},
		{ID: "swim", Name: "Pływanie", StartTime: "10:00", Duration: 50, Instructor: "Ola", Spots: 2, Date: "2025-03-07"},
	})
}

func TestRenderWeekLabel(t *testing.T) {
	assert.Equal(t, "3.3.2025 - 9.3.2025", RenderWeekLabel(window()))

	across := clock.NewWeekWindow(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "30.12.2024 - 5.1.2025", RenderWeekLabel(across))
}

func TestRenderGrid(t *testing.T) {
	page := surface.NewPage()
	v := NewCalendarView(page, messages)

	v.Render(window(), sampleCatalog(), capability.DefaultSchema(messages).Resolve(nil))

	assert.Equal(t, "3.3.2025 - 9.3.2025", page.Element(surface.WeekDisplay).State().Text)

	state := page.Element(surface.CalendarBody).State()
	require.Len(t, state.Header, 7)
	assert.Equal(t, surface.HeaderCell{Weekday: "Poniedziałek", Date: "3.3"}, state.Header[0])
	assert.Equal(t, "Niedziela", state.Header[6].Weekday)

	require.Len(t, state.Columns, 7)
	require.Len(t, state.Columns[0], 2)
	assert.Equal(t, "box", state.Columns[0][0].SessionID)
	assert.True(t, state.Columns[0][0].Struck)
	assert.Equal(t, "Piotr", state.Columns[0][0].Substitute)
	assert.Equal(t, "Miejsca: 0", state.Columns[0][0].Spots)
	assert.Equal(t, "18:00 (60 min)", state.Columns[0][1].Time)
	assert.False(t, state.Columns[0][1].Struck)

	require.Len(t, state.Columns[4], 1)
	assert.Equal(t, "swim", state.Columns[4][0].SessionID)
	assert.Empty(t, state.Columns[3])
}

func TestSubstitutionRowVisibility(t *testing.T) {
	page := surface.NewPage()
	v := NewCalendarView(page, messages)
	c := sampleCatalog()

	box, _ := c.Find("box")
	sel := v.OpenDetail(window(), box, 0)
	assert.Equal(t, "box", sel.Session.ID)
	assert.True(t, page.Element(surface.Modal).State().Visible)
	assert.True(t, page.Element(surface.RowSubstitutedFor).State().Visible)
	assert.Equal(t, "Piotr", page.Element(surface.ModalSubstitutedFor).State().Text)
	instructor := page.Element(surface.ModalInstructor).State()
	assert.Equal(t, "Marek", instructor.Text)
	assert.True(t, instructor.Struck)
	assert.Equal(t, "3.3.2025", page.Element(surface.ModalDate).State().Text)

	yoga, _ := c.Find("yoga")
	v.OpenDetail(window(), yoga, 0)
	assert.False(t, page.Element(surface.RowSubstitutedFor).State().Visible)
	assert.False(t, page.Element(surface.ModalInstructor).State().Struck)
	assert.Equal(t, "Miejsca: 4", page.Element(surface.ModalSpots).State().Text)

	// флаг без имени заменяющего не считается заменой
	half := &model.ClassSession{ID: "x", Name: "X", StartTime: "09:00", IsSubstitution: true}
	v.OpenDetail(window(), half, 2)
	assert.False(t, page.Element(surface.RowSubstitutedFor).State().Visible)
	assert.False(t, page.Element(surface.ModalInstructor).State().Struck)
}

func TestOpenDetailClearsMessage(t *testing.T) {
	page := surface.NewPage()
	v := NewCalendarView(page, messages)

	v.ShowMessage("Brak miejsc", surface.ToneError)
	assert.True(t, page.Element(surface.SuccessMessage).State().Visible)

	yoga, _ := sampleCatalog().Find("yoga")
	v.OpenDetail(window(), yoga, 0)
	msg := page.Element(surface.SuccessMessage).State()
	assert.False(t, msg.Visible)
	assert.Empty(t, msg.Text)

	v.CloseDetail()
	assert.False(t, page.Element(surface.Modal).State().Visible)
}

func TestRenderSkipsMissingSlots(t *testing.T) {
	page := surface.NewMemory(surface.PageTitle)
	v := NewCalendarView(page, messages)

	assert.NotPanics(t, func() {
		v.Render(window(), sampleCatalog(), capability.Theme{})
		v.ApplyTheme(capability.DefaultSchema(messages).Resolve(nil))
	})
	assert.Equal(t, "Kalendarz Zajęć Sportowych", page.Element(surface.PageTitle).State().Text)
}

func TestApplyTheme(t *testing.T) {
	page := surface.NewPage()
	v := NewCalendarView(page, messages)

	cfg := capability.NewConfig(capability.Values{
		capability.PrimaryActionColor: "#000000",
		capability.BookingButtonText:  "Zapisz mnie",
		capability.FontSize:           20,
	})
	v.ApplyTheme(capability.DefaultSchema(messages).Resolve(cfg))

	title := page.Element(surface.PageTitle).State()
	assert.Equal(t, "#000000", title.Style.Color)
	assert.Equal(t, 45, title.Style.FontSize)

	button := page.Element(surface.ConfirmBooking).State()
	assert.Equal(t, "Zapisz mnie", button.Text)
	assert.Equal(t, [2]string{"#000000", "#3b82f6"}, button.Style.Gradient)
}

func TestBookingsViewRemoveShowsEmptyState(t *testing.T) {
	page := surface.NewPage()
	v := NewBookingsView(page, messages)
	v.ApplyTheme(capability.DefaultSchema(messages).Resolve(nil))

	v.Render(model.NewReservationSet([]model.Reservation{
		{ID: "r1", ActivityName: "Joga", Date: "2025-03-03", Time: "18:00", Duration: 60, Room: "A"},
		{ID: "r2", ActivityName: "Boks", Date: "2025-03-04"},
	}))

	state := page.Element(surface.ReservationsList).State()
	require.Len(t, state.Items, 2)
	assert.Equal(t, "Anuluj rezerwację", state.Items[0].Action)
	assert.Contains(t, state.Items[0].Subtitle, "3.3.2025")

	assert.Equal(t, 1, v.Remove("r1"))
	assert.Nil(t, page.Element(surface.ReservationsList).State().Empty)

	assert.Equal(t, 0, v.Remove("r2"))
	state = page.Element(surface.ReservationsList).State()
	require.NotNil(t, state.Empty)
	assert.Equal(t, messages.EmptyTitle, state.Empty.Title)
}

func TestBookingsViewEmptySet(t *testing.T) {
	page := surface.NewPage()
	v := NewBookingsView(page, messages)

	v.Render(model.NewReservationSet(nil))
	require.NotNil(t, page.Element(surface.ReservationsList).State().Empty)
}

func TestSnapshotEncodesPNG(t *testing.T) {
	theme := capability.DefaultSchema(messages).Resolve(nil)

	png, err := Snapshot(window(), sampleCatalog(), theme, messages)
	require.NoError(t, err)
	require.Greater(t, len(png), 8)
	assert.Equal(t, "\x89PNG", string(png[:4]))

	empty, err := Snapshot(window(), catalog.New(nil), theme, messages)
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}
