// Package view отрисовывает состояние виджета в именованные слоты поверхности.
package view

import (
	"time"

	"github.com/Freeeeeet/class_widget/internal/capability"
	"github.com/Freeeeeet/class_widget/internal/catalog"
	"github.com/Freeeeeet/class_widget/internal/clock"
	"github.com/Freeeeeet/class_widget/internal/locale"
	"github.com/Freeeeeet/class_widget/internal/model"
	"github.com/Freeeeeet/class_widget/internal/surface"
)

const onAccent = "#ffffff"

// Selection занятие, открытое в панели деталей
type Selection struct {
	Session   *model.ClassSession
	DayOffset int
	Date      time.Time
}

// Empty true, если ничего не выбрано
func (s Selection) Empty() bool {
	return s.Session == nil
}

// CalendarView недельная сетка и панель деталей занятия
type CalendarView struct {
	surface  surface.Surface
	messages locale.Messages
}

// NewCalendarView создаёт представление календаря поверх поверхности
func NewCalendarView(s surface.Surface, m locale.Messages) *CalendarView {
	return &CalendarView{surface: s, messages: m}
}

// Render полностью перерисовывает подпись недели и сетку из семи колонок
func (v *CalendarView) Render(w clock.WeekWindow, c *catalog.Catalog, theme capability.Theme) {
	surface.SetText(v.surface, surface.WeekDisplay, RenderWeekLabel(w))

	grid, ok := surface.GridOf(v.surface, surface.CalendarBody)
	if !ok {
		return
	}

	header := make([]surface.HeaderCell, 0, clock.DaysInWeek)
	columns := make([][]surface.Card, clock.DaysInWeek)

	for offset := range clock.DaysInWeek {
		date := w.DateAt(offset)
		header = append(header, surface.HeaderCell{
			Weekday: v.messages.Weekday(date.Weekday()),
			Date:    FormatDay(date),
		})

		for session := range c.SessionsOn(date, offset) {
			columns[offset] = append(columns[offset], v.card(session, offset))
		}
	}

	grid.Replace(header, columns)
}

func (v *CalendarView) card(s *model.ClassSession, offset int) surface.Card {
	card := surface.Card{
		SessionID:  s.ID,
		DayOffset:  offset,
		Name:       s.Name,
		Time:       FormatSessionTime(s),
		Instructor: s.Instructor,
		Spots:      FormatSpots(v.messages, s.Spots),
	}
	if s.IsSubstituted() {
		card.Struck = true
		card.Substitute = s.SubstitutedFor
	}
	return card
}

// OpenDetail заполняет панель деталей и открывает её. Занятия без мест тоже
// открываются: доступность проверяется при записи.
func (v *CalendarView) OpenDetail(w clock.WeekWindow, s *model.ClassSession, dayOffset int) Selection {
	date := w.DateAt(dayOffset)

	surface.SetText(v.surface, surface.ModalTitle, s.Name)
	surface.SetText(v.surface, surface.ModalDate, FormatDate(date))
	surface.SetText(v.surface, surface.ModalTime, FormatSessionTime(s))
	surface.SetText(v.surface, surface.ModalRoom, s.Room)
	surface.SetText(v.surface, surface.ModalInstructor, s.Instructor)
	surface.SetText(v.surface, surface.ModalSpots, FormatSpots(v.messages, s.Spots))
	surface.SetText(v.surface, surface.ModalLevel, s.Level)

	// при замене основной инструктор зачёркивается, рядом имя заменяющего
	substituted := s.IsSubstituted()
	surface.SetStruck(v.surface, surface.ModalInstructor, substituted)
	surface.SetVisible(v.surface, surface.RowSubstitutedFor, substituted)
	if substituted {
		surface.SetText(v.surface, surface.ModalSubstitutedFor, s.SubstitutedFor)
	} else {
		surface.SetText(v.surface, surface.ModalSubstitutedFor, "")
	}

	v.ClearMessage()
	surface.SetVisible(v.surface, surface.Modal, true)

	return Selection{Session: s, DayOffset: dayOffset, Date: date}
}

// RefreshSpots обновляет счётчик мест в открытой панели
func (v *CalendarView) RefreshSpots(sel Selection) {
	if sel.Empty() {
		return
	}
	surface.SetText(v.surface, surface.ModalSpots, FormatSpots(v.messages, sel.Session.Spots))
}

// CloseDetail закрывает панель деталей
func (v *CalendarView) CloseDetail() {
	surface.SetVisible(v.surface, surface.Modal, false)
}

// ShowMessage показывает сообщение под кнопкой записи
func (v *CalendarView) ShowMessage(text string, tone surface.Tone) {
	msg, ok := surface.MessageOf(v.surface, surface.SuccessMessage)
	if !ok {
		return
	}
	msg.SetText(text)
	msg.SetTone(tone)
	msg.SetVisible(true)
}

// ClearMessage скрывает сообщение
func (v *CalendarView) ClearMessage() {
	msg, ok := surface.MessageOf(v.surface, surface.SuccessMessage)
	if !ok {
		return
	}
	msg.SetText("")
	msg.SetTone(surface.ToneNone)
	msg.SetVisible(false)
}

// ApplyTheme применяет разрешённую тему к слотам календаря
func (v *CalendarView) ApplyTheme(theme capability.Theme) {
	primary := theme.Color(capability.PrimaryActionColor)
	secondary := theme.Color(capability.SecondaryActionColor)
	text := theme.Color(capability.TextColor)

	base := surface.Style{FontFamily: theme.FontFamily, Color: text}
	gradient := surface.Style{
		FontFamily: theme.FontFamily,
		Color:      onAccent,
		Background: primary,
		Gradient:   [2]string{primary, secondary},
		FontSize:   theme.FontSize,
	}

	surface.SetText(v.surface, surface.PageTitle, theme.Text(capability.PageTitle))
	surface.SetStyle(v.surface, surface.PageTitle, with(base, func(s *surface.Style) {
		s.Color = primary
		s.Background = theme.Color(capability.BackgroundColor)
		s.FontSize = theme.Scaled(capability.ScaleTitle)
	}))
	surface.SetStyle(v.surface, surface.WeekDisplay, with(base, func(s *surface.Style) {
		s.FontSize = theme.Scaled(capability.ScaleWeekLabel)
	}))
	surface.SetStyle(v.surface, surface.PrevWeek, gradient)
	surface.SetStyle(v.surface, surface.NextWeek, gradient)
	surface.SetStyle(v.surface, surface.CalendarHeader, with(gradient, func(s *surface.Style) {
		s.FontSize = theme.Scaled(capability.ScaleSmall)
	}))
	surface.SetStyle(v.surface, surface.CalendarBody, with(base, func(s *surface.Style) {
		s.Background = theme.Color(capability.SurfaceColor)
		s.FontSize = theme.Scaled(capability.ScaleSmall)
	}))
	surface.SetStyle(v.surface, surface.Modal, with(base, func(s *surface.Style) {
		s.Background = theme.Color(capability.BackgroundColor)
		s.FontSize = theme.FontSize
	}))
	surface.SetStyle(v.surface, surface.ModalTitle, with(base, func(s *surface.Style) {
		s.Color = primary
		s.FontSize = theme.Scaled(capability.ScaleModalTitle)
	}))

	surface.SetText(v.surface, surface.ConfirmBooking, theme.Text(capability.BookingButtonText))
	surface.SetStyle(v.surface, surface.ConfirmBooking, gradient)
}

func with(style surface.Style, apply func(*surface.Style)) surface.Style {
	apply(&style)
	return style
}
