package widget

import (
	"github.com/Freeeeeet/class_widget/internal/capability"
	"github.com/Freeeeeet/class_widget/internal/model"
	"github.com/Freeeeeet/class_widget/internal/surface"
	"github.com/Freeeeeet/class_widget/internal/view"
	"go.uber.org/zap"
)

// NextWeek переключает окно на следующую неделю
func (w *Widget) NextWeek() {
	w.post(func() { w.shift(1) })
}

// PrevWeek переключает окно на предыдущую неделю
func (w *Widget) PrevWeek() {
	w.post(func() { w.shift(-1) })
}

// OpenSession открывает панель деталей занятия из колонки dayOffset
func (w *Widget) OpenSession(sessionID string, dayOffset int) {
	w.post(func() { w.openSession(sessionID, dayOffset) })
}

// CloseDetail закрывает панель деталей
func (w *Widget) CloseDetail() {
	w.post(w.calendar.CloseDetail)
}

// Book записывает посетителя на выбранное занятие
func (w *Widget) Book() {
	w.post(w.book)
}

// RequestCancel открывает подтверждение отмены записи
func (w *Widget) RequestCancel(bookingID string) {
	w.post(func() { w.canceller.Request(bookingID) })
}

// ConfirmCancel отправляет отмену
func (w *Widget) ConfirmCancel() {
	w.post(func() { w.canceller.Confirm(w.ctx) })
}

// DismissCancel закрывает подтверждение без отмены
func (w *Widget) DismissCancel() {
	w.post(w.canceller.Dismiss)
}

// ReloadCatalog полностью заменяет каталог занятий
func (w *Widget) ReloadCatalog(sessions []*model.ClassSession) {
	w.post(func() { w.reloadCatalog(sessions) })
}

func (w *Widget) shift(weeks int) {
	w.state.Window = w.state.Window.Shift(weeks)
	w.calendar.Render(w.state.Window, w.catalog, w.state.Theme)
}

func (w *Widget) openSession(sessionID string, dayOffset int) {
	if dayOffset < 0 || dayOffset > 6 {
		w.logger.Warn("Day offset out of range", zap.Int("day_offset", dayOffset))
		return
	}
	session, ok := w.catalog.Find(sessionID)
	if !ok {
		w.logger.Warn("Session not in catalog", zap.String("class_id", sessionID))
		return
	}
	w.state.Selected = w.calendar.OpenDetail(w.state.Window, session, dayOffset)
}

func (w *Widget) book() {
	sel := w.state.Selected
	if sel.Empty() {
		w.logger.Debug("Book requested without selection")
		return
	}

	control, _ := surface.ControlOf(w.deps.Surface, surface.ConfirmBooking)
	message, _ := surface.MessageOf(w.deps.Surface, surface.SuccessMessage)
	w.coordinator.Book(w.ctx, sel.Session, w.state.Reservations.Len(), control, message)
}

func (w *Widget) reloadCatalog(sessions []*model.ClassSession) {
	w.catalog.Replace(sessions)

	if sel := w.state.Selected; !sel.Empty() {
		if fresh, ok := w.catalog.Find(sel.Session.ID); ok {
			w.state.Selected.Session = fresh
			w.calendar.RefreshSpots(w.state.Selected)
		}
	}

	w.calendar.Render(w.state.Window, w.catalog, w.state.Theme)
	w.logger.Debug("Catalog reloaded", zap.Int("sessions", w.catalog.Len()))
}

func (w *Widget) applyTheme(theme capability.Theme) {
	w.state.Theme = theme
	w.calendar.ApplyTheme(theme)
	w.bookings.ApplyTheme(theme)
	w.renderBookings()
	w.calendar.Render(w.state.Window, w.catalog, theme)
}

func (w *Widget) applyReservations(reservations []model.Reservation) {
	w.state.Reservations = model.NewReservationSet(reservations)

	// отменённая запись забывается, как только источник перестал её присылать
	present := make(map[string]struct{}, len(reservations))
	for _, r := range reservations {
		present[r.ID] = struct{}{}
	}
	for id := range w.cancelled {
		if _, ok := present[id]; !ok {
			delete(w.cancelled, id)
		}
	}

	w.renderBookings()
}

// renderBookings рисует список без записей, отменённых в этой сессии
func (w *Widget) renderBookings() {
	if len(w.cancelled) == 0 {
		w.bookings.Render(w.state.Reservations)
		return
	}

	visible := make([]model.Reservation, 0, w.state.Reservations.Len())
	for _, r := range w.state.Reservations.Items() {
		if _, gone := w.cancelled[r.ID]; !gone {
			visible = append(visible, r)
		}
	}
	w.bookings.Render(model.NewReservationSet(visible))
}

func (w *Widget) onReconciled(sessionID string) {
	w.calendar.Render(w.state.Window, w.catalog, w.state.Theme)
	if sel := w.state.Selected; !sel.Empty() && sel.Session.ID == sessionID {
		w.calendar.RefreshSpots(sel)
	}
}

func (w *Widget) onRemoved(bookingID string) {
	w.cancelled[bookingID] = struct{}{}
	w.state.Selected = view.Selection{}
	w.calendar.CloseDetail()
}
