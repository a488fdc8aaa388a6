package view

import (
	"github.com/Freeeeeet/class_widget/internal/capability"
	"github.com/Freeeeeet/class_widget/internal/locale"
	"github.com/Freeeeeet/class_widget/internal/model"
	"github.com/Freeeeeet/class_widget/internal/surface"
)

// BookingsView список записей посетителя и окно подтверждения отмены
type BookingsView struct {
	surface  surface.Surface
	messages locale.Messages
	theme    capability.Theme
}

// NewBookingsView создаёт представление списка записей
func NewBookingsView(s surface.Surface, m locale.Messages) *BookingsView {
	return &BookingsView{surface: s, messages: m}
}

// Render перерисовывает список из снимка записей
func (v *BookingsView) Render(set model.ReservationSet) {
	list, ok := surface.ListOf(v.surface, surface.ReservationsList)
	if !ok {
		return
	}
	if set.Len() == 0 {
		list.ShowEmpty(v.emptyState())
		return
	}

	action := v.cancelText()
	items := make([]surface.Item, 0, set.Len())
	for _, r := range set.Items() {
		items = append(items, surface.Item{
			ID:       r.ID,
			Title:    r.ActivityName,
			Subtitle: formatReservation(r),
			Action:   action,
		})
	}
	list.ReplaceItems(items)
}

// SetPending приглушает карточку на время отмены
func (v *BookingsView) SetPending(id string, pending bool) {
	if list, ok := surface.ListOf(v.surface, surface.ReservationsList); ok {
		list.SetPending(id, pending)
	}
}

// Remove убирает карточку; если список опустел, показывает заглушку.
// Возвращает количество оставшихся карточек.
func (v *BookingsView) Remove(id string) int {
	list, ok := surface.ListOf(v.surface, surface.ReservationsList)
	if !ok {
		return 0
	}
	list.Remove(id)
	remaining := list.Count()
	if remaining == 0 {
		list.ShowEmpty(v.emptyState())
	}
	return remaining
}

// OpenCancel показывает окно подтверждения отмены
func (v *BookingsView) OpenCancel() {
	surface.SetText(v.surface, surface.CancelModalMessage, v.confirmText())
	v.ClearStatus()
	surface.SetVisible(v.surface, surface.CancelModal, true)
}

// CloseCancel скрывает окно подтверждения
func (v *BookingsView) CloseCancel() {
	surface.SetVisible(v.surface, surface.CancelModal, false)
}

// ShowStatus показывает сообщение об ошибке отмены
func (v *BookingsView) ShowStatus(text string) {
	msg, ok := surface.MessageOf(v.surface, surface.CancelStatus)
	if !ok {
		return
	}
	msg.SetText(text)
	msg.SetTone(surface.ToneError)
	msg.SetVisible(true)
}

// ClearStatus скрывает сообщение об ошибке отмены
func (v *BookingsView) ClearStatus() {
	msg, ok := surface.MessageOf(v.surface, surface.CancelStatus)
	if !ok {
		return
	}
	msg.SetText("")
	msg.SetTone(surface.ToneNone)
	msg.SetVisible(false)
}

// ApplyTheme применяет тему к странице записей
func (v *BookingsView) ApplyTheme(theme capability.Theme) {
	v.theme = theme

	accent := theme.Color(capability.AccentActionColor)
	text := theme.Color(capability.TextColor)

	surface.SetText(v.surface, surface.MainTitle, theme.Text(capability.MainTitle))
	surface.SetStyle(v.surface, surface.MainTitle, surface.Style{
		Color:      text,
		FontFamily: theme.FontFamily,
		FontSize:   theme.Scaled(capability.ScaleTitle),
	})
	surface.SetStyle(v.surface, surface.ReservationsList, surface.Style{
		Color:      text,
		Background: theme.Color(capability.SurfaceColor),
		Gradient:   [2]string{accent, accent},
		FontFamily: theme.FontFamily,
		FontSize:   theme.FontSize,
	})
	surface.SetText(v.surface, surface.CancelModalMessage, v.confirmText())
}

func (v *BookingsView) emptyState() surface.EmptyState {
	return surface.EmptyState{
		Title:       v.messages.EmptyTitle,
		Description: v.messages.EmptyDescription,
	}
}

func (v *BookingsView) cancelText() string {
	if text := v.theme.Text(capability.CancelButtonText); text != "" {
		return text
	}
	return v.messages.CancelButton
}

func (v *BookingsView) confirmText() string {
	if text := v.theme.Text(capability.ConfirmMessage); text != "" {
		return text
	}
	return v.messages.ConfirmCancel
}
