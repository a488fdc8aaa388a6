package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/class_widget/internal/clock"
	"github.com/Freeeeeet/class_widget/internal/locale"
	"github.com/Freeeeeet/class_widget/internal/model"
)

// RenderWeekLabel подпись окна в виде "d.m.yyyy - d.m.yyyy" без ведущих нулей
func RenderWeekLabel(w clock.WeekWindow) string {
	return FormatDate(w.Anchor()) + " - " + FormatDate(w.End())
}

// FormatDate дата в виде d.m.yyyy
func FormatDate(t time.Time) string {
	return t.Format("2.1.2006")
}

// FormatDay дата в виде d.m для заголовка колонки
func FormatDay(t time.Time) string {
	return t.Format("2.1")
}

// FormatSessionTime время занятия в виде "HH:MM (N min)"
func FormatSessionTime(s *model.ClassSession) string {
	return fmt.Sprintf("%s (%d min)", s.StartTime, s.Duration)
}

// FormatSpots строка свободных мест, например "Miejsca: 5"
func FormatSpots(m locale.Messages, spots int) string {
	return fmt.Sprintf("%s %d", m.Spots, spots)
}

// formatReservation подзаголовок карточки записи
func formatReservation(r model.Reservation) string {
	date := r.Date
	if t, err := time.Parse("2006-01-02", r.Date); err == nil {
		date = FormatDate(t)
	}

	parts := []string{"📅 " + date}
	if r.Time != "" {
		parts = append(parts, fmt.Sprintf("🕐 %s (%d min)", r.Time, r.Duration))
	}
	if r.Room != "" {
		parts = append(parts, "📍 "+r.Room)
	}
	if r.Instructor != "" {
		parts = append(parts, "👤 "+r.Instructor)
	}
	return strings.Join(parts, "  ")
}
