package callbacktypes

import (
	"fmt"
	"strconv"
	"strings"
)

// Callback data. Telegram ограничивает её 64 байтами.
const (
	Noop = "noop"

	PrevWeek    = "prev_week"
	NextWeek    = "next_week"
	OpenSession = "open:" // open:class_id:day_offset
	CloseDetail = "close_detail"
	Book        = "book"

	ShowBookings  = "show_bookings"
	ShowCalendar  = "show_calendar"
	CancelBooking = "cancel:" // cancel:booking_id
	ConfirmCancel = "confirm_cancel"
	DismissCancel = "dismiss_cancel"
)

// OpenData данные кнопки карточки занятия
func OpenData(sessionID string, dayOffset int) string {
	return fmt.Sprintf("%s%s:%d", OpenSession, sessionID, dayOffset)
}

// ParseOpen разбирает open:class_id:day_offset. ID занятия может содержать ':'.
func ParseOpen(data string) (string, int, error) {
	rest, ok := strings.CutPrefix(data, OpenSession)
	if !ok {
		return "", 0, fmt.Errorf("invalid callback data format")
	}

	idx := strings.LastIndex(rest, ":")
	if idx <= 0 {
		return "", 0, fmt.Errorf("invalid callback data format")
	}

	offset, err := strconv.Atoi(rest[idx+1:])
	if err != nil {
		return "", 0, fmt.Errorf("parse day offset: %w", err)
	}
	if offset < 0 || offset > 6 {
		return "", 0, fmt.Errorf("day offset %d out of range", offset)
	}
	return rest[:idx], offset, nil
}

// CancelData данные кнопки отмены записи
func CancelData(bookingID string) string {
	return CancelBooking + bookingID
}

// ParseCancel извлекает ID записи из cancel:booking_id
func ParseCancel(data string) (string, error) {
	id, ok := strings.CutPrefix(data, CancelBooking)
	if !ok || id == "" {
		return "", fmt.Errorf("invalid callback data format")
	}
	return id, nil
}
