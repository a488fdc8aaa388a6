package booking

import (
	"errors"
	"fmt"

	"github.com/Freeeeeet/class_widget/internal/locale"
)

var (
	// ErrLimitReached посетитель достиг потолка записей; запрос не отправлялся
	ErrLimitReached = errors.New("reservation limit reached")
	// ErrTransport сеть недоступна или ответ не удалось разобрать
	ErrTransport = errors.New("booking api transport failure")
	// ErrAbandoned виджет остановлен раньше, чем ответ сервера был применён
	ErrAbandoned = errors.New("widget stopped before result was applied")
)

// RejectedError сервер ответил не 200
type RejectedError struct {
	Status  int
	Message string // текст из поля error, может быть пустым
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("booking rejected with status %d", e.Status)
	}
	return fmt.Sprintf("booking rejected with status %d: %s", e.Status, e.Message)
}

// Message возвращает текст для посетителя при неудачной записи
func Message(err error, m locale.Messages) string {
	var rejected *RejectedError
	switch {
	case errors.Is(err, ErrLimitReached):
		return m.Limit
	case errors.As(err, &rejected) && rejected.Message != "":
		return rejected.Message
	case errors.Is(err, ErrTransport):
		return m.ConnError
	default:
		return m.Error
	}
}

// CancelMessage возвращает текст для посетителя при неудачной отмене
func CancelMessage(err error, m locale.Messages) string {
	var rejected *RejectedError
	switch {
	case errors.As(err, &rejected) && rejected.Message != "":
		return rejected.Message
	case errors.Is(err, ErrTransport):
		return m.CancelConnError
	default:
		return m.CancelFailed
	}
}
