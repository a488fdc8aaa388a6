package state

import (
	"context"
	"sync"

	"github.com/Freeeeeet/class_widget/internal/capability"
	"github.com/Freeeeeet/class_widget/internal/feed"
	"github.com/Freeeeeet/class_widget/internal/surface"
	"github.com/Freeeeeet/class_widget/internal/widget"
)

// Screen экран, который сейчас показывает сообщение виджета
type Screen string

const (
	ScreenCalendar Screen = "calendar"
	ScreenBookings Screen = "bookings"
)

// Session виджет одного чата вместе с его страницей, хозяином конфигурации и каналом записей
type Session struct {
	ChatID  int64
	Visitor string
	Page    *surface.Memory
	Host    *capability.LocalHost
	Feed    *feed.Channel
	Widget  *widget.Widget

	cancel context.CancelFunc
	dirty  chan struct{}

	mu          sync.Mutex
	screen      Screen
	messageID   int
	fingerprint string
}

// NewSession создаёт сессию без виджета. Виджет подключается через Attach.
func NewSession(chatID int64, visitor string, page *surface.Memory, host *capability.LocalHost, channel *feed.Channel) *Session {
	return &Session{
		ChatID:  chatID,
		Visitor: visitor,
		Page:    page,
		Host:    host,
		Feed:    channel,
		dirty:   make(chan struct{}, 1),
		screen:  ScreenCalendar,
	}
}

// Attach связывает сессию с запущенным виджетом и функцией его остановки
func (s *Session) Attach(w *widget.Widget, cancel context.CancelFunc) {
	s.Widget = w
	s.cancel = cancel
}

// MarkDirty помечает сообщение устаревшим. Не блокирует: несколько пометок
// до перерисовки сливаются в одну.
func (s *Session) MarkDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

// Dirty канал пометок для цикла перерисовки
func (s *Session) Dirty() <-chan struct{} {
	return s.dirty
}

func (s *Session) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// SetScreen переключает экран. true, если экран изменился.
func (s *Session) SetScreen(screen Screen) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen == screen {
		return false
	}
	s.screen = screen
	return true
}

// Message id сообщения, в котором нарисован виджет
func (s *Session) Message() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messageID, s.messageID != 0
}

// SetMessage запоминает новое сообщение виджета и сбрасывает отпечаток
func (s *Session) SetMessage(id int, fingerprint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messageID = id
	s.fingerprint = fingerprint
}

// Changed сравнивает отпечаток с последним отправленным и запоминает новый.
// Telegram отклоняет редактирование без изменений.
func (s *Session) Changed(fingerprint string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fingerprint == fingerprint {
		return false
	}
	s.fingerprint = fingerprint
	return true
}

// Forget сбрасывает отпечаток, чтобы следующая перерисовка прошла в любом случае
func (s *Session) Forget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fingerprint = ""
}

// Stop останавливает виджет и отключает канал записей
func (s *Session) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.Feed.Close()
}
