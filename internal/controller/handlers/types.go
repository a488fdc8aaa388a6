package handlers

import (
	"context"

	"github.com/Freeeeeet/class_widget/internal/controller/state"
	"go.uber.org/zap"
)

// Opener открывает новый виджет для чата
type Opener interface {
	Open(ctx context.Context, chatID int64, visitor string) (*state.Session, error)
}

// Refresher перерисовывает сообщение виджета
type Refresher interface {
	Refresh(session *state.Session)
}

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	opener    Opener
	sessions  *state.Manager
	refresher Refresher
	visitor   string // посетитель из конфигурации; пусто: имя пользователя Telegram
	logger    *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	opener Opener,
	sessions *state.Manager,
	refresher Refresher,
	visitor string,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		opener:    opener,
		sessions:  sessions,
		refresher: refresher,
		visitor:   visitor,
		logger:    logger,
	}
}
