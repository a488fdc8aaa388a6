package callbacktypes

import (
	"github.com/Freeeeeet/class_widget/internal/controller/state"
	"go.uber.org/zap"
)

// Refresher перерисовывает сообщение виджета
type Refresher interface {
	Refresh(session *state.Session)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	Sessions  *state.Manager
	Refresher Refresher
	Logger    *zap.Logger
}
