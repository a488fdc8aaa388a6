package controller

import (
	"context"

	"github.com/Freeeeeet/class_widget/internal/controller/callbacks/common"
	"github.com/Freeeeeet/class_widget/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Messenger часть API бота, нужная рендеру
type Messenger interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
}

// Renderer переносит состояние страницы виджета в сообщение Telegram
type Renderer struct {
	bot    Messenger
	logger *zap.Logger
}

// NewRenderer создаёт рендер сообщений
func NewRenderer(messenger Messenger, logger *zap.Logger) *Renderer {
	return &Renderer{bot: messenger, logger: logger}
}

// Refresh запрашивает перерисовку. Не блокирует.
func (r *Renderer) Refresh(session *state.Session) {
	session.MarkDirty()
}

// Run перерисовывает сообщение сессии по пометкам, пока не отменён ctx
func (r *Renderer) Run(ctx context.Context, session *state.Session) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-session.Dirty():
			r.flush(ctx, session)
		}
	}
}

// BuildScreen экран для текущего состояния сессии
func BuildScreen(session *state.Session) common.Screen {
	page := session.Page.Snapshot()
	if session.Screen() == state.ScreenBookings {
		return common.BuildBookingsScreen(page)
	}
	return common.BuildCalendarScreen(page)
}

func (r *Renderer) flush(ctx context.Context, session *state.Session) {
	screen := BuildScreen(session)
	fingerprint := screen.Fingerprint()

	messageID, ok := session.Message()
	if !ok {
		msg, err := r.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      session.ChatID,
			Text:        screen.Text,
			ParseMode:   models.ParseModeMarkdown,
			ReplyMarkup: screen.Keyboard,
		})
		if err != nil {
			r.logger.Error("Failed to send widget message",
				zap.Int64("chat_id", session.ChatID),
				zap.Error(err))
			return
		}
		session.SetMessage(msg.ID, fingerprint)
		return
	}

	if !session.Changed(fingerprint) {
		return
	}

	_, err := r.bot.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      session.ChatID,
		MessageID:   messageID,
		Text:        screen.Text,
		ParseMode:   models.ParseModeMarkdown,
		ReplyMarkup: screen.Keyboard,
	})
	if err != nil {
		r.logger.Warn("Failed to edit widget message",
			zap.Int64("chat_id", session.ChatID),
			zap.Int("message_id", messageID),
			zap.Error(err))
		session.Forget()
	}
}
