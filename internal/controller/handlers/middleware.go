package handlers

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/class_widget/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireSession возвращает виджет чата.
// Если виджета нет, просит открыть его через /start.
func (h *Handlers) requireSession(ctx context.Context, b *bot.Bot, update *models.Update) (*state.Session, bool) {
	if update.Message == nil {
		return nil, false
	}

	chatID := update.Message.Chat.ID
	session, ok := h.sessions.Get(chatID)
	if !ok || session.Widget == nil {
		h.sendError(ctx, b, chatID, "❌ Kalendarz nie jest otwarty. Użyj /start.")
		return nil, false
	}

	return session, true
}

// visitorFor посетитель, от имени которого работает виджет
func (h *Handlers) visitorFor(user *models.User) string {
	if h.visitor != "" {
		return h.visitor
	}
	if user == nil {
		return ""
	}
	if user.Username != "" {
		return user.Username
	}
	return fmt.Sprintf("tg:%d", user.ID)
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
