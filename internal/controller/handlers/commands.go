package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/class_widget/internal/capability"
	"github.com/Freeeeeet/class_widget/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📅 Kalendarz zajęć\n\n" +
	"/start - Otwórz kalendarz\n" +
	"/calendar - Pokaż kalendarz w nowej wiadomości\n" +
	"/bookings - Moje rezerwacje\n" +
	"/week - Obraz bieżącego tygodnia\n" +
	"/theme - Ustawienia wyglądu\n" +
	"/set <nazwa> <wartość> - Zmień kolor, czcionkę lub rozmiar\n" +
	"/text <nazwa> <tekst> - Zmień tekst\n" +
	"/stop - Zamknij kalendarz\n" +
	"/help - Pomoc"

// HandleStart обрабатывает команду /start: открывает новый виджет для чата
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	visitor := h.visitorFor(update.Message.From)

	session, err := h.opener.Open(ctx, chatID, visitor)
	if err != nil {
		h.logger.Error("Failed to open widget",
			zap.Int64("chat_id", chatID),
			zap.String("visitor", visitor),
			zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Nie udało się wczytać kalendarza. Spróbuj później.")
		return
	}

	h.logger.Info("Widget opened",
		zap.Int64("chat_id", chatID),
		zap.String("visitor", visitor),
		zap.String("widget_id", session.Widget.ID().String()))
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleCalendar показывает календарь в новом сообщении
func (h *Handlers) HandleCalendar(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.showScreen(ctx, b, update, state.ScreenCalendar)
}

// HandleBookings показывает «мои записи» в новом сообщении
func (h *Handlers) HandleBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.showScreen(ctx, b, update, state.ScreenBookings)
}

func (h *Handlers) showScreen(ctx context.Context, b *bot.Bot, update *models.Update, screen state.Screen) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	session.SetScreen(screen)
	// сообщение без id: следующая перерисовка отправит новое
	session.SetMessage(0, "")
	h.refresher.Refresh(session)
}

// HandleWeek отправляет картинку текущей недели с текущей темой
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	imageData, err := session.Widget.Snapshot(ctx)
	if err != nil {
		h.logger.Error("Failed to render week image",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Nie udało się przygotować obrazu tygodnia.")
		return
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo:  &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(imageData)},
	})
	if err != nil {
		h.logger.Error("Failed to send week image",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

// HandleTheme показывает текущие значения возможностей редактора
func (h *Handlers) HandleTheme(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	caps, err := session.Host.Capabilities()
	if err != nil {
		h.logger.Warn("Capabilities unavailable", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Edycja wyglądu jest niedostępna.")
		return
	}
	fields, err := session.Host.EditPanel()
	if err != nil {
		h.logger.Warn("Edit panel unavailable", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Edycja wyglądu jest niedostępna.")
		return
	}

	h.sendMessage(ctx, b, chatID, formatTheme(caps, fields))
}

// HandleSet обрабатывает /set <свойство> <значение>
func (h *Handlers) HandleSet(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	args := splitArgs(update.Message.Text, 2)
	if len(args) != 2 {
		h.sendError(ctx, b, chatID, "❌ Użycie: /set <nazwa> <wartość>")
		return
	}

	caps, err := session.Host.Capabilities()
	if err == nil {
		err = applySetting(caps, args[0], args[1])
	}
	if err != nil {
		h.logger.Warn("Failed to apply setting",
			zap.Int64("chat_id", chatID),
			zap.String("property", args[0]),
			zap.Error(err))
		h.sendError(ctx, b, chatID, settingError(err, args[0]))
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ %s = %s", args[0], args[1]))
}

// HandleText обрабатывает /text <поле> <текст>
func (h *Handlers) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	args := splitArgs(update.Message.Text, 2)
	if len(args) != 2 {
		h.sendError(ctx, b, chatID, "❌ Użycie: /text <nazwa> <tekst>")
		return
	}

	fields, err := session.Host.EditPanel()
	if err == nil {
		var values capability.Values
		values, err = textUpdate(fields, args[0], args[1])
		if err == nil {
			err = session.Host.Apply(values)
		}
	}
	if err != nil {
		h.logger.Warn("Failed to apply text",
			zap.Int64("chat_id", chatID),
			zap.String("field", args[0]),
			zap.Error(err))
		h.sendError(ctx, b, chatID, settingError(err, args[0]))
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ %s = %s", args[0], args[1]))
}

// HandleStop закрывает виджет чата
func (h *Handlers) HandleStop(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	session, ok := h.sessions.Remove(chatID)
	if !ok {
		h.sendMessage(ctx, b, chatID, "Kalendarz nie jest otwarty.")
		return
	}

	session.Stop()
	h.logger.Info("Widget closed", zap.Int64("chat_id", chatID))
	h.sendMessage(ctx, b, chatID, "👋 Kalendarz zamknięty. /start otworzy go ponownie.")
}

func settingError(err error, name string) string {
	if errors.Is(err, ErrUnknownProperty) {
		return fmt.Sprintf("❌ Nieznana nazwa: %s. Lista: /theme", name)
	}
	return "❌ Nieprawidłowa wartość."
}
