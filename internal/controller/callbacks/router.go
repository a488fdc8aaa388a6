package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/class_widget/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/class_widget/internal/controller/callbacks/common"
	"github.com/Freeeeeet/class_widget/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const (
	expiredText = "⌛ /start"
	invalidText = "❌"
)

// Action действие виджета, выбранное по callback data
type Action func(s *state.Session)

// Resolve сопоставляет callback data с действием виджета.
// ok == false для неизвестных или повреждённых данных.
func Resolve(data string) (Action, bool) {
	switch {
	case data == callbacktypes.PrevWeek:
		return func(s *state.Session) { s.Widget.PrevWeek() }, true
	case data == callbacktypes.NextWeek:
		return func(s *state.Session) { s.Widget.NextWeek() }, true
	case data == callbacktypes.CloseDetail:
		return func(s *state.Session) { s.Widget.CloseDetail() }, true
	case data == callbacktypes.Book:
		return func(s *state.Session) { s.Widget.Book() }, true
	case data == callbacktypes.ConfirmCancel:
		return func(s *state.Session) { s.Widget.ConfirmCancel() }, true
	case data == callbacktypes.DismissCancel:
		return func(s *state.Session) { s.Widget.DismissCancel() }, true

	case data == callbacktypes.ShowBookings:
		return switchTo(state.ScreenBookings), true
	case data == callbacktypes.ShowCalendar:
		return switchTo(state.ScreenCalendar), true

	case strings.HasPrefix(data, callbacktypes.OpenSession):
		id, offset, err := callbacktypes.ParseOpen(data)
		if err != nil {
			return nil, false
		}
		return func(s *state.Session) { s.Widget.OpenSession(id, offset) }, true
	case strings.HasPrefix(data, callbacktypes.CancelBooking):
		id, err := callbacktypes.ParseCancel(data)
		if err != nil {
			return nil, false
		}
		return func(s *state.Session) { s.Widget.RequestCancel(id) }, true
	}
	return nil, false
}

// switchTo меняет экран без события виджета, поэтому перерисовка запрашивается сразу
func switchTo(screen state.Screen) Action {
	return func(s *state.Session) {
		s.SetScreen(screen)
		s.MarkDirty()
	}
}

// Route распределяет callback query по действиям виджета чата
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	if data == callbacktypes.Noop {
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	chatID, ok := common.ChatIDFromCallback(callback)
	if !ok {
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	session, ok := h.Sessions.Get(chatID)
	if !ok || session.Widget == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, expiredText)
		return
	}

	action, ok := Resolve(data)
	if !ok {
		h.Logger.Warn("Unknown callback data",
			zap.String("data", data),
			zap.Int64("chat_id", chatID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, invalidText)
		return
	}

	// нажатие в старом сообщении переносит виджет в него
	moved := false
	if msg := common.GetMessageFromCallback(callback); msg != nil {
		if current, has := session.Message(); !has || current != msg.ID {
			session.SetMessage(msg.ID, "")
			moved = true
		}
	}

	action(session)
	if moved {
		h.Refresher.Refresh(session)
	}
	common.AnswerCallback(ctx, b, callback.ID, "")
}
