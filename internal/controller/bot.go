package controller

import (
	"context"

	"github.com/Freeeeeet/class_widget/internal/booking"
	"github.com/Freeeeeet/class_widget/internal/controller/callbacks"
	"github.com/Freeeeeet/class_widget/internal/controller/handlers"
	"github.com/Freeeeeet/class_widget/internal/controller/state"
	"github.com/Freeeeeet/class_widget/internal/locale"
	"github.com/Freeeeeet/class_widget/internal/source"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	sessions        *state.Manager
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	ctx context.Context,
	botInstance *bot.Bot,
	src source.Source,
	api booking.API,
	messages locale.Messages,
	visitor string,
	logger *zap.Logger,
) *BotController {
	// Виджеты чатов
	sessions := state.NewManager()

	renderer := NewRenderer(botInstance, logger)
	factory := NewSessionFactory(ctx, sessions, src, api, messages, renderer, logger)

	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(factory, sessions, renderer, visitor, logger)

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(sessions, renderer, logger)

	return &BotController{
		bot:             botInstance,
		sessions:        sessions,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// Sessions реестр виджетов; получает обновления каталога и записей
func (c *BotController) Sessions() *state.Manager {
	return c.sessions
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/calendar", bot.MatchTypeExact, c.handlers.HandleCalendar)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/bookings", bot.MatchTypeExact, c.handlers.HandleBookings)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/week", bot.MatchTypeExact, c.handlers.HandleWeek)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/theme", bot.MatchTypeExact, c.handlers.HandleTheme)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/stop", bot.MatchTypeExact, c.handlers.HandleStop)

	// Команды с аргументами
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/set", bot.MatchTypePrefix, c.handlers.HandleSet)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/text", bot.MatchTypePrefix, c.handlers.HandleText)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "📅 Otwórz kalendarz"},
		{Command: "calendar", Description: "🗓 Kalendarz w nowej wiadomości"},
		{Command: "bookings", Description: "📋 Moje rezerwacje"},
		{Command: "week", Description: "🖼 Obraz tygodnia"},
		{Command: "theme", Description: "🎨 Ustawienia wyglądu"},
		{Command: "stop", Description: "👋 Zamknij kalendarz"},
		{Command: "help", Description: "❓ Pomoc"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx. Все виджеты останавливаются при выходе.
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)

	c.sessions.StopAll()
	c.logger.Info("Bot stopped")
	return nil
}
