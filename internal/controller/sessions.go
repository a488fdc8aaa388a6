package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/class_widget/internal/booking"
	"github.com/Freeeeeet/class_widget/internal/capability"
	"github.com/Freeeeeet/class_widget/internal/controller/state"
	"github.com/Freeeeeet/class_widget/internal/feed"
	"github.com/Freeeeeet/class_widget/internal/locale"
	"github.com/Freeeeeet/class_widget/internal/model"
	"github.com/Freeeeeet/class_widget/internal/source"
	"github.com/Freeeeeet/class_widget/internal/surface"
	"github.com/Freeeeeet/class_widget/internal/widget"
	"go.uber.org/zap"
)

// SessionFactory собирает виджет чата из источника данных, API записей и рендера
type SessionFactory struct {
	root     context.Context
	sessions *state.Manager
	source   source.Source
	api      booking.API
	messages locale.Messages
	schema   capability.Schema
	renderer *Renderer
	logger   *zap.Logger
}

// NewSessionFactory создаёт фабрику виджетов. Виджеты живут, пока не отменён root.
func NewSessionFactory(
	root context.Context,
	sessions *state.Manager,
	src source.Source,
	api booking.API,
	messages locale.Messages,
	renderer *Renderer,
	logger *zap.Logger,
) *SessionFactory {
	return &SessionFactory{
		root:     root,
		sessions: sessions,
		source:   src,
		api:      api,
		messages: messages,
		schema:   capability.DefaultSchema(messages),
		renderer: renderer,
		logger:   logger,
	}
}

// Open запускает новый виджет для чата и заменяет предыдущий.
// Настройки внешнего вида предыдущего виджета переносятся.
func (f *SessionFactory) Open(ctx context.Context, chatID int64, visitor string) (*state.Session, error) {
	if err := f.root.Err(); err != nil {
		return nil, fmt.Errorf("bot is shutting down: %w", err)
	}

	sessions, err := f.source.Sessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	reservations, err := f.source.Reservations(ctx, visitor)
	if err != nil {
		if !errors.Is(err, source.ErrNoVisitor) {
			f.logger.Warn("Failed to load reservations, starting with empty list",
				zap.String("visitor", visitor),
				zap.Error(err))
		}
		reservations = nil
	}

	var saved capability.Values
	if prev, ok := f.sessions.Get(chatID); ok {
		saved = prev.Host.Config().Snapshot()
	}

	page := surface.NewPage()
	session := state.NewSession(chatID, visitor, page, capability.NewLocalHost(saved), feed.NewChannel(reservations))

	w := widget.New(widget.Deps{
		Surface:    page,
		Messages:   f.messages,
		Schema:     f.schema,
		Host:       session.Host,
		Feed:       session.Feed,
		API:        f.api,
		Sessions:   model.CloneSessions(sessions),
		AfterEvent: session.MarkDirty,
		Logger:     f.logger.With(zap.Int64("chat_id", chatID)),
	})

	// виджет живёт дольше обработчика команды, но не дольше бота
	widgetCtx, cancel := context.WithCancel(f.root)
	session.Attach(w, cancel)

	go func() {
		if err := w.Run(widgetCtx); err != nil {
			f.logger.Error("Widget stopped with error", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}()
	go f.renderer.Run(widgetCtx, session)

	select {
	case <-w.Ready():
	case <-ctx.Done():
		session.Stop()
		return nil, ctx.Err()
	}

	if prev := f.sessions.Put(session); prev != nil {
		prev.Stop()
	}

	f.renderer.Refresh(session)
	return session, nil
}
