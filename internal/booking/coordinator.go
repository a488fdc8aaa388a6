package booking

import (
	"context"
	"errors"
	"sync"

	"github.com/Freeeeeet/class_widget/internal/catalog"
	"github.com/Freeeeeet/class_widget/internal/locale"
	"github.com/Freeeeeet/class_widget/internal/model"
	"github.com/Freeeeeet/class_widget/internal/surface"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Phase этап попытки записи
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseConfirmed
	PhaseRejected
	PhaseConnectionFailed
	PhaseAbandoned
)

func (p Phase) String() string {
	switch p {
	case PhaseSubmitting:
		return "submitting"
	case PhaseConfirmed:
		return "confirmed"
	case PhaseRejected:
		return "rejected"
	case PhaseConnectionFailed:
		return "connection_failed"
	case PhaseAbandoned:
		return "abandoned"
	default:
		return "idle"
	}
}

// Poster доставляет завершение запроса в цикл событий виджета.
// false: цикл остановлен и fn не будет выполнена.
type Poster func(fn func()) bool

// Attempt одна попытка записи. Поля читаются после закрытия Done.
type Attempt struct {
	ID        uuid.UUID
	SessionID string

	phase Phase
	spots *int
	err   error
	done  chan struct{}
}

func newAttempt(sessionID string) *Attempt {
	return &Attempt{
		ID:        uuid.New(),
		SessionID: sessionID,
		phase:     PhaseSubmitting,
		done:      make(chan struct{}),
	}
}

// Done закрывается, когда попытка завершена
func (a *Attempt) Done() <-chan struct{} { return a.done }

// Phase итоговый этап
func (a *Attempt) Phase() Phase { return a.phase }

// Err причина неудачи
func (a *Attempt) Err() error { return a.err }

// Spots подтверждённое сервером количество мест, если оно пришло
func (a *Attempt) Spots() (int, bool) {
	if a.spots == nil {
		return 0, false
	}
	return *a.spots, true
}

func (a *Attempt) finish(phase Phase, err error) {
	a.phase = phase
	a.err = err
	close(a.done)
}

// Coordinator ведёт запись на занятие: проверка потолка, запрос, сверка мест
type Coordinator struct {
	api          API
	catalog      *catalog.Catalog
	messages     locale.Messages
	post         Poster
	onReconciled func(sessionID string)
	logger       *zap.Logger

	wg sync.WaitGroup
}

// NewCoordinator создаёт координатора. onReconciled вызывается в цикле
// событий после того, как каталог получил подтверждённое количество мест.
func NewCoordinator(api API, c *catalog.Catalog, m locale.Messages, post Poster,
	onReconciled func(sessionID string), logger *zap.Logger) *Coordinator {
	return &Coordinator{
		api:          api,
		catalog:      c,
		messages:     m,
		post:         post,
		onReconciled: onReconciled,
		logger:       logger,
	}
}

// Book запускает попытку записи. Кнопка и слот сообщения захватываются в момент
// отправки, завершение адресуется именно им. Повторное нажатие при заблокированной
// кнопке игнорируется и возвращает nil.
func (c *Coordinator) Book(ctx context.Context, session *model.ClassSession, reservations int,
	control surface.Control, message surface.Message) *Attempt {

	if control != nil && !control.Enabled() {
		c.logger.Debug("Booking already in flight, ignoring", zap.String("class_id", session.ID))
		return nil
	}

	attempt := newAttempt(session.ID)

	if reservations >= model.ReservationLimit {
		c.logger.Info("Reservation limit reached",
			zap.String("class_id", session.ID),
			zap.Int("reservations", reservations))
		show(message, c.messages.Limit, surface.ToneError)
		attempt.finish(PhaseRejected, ErrLimitReached)
		return attempt
	}

	if control != nil {
		control.SetEnabled(false)
		control.SetBusy(true)
	}
	hide(message)

	c.logger.Info("Submitting booking",
		zap.String("attempt_id", attempt.ID.String()),
		zap.String("class_id", session.ID))

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		result, err := c.api.Create(ctx, session.ID)
		delivered := c.post(func() {
			c.settle(attempt, result, err, control, message)
		})
		if !delivered {
			c.logger.Warn("Booking result dropped, widget stopped",
				zap.String("attempt_id", attempt.ID.String()),
				zap.String("class_id", attempt.SessionID))
			attempt.spots = result.Spots
			attempt.finish(PhaseAbandoned, errors.Join(ErrAbandoned, err))
		}
	}()

	return attempt
}

func (c *Coordinator) settle(attempt *Attempt, result CreateResult, err error,
	control surface.Control, message surface.Message) {

	if control != nil {
		control.SetBusy(false)
		control.SetEnabled(true)
	}

	fields := []zap.Field{
		zap.String("attempt_id", attempt.ID.String()),
		zap.String("class_id", attempt.SessionID),
	}

	switch {
	case err == nil:
		show(message, c.messages.Success, surface.ToneSuccess)
		attempt.spots = result.Spots
		if result.Spots != nil {
			if c.catalog.ApplySpotUpdate(attempt.SessionID, *result.Spots) {
				if c.onReconciled != nil {
					c.onReconciled(attempt.SessionID)
				}
			} else {
				c.logger.Warn("Confirmed session not in catalog", fields...)
			}
		}
		c.logger.Info("Booking confirmed", fields...)
		attempt.finish(PhaseConfirmed, nil)

	case IsRejected(err):
		show(message, Message(err, c.messages), surface.ToneError)
		c.logger.Info("Booking rejected", append(fields, zap.Error(err))...)
		attempt.finish(PhaseRejected, err)

	default:
		if !errors.Is(err, ErrTransport) {
			err = errors.Join(ErrTransport, err)
		}
		show(message, c.messages.ConnError, surface.ToneError)
		c.logger.Error("Booking request failed", append(fields, zap.Error(err))...)
		attempt.finish(PhaseConnectionFailed, err)
	}
}

// Wait ждёт, пока все запущенные запросы доставят результат в цикл событий
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

func show(message surface.Message, text string, tone surface.Tone) {
	if message == nil {
		return
	}
	message.SetText(text)
	message.SetTone(tone)
	message.SetVisible(true)
}

func hide(message surface.Message) {
	if message == nil {
		return
	}
	message.SetText("")
	message.SetTone(surface.ToneNone)
	message.SetVisible(false)
}
