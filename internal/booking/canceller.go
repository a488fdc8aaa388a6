package booking

import (
	"context"
	"errors"
	"sync"

	"github.com/Freeeeeet/class_widget/internal/locale"
	"github.com/Freeeeeet/class_widget/internal/view"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CancelPhase этап отмены записи
type CancelPhase int

const (
	CancelIdle CancelPhase = iota
	CancelConfirming
	CancelRemoving
	CancelRemoved
	CancelFailed
	CancelAbandoned
)

func (p CancelPhase) String() string {
	switch p {
	case CancelConfirming:
		return "confirming"
	case CancelRemoving:
		return "removing"
	case CancelRemoved:
		return "removed"
	case CancelFailed:
		return "failed"
	case CancelAbandoned:
		return "abandoned"
	default:
		return "idle"
	}
}

// Cancellation одна отправленная отмена
type Cancellation struct {
	ID        uuid.UUID
	BookingID string

	phase     CancelPhase
	remaining int
	err       error
	done      chan struct{}
}

// Done закрывается, когда отмена завершена
func (c *Cancellation) Done() <-chan struct{} { return c.done }

// Phase итоговый этап: CancelRemoved, CancelFailed или CancelAbandoned
func (c *Cancellation) Phase() CancelPhase { return c.phase }

// Err причина неудачи
func (c *Cancellation) Err() error { return c.err }

// Remaining сколько карточек осталось после удаления
func (c *Cancellation) Remaining() int { return c.remaining }

// Canceller ведёт отмену записи: подтверждение, приглушение карточки, запрос.
// Все методы вызываются из цикла событий виджета.
type Canceller struct {
	api       API
	view      *view.BookingsView
	messages  locale.Messages
	post      Poster
	onRemoved func(bookingID string)
	logger    *zap.Logger

	phase   CancelPhase
	pending string

	wg sync.WaitGroup
}

// NewCanceller создаёт обработчик отмены
func NewCanceller(api API, v *view.BookingsView, m locale.Messages, post Poster,
	onRemoved func(bookingID string), logger *zap.Logger) *Canceller {
	return &Canceller{
		api:       api,
		view:      v,
		messages:  m,
		post:      post,
		onRemoved: onRemoved,
		logger:    logger,
	}
}

// Phase текущий этап окна подтверждения
func (c *Canceller) Phase() CancelPhase {
	return c.phase
}

// Pending запись, ожидающая подтверждения
func (c *Canceller) Pending() string {
	return c.pending
}

// Request открывает окно подтверждения для записи
func (c *Canceller) Request(bookingID string) {
	if bookingID == "" {
		return
	}
	c.pending = bookingID
	c.phase = CancelConfirming
	c.view.OpenCancel()
}

// Dismiss закрывает окно подтверждения без отмены
func (c *Canceller) Dismiss() {
	c.pending = ""
	c.phase = CancelIdle
	c.view.CloseCancel()
}

// Confirm отправляет отмену выбранной записи. Без открытого подтверждения возвращает nil.
func (c *Canceller) Confirm(ctx context.Context) *Cancellation {
	if c.phase != CancelConfirming || c.pending == "" {
		return nil
	}

	op := &Cancellation{
		ID:        uuid.New(),
		BookingID: c.pending,
		phase:     CancelRemoving,
		done:      make(chan struct{}),
	}
	c.pending = ""
	c.phase = CancelIdle

	c.view.CloseCancel()
	c.view.SetPending(op.BookingID, true)

	c.logger.Info("Submitting cancellation",
		zap.String("cancellation_id", op.ID.String()),
		zap.String("booking_id", op.BookingID))

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		err := c.api.Cancel(ctx, op.BookingID)
		delivered := c.post(func() {
			c.settle(op, err)
		})
		if !delivered {
			c.logger.Warn("Cancellation result dropped, widget stopped",
				zap.String("cancellation_id", op.ID.String()),
				zap.String("booking_id", op.BookingID))
			op.phase = CancelAbandoned
			op.err = errors.Join(ErrAbandoned, err)
			close(op.done)
		}
	}()

	return op
}

func (c *Canceller) settle(op *Cancellation, err error) {
	fields := []zap.Field{
		zap.String("cancellation_id", op.ID.String()),
		zap.String("booking_id", op.BookingID),
	}

	if err == nil {
		op.remaining = c.view.Remove(op.BookingID)
		op.phase = CancelRemoved
		if c.onRemoved != nil {
			c.onRemoved(op.BookingID)
		}
		c.logger.Info("Booking cancelled", append(fields, zap.Int("remaining", op.remaining))...)
		close(op.done)
		return
	}

	c.view.SetPending(op.BookingID, false)
	c.view.ShowStatus(CancelMessage(err, c.messages))

	if IsRejected(err) {
		c.logger.Info("Cancellation rejected", append(fields, zap.Error(err))...)
	} else {
		if !errors.Is(err, ErrTransport) {
			err = errors.Join(ErrTransport, err)
		}
		c.logger.Error("Cancellation request failed", append(fields, zap.Error(err))...)
	}

	op.phase = CancelFailed
	op.err = err
	close(op.done)
}

// Wait ждёт, пока все запущенные отмены доставят результат в цикл событий
func (c *Canceller) Wait() {
	c.wg.Wait()
}
