// Package widget собирает календарь, каталог, тему и координатор записей в один
// виджет с собственной очередью событий.
//
// Все изменения состояния (действия посетителя, обновления конфигурации и данных,
// завершения сетевых запросов) проходят через очередь и применяются строго по
// порядку в горутине Run.
package widget

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Freeeeeet/class_widget/internal/booking"
	"github.com/Freeeeeet/class_widget/internal/capability"
	"github.com/Freeeeeet/class_widget/internal/catalog"
	"github.com/Freeeeeet/class_widget/internal/clock"
	"github.com/Freeeeeet/class_widget/internal/feed"
	"github.com/Freeeeeet/class_widget/internal/locale"
	"github.com/Freeeeeet/class_widget/internal/model"
	"github.com/Freeeeeet/class_widget/internal/surface"
	"github.com/Freeeeeet/class_widget/internal/view"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const eventBuffer = 256

var ErrStopped = errors.New("widget stopped")

// Deps зависимости виджета
type Deps struct {
	Surface  surface.Surface
	Messages locale.Messages
	Schema   capability.Schema
	Host     capability.Host // nil: автономный режим с темой по умолчанию
	Feed     feed.DataSDK    // nil: пустой список записей
	API      booking.API
	Sessions []*model.ClassSession
	Now      func() time.Time
	// AfterEvent вызывается в цикле после каждого применённого события
	AfterEvent func()
	Logger     *zap.Logger
}

// State явный контейнер состояния виджета. Принадлежит циклу событий.
type State struct {
	Window       clock.WeekWindow
	Selected     view.Selection
	Reservations model.ReservationSet
	Theme        capability.Theme
	Mode         capability.Mode
}

// Widget один экземпляр виджета
type Widget struct {
	id     uuid.UUID
	deps   Deps
	logger *zap.Logger

	events chan func()
	ready  chan struct{}
	done   chan struct{}

	// stopping закрывается при выходе из цикла; после stopped=true очередь закрыта
	stopping chan struct{}
	queueMu  sync.RWMutex
	stopped  bool

	// поля ниже доступны только из цикла событий
	ctx         context.Context
	state       State
	catalog     *catalog.Catalog
	calendar    *view.CalendarView
	bookings    *view.BookingsView
	binder      *capability.Binder
	coordinator *booking.Coordinator
	canceller   *booking.Canceller
	cancelled   map[string]struct{}
}

// New создаёт виджет. Ничего не рисует до вызова Run.
func New(deps Deps) *Widget {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	id := uuid.New()
	logger := deps.Logger.With(zap.String("widget_id", id.String()))

	w := &Widget{
		id:        id,
		deps:      deps,
		logger:    logger,
		events:    make(chan func(), eventBuffer),
		ready:     make(chan struct{}),
		done:      make(chan struct{}),
		stopping:  make(chan struct{}),
		ctx:       context.Background(),
		catalog:   catalog.New(deps.Sessions),
		calendar:  view.NewCalendarView(deps.Surface, deps.Messages),
		bookings:  view.NewBookingsView(deps.Surface, deps.Messages),
		binder:    capability.NewBinder(deps.Schema, logger),
		cancelled: make(map[string]struct{}),
	}

	w.state = State{
		Window:       clock.NewWeekWindow(deps.Now()),
		Reservations: model.NewReservationSet(nil),
		Theme:        deps.Schema.Resolve(nil),
	}

	w.coordinator = booking.NewCoordinator(deps.API, w.catalog, deps.Messages, w.post, w.onReconciled, logger)
	w.canceller = booking.NewCanceller(deps.API, w.bookings, deps.Messages, w.post, w.onRemoved, logger)
	return w
}

// ID идентификатор виджета
func (w *Widget) ID() uuid.UUID {
	return w.id
}

// Ready закрывается после начальной отрисовки
func (w *Widget) Ready() <-chan struct{} {
	return w.ready
}

// Done закрывается после остановки цикла. К этому моменту все принятые
// очередью события уже выполнены.
func (w *Widget) Done() <-chan struct{} {
	return w.done
}

// Run подключается к хозяину и каналу данных, рисует начальное состояние
// и обрабатывает события до отмены ctx
func (w *Widget) Run(ctx context.Context) error {
	defer close(w.done)
	defer w.closeQueue()

	w.ctx = ctx
	w.bootstrap(ctx)
	close(w.ready)

	w.logger.Info("Widget started", zap.String("mode", w.state.Mode.String()))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Widget stopped")
			return nil
		case fn := <-w.events:
			fn()
			if w.deps.AfterEvent != nil {
				w.deps.AfterEvent()
			}
		}
	}
}

func (w *Widget) bootstrap(ctx context.Context) {
	w.state.Mode = w.binder.Bind(ctx, w.deps.Host, func(theme capability.Theme) {
		w.post(func() { w.applyTheme(theme) })
	})

	handler := feed.HandlerFunc(func(reservations []model.Reservation) {
		w.post(func() { w.applyReservations(reservations) })
	})
	if err := feed.Attach(ctx, w.deps.Feed, handler, w.logger); err != nil {
		w.logger.Warn("Continuing without reservation feed", zap.Error(err))
	}

	// тема по умолчанию до первого обновления от хозяина
	w.applyTheme(w.state.Theme)
	w.bookings.Render(w.state.Reservations)
}

// post ставит функцию в очередь. false, если цикл уже остановлен и fn
// выполнена не будет; принятая функция выполняется всегда.
func (w *Widget) post(fn func()) bool {
	w.queueMu.RLock()
	defer w.queueMu.RUnlock()

	if w.stopped {
		return false
	}

	select {
	case w.events <- fn:
		return true
	case <-w.stopping:
		return false
	}
}

// closeQueue закрывает очередь и выполняет уже принятые события
func (w *Widget) closeQueue() {
	close(w.stopping)

	w.queueMu.Lock()
	w.stopped = true
	w.queueMu.Unlock()

	for {
		select {
		case fn := <-w.events:
			fn()
		default:
			return
		}
	}
}

// Do выполняет fn в цикле событий и ждёт её завершения
func (w *Widget) Do(ctx context.Context, fn func(State)) error {
	finished := make(chan struct{})
	if !w.post(func() {
		defer close(finished)
		fn(w.state)
	}) {
		return ErrStopped
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-w.done:
		return ErrStopped
	}
}

// Quiesce ждёт завершения всех отправленных запросов и применения их результатов
func (w *Widget) Quiesce(ctx context.Context) error {
	// сначала применяются уже поставленные действия, которые могли запустить запросы
	if err := w.Do(ctx, func(State) {}); err != nil {
		return err
	}
	w.coordinator.Wait()
	w.canceller.Wait()
	return w.Do(ctx, func(State) {})
}

// Snapshot PNG текущей недели с текущей темой
func (w *Widget) Snapshot(ctx context.Context) ([]byte, error) {
	var (
		png []byte
		err error
	)
	doErr := w.Do(ctx, func(s State) {
		png, err = view.Snapshot(s.Window, w.catalog, s.Theme, w.deps.Messages)
	})
	if doErr != nil {
		return nil, doErr
	}
	return png, err
}

// Sessions занятия текущего окна по дням недели, в порядке отображения
func (w *Widget) Sessions(ctx context.Context) ([clock.DaysInWeek][]model.ClassSession, error) {
	var days [clock.DaysInWeek][]model.ClassSession
	err := w.Do(ctx, func(s State) {
		for offset := range clock.DaysInWeek {
			for session := range w.catalog.SessionsOn(s.Window.DateAt(offset), offset) {
				days[offset] = append(days[offset], *session)
			}
		}
	})
	return days, err
}
