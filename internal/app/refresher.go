package app

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/class_widget/internal/model"
	"github.com/Freeeeeet/class_widget/internal/source"
	"go.uber.org/zap"
)

// Sink получатель обновлений каталога и записей (реестр виджетов)
type Sink interface {
	ApplyCatalog(sessions []*model.ClassSession)
	Visitors() []string
	ApplyReservations(visitor string, reservations []model.Reservation)
}

// Refresher периодически перечитывает каталог и записи посетителей из источника
type Refresher struct {
	source   source.Source
	sink     Sink
	interval time.Duration
	logger   *zap.Logger

	stopOnce sync.Once
	stopChan chan struct{}
}

// NewRefresher создаёт фоновую задачу обновления
func NewRefresher(src source.Source, sink Sink, interval time.Duration, logger *zap.Logger) *Refresher {
	return &Refresher{
		source:   src,
		sink:     sink,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает обновление в отдельной горутине
func (r *Refresher) Start(ctx context.Context) {
	r.logger.Info("Starting catalog refresher", zap.Duration("interval", r.interval))
	go r.Run(ctx)
}

// Stop останавливает обновление
func (r *Refresher) Stop() {
	r.stopOnce.Do(func() {
		r.logger.Info("Stopping catalog refresher")
		close(r.stopChan)
	})
}

// Run обновляет сразу и затем по таймеру, пока не отменён ctx или не вызван Stop
func (r *Refresher) Run(ctx context.Context) {
	r.Refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.Refresh(ctx)
		case <-r.stopChan:
			r.logger.Info("Catalog refresher stopped")
			return
		case <-ctx.Done():
			r.logger.Info("Catalog refresher cancelled")
			return
		}
	}
}

// Refresh одно полное обновление. Ошибка источника логируется, виджеты
// остаются с прежними данными.
func (r *Refresher) Refresh(ctx context.Context) {
	sessions, err := r.source.Sessions(ctx)
	if err != nil {
		r.logger.Error("Failed to load catalog", zap.Error(err))
		return
	}
	r.sink.ApplyCatalog(sessions)

	visitors := r.sink.Visitors()
	for _, visitor := range visitors {
		reservations, err := r.source.Reservations(ctx, visitor)
		if err != nil {
			r.logger.Warn("Failed to load reservations",
				zap.String("visitor", visitor),
				zap.Error(err))
			continue
		}
		r.sink.ApplyReservations(visitor, reservations)
	}

	r.logger.Debug("Catalog refreshed",
		zap.Int("sessions", len(sessions)),
		zap.Int("visitors", len(visitors)))
}
