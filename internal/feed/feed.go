// Package feed подключает виджет к каналу синхронизации данных хозяина,
// по которому приходит список записей посетителя.
package feed

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/Freeeeeet/class_widget/internal/model"
	"go.uber.org/zap"
)

var ErrUnavailable = errors.New("data feed unavailable")

// DataHandler получает полный список записей при каждом изменении
type DataHandler interface {
	OnDataChanged(reservations []model.Reservation)
}

// HandlerFunc адаптер функции к DataHandler
type HandlerFunc func(reservations []model.Reservation)

func (f HandlerFunc) OnDataChanged(reservations []model.Reservation) { f(reservations) }

// InitResult ответ хозяина на подключение
type InitResult struct {
	OK bool
}

// DataSDK канал данных хозяина
type DataSDK interface {
	Init(ctx context.Context, handler DataHandler) (InitResult, error)
}

// Attach подключает обработчик. Ошибку подключения вызывающий логирует и
// продолжает работу с пустым списком.
func Attach(ctx context.Context, sdk DataSDK, handler DataHandler, logger *zap.Logger) error {
	if sdk == nil {
		logger.Warn("Data feed not configured")
		return ErrUnavailable
	}

	res, err := sdk.Init(ctx, handler)
	if err != nil {
		logger.Warn("Failed to attach data feed", zap.Error(err))
		return fmt.Errorf("init data feed: %w: %w", ErrUnavailable, err)
	}
	if !res.OK {
		logger.Warn("Data feed refused attachment")
		return ErrUnavailable
	}

	logger.Debug("Data feed attached")
	return nil
}

// Channel канал данных внутри процесса. Хранит последний список и рассылает
// его всем подключённым обработчикам.
type Channel struct {
	mu       sync.Mutex
	current  []model.Reservation
	handlers []DataHandler
	closed   bool
}

// NewChannel создаёт канал с начальным списком
func NewChannel(initial []model.Reservation) *Channel {
	return &Channel{current: slices.Clone(initial)}
}

// Init реализует DataSDK: обработчик сразу получает текущий список
func (c *Channel) Init(ctx context.Context, handler DataHandler) (InitResult, error) {
	if err := ctx.Err(); err != nil {
		return InitResult{}, err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return InitResult{OK: false}, nil
	}
	c.handlers = append(c.handlers, handler)
	snapshot := slices.Clone(c.current)
	c.mu.Unlock()

	handler.OnDataChanged(snapshot)
	return InitResult{OK: true}, nil
}

// Publish заменяет список целиком и уведомляет обработчиков
func (c *Channel) Publish(reservations []model.Reservation) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.current = slices.Clone(reservations)
	handlers := slices.Clone(c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		h.OnDataChanged(slices.Clone(reservations))
	}
}

// Current последний опубликованный список
func (c *Channel) Current() []model.Reservation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.current)
}

// Close отключает всех обработчиков; новые подключения отклоняются
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.handlers = nil
}
