// Package source загружает каталог занятий и записи посетителей из внешнего хранилища.
package source

import (
	"context"
	"errors"

	"github.com/Freeeeeet/class_widget/internal/model"
)

var ErrNoVisitor = errors.New("visitor is required")

// Source источник каталога и записей
type Source interface {
	// Sessions полный список занятий
	Sessions(ctx context.Context) ([]*model.ClassSession, error)
	// Reservations активные записи посетителя
	Reservations(ctx context.Context, visitor string) ([]model.Reservation, error)
}
