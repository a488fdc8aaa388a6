package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Freeeeeet/class_widget/internal/model"
)

// fixture формат JSON-файла каталога. Допускается и просто массив занятий.
type fixture struct {
	Sessions     []*model.ClassSession          `json:"sessions"`
	Reservations map[string][]model.Reservation `json:"reservations"`
}

// File читает каталог из JSON-файла при каждом обращении,
// так что правки файла подхватываются при следующем обновлении
type File struct {
	path string
}

// NewFile создаёт файловый источник
func NewFile(path string) *File {
	return &File{path: path}
}

// Sessions реализует Source
func (f *File) Sessions(ctx context.Context) ([]*model.ClassSession, error) {
	fx, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	return fx.Sessions, nil
}

// Reservations реализует Source
func (f *File) Reservations(ctx context.Context, visitor string) ([]model.Reservation, error) {
	if visitor == "" {
		return nil, ErrNoVisitor
	}
	fx, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	return fx.Reservations[visitor], nil
}

func (f *File) load(ctx context.Context) (fixture, error) {
	if err := ctx.Err(); err != nil {
		return fixture{}, err
	}

	raw, err := os.ReadFile(f.path)
	if err != nil {
		return fixture{}, fmt.Errorf("read catalog file: %w", err)
	}
	return decode(raw)
}

// decode разбирает JSON каталога: объект {sessions, reservations} или массив занятий
func decode(raw []byte) (fixture, error) {
	raw = bytes.TrimSpace(raw)

	var fx fixture
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &fx.Sessions); err != nil {
			return fixture{}, fmt.Errorf("decode catalog: %w", err)
		}
		return fx, nil
	}

	if err := json.Unmarshal(raw, &fx); err != nil {
		return fixture{}, fmt.Errorf("decode catalog: %w", err)
	}
	return fx, nil
}
