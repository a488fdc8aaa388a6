// Package catalog хранит список занятий текущего окна и отбирает их по дням.
package catalog

import (
	"iter"
	"math"
	"slices"
	"time"

	"github.com/Freeeeeet/class_widget/internal/clock"
	"github.com/Freeeeeet/class_widget/internal/model"
)

// Catalog список занятий. Не потокобезопасен: принадлежит циклу событий виджета.
type Catalog struct {
	sessions []*model.ClassSession
}

// New создаёт каталог из списка занятий
func New(sessions []*model.ClassSession) *Catalog {
	c := &Catalog{}
	c.Replace(sessions)
	return c
}

// Replace полностью заменяет содержимое каталога (внешняя перезагрузка)
func (c *Catalog) Replace(sessions []*model.ClassSession) {
	c.sessions = make([]*model.ClassSession, 0, len(sessions))
	for _, s := range sessions {
		if s != nil {
			c.sessions = append(c.sessions, s)
		}
	}
}

// Len количество занятий
func (c *Catalog) Len() int {
	return len(c.sessions)
}

// All итератор по всем занятиям в исходном порядке
func (c *Catalog) All() iter.Seq[*model.ClassSession] {
	return slices.Values(c.sessions)
}

// Find ищет занятие по ID
func (c *Catalog) Find(id string) (*model.ClassSession, bool) {
	for _, s := range c.sessions {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// SessionsOn возвращает занятия дня date (dayOffset: номер дня в окне, 0 = понедельник).
// Явная дата занятия приоритетнее индекса дня недели. Порядок по времени начала,
// при равенстве сохраняется исходный порядок. Последовательность вычисляется заново
// при каждом проходе.
func (c *Catalog) SessionsOn(date time.Time, dayOffset int) iter.Seq[*model.ClassSession] {
	return func(yield func(*model.ClassSession) bool) {
		key := clock.DateKey(date)

		var day []*model.ClassSession
		for _, s := range c.sessions {
			if matchesDay(s, key, dayOffset) {
				day = append(day, s)
			}
		}

		slices.SortStableFunc(day, func(a, b *model.ClassSession) int {
			return startKey(a) - startKey(b)
		})

		for _, s := range day {
			if !yield(s) {
				return
			}
		}
	}
}

// ApplySpotUpdate записывает подтверждённое сервером количество мест.
// Неизвестный ID не ошибка: состояние клиента могло устареть.
func (c *Catalog) ApplySpotUpdate(sessionID string, spots int) bool {
	s, ok := c.Find(sessionID)
	if !ok {
		return false
	}
	s.Spots = spots
	return true
}

func matchesDay(s *model.ClassSession, dateKey string, dayOffset int) bool {
	if s.HasDate() {
		return s.Date == dateKey
	}
	return s.Day != nil && *s.Day == dayOffset
}

// startKey минуты от полуночи; неразобранное время уходит в конец дня
func startKey(s *model.ClassSession) int {
	minutes, ok := s.StartMinutes()
	if !ok {
		return math.MaxInt32
	}
	return minutes
}
