// Package clock содержит арифметику недельного окна календаря.
package clock

import (
	"fmt"
	"time"
)

// DaysInWeek количество колонок в недельной сетке
const DaysInWeek = 7

// WeekWindow отображаемая неделя: понедельник (Anchor) и шесть следующих дней
type WeekWindow struct {
	anchor time.Time
}

// WeekAnchorFor возвращает понедельник (полночь) той недели, в которую попадает ref
func WeekAnchorFor(ref time.Time) time.Time {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())

	// ISO: понедельник = 1 ... воскресенье = 7
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	return day.AddDate(0, 0, -(weekday - 1))
}

// NewWeekWindow создаёт окно недели, содержащей ref
func NewWeekWindow(ref time.Time) WeekWindow {
	return WeekWindow{anchor: WeekAnchorFor(ref)}
}

// Shift сдвигает окно на deltaWeeks целых недель
func Shift(w WeekWindow, deltaWeeks int) WeekWindow {
	return w.Shift(deltaWeeks)
}

// Shift сдвигает окно на deltaWeeks целых недель
func (w WeekWindow) Shift(deltaWeeks int) WeekWindow {
	return WeekWindow{anchor: w.anchor.AddDate(0, 0, 7*deltaWeeks)}
}

// Anchor понедельник окна
func (w WeekWindow) Anchor() time.Time {
	return w.anchor
}

// End воскресенье окна (anchor + 6 дней)
func (w WeekWindow) End() time.Time {
	return w.anchor.AddDate(0, 0, DaysInWeek-1)
}

// DateAt возвращает дату дня с номером offset (0 = понедельник).
// Смещения генерируются только внутри виджета, поэтому выход за диапазон считается ошибкой программы.
func (w WeekWindow) DateAt(offset int) time.Time {
	if offset < 0 || offset >= DaysInWeek {
		panic(fmt.Sprintf("clock: day offset %d out of range [0,6]", offset))
	}
	return w.anchor.AddDate(0, 0, offset)
}

// Contains попадает ли t в окно (по календарной дате)
func (w WeekWindow) Contains(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, w.anchor.Location())
	return !day.Before(w.anchor) && !day.After(w.End())
}

// Equal сравнивает два окна по якорю
func (w WeekWindow) Equal(other WeekWindow) bool {
	return w.anchor.Equal(other.anchor)
}

// DateKey ключ даты в формате yyyy-mm-dd
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
