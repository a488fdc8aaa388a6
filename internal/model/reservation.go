package model

import "slices"

// ReservationLimit максимальное количество активных записей посетителя
const ReservationLimit = 999

// Reservation активная запись посетителя на занятие
type Reservation struct {
	ID           string `json:"id"`
	ClassID      string `json:"classId,omitempty"`
	ActivityName string `json:"activityName"`
	Instructor   string `json:"instructor"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Duration     int    `json:"duration"`
	Room         string `json:"room"`
}

// ReservationSet неизменяемый снимок записей посетителя.
// Заменяется целиком при каждом обновлении из внешнего источника.
type ReservationSet struct {
	items []Reservation
}

// NewReservationSet создаёт снимок из копии переданного списка
func NewReservationSet(items []Reservation) ReservationSet {
	return ReservationSet{items: slices.Clone(items)}
}

// Len количество записей
func (s ReservationSet) Len() int {
	return len(s.items)
}

// Items возвращает копию записей
func (s ReservationSet) Items() []Reservation {
	return slices.Clone(s.items)
}

// LimitReached достигнут ли потолок записей
func (s ReservationSet) LimitReached() bool {
	return s.Len() >= ReservationLimit
}
