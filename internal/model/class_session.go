package model

import (
	"time"
)

// ClassSession одно запланированное занятие, на которое можно записаться
type ClassSession struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	StartTime      string `json:"time"`     // HH:MM
	Duration       int    `json:"duration"` // минуты
	Instructor     string `json:"instructor"`
	Room           string `json:"room"`
	Level          string `json:"level"`
	Capacity       int    `json:"capacity,omitempty"`
	Spots          int    `json:"spots"`
	Date           string `json:"date,omitempty"` // yyyy-mm-dd, приоритетнее Day
	Day            *int   `json:"day,omitempty"`  // 0 = понедельник
	IsSubstitution bool   `json:"isSubstitution,omitempty"`
	SubstitutedFor string `json:"substitutedFor,omitempty"` // кто заменяет инструктора
}

// HasDate сообщает, задана ли у занятия явная дата
func (s *ClassSession) HasDate() bool {
	return s.Date != ""
}

// IsSubstituted true только если есть и флаг замены, и имя заменяющего
func (s *ClassSession) IsSubstituted() bool {
	return s.IsSubstitution && s.SubstitutedFor != ""
}

// StartMinutes возвращает время начала в минутах от полуночи.
// ok == false, если время не удалось разобрать.
func (s *ClassSession) StartMinutes() (int, bool) {
	t, err := time.Parse("15:04", s.StartTime)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// DayIndex создаёт указатель на индекс дня недели
func DayIndex(day int) *int {
	return &day
}

// Clone копия занятия. У каждого виджета свои копии, места меняются независимо.
func (s *ClassSession) Clone() *ClassSession {
	c := *s
	if s.Day != nil {
		c.Day = DayIndex(*s.Day)
	}
	return &c
}

// CloneSessions копирует каталог поэлементно
func CloneSessions(sessions []*ClassSession) []*ClassSession {
	out := make([]*ClassSession, 0, len(sessions))
	for _, s := range sessions {
		if s != nil {
			out = append(out, s.Clone())
		}
	}
	return out
}
