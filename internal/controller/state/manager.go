package state

import (
	"slices"
	"sync"

	"github.com/Freeeeeet/class_widget/internal/model"
)

// Manager управляет виджетами чатов
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session // chatID -> Session
}

// NewManager создаёт новый менеджер сессий
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
	}
}

// Get сессия чата
func (m *Manager) Get(chatID int64) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[chatID]
	return s, ok
}

// Put сохраняет сессию и возвращает предыдущую сессию чата, если она была.
// Предыдущую сессию останавливает вызывающий.
func (m *Manager) Put(s *Session) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.sessions[s.ChatID]
	m.sessions[s.ChatID] = s
	return prev
}

// Remove удаляет сессию чата
func (m *Manager) Remove(chatID int64) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[chatID]
	if ok {
		delete(m.sessions, chatID)
	}
	return s, ok
}

// All копия списка сессий
func (m *Manager) All() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// StopAll останавливает и удаляет все сессии
func (m *Manager) StopAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[int64]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Stop()
	}
}

// ApplyCatalog раздаёт свежий каталог всем виджетам. Каждый получает свою копию.
func (m *Manager) ApplyCatalog(sessions []*model.ClassSession) {
	for _, s := range m.All() {
		if s.Widget != nil {
			s.Widget.ReloadCatalog(model.CloneSessions(sessions))
		}
	}
}

// Visitors уникальные посетители открытых сессий
func (m *Manager) Visitors() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	visitors := make([]string, 0, len(m.sessions))
	for _, s := range m.sessions {
		if s.Visitor != "" && !slices.Contains(visitors, s.Visitor) {
			visitors = append(visitors, s.Visitor)
		}
	}
	slices.Sort(visitors)
	return visitors
}

// ApplyReservations публикует записи посетителя во все его сессии
func (m *Manager) ApplyReservations(visitor string, reservations []model.Reservation) {
	for _, s := range m.All() {
		if s.Visitor == visitor {
			s.Feed.Publish(reservations)
		}
	}
}
