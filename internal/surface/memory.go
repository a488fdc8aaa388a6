package surface

import (
	"slices"
	"sync"
)

// Element состояние одного слота в памяти. Реализует все виды слотов.
type Element struct {
	mu *sync.RWMutex

	name    Name
	text    string
	visible bool
	struck  bool
	style   Style
	tone    Tone
	enabled bool
	busy    bool
	header  []HeaderCell
	columns [][]Card
	items   []Item
	empty   *EmptyState
}

// Memory поверхность в памяти: используется фронтендами, которые сами
// рисуют состояние (Telegram), и в тестах
type Memory struct {
	mu       sync.RWMutex
	elements map[Name]*Element
}

// NewMemory создаёт поверхность с указанными слотами
func NewMemory(names ...Name) *Memory {
	m := &Memory{elements: make(map[Name]*Element, len(names))}
	for _, name := range names {
		m.elements[name] = &Element{mu: &m.mu, name: name, visible: true, enabled: true}
	}
	return m
}

// NewPage создаёт поверхность со всеми известными слотами календаря и списка записей
func NewPage() *Memory {
	m := NewMemory(AllNames()...)
	for _, hidden := range []Name{Modal, RowSubstitutedFor, SuccessMessage, CancelModal, CancelStatus} {
		m.elements[hidden].visible = false
	}
	return m
}

// AllNames все имена слотов, известные виджету
func AllNames() []Name {
	return []Name{
		PageTitle, WeekDisplay, PrevWeek, NextWeek, CalendarHeader, CalendarBody,
		Modal, ModalTitle, ModalDate, ModalTime, ModalRoom, ModalInstructor, ModalSpots,
		ModalLevel, ModalSubstitutedFor, RowSubstitutedFor, SuccessMessage, ConfirmBooking,
		CloseModal, MainTitle, ReservationsList, CancelModal, CancelModalMessage, CancelStatus,
	}
}

// Lookup реализует Surface
func (m *Memory) Lookup(name Name) (Slot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	el, ok := m.elements[name]
	if !ok {
		return nil, false
	}
	return el, true
}

// Element возвращает элемент для чтения состояния
func (m *Memory) Element(name Name) *Element {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.elements[name]
}

// Snapshot копия состояния всех слотов
func (m *Memory) Snapshot() map[Name]ElementState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[Name]ElementState, len(m.elements))
	for name, el := range m.elements {
		out[name] = el.stateLocked()
	}
	return out
}

// ElementState неизменяемая копия состояния слота
type ElementState struct {
	Text    string
	Visible bool
	Struck  bool
	Style   Style
	Tone    Tone
	Enabled bool
	Busy    bool
	Header  []HeaderCell
	Columns [][]Card
	Items   []Item
	Empty   *EmptyState
}

// State копия состояния слота
func (e *Element) State() ElementState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stateLocked()
}

func (e *Element) stateLocked() ElementState {
	columns := make([][]Card, len(e.columns))
	for i, col := range e.columns {
		columns[i] = slices.Clone(col)
	}

	var empty *EmptyState
	if e.empty != nil {
		copied := *e.empty
		empty = &copied
	}

	return ElementState{
		Text:    e.text,
		Visible: e.visible,
		Struck:  e.struck,
		Style:   e.style,
		Tone:    e.tone,
		Enabled: e.enabled,
		Busy:    e.busy,
		Header:  slices.Clone(e.header),
		Columns: columns,
		Items:   slices.Clone(e.items),
		Empty:   empty,
	}
}

func (e *Element) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = text
}

func (e *Element) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text
}

func (e *Element) SetVisible(visible bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visible = visible
}

func (e *Element) SetStruck(struck bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.struck = struck
}

func (e *Element) SetStyle(style Style) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.style = style
}

func (e *Element) SetTone(tone Tone) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tone = tone
}

func (e *Element) Enabled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.enabled
}

func (e *Element) SetEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = enabled
}

func (e *Element) SetBusy(busy bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.busy = busy
}

func (e *Element) Replace(header []HeaderCell, columns [][]Card) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.header = slices.Clone(header)
	e.columns = make([][]Card, len(columns))
	for i, col := range columns {
		e.columns[i] = slices.Clone(col)
	}
}

func (e *Element) ReplaceItems(items []Item) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = slices.Clone(items)
	e.empty = nil
}

func (e *Element) SetPending(id string, pending bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].ID == id {
			e.items[i].Pending = pending
			return true
		}
	}
	return false
}

func (e *Element) Remove(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := slices.IndexFunc(e.items, func(it Item) bool { return it.ID == id })
	if idx < 0 {
		return false
	}
	e.items = slices.Delete(e.items, idx, idx+1)
	return true
}

func (e *Element) Count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.items)
}

func (e *Element) ShowEmpty(state EmptyState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = nil
	e.empty = &state
}
