// Package surface описывает поверхность отображения виджета как набор именованных слотов.
//
// Рендер обращается к слотам только через Lookup: если страница-хозяин не содержит
// слот, обновление молча пропускается.
package surface

// Name имя слота поверхности
type Name string

// Слоты календаря
const (
	PageTitle      Name = "page-title"
	WeekDisplay    Name = "week-display"
	PrevWeek       Name = "prev-week"
	NextWeek       Name = "next-week"
	CalendarHeader Name = "calendar-header"
	CalendarBody   Name = "calendar-body"
)

// Слоты панели деталей занятия
const (
	Modal               Name = "modal"
	ModalTitle          Name = "modal-title"
	ModalDate           Name = "modal-date"
	ModalTime           Name = "modal-time"
	ModalRoom           Name = "modal-room"
	ModalInstructor     Name = "modal-instructor"
	ModalSpots          Name = "modal-spots"
	ModalLevel          Name = "modal-level"
	ModalSubstitutedFor Name = "modal-substituted-for"
	RowSubstitutedFor   Name = "row-substituted-for"
	SuccessMessage      Name = "success-message"
	ConfirmBooking      Name = "confirm-booking"
	CloseModal          Name = "close-modal"
)

// Слоты страницы «мои записи»
const (
	MainTitle          Name = "main-title"
	ReservationsList   Name = "reservations-list"
	CancelModal        Name = "cancel-modal"
	CancelModalMessage Name = "cancel-modal-message"
	CancelStatus       Name = "cancel-status"
)

// Tone окраска сообщения
type Tone string

const (
	ToneNone    Tone = ""
	ToneSuccess Tone = "#10b981"
	ToneError   Tone = "#ef4444"
)

// Style визуальные свойства слота, вычисленные из темы
type Style struct {
	Color      string
	Background string
	Gradient   [2]string // from, to; пустые, если градиента нет
	FontFamily string
	FontSize   int
}

// Slot минимальный контракт любого слота
type Slot interface {
	SetText(text string)
	SetVisible(visible bool)
	SetStyle(style Style)
}

// Message слот сообщения с окраской
type Message interface {
	Slot
	SetTone(tone Tone)
}

// Strikable слот, текст которого можно зачеркнуть
type Strikable interface {
	Slot
	SetStruck(struck bool)
}

// Control кнопка, которую можно заблокировать на время запроса
type Control interface {
	Slot
	Text() string
	Enabled() bool
	SetEnabled(enabled bool)
	SetBusy(busy bool)
}

// HeaderCell заголовок колонки дня
type HeaderCell struct {
	Weekday string
	Date    string // d.m
}

// Card карточка занятия в колонке дня
type Card struct {
	SessionID  string
	DayOffset  int
	Name       string
	Time       string // "HH:MM (N min)"
	Instructor string
	Struck     bool   // инструктор зачёркнут (замена)
	Substitute string // имя заменяющего, пусто без замены
	Spots      string // "Miejsca: 5"
}

// Grid недельная сетка: заменяется целиком при каждом рендере
type Grid interface {
	Slot
	Replace(header []HeaderCell, columns [][]Card)
}

// Item карточка записи на странице «мои записи»
type Item struct {
	ID       string
	Title    string
	Subtitle string
	Action   string // текст кнопки отмены
	Pending  bool
}

// EmptyState заглушка пустого списка
type EmptyState struct {
	Title       string
	Description string
}

// List список карточек записей
type List interface {
	Slot
	ReplaceItems(items []Item)
	SetPending(id string, pending bool) bool
	Remove(id string) bool
	Count() int
	ShowEmpty(state EmptyState)
}

// Surface поверхность, предоставленная страницей-хозяином
type Surface interface {
	Lookup(name Name) (Slot, bool)
}

// SetText записывает текст в слот, если он есть
func SetText(s Surface, name Name, text string) {
	if slot, ok := s.Lookup(name); ok {
		slot.SetText(text)
	}
}

// SetVisible показывает или скрывает слот, если он есть
func SetVisible(s Surface, name Name, visible bool) {
	if slot, ok := s.Lookup(name); ok {
		slot.SetVisible(visible)
	}
}

// SetStyle применяет стиль к слоту, если он есть
func SetStyle(s Surface, name Name, style Style) {
	if slot, ok := s.Lookup(name); ok {
		slot.SetStyle(style)
	}
}

// SetStruck зачёркивает текст слота, если слот это поддерживает
func SetStruck(s Surface, name Name, struck bool) {
	if slot, ok := lookupAs[Strikable](s, name); ok {
		slot.SetStruck(struck)
	}
}

// ControlOf возвращает слот-кнопку
func ControlOf(s Surface, name Name) (Control, bool) {
	return lookupAs[Control](s, name)
}

// MessageOf возвращает слот сообщения
func MessageOf(s Surface, name Name) (Message, bool) {
	return lookupAs[Message](s, name)
}

// GridOf возвращает слот сетки
func GridOf(s Surface, name Name) (Grid, bool) {
	return lookupAs[Grid](s, name)
}

// ListOf возвращает слот списка
func ListOf(s Surface, name Name) (List, bool) {
	return lookupAs[List](s, name)
}

func lookupAs[T Slot](s Surface, name Name) (T, bool) {
	var zero T
	slot, ok := s.Lookup(name)
	if !ok {
		return zero, false
	}
	typed, ok := slot.(T)
	return typed, ok
}
