package keyboard

import (
	"strings"

	"github.com/go-telegram/bot/models"
)

// Builder упрощает создание inline клавиатур
type Builder struct {
	rows [][]models.InlineKeyboardButton
}

// NewBuilder создаёт новый builder клавиатуры
func NewBuilder() *Builder {
	return &Builder{
		rows: make([][]models.InlineKeyboardButton, 0),
	}
}

// Row добавляет новый ряд кнопок
func (b *Builder) Row(buttons ...models.InlineKeyboardButton) *Builder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

// Chunked раскладывает кнопки по рядам по perRow штук
func (b *Builder) Chunked(perRow int, buttons ...models.InlineKeyboardButton) *Builder {
	if perRow < 1 {
		perRow = 1
	}
	for start := 0; start < len(buttons); start += perRow {
		end := min(start+perRow, len(buttons))
		b.Row(buttons[start:end]...)
	}
	return b
}

// Button создаёт кнопку
func Button(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

// Build создаёт финальную клавиатуру
func (b *Builder) Build() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: b.rows,
	}
}

// Empty возвращает пустую клавиатуру (без кнопок)
func Empty() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{},
	}
}

// Fingerprint строковое представление клавиатуры для сравнения
func Fingerprint(markup *models.InlineKeyboardMarkup) string {
	if markup == nil {
		return ""
	}

	var sb strings.Builder
	for _, row := range markup.InlineKeyboard {
		for _, btn := range row {
			sb.WriteString(btn.Text)
			sb.WriteByte('\x1f')
			sb.WriteString(btn.CallbackData)
			sb.WriteByte('\x1e')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
