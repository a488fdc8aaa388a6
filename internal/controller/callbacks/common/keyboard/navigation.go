package keyboard

import (
	"github.com/go-telegram/bot/models"
)

// WeekNavigation создаёт ряд навигации по неделям
// label - подпись недели посередине, кнопка без действия (noopData)
func WeekNavigation(label, prevData, nextData, noopData string) []models.InlineKeyboardButton {
	buttons := []models.InlineKeyboardButton{Button("◀️", prevData)}

	if label != "" {
		buttons = append(buttons, Button(label, noopData))
	}

	return append(buttons, Button("▶️", nextData))
}
