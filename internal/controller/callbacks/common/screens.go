package common

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/class_widget/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/class_widget/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/class_widget/internal/surface"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Page снимок страницы виджета
type Page = map[surface.Name]surface.ElementState

// Screen готовое к отправке сообщение (MarkdownV2)
type Screen struct {
	Text     string
	Keyboard *models.InlineKeyboardMarkup
}

// Fingerprint отпечаток экрана для пропуска одинаковых перерисовок
func (s Screen) Fingerprint() string {
	return s.Text + "\x00" + keyboard.Fingerprint(s.Keyboard)
}

const cardsPerRow = 2

// BuildCalendarScreen формирует экран недели с открытой панелью занятия, если она есть
func BuildCalendarScreen(page Page) Screen {
	var sb strings.Builder

	if title := page[surface.PageTitle].Text; title != "" {
		fmt.Fprintf(&sb, "*%s*\n", esc(title))
	}
	fmt.Fprintf(&sb, "📅 %s\n", esc(page[surface.WeekDisplay].Text))

	body := page[surface.CalendarBody]
	var cards []models.InlineKeyboardButton

	for i, cell := range body.Header {
		fmt.Fprintf(&sb, "\n*%s %s*\n", esc(cell.Weekday), esc(cell.Date))

		var column []surface.Card
		if i < len(body.Columns) {
			column = body.Columns[i]
		}
		if len(column) == 0 {
			sb.WriteString("\\-\n")
			continue
		}

		for _, card := range column {
			sb.WriteString(cardLine(card))
			cards = append(cards, keyboard.Button(
				cardLabel(cell.Weekday, card),
				callbacktypes.OpenData(card.SessionID, card.DayOffset),
			))
		}
	}

	kb := keyboard.NewBuilder().Chunked(cardsPerRow, cards...)
	kb.Row(keyboard.WeekNavigation(
		page[surface.WeekDisplay].Text,
		callbacktypes.PrevWeek,
		callbacktypes.NextWeek,
		callbacktypes.Noop,
	)...)

	if page[surface.Modal].Visible {
		writeDetail(&sb, page)
		kb.Row(confirmButton(page[surface.ConfirmBooking]), keyboard.Button("✖️", callbacktypes.CloseDetail))
	}

	kb.Row(keyboard.Button("📋 "+page[surface.MainTitle].Text, callbacktypes.ShowBookings))

	return Screen{Text: sb.String(), Keyboard: kb.Build()}
}

func cardLine(card surface.Card) string {
	instructor := esc(card.Instructor)
	if card.Struck {
		instructor = "~" + instructor + "~"
	}
	if card.Substitute != "" {
		instructor += " 🔄 " + esc(card.Substitute)
	}
	return fmt.Sprintf("• %s *%s* · %s · %s\n", esc(card.Time), esc(card.Name), instructor, esc(card.Spots))
}

// cardLabel короткая подпись кнопки: "Po 18:00 Joga"
func cardLabel(weekday string, card surface.Card) string {
	day := []rune(weekday)
	if len(day) > 2 {
		day = day[:2]
	}
	start, _, _ := strings.Cut(card.Time, " ")
	return fmt.Sprintf("%s %s %s", string(day), start, card.Name)
}

func writeDetail(sb *strings.Builder, page Page) {
	sb.WriteString("\n━━━━━━━━━━\n")
	fmt.Fprintf(sb, "*%s*\n", esc(page[surface.ModalTitle].Text))

	rows := []struct {
		icon string
		name surface.Name
	}{
		{"📅", surface.ModalDate},
		{"🕐", surface.ModalTime},
		{"📍", surface.ModalRoom},
	}
	for _, row := range rows {
		if text := page[row.name].Text; text != "" {
			fmt.Fprintf(sb, "%s %s\n", row.icon, esc(text))
		}
	}

	if instructor := page[surface.ModalInstructor]; instructor.Text != "" {
		text := esc(instructor.Text)
		if instructor.Struck {
			text = "~" + text + "~"
		}
		fmt.Fprintf(sb, "👤 %s\n", text)
	}

	if page[surface.RowSubstitutedFor].Visible {
		fmt.Fprintf(sb, "🔄 %s\n", esc(page[surface.ModalSubstitutedFor].Text))
	}

	fmt.Fprintf(sb, "🎟 %s\n", esc(page[surface.ModalSpots].Text))
	if level := page[surface.ModalLevel].Text; level != "" {
		fmt.Fprintf(sb, "📊 %s\n", esc(level))
	}

	if msg := page[surface.SuccessMessage]; msg.Visible && msg.Text != "" {
		fmt.Fprintf(sb, "\n%s %s\n", toneIcon(msg.Tone), esc(msg.Text))
	}
}

func confirmButton(state surface.ElementState) models.InlineKeyboardButton {
	switch {
	case state.Busy:
		return keyboard.Button("⏳ "+state.Text, callbacktypes.Noop)
	case !state.Enabled:
		return keyboard.Button(state.Text, callbacktypes.Noop)
	default:
		return keyboard.Button("✅ "+state.Text, callbacktypes.Book)
	}
}

// BuildBookingsScreen формирует экран «мои записи»
func BuildBookingsScreen(page Page) Screen {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*%s*\n", esc(page[surface.MainTitle].Text))

	list := page[surface.ReservationsList]
	kb := keyboard.NewBuilder()
	confirming := page[surface.CancelModal].Visible

	if list.Empty != nil {
		fmt.Fprintf(&sb, "\n*%s*\n%s\n", esc(list.Empty.Title), esc(list.Empty.Description))
	}

	for _, item := range list.Items {
		marker := "•"
		if item.Pending {
			marker = "⏳"
		}
		fmt.Fprintf(&sb, "\n%s *%s*\n%s\n", marker, esc(item.Title), esc(item.Subtitle))

		if !confirming && !item.Pending {
			kb.Row(keyboard.Button("❌ "+item.Action+" · "+item.Title, callbacktypes.CancelData(item.ID)))
		}
	}

	if status := page[surface.CancelStatus]; status.Visible && status.Text != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", toneIcon(status.Tone), esc(status.Text))
	}

	if confirming {
		fmt.Fprintf(&sb, "\n❓ %s\n", esc(page[surface.CancelModalMessage].Text))
		kb.Row(
			keyboard.Button("✅", callbacktypes.ConfirmCancel),
			keyboard.Button("↩️", callbacktypes.DismissCancel),
		)
	}

	kb.Row(keyboard.Button("📅 "+page[surface.PageTitle].Text, callbacktypes.ShowCalendar))

	return Screen{Text: sb.String(), Keyboard: kb.Build()}
}

func toneIcon(tone surface.Tone) string {
	switch tone {
	case surface.ToneSuccess:
		return "✅"
	case surface.ToneError:
		return "❌"
	default:
		return "ℹ️"
	}
}

func esc(s string) string {
	return bot.EscapeMarkdown(s)
}
