// Package locale содержит фиксированные тексты виджета на поддерживаемых языках.
package locale

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Messages набор текстов интерфейса для одного языка
type Messages struct {
	Tag language.Tag

	BookButton string
	Spots      string
	Limit      string
	Success    string
	Error      string
	ConnError  string

	PageTitle        string
	MainTitle        string
	CancelButton     string
	ConfirmCancel    string
	CancelFailed     string
	CancelConnError  string
	EmptyTitle       string
	EmptyDescription string

	weekdays [7]string // time.Weekday -> название
}

var polish = Messages{
	Tag:              language.Polish,
	BookButton:       "Zarezerwuj",
	Spots:            "Miejsca:",
	Limit:            "Osiągnięto limit 999 rezerwacji. Usuń niektóre rezerwacje.",
	Success:          "Rezerwacja została potwierdzona!",
	Error:            "Wystąpił błąd. Spróbuj ponownie.",
	ConnError:        "Wystąpił błąd połączenia.",
	PageTitle:        "Kalendarz Zajęć Sportowych",
	MainTitle:        "Moje rezerwacje",
	CancelButton:     "Anuluj rezerwację",
	ConfirmCancel:    "Czy na pewno chcesz anulować tę rezerwację?",
	CancelFailed:     "Nie udało się anulować.",
	CancelConnError:  "Błąd połączenia.",
	EmptyTitle:       "Brak aktywnych rezerwacji",
	EmptyDescription: "Nie masz obecnie żadnych zarezerwowanych zajęć sportowych.",
	weekdays: [7]string{
		"niedziela", "poniedziałek", "wtorek", "środa", "czwartek", "piątek", "sobota",
	},
}

var english = Messages{
	Tag:              language.English,
	BookButton:       "Book now",
	Spots:            "Spots:",
	Limit:            "Reservation limit (999) reached. Please cancel some bookings.",
	Success:          "Reservation confirmed!",
	Error:            "An error occurred. Please try again.",
	ConnError:        "Connection error.",
	PageTitle:        "Sports Class Calendar",
	MainTitle:        "My bookings",
	CancelButton:     "Cancel booking",
	ConfirmCancel:    "Are you sure you want to cancel this booking?",
	CancelFailed:     "Could not cancel.",
	CancelConnError:  "Connection error.",
	EmptyTitle:       "No active bookings",
	EmptyDescription: "You have no sports classes booked at the moment.",
	weekdays: [7]string{
		"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
	},
}

var matcher = language.NewMatcher([]language.Tag{language.Polish, language.English})

// For подбирает набор текстов по коду языка; по умолчанию польский
func For(code string) Messages {
	tag, err := language.Parse(code)
	if err != nil {
		return polish
	}

	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return polish
	}
	if index == 1 {
		return english
	}
	return polish
}

// Weekday полное название дня недели с заглавной буквы
func (m Messages) Weekday(day time.Weekday) string {
	return cases.Title(m.Tag).String(m.weekdays[day])
}
