// Package capability связывает живую конфигурацию хозяина с рендером виджета и
// внешним редактором дизайна.
//
// Все свойства описаны одной таблицей (Schema). Из неё строятся значения по умолчанию,
// правила разрешения значений и набор типизированных аксессоров для редактора.
package capability

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/Freeeeeet/class_widget/internal/locale"
	"github.com/go-playground/validator/v10"
)

// Kind тип свойства конфигурации
type Kind int

const (
	KindColor Kind = iota + 1
	KindFont
	KindFontSize
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindFont:
		return "font"
	case KindFontSize:
		return "font_size"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Имена свойств
const (
	BackgroundColor      = "background_color"
	SurfaceColor         = "surface_color"
	TextColor            = "text_color"
	PrimaryActionColor   = "primary_action_color"
	SecondaryActionColor = "secondary_action_color"
	AccentActionColor    = "accent_action_color"
	FontFamily           = "font_family"
	FontSize             = "font_size"
	PageTitle            = "page_title"
	BookingButtonText    = "booking_button_text"
	MainTitle            = "main_title"
	CancelButtonText     = "cancel_button_text"
	ConfirmMessage       = "confirm_message"
)

// Границы размера шрифта
const (
	MinFontSize = 8
	MaxFontSize = 72
)

// Property одно свойство конфигурации со статическим значением по умолчанию
type Property struct {
	Name    string
	Kind    Kind
	Default any // string для цветов, шрифта и текста; int для размера шрифта
}

// Schema неизменяемая таблица свойств
type Schema struct {
	properties []Property
	index      map[string]int
}

// NewSchema создаёт таблицу; порядок свойств сохраняется для редактора
func NewSchema(properties ...Property) Schema {
	s := Schema{
		properties: make([]Property, 0, len(properties)),
		index:      make(map[string]int, len(properties)),
	}
	for _, p := range properties {
		if _, dup := s.index[p.Name]; dup {
			continue
		}
		s.index[p.Name] = len(s.properties)
		s.properties = append(s.properties, p)
	}
	return s
}

// DefaultSchema таблица свойств календаря и страницы записей
func DefaultSchema(m locale.Messages) Schema {
	return NewSchema(
		Property{Name: BackgroundColor, Kind: KindColor, Default: "#ffffff"},
		Property{Name: SurfaceColor, Kind: KindColor, Default: "#f3f4f6"},
		Property{Name: TextColor, Kind: KindColor, Default: "#333333"},
		Property{Name: PrimaryActionColor, Kind: KindColor, Default: "#1e40af"},
		Property{Name: SecondaryActionColor, Kind: KindColor, Default: "#3b82f6"},
		Property{Name: AccentActionColor, Kind: KindColor, Default: "#3b82f6"},
		Property{Name: FontFamily, Kind: KindFont, Default: "Segoe UI"},
		Property{Name: FontSize, Kind: KindFontSize, Default: 16},
		Property{Name: PageTitle, Kind: KindText, Default: m.PageTitle},
		Property{Name: BookingButtonText, Kind: KindText, Default: m.BookButton},
		Property{Name: MainTitle, Kind: KindText, Default: m.MainTitle},
		Property{Name: CancelButtonText, Kind: KindText, Default: m.CancelButton},
		Property{Name: ConfirmMessage, Kind: KindText, Default: m.ConfirmCancel},
	)
}

// Properties все свойства в порядке таблицы
func (s Schema) Properties() []Property {
	out := make([]Property, len(s.properties))
	copy(out, s.properties)
	return out
}

// Lookup ищет свойство по имени
func (s Schema) Lookup(name string) (Property, bool) {
	i, ok := s.index[name]
	if !ok {
		return Property{}, false
	}
	return s.properties[i], true
}

// OfKind свойства указанного типа в порядке таблицы
func (s Schema) OfKind(kind Kind) []Property {
	var out []Property
	for _, p := range s.properties {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

// Defaults значения по умолчанию всех свойств
func (s Schema) Defaults() Values {
	out := make(Values, len(s.properties))
	for _, p := range s.properties {
		out[p.Name] = p.Default
	}
	return out
}

var validate = validator.New()

// ResolveString возвращает строковое значение свойства по правилу его типа.
// Отсутствующее или невалидное значение заменяется значением по умолчанию.
func (s Schema) ResolveString(cfg *Config, name string) string {
	p, ok := s.Lookup(name)
	if !ok {
		return ""
	}
	def, _ := p.Default.(string)

	raw, ok := cfg.Get(name)
	if !ok {
		return def
	}
	value, ok := raw.(string)
	if !ok {
		return def
	}

	switch p.Kind {
	case KindColor:
		value = strings.TrimSpace(value)
		if validate.Var(value, "required,hexcolor") != nil {
			return def
		}
		return value
	case KindFont, KindText:
		if strings.TrimSpace(value) == "" {
			return def
		}
		return value
	default:
		return def
	}
}

// ResolveFontSize возвращает размер шрифта: отсутствующее или нечисловое значение
// даёт значение по умолчанию, любое число (в том числе 0) ограничивается
// диапазоном [MinFontSize, MaxFontSize]
func (s Schema) ResolveFontSize(cfg *Config, name string) int {
	p, ok := s.Lookup(name)
	if !ok || p.Kind != KindFontSize {
		return 0
	}
	def, _ := p.Default.(int)

	raw, ok := cfg.Get(name)
	if !ok {
		return def
	}
	size, ok := toInt(raw)
	if !ok {
		return def
	}
	return min(max(size, MinFontSize), MaxFontSize)
}

func toInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(math.Round(f)), true
}
