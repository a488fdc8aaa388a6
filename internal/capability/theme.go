package capability

import "math"

// Коэффициенты типографической шкалы относительно базового размера
const (
	ScaleTitle      = 2.25
	ScaleWeekLabel  = 1.25
	ScaleModalTitle = 1.5
	ScaleSmall      = 0.875
)

// Theme разрешённый снимок конфигурации для одного прохода рендера
type Theme struct {
	Colors     map[string]string
	FontFamily string
	FontSize   int
	Texts      map[string]string
}

// Resolve разрешает все свойства таблицы. Для nil-конфигурации возвращает значения по умолчанию.
func (s Schema) Resolve(cfg *Config) Theme {
	theme := Theme{
		Colors: make(map[string]string),
		Texts:  make(map[string]string),
	}

	for _, p := range s.properties {
		switch p.Kind {
		case KindColor:
			theme.Colors[p.Name] = s.ResolveString(cfg, p.Name)
		case KindFont:
			theme.FontFamily = s.ResolveString(cfg, p.Name)
		case KindFontSize:
			theme.FontSize = s.ResolveFontSize(cfg, p.Name)
		case KindText:
			theme.Texts[p.Name] = s.ResolveString(cfg, p.Name)
		}
	}
	return theme
}

// Color цвет по имени свойства
func (t Theme) Color(name string) string {
	return t.Colors[name]
}

// Text текст по имени свойства
func (t Theme) Text(name string) string {
	return t.Texts[name]
}

// Scaled размер шрифта, умноженный на коэффициент шкалы
func (t Theme) Scaled(factor float64) int {
	return int(math.Round(float64(t.FontSize) * factor))
}
