package handlers

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Freeeeeet/class_widget/internal/capability"
)

var ErrUnknownProperty = errors.New("unknown property")

// splitArgs делит текст команды на не более чем n аргументов после имени команды.
// Последний аргумент забирает остаток строки вместе с пробелами.
func splitArgs(text string, n int) []string {
	_, rest, _ := strings.Cut(strings.TrimSpace(text), " ")
	rest = strings.TrimSpace(rest)
	if rest == "" || n < 1 {
		return nil
	}

	args := make([]string, 0, n)
	for len(args) < n-1 {
		head, tail, found := strings.Cut(rest, " ")
		args = append(args, head)
		rest = strings.TrimSpace(tail)
		if !found || rest == "" {
			return args
		}
	}
	return append(args, rest)
}

// applySetting записывает значение через возможность с указанным именем свойства
func applySetting(caps capability.Capabilities, name, value string) error {
	for _, c := range caps.Recolorables {
		if c.Property == name {
			c.Set(value)
			return nil
		}
	}

	if caps.FontEditable.Property == name {
		caps.FontEditable.Set(value)
		return nil
	}

	if caps.FontSizeable.Property == name {
		size, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parse font size: %w", err)
		}
		caps.FontSizeable.Set(size)
		return nil
	}

	return fmt.Errorf("%w: %s", ErrUnknownProperty, name)
}

// textUpdate проверяет, что поле есть в панели редактора
func textUpdate(fields []capability.TextField, name, value string) (capability.Values, error) {
	if !slices.ContainsFunc(fields, func(f capability.TextField) bool { return f.Name == name }) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	if strings.TrimSpace(value) == "" {
		return nil, fmt.Errorf("empty value for %s", name)
	}
	return capability.Values{name: value}, nil
}

// formatTheme текущие значения возможностей и текстов
func formatTheme(caps capability.Capabilities, fields []capability.TextField) string {
	var sb strings.Builder

	sb.WriteString("🎨 Kolory\n")
	for _, c := range caps.Recolorables {
		fmt.Fprintf(&sb, "  %s = %s\n", c.Property, c.Get())
	}

	sb.WriteString("\n🔤 Czcionka\n")
	fmt.Fprintf(&sb, "  %s = %s\n", caps.FontEditable.Property, caps.FontEditable.Get())
	fmt.Fprintf(&sb, "  %s = %d\n", caps.FontSizeable.Property, caps.FontSizeable.Get())

	sb.WriteString("\n📝 Teksty\n")
	for _, f := range fields {
		fmt.Fprintf(&sb, "  %s = %s\n", f.Name, f.Value)
	}

	sb.WriteString("\n/set <nazwa> <wartość>\n/text <nazwa> <tekst>")
	return sb.String()
}
