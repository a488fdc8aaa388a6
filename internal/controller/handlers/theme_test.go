package handlers

import (
	"context"
	"testing"

	"github.com/Freeeeeet/class_widget/internal/capability"
	"github.com/Freeeeeet/class_widget/internal/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func boundHost(t *testing.T) (*capability.LocalHost, *capability.Theme) {
	t.Helper()

	host := capability.NewLocalHost(nil)
	binder := capability.NewBinder(capability.DefaultSchema(locale.For("pl")), zap.NewNop())

	var last capability.Theme
	mode := binder.Bind(context.Background(), host, func(theme capability.Theme) { last = theme })
	require.Equal(t, capability.ModeHosted, mode)
	return host, &last
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"/set text_color #111111", []string{"text_color", "#111111"}},
		{"/text page_title  Grafik  zajęć ", []string{"page_title", "Grafik  zajęć"}},
		{"/set font_size", []string{"font_size"}},
		{"/set", nil},
		{"/set   ", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, splitArgs(tt.text, 2), tt.text)
	}
}

func TestApplySetting(t *testing.T) {
	host, theme := boundHost(t)
	caps, err := host.Capabilities()
	require.NoError(t, err)

	require.NoError(t, applySetting(caps, capability.TextColor, "#111111"))
	assert.Equal(t, "#111111", theme.Color(capability.TextColor))

	require.NoError(t, applySetting(caps, capability.FontSize, "200"))
	assert.Equal(t, capability.MaxFontSize, theme.FontSize)

	require.NoError(t, applySetting(caps, capability.FontFamily, "Inter"))
	assert.Equal(t, "Inter", theme.FontFamily)

	assert.Error(t, applySetting(caps, capability.FontSize, "big"))
	assert.ErrorIs(t, applySetting(caps, "border_radius", "4"), ErrUnknownProperty)
	assert.Equal(t, 3, host.Updates())
}

func TestTextUpdate(t *testing.T) {
	host, theme := boundHost(t)
	fields, err := host.EditPanel()
	require.NoError(t, err)

	values, err := textUpdate(fields, capability.PageTitle, "Grafik")
	require.NoError(t, err)
	require.NoError(t, host.Apply(values))
	assert.Equal(t, "Grafik", theme.Text(capability.PageTitle))
	assert.Zero(t, host.Updates())

	_, err = textUpdate(fields, capability.TextColor, "#000000")
	assert.ErrorIs(t, err, ErrUnknownProperty)

	_, err = textUpdate(fields, capability.PageTitle, "  ")
	assert.Error(t, err)
}

func TestFormatTheme(t *testing.T) {
	host, _ := boundHost(t)
	caps, err := host.Capabilities()
	require.NoError(t, err)
	fields, err := host.EditPanel()
	require.NoError(t, err)

	text := formatTheme(caps, fields)
	assert.Contains(t, text, "background_color = #ffffff")
	assert.Contains(t, text, "font_size = 16")
	assert.Contains(t, text, "page_title = Kalendarz Zajęć Sportowych")
}
