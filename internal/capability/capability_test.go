package capability

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Freeeeeet/class_widget/internal/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHost struct {
	reg     Registration
	live    *Config
	updates []Values
	initErr error
}

func (h *recordingHost) Init(_ context.Context, reg Registration) error {
	if h.initErr != nil {
		return h.initErr
	}
	h.reg = reg
	h.reg.OnConfigChange(h.live)
	return nil
}

func (h *recordingHost) SetConfig(update Values) error {
	h.updates = append(h.updates, update)
	return nil
}

func testSchema() Schema {
	return DefaultSchema(locale.For("pl"))
}

func TestResolveFallsBackToDefaults(t *testing.T) {
	schema := testSchema()

	tests := []struct {
		name     string
		property string
		value    any
		want     string
	}{
		{name: "absent color", property: BackgroundColor, want: "#ffffff"},
		{name: "empty color", property: BackgroundColor, value: "", want: "#ffffff"},
		{name: "invalid color", property: TextColor, value: "red", want: "#333333"},
		{name: "valid color", property: TextColor, value: "#abc", want: "#abc"},
		{name: "null font", property: FontFamily, value: nil, want: "Segoe UI"},
		{name: "blank font", property: FontFamily, value: "  ", want: "Segoe UI"},
		{name: "font", property: FontFamily, value: "Roboto", want: "Roboto"},
		{name: "empty title", property: PageTitle, value: "", want: "Kalendarz Zajęć Sportowych"},
		{name: "non-string title", property: PageTitle, value: false, want: "Kalendarz Zajęć Sportowych"},
		{name: "title", property: PageTitle, value: "Grafik", want: "Grafik"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(Values{tt.property: tt.value})
			assert.Equal(t, tt.want, schema.ResolveString(cfg, tt.property))
		})
	}
}

func TestResolveFontSize(t *testing.T) {
	schema := testSchema()

	tests := []struct {
		name  string
		value any
		want  int
	}{
		{name: "absent", value: nil, want: 16},
		{name: "empty string", value: "", want: 16},
		{name: "not a number", value: "big", want: 16},
		{name: "zero is clamped", value: 0, want: MinFontSize},
		{name: "negative is clamped", value: -4, want: MinFontSize},
		{name: "too large", value: 500, want: MaxFontSize},
		{name: "float", value: 17.6, want: 18},
		{name: "json number", value: json.Number("20"), want: 20},
		{name: "decimal string", value: "14", want: 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(Values{FontSize: tt.value})
			assert.Equal(t, tt.want, schema.ResolveFontSize(cfg, FontSize))
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	schema := testSchema()
	cfg := NewConfig(Values{BackgroundColor: "#000000", FontSize: 12})

	first := schema.Resolve(cfg)
	second := schema.Resolve(cfg)
	assert.Equal(t, first, second)
	assert.Equal(t, "#000000", first.Color(BackgroundColor))
	assert.Equal(t, 27, first.Scaled(ScaleTitle))
}

func TestResolveNilConfigGivesDefaults(t *testing.T) {
	theme := testSchema().Resolve(nil)
	assert.Equal(t, "#1e40af", theme.Color(PrimaryActionColor))
	assert.Equal(t, 16, theme.FontSize)
	assert.Equal(t, "Zarezerwuj", theme.Text(BookingButtonText))
}

func TestCapabilitySetNotifiesHostOnce(t *testing.T) {
	host := &recordingHost{live: NewConfig(nil)}
	binder := NewBinder(testSchema(), zap.NewNop())

	var themes []Theme
	mode := binder.Bind(context.Background(), host, func(th Theme) { themes = append(themes, th) })
	require.Equal(t, ModeHosted, mode)
	require.Len(t, themes, 1)

	caps := host.reg.MapToCapabilities(host.live)
	require.Len(t, caps.Recolorables, 6)
	assert.Empty(t, caps.Borderables)

	caps.Recolorables[0].Set("#123456")
	require.Len(t, host.updates, 1)
	assert.Equal(t, Values{BackgroundColor: "#123456"}, host.updates[0])
	assert.Equal(t, "#123456", caps.Recolorables[0].Get())

	caps.FontSizeable.Set(30)
	require.Len(t, host.updates, 2)
	assert.Equal(t, Values{FontSize: 30}, host.updates[1])
	assert.Equal(t, 30, caps.FontSizeable.Get())

	// значение не кэшируется
	host.live.Set(FontFamily, "Inter")
	assert.Equal(t, "Inter", caps.FontEditable.Get())
}

func TestEditPanelValues(t *testing.T) {
	host := &recordingHost{live: NewConfig(Values{MainTitle: "Rezerwacje"})}
	binder := NewBinder(testSchema(), zap.NewNop())
	binder.Bind(context.Background(), host, func(Theme) {})

	fields := host.reg.MapToEditPanelValues(host.live)
	require.Len(t, fields, 5)
	assert.Equal(t, TextField{Name: PageTitle, Value: "Kalendarz Zajęć Sportowych"}, fields[0])
	assert.Equal(t, TextField{Name: MainTitle, Value: "Rezerwacje"}, fields[2])
}

func TestStandaloneMode(t *testing.T) {
	binder := NewBinder(testSchema(), zap.NewNop())

	var got []Theme
	mode := binder.Bind(context.Background(), nil, func(th Theme) { got = append(got, th) })
	assert.Equal(t, ModeStandalone, mode)
	require.Len(t, got, 1)
	assert.Equal(t, testSchema().Resolve(nil), got[0])

	got = nil
	failing := &recordingHost{initErr: errors.New("editor offline")}
	mode = binder.Bind(context.Background(), failing, func(th Theme) { got = append(got, th) })
	assert.Equal(t, ModeStandalone, mode)
	require.Len(t, got, 1)

	// без хозяина запись только меняет локальную конфигурацию
	cfg := NewConfig(nil)
	binder.Capabilities(cfg).FontEditable.Set("Inter")
	assert.Empty(t, failing.updates)
	assert.Equal(t, "Inter", testSchema().ResolveString(cfg, FontFamily))
}

func TestLocalHostRoundTrip(t *testing.T) {
	host := NewLocalHost(Values{TextColor: "#111111"})
	binder := NewBinder(testSchema(), zap.NewNop())

	_, err := host.Capabilities()
	assert.ErrorIs(t, err, ErrNotInitialized)

	var themes []Theme
	binder.Bind(context.Background(), host, func(th Theme) { themes = append(themes, th) })
	require.Len(t, themes, 1)
	assert.Equal(t, "#111111", themes[0].Color(TextColor))
	assert.Equal(t, "#ffffff", themes[0].Color(BackgroundColor))

	caps, err := host.Capabilities()
	require.NoError(t, err)
	caps.FontSizeable.Set(20)

	assert.Equal(t, 1, host.Updates())
	require.Len(t, themes, 2)
	assert.Equal(t, 20, themes[1].FontSize)

	require.NoError(t, host.Apply(Values{PageTitle: "Grafik"}))
	require.Len(t, themes, 3)
	assert.Equal(t, "Grafik", themes[2].Text(PageTitle))
	assert.Equal(t, 1, host.Updates())
}
