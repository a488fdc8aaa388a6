package view

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/Freeeeeet/class_widget/internal/capability"
	"github.com/Freeeeeet/class_widget/internal/catalog"
	"github.com/Freeeeeet/class_widget/internal/clock"
	"github.com/Freeeeeet/class_widget/internal/locale"
	"github.com/Freeeeeet/class_widget/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Размеры изображения недели
const (
	imageWidth      = 1400
	imageHeight     = 900
	headerHeight    = 110
	leftLabelsWidth = 70
	dayPaddingX     = 6
	minBlockHeight  = 28.0
	blockRadius     = 6.0
	hourPadding     = 1
	defaultMinHour  = 8
	defaultMaxHour  = 20
)

var (
	fontsOnce sync.Once
	regular   *opentype.Font
	bold      *opentype.Font
)

// Snapshot рисует PNG недели с цветами и шрифтом из темы
func Snapshot(w clock.WeekWindow, c *catalog.Catalog, theme capability.Theme, m locale.Messages) ([]byte, error) {
	days := make([][]*model.ClassSession, clock.DaysInWeek)
	for offset := range clock.DaysInWeek {
		for s := range c.SessionsOn(w.DateAt(offset), offset) {
			days[offset] = append(days[offset], s)
		}
	}
	start, end := hourRange(days)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetHexColor(theme.Color(capability.BackgroundColor))
	dc.Clear()

	dayWidth := float64(imageWidth-leftLabelsWidth) / clock.DaysInWeek
	cellHeight := float64(imageHeight-headerHeight) / float64(end-start)

	drawTitle(dc, theme, RenderWeekLabel(w))
	drawHours(dc, theme, start, end, cellHeight)

	for offset, sessions := range days {
		x := float64(leftLabelsWidth) + float64(offset)*dayWidth
		drawColumn(dc, theme, x, dayWidth, offset)
		drawDayHeader(dc, theme, x, dayWidth, m, w, offset)
		for _, s := range sessions {
			drawSession(dc, theme, m, s, x, dayWidth, start, cellHeight)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week image: %w", err)
	}
	return buf.Bytes(), nil
}

// hourRange диапазон часов с занятиями плюс отступ; пустая неделя показывает рабочий день
func hourRange(days [][]*model.ClassSession) (int, int) {
	first, last := 24, 0
	for _, sessions := range days {
		for _, s := range sessions {
			minutes, ok := s.StartMinutes()
			if !ok {
				continue
			}
			endMinutes := minutes + max(s.Duration, 0)
			first = min(first, minutes/60)
			last = max(last, (endMinutes+59)/60)
		}
	}
	if first > last {
		return defaultMinHour, defaultMaxHour
	}
	return max(first-hourPadding, 0), min(last+hourPadding, 24)
}

func drawTitle(dc *gg.Context, theme capability.Theme, label string) {
	setFont(dc, float64(theme.Scaled(capability.ScaleWeekLabel)), true)
	dc.SetHexColor(theme.Color(capability.PrimaryActionColor))
	dc.DrawStringAnchored(label, imageWidth/2, 24, 0.5, 0.5)
}

func drawHours(dc *gg.Context, theme capability.Theme, start, end int, cellHeight float64) {
	setFont(dc, float64(theme.Scaled(capability.ScaleSmall)), false)
	dc.SetHexColor(theme.Color(capability.TextColor))
	dc.SetLineWidth(0.3)

	for h := start; h <= end; h++ {
		y := headerHeight + float64(h-start)*cellHeight
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", h), leftLabelsWidth-8, y, 1, 0.5)
		dc.DrawLine(leftLabelsWidth, y, imageWidth, y)
		dc.Stroke()
	}
}

func drawColumn(dc *gg.Context, theme capability.Theme, x, width float64, offset int) {
	dc.SetHexColor(theme.Color(capability.SurfaceColor))
	if offset%2 == 1 {
		dc.SetHexColor(theme.Color(capability.BackgroundColor))
	}
	dc.DrawRectangle(x, headerHeight, width, imageHeight-headerHeight)
	dc.Fill()
}

func drawDayHeader(dc *gg.Context, theme capability.Theme, x, width float64, m locale.Messages, w clock.WeekWindow, offset int) {
	date := w.DateAt(offset)

	dc.SetHexColor(theme.Color(capability.PrimaryActionColor))
	dc.DrawRectangle(x, 50, width, headerHeight-50)
	dc.Fill()

	setFont(dc, float64(theme.FontSize), true)
	dc.SetHexColor(onAccent)
	dc.DrawStringAnchored(m.Weekday(date.Weekday()), x+width/2, 68, 0.5, 0.5)
	dc.DrawStringAnchored(FormatDay(date), x+width/2, 94, 0.5, 0.5)
}

func drawSession(dc *gg.Context, theme capability.Theme, m locale.Messages, s *model.ClassSession,
	x, width float64, startHour int, cellHeight float64) {

	minutes, ok := s.StartMinutes()
	if !ok {
		return
	}
	top := headerHeight + (float64(minutes)/60-float64(startHour))*cellHeight
	height := max(float64(s.Duration)/60*cellHeight, minBlockHeight)
	blockWidth := width - dayPaddingX*2

	fill := theme.Color(capability.SecondaryActionColor)
	if s.Spots <= 0 {
		fill = theme.Color(capability.TextColor)
	}
	dc.SetHexColor(fill)
	dc.DrawRoundedRectangle(x+dayPaddingX, top+1, blockWidth, height-2, blockRadius)
	dc.Fill()

	if s.IsSubstituted() {
		dc.SetHexColor(theme.Color(capability.AccentActionColor))
		dc.SetLineWidth(2)
		dc.DrawRoundedRectangle(x+dayPaddingX, top+1, blockWidth, height-2, blockRadius)
		dc.Stroke()
	}

	small := float64(theme.Scaled(capability.ScaleSmall))
	setFont(dc, small, true)
	dc.SetHexColor(onAccent)
	textX := x + dayPaddingX + 6
	dc.DrawStringAnchored(truncate(s.StartTime+" "+s.Name, 18), textX, top+small, 0, 0)

	if height > small*2.5 {
		setFont(dc, small-2, false)
		dc.DrawStringAnchored(FormatSpots(m, s.Spots), textX, top+small*2.2, 0, 0)
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// setFont выбирает Go-шрифт нужного размера; при ошибке используется basicfont
func setFont(dc *gg.Context, size float64, isBold bool) {
	fontsOnce.Do(func() {
		regular, _ = opentype.Parse(goregular.TTF)
		bold, _ = opentype.Parse(gobold.TTF)
	})

	f := regular
	if isBold {
		f = bold
	}
	if f == nil {
		dc.SetFontFace(basicfont.Face7x13)
		return
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		dc.SetFontFace(basicfont.Face7x13)
		return
	}
	dc.SetFontFace(face)
}
