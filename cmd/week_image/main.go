package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Freeeeeet/class_widget/internal/app"
	"github.com/Freeeeeet/class_widget/internal/capability"
	"github.com/Freeeeeet/class_widget/internal/catalog"
	"github.com/Freeeeeet/class_widget/internal/clock"
	"github.com/Freeeeeet/class_widget/internal/locale"
	"github.com/Freeeeeet/class_widget/internal/source"
	"github.com/Freeeeeet/class_widget/internal/view"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Рисует неделю каталога из JSON-файла в PNG с темой по умолчанию
func main() {
	var (
		catalogPath = pflag.StringP("catalog", "c", "catalog.json", "JSON catalog file")
		output      = pflag.StringP("output", "o", "week.png", "output PNG file")
		lang        = pflag.StringP("locale", "l", "pl", "interface language")
		weeks       = pflag.IntP("weeks", "w", 0, "week offset from the current week")
	)
	pflag.Parse()

	logger := app.NewLogger("development")
	defer logger.Sync()

	sessions, err := source.NewFile(*catalogPath).Sessions(context.Background())
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	messages := locale.For(*lang)
	window := clock.NewWeekWindow(time.Now()).Shift(*weeks)
	theme := capability.DefaultSchema(messages).Resolve(nil)

	imageData, err := view.Snapshot(window, catalog.New(sessions), theme, messages)
	if err != nil {
		log.Fatalf("Failed to render week: %v", err)
	}

	if err := os.WriteFile(*output, imageData, 0o644); err != nil {
		log.Fatalf("Failed to save image: %v", err)
	}

	logger.Info("Week image saved",
		zap.String("path", *output),
		zap.String("week", view.RenderWeekLabel(window)),
		zap.Int("sessions", len(sessions)),
		zap.Int("bytes", len(imageData)))
}
