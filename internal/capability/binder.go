package capability

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	ErrHostUnavailable = errors.New("config host unavailable")
	ErrNotInitialized  = errors.New("config host not initialized")
)

// Host канал конфигурации, который предоставляет страница-хозяин
type Host interface {
	// Init регистрирует виджет; хозяин вызывает OnConfigChange при каждом изменении
	Init(ctx context.Context, reg Registration) error
	// SetConfig частичное обновление от виджета
	SetConfig(update Values) error
}

// Registration то, что виджет передаёт хозяину при инициализации
type Registration struct {
	DefaultConfig        Values
	OnConfigChange       func(cfg *Config)
	MapToCapabilities    func(cfg *Config) Capabilities
	MapToEditPanelValues func(cfg *Config) []TextField
}

// Capability типизированная пара чтение/запись для одного свойства.
// Значение не кэшируется: каждый Get читает живую конфигурацию.
type Capability[T any] struct {
	Property string
	Kind     Kind

	get func() T
	set func(T)
}

// Get текущее значение с учётом значения по умолчанию
func (c Capability[T]) Get() T {
	var zero T
	if c.get == nil {
		return zero
	}
	return c.get()
}

// Set записывает значение в живую конфигурацию и уведомляет хозяина
func (c Capability[T]) Set(v T) {
	if c.set != nil {
		c.set(v)
	}
}

// Capabilities набор возможностей для внешнего редактора
type Capabilities struct {
	Recolorables []Capability[string]
	Borderables  []Capability[string]
	FontEditable Capability[string]
	FontSizeable Capability[int]
}

// TextField редактируемое текстовое поле для панели редактора
type TextField struct {
	Name  string
	Value string
}

// Mode режим работы биндера
type Mode int

const (
	ModeStandalone Mode = iota
	ModeHosted
)

func (m Mode) String() string {
	if m == ModeHosted {
		return "hosted"
	}
	return "standalone"
}

// Binder связывает таблицу свойств с каналом конфигурации хозяина
type Binder struct {
	schema Schema
	logger *zap.Logger

	mu   sync.RWMutex
	host Host
}

// NewBinder создаёт биндер для таблицы свойств
func NewBinder(schema Schema, logger *zap.Logger) *Binder {
	return &Binder{
		schema: schema,
		logger: logger,
	}
}

// Schema таблица свойств биндера
func (b *Binder) Schema() Schema {
	return b.schema
}

// Bind регистрируется у хозяина. onChange получает разрешённую тему при каждом
// изменении конфигурации. Если хозяина нет или он не отвечает, тема по умолчанию
// применяется один раз и биндер остаётся в автономном режиме.
func (b *Binder) Bind(ctx context.Context, host Host, onChange func(Theme)) Mode {
	if host == nil {
		b.standalone(ErrHostUnavailable, onChange)
		return ModeStandalone
	}

	b.mu.Lock()
	b.host = host
	b.mu.Unlock()

	reg := Registration{
		DefaultConfig: b.schema.Defaults(),
		OnConfigChange: func(cfg *Config) {
			onChange(b.schema.Resolve(cfg))
		},
		MapToCapabilities:    b.Capabilities,
		MapToEditPanelValues: b.EditPanel,
	}

	if err := host.Init(ctx, reg); err != nil {
		b.mu.Lock()
		b.host = nil
		b.mu.Unlock()

		b.standalone(fmt.Errorf("init config host: %w", err), onChange)
		return ModeStandalone
	}

	b.logger.Info("Config host attached", zap.Int("properties", len(b.schema.properties)))
	return ModeHosted
}

func (b *Binder) standalone(reason error, onChange func(Theme)) {
	b.logger.Warn("Config host unavailable, using defaults", zap.Error(reason))
	onChange(b.schema.Resolve(nil))
}

// Capabilities строит возможности из таблицы свойств поверх живой конфигурации
func (b *Binder) Capabilities(cfg *Config) Capabilities {
	caps := Capabilities{Borderables: []Capability[string]{}}

	for _, p := range b.schema.properties {
		switch p.Kind {
		case KindColor:
			caps.Recolorables = append(caps.Recolorables, b.stringCapability(cfg, p))
		case KindFont:
			caps.FontEditable = b.stringCapability(cfg, p)
		case KindFontSize:
			caps.FontSizeable = b.fontSizeCapability(cfg, p)
		}
	}
	return caps
}

// EditPanel текстовые поля с текущими значениями или значениями по умолчанию
func (b *Binder) EditPanel(cfg *Config) []TextField {
	texts := b.schema.OfKind(KindText)
	fields := make([]TextField, 0, len(texts))
	for _, p := range texts {
		fields = append(fields, TextField{Name: p.Name, Value: b.schema.ResolveString(cfg, p.Name)})
	}
	return fields
}

func (b *Binder) stringCapability(cfg *Config, p Property) Capability[string] {
	name := p.Name
	return Capability[string]{
		Property: name,
		Kind:     p.Kind,
		get:      func() string { return b.schema.ResolveString(cfg, name) },
		set:      func(v string) { b.write(cfg, name, v) },
	}
}

func (b *Binder) fontSizeCapability(cfg *Config, p Property) Capability[int] {
	name := p.Name
	return Capability[int]{
		Property: name,
		Kind:     p.Kind,
		get:      func() int { return b.schema.ResolveFontSize(cfg, name) },
		set:      func(v int) { b.write(cfg, name, v) },
	}
}

// write пишет свойство в живую конфигурацию и сразу отправляет хозяину
// обновление ровно из одного свойства
func (b *Binder) write(cfg *Config, name string, value any) {
	if cfg != nil {
		cfg.Set(name, value)
	}

	b.mu.RLock()
	host := b.host
	b.mu.RUnlock()

	if host == nil {
		return
	}
	if err := host.SetConfig(Values{name: value}); err != nil {
		b.logger.Warn("Failed to push config update",
			zap.String("property", name),
			zap.Error(err))
	}
}
