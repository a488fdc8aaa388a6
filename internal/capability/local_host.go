package capability

import (
	"context"
	"fmt"
	"sync"
)

// LocalHost хозяин конфигурации внутри процесса. Владеет живой конфигурацией
// и служит точкой входа для внешнего редактора (команды /theme в Telegram, тесты).
type LocalHost struct {
	live *Config

	mu      sync.Mutex
	reg     *Registration
	updates int
}

// NewLocalHost создаёт хозяина с сохранённой ранее конфигурацией (может быть nil)
func NewLocalHost(saved Values) *LocalHost {
	return &LocalHost{live: NewConfig(saved)}
}

// Init реализует Host: недостающие свойства заполняются значениями по умолчанию,
// затем виджет получает первую конфигурацию
func (h *LocalHost) Init(ctx context.Context, reg Registration) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("init local host: %w", err)
	}

	current := h.live.Snapshot()
	for name, value := range reg.DefaultConfig {
		if _, ok := current[name]; !ok {
			h.live.Set(name, value)
		}
	}

	h.mu.Lock()
	h.reg = &reg
	h.mu.Unlock()

	h.notify()
	return nil
}

// SetConfig реализует Host
func (h *LocalHost) SetConfig(update Values) error {
	if !h.initialized() {
		return ErrNotInitialized
	}

	h.live.Merge(update)

	h.mu.Lock()
	h.updates++
	h.mu.Unlock()

	h.notify()
	return nil
}

// Apply внешнее обновление со стороны хозяина, например из текстовой панели редактора
func (h *LocalHost) Apply(update Values) error {
	if !h.initialized() {
		return ErrNotInitialized
	}

	h.live.Merge(update)
	h.notify()
	return nil
}

// Capabilities набор возможностей, который виджет открыл редактору
func (h *LocalHost) Capabilities() (Capabilities, error) {
	reg := h.registration()
	if reg == nil || reg.MapToCapabilities == nil {
		return Capabilities{}, ErrNotInitialized
	}
	return reg.MapToCapabilities(h.live), nil
}

// EditPanel текстовые поля для панели редактора
func (h *LocalHost) EditPanel() ([]TextField, error) {
	reg := h.registration()
	if reg == nil || reg.MapToEditPanelValues == nil {
		return nil, ErrNotInitialized
	}
	return reg.MapToEditPanelValues(h.live), nil
}

// Config живая конфигурация
func (h *LocalHost) Config() *Config {
	return h.live
}

// Updates количество обновлений, полученных от виджета через SetConfig
func (h *LocalHost) Updates() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.updates
}

func (h *LocalHost) initialized() bool {
	return h.registration() != nil
}

func (h *LocalHost) registration() *Registration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reg
}

func (h *LocalHost) notify() {
	reg := h.registration()
	if reg != nil && reg.OnConfigChange != nil {
		reg.OnConfigChange(h.live)
	}
}
