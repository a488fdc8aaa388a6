package capability

import (
	"maps"
	"sync"
)

// Values плоское отображение имя свойства -> значение
type Values map[string]any

// Config живая конфигурация, которой владеет хозяин.
// Виджет держит на неё только ссылку; nil-конфигурация означает автономный режим.
type Config struct {
	mu     sync.RWMutex
	values Values
}

// NewConfig создаёт конфигурацию с копией начальных значений
func NewConfig(initial Values) *Config {
	return &Config{values: maps.Clone(initial)}
}

// Get возвращает значение свойства
func (c *Config) Get(name string) (any, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.values[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Set записывает одно свойство
func (c *Config) Set(name string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.values == nil {
		c.values = make(Values)
	}
	c.values[name] = value
}

// Merge применяет частичное обновление
func (c *Config) Merge(update Values) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.values == nil {
		c.values = make(Values, len(update))
	}
	maps.Copy(c.values, update)
}

// Snapshot копия всех значений
func (c *Config) Snapshot() Values {
	if c == nil {
		return Values{}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.values)
}
