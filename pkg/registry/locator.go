package registry

import (
	"reflect"
	"sync"
)

// Locator stores singleton and named components. Registering under an
// existing key replaces the previous component.
type Locator struct {
	mu         sync.RWMutex
	singletons map[reflect.Type]any
	named      map[string]any
}

// NewLocator creates an empty Locator.
func NewLocator() *Locator {
	return &Locator{
		singletons: make(map[reflect.Type]any),
		named:      make(map[string]any),
	}
}

// RegisterSingleton stores component under its dynamic type.
// A nil component is ignored.
func (l *Locator) RegisterSingleton(component any) {
	if component == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.singletons[reflect.TypeOf(component)] = component
}

// Singleton returns the singleton registered with type T.
func Singleton[T any](l *Locator) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.singletons[reflect.TypeOf((*T)(nil)).Elem()].(T)
	return c, ok
}

// RegisterNamed stores component under key.
func (l *Locator) RegisterNamed(key string, component any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.named[key] = component
}

// Named returns the component registered under key.
func (l *Locator) Named(key string) (any, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.named[key]
	return c, ok
}

// NamedAs returns the component registered under key if it has type T.
func NamedAs[T any](l *Locator, key string) (T, bool) {
	c, _ := l.Named(key)
	v, ok := c.(T)
	return v, ok
}
