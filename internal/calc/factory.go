package calc

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/agbru/bigcalc/internal/logging"
)

// engineBuilders maps registry keys to core constructors. The gmp backend
// adds itself behind its build tag.
var engineBuilders = map[string]func() coreEngine{
	"bignum": func() coreEngine { return &BignumBackend{} },
	"stdlib": func() coreEngine { return &StdlibBackend{} },
}

// RegisterBackend makes a core backend available to factories built after
// the call. It is meant for init-time registration and is not safe for
// concurrent use with factory construction.
func RegisterBackend(key string, builder func() coreEngine) {
	engineBuilders[key] = builder
}

// EngineFactory provides named evaluation engines.
type EngineFactory interface {
	// Get returns the engine registered under key.
	Get(key string) (Engine, error)
	// GetAll returns every engine, ordered by key.
	GetAll() []Engine
	// List returns the registry keys in sorted order.
	List() []string
}

// DefaultFactory is the standard EngineFactory over the registered
// backends. Engines are built once and shared; they are stateless and
// safe for concurrent use.
type DefaultFactory struct {
	engines map[string]Engine
}

// NewDefaultFactory builds a factory holding one engine per registered
// backend.
func NewDefaultFactory() *DefaultFactory {
	return newFactory(NewEngine)
}

// NewDefaultFactoryWithLogger builds the same engine set with debug
// progress logging attached to every engine.
func NewDefaultFactoryWithLogger(log logging.Logger) *DefaultFactory {
	return newFactory(func(core coreEngine) Engine {
		return NewEngineWithLogger(core, log)
	})
}

func newFactory(wrap func(coreEngine) Engine) *DefaultFactory {
	f := &DefaultFactory{engines: make(map[string]Engine, len(engineBuilders))}
	for key, build := range engineBuilders {
		f.engines[key] = wrap(build())
	}
	return f
}

// Get returns the engine registered under key.
func (f *DefaultFactory) Get(key string) (Engine, error) {
	e, ok := f.engines[key]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q (available: %s)", key, strings.Join(f.List(), ", "))
	}
	return e, nil
}

// List returns the registry keys in sorted order.
func (f *DefaultFactory) List() []string {
	keys := make([]string, 0, len(f.engines))
	for k := range f.engines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetAll returns all engines in List order.
func (f *DefaultFactory) GetAll() []Engine {
	engines := make([]Engine, 0, len(f.engines))
	for _, k := range f.List() {
		engines = append(engines, f.engines[k])
	}
	return engines
}

var (
	globalFactory     *DefaultFactory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns a process-wide shared factory, built on first use.
func GlobalFactory() *DefaultFactory {
	globalFactoryOnce.Do(func() {
		globalFactory = NewDefaultFactory()
	})
	return globalFactory
}
