package orchestration

import (
	"github.com/agbru/bigcalc/internal/calc"
)

// GetEnginesToRun determines which engines should be executed based on
// the -engine selection. Returns engines in alphabetically sorted order for
// consistent, reproducible behavior.
//
// Parameters:
//   - engine: The engine key from the configuration, or "all".
//   - factory: The engine factory to retrieve implementations from.
//
// Returns:
//   - []calc.Engine: A slice of engines to execute.
func GetEnginesToRun(engine string, factory calc.EngineFactory) []calc.Engine {
	if engine == "all" {
		keys := factory.List() // List() returns sorted keys
		engines := make([]calc.Engine, 0, len(keys))
		for _, k := range keys {
			if eng, err := factory.Get(k); err == nil {
				engines = append(engines, eng)
			}
		}
		return engines
	}
	if eng, err := factory.Get(engine); err == nil {
		return []calc.Engine{eng}
	}
	return nil
}
