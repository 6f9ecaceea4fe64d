package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Limits fixes the capacity of every bounded structure of one checking
// session. All capacities are decided up front, so worst-case memory usage is
// fully predictable; running into a limit mid-session is reported as a
// recoverable error by the component that hit it.
type Limits struct {
	// Terms bounds the term store (nodes, not bytes).
	Terms int `yaml:"terms,omitempty"`

	// Levels bounds the universe-level store.
	Levels int `yaml:"levels,omitempty"`

	// Symbols bounds the number of distinct interned names.
	Symbols int `yaml:"symbols,omitempty"`

	// ContextDepth bounds the typing context, and with it the maximum binder
	// nesting a document can check.
	ContextDepth int `yaml:"context_depth,omitempty"`

	// Env bounds the number of global declarations (axioms and defs).
	Env int `yaml:"env,omitempty"`
}

// DefaultLimits returns the compiled-in capacities.
func DefaultLimits() Limits {
	return Limits{
		Terms:        DefaultTermCapacity,
		Levels:       DefaultLevelCapacity,
		Symbols:      DefaultSymbolCapacity,
		ContextDepth: DefaultContextDepth,
		Env:          DefaultEnvCapacity,
	}
}

// LoadLimits reads a YAML limits file. Omitted fields keep their defaults.
func LoadLimits(path string) (Limits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, fmt.Errorf("reading limits file: %w", err)
	}
	limits := DefaultLimits()
	if err := yaml.Unmarshal(data, &limits); err != nil {
		return Limits{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := limits.Validate(); err != nil {
		return Limits{}, fmt.Errorf("%s: %w", path, err)
	}
	return limits, nil
}

// Validate rejects capacities the stores cannot be built with.
func (l Limits) Validate() error {
	if l.Terms < 1 {
		return fmt.Errorf("terms capacity must be at least 1, got %d", l.Terms)
	}
	if l.Levels < 2 {
		return fmt.Errorf("levels capacity must be at least 2 (two handles are reserved), got %d", l.Levels)
	}
	if l.Symbols < 1 {
		return fmt.Errorf("symbols capacity must be at least 1, got %d", l.Symbols)
	}
	if l.ContextDepth < 1 {
		return fmt.Errorf("context depth must be at least 1, got %d", l.ContextDepth)
	}
	if l.Env < 0 {
		return fmt.Errorf("env capacity must not be negative, got %d", l.Env)
	}
	return nil
}

// ArenaBytes reports the backing-buffer size needed for the term and level
// stores at these limits, with headroom for alignment padding.
func (l Limits) ArenaBytes() int {
	const termNodeSize = 48
	const levelNodeSize = 16
	return l.Terms*termNodeSize + l.Levels*levelNodeSize + 64
}
