package locator_test

import (
	"sync/atomic"
)

// ============================================================================
// Shared Test Types
// ============================================================================

// TConfig is a basic leaf service for testing.
type TConfig struct {
	Env string
}

// TDatabase depends on TConfig.
type TDatabase struct {
	Config *TConfig
	DSN    string
}

func NewTDatabase(cfg *TConfig) *TDatabase {
	return &TDatabase{Config: cfg, DSN: "memory://"}
}

// TUserService depends on TDatabase.
type TUserService struct {
	DB *TDatabase
}

func NewTUserService(db *TDatabase) *TUserService {
	return &TUserService{DB: db}
}

// TGreeter is a capability interface for discovery tests.
type TGreeter interface {
	Greet() string
}

// TEnglishGreeter implements TGreeter by value.
type TEnglishGreeter struct {
	Config *TConfig
}

func (g TEnglishGreeter) Greet() string { return "hello" }

// TFrenchGreeter implements TGreeter through its pointer type.
type TFrenchGreeter struct{}

func (g *TFrenchGreeter) Greet() string { return "bonjour" }

// TNotAGreeter implements nothing.
type TNotAGreeter struct{}

// TCounterFactory returns a factory with an observable invocation count.
func TCounterFactory() (func() *TConfig, *atomic.Int64) {
	var calls atomic.Int64
	return func() *TConfig {
		calls.Add(1)
		return &TConfig{Env: "counted"}
	}, &calls
}

// Cyclic constructor fixtures: TCycleA's constructor needs TCycleB and vice
// versa.
type TCycleA struct{ B *TCycleB }

type TCycleB struct{ A *TCycleA }

func NewTCycleA(b *TCycleB) *TCycleA { return &TCycleA{B: b} }

func NewTCycleB(a *TCycleA) *TCycleB { return &TCycleB{A: a} }
