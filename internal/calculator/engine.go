package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultTolerance is the absolute amount under which a balance counts as zero.
var DefaultTolerance = decimal.New(1, -9)

// DefaultMaxParticipants bounds the settlement queue.
const DefaultMaxParticipants = 10000

// Config tunes the engine.
type Config struct {
	// Tolerance is the absolute amount under which a balance or the sum of
	// all balances counts as zero. Negative values select DefaultTolerance.
	Tolerance decimal.Decimal
	// MaxParticipants caps distinct participants per computation.
	// Zero or less disables the cap.
	MaxParticipants int
}

// DefaultConfig returns the configuration used by NewDefaultEngine.
func DefaultConfig() Config {
	return Config{
		Tolerance:       DefaultTolerance,
		MaxParticipants: DefaultMaxParticipants,
	}
}

// Engine aggregates ledgers and settles balances. It holds no state besides
// its configuration and is safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	if cfg.Tolerance.IsNegative() {
		cfg.Tolerance = DefaultTolerance
	}
	return &Engine{cfg: cfg}
}

// NewDefaultEngine creates an engine with DefaultConfig.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultConfig())
}

// Tolerance returns the zero tolerance in use.
func (e *Engine) Tolerance() decimal.Decimal {
	return e.cfg.Tolerance
}

// Compute runs Aggregate then Settle over the full ledger.
func (e *Engine) Compute(txns []Transaction) (*Balances, Plan, error) {
	balances, err := e.Aggregate(txns)
	if err != nil {
		return nil, nil, err
	}
	plan, err := e.Settle(balances)
	if err != nil {
		return balances, nil, err
	}
	return balances, plan, nil
}

func (e *Engine) checkSize(n int) error {
	if e.cfg.MaxParticipants > 0 && n > e.cfg.MaxParticipants {
		return fmt.Errorf("%w: %d exceeds limit of %d", ErrTooManyParticipants, n, e.cfg.MaxParticipants)
	}
	return nil
}

// significant reports whether an amount is nonzero beyond tolerance.
func (e *Engine) significant(amount decimal.Decimal) bool {
	return amount.Abs().GreaterThan(e.cfg.Tolerance)
}
