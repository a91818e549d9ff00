package duration

import (
	"fmt"
	"strings"
	"sync"
)

// Unit declares how the value produced by a strategy's expression is
// represented when it comes back from the store.
type Unit int

const (
	// Seconds means the store already returns elapsed seconds as a number.
	Seconds Unit = iota
	// Interval means the store returns a native interval value that has to
	// be decoded before seconds can be read from it.
	Interval
)

func (u Unit) String() string {
	switch u {
	case Seconds:
		return "seconds"
	case Interval:
		return "interval"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

// Strategy computes "seconds since a stored timestamp" inside the store.
// The expression always reads "now" from the store's clock.
type Strategy struct {
	Name string
	Unit Unit
	// Expr renders the SQL expression for the given timestamp column.
	Expr func(column string) string
}

// DefaultName is the name of the fallback strategy.
const DefaultName = "default"

var (
	julianDay = Strategy{
		Name: "julianday",
		Unit: Seconds,
		Expr: func(column string) string {
			return fmt.Sprintf("(julianday(CURRENT_TIMESTAMP) - julianday(%s)) * 86400.0", column)
		},
	}

	timestampDiff = Strategy{
		Name: "timestampdiff",
		Unit: Seconds,
		Expr: func(column string) string {
			return fmt.Sprintf("TIMESTAMPDIFF(SECOND, %s, NOW())", column)
		},
	}

	nativeSubtraction = Strategy{
		Name: DefaultName,
		Unit: Interval,
		Expr: func(column string) string {
			return fmt.Sprintf("NOW() - %s", column)
		},
	}
)

var (
	mu         sync.RWMutex
	strategies = map[string]Strategy{
		"sqlite":  julianDay,
		"sqlite3": julianDay,
		"mysql":   timestampDiff,
	}
)

// Register binds a strategy to a driver identifier, replacing any existing
// binding.
func Register(driver string, s Strategy) error {
	if driver == "" {
		return fmt.Errorf("driver identifier is required")
	}
	if s.Expr == nil {
		return fmt.Errorf("strategy %q has no expression", s.Name)
	}

	mu.Lock()
	defer mu.Unlock()
	strategies[normalize(driver)] = s
	return nil
}

// Select returns the strategy bound to driver. Unknown drivers get the
// native timestamp subtraction strategy, which yields an interval.
func Select(driver string) Strategy {
	mu.RLock()
	defer mu.RUnlock()

	if s, ok := strategies[normalize(driver)]; ok {
		return s
	}
	return nativeSubtraction
}

// Default returns the fallback strategy.
func Default() Strategy {
	return nativeSubtraction
}

// Value wraps the raw value it was scanned from.
func (s Strategy) Value(raw any) Value {
	return Value{Raw: raw, Unit: s.Unit}
}

func normalize(driver string) string {
	return strings.ToLower(strings.TrimSpace(driver))
}
