package duration

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// ErrUnsupportedValue is returned when a raw store value cannot be read in
// the unit its strategy declared.
var ErrUnsupportedValue = errors.New("unsupported duration value")

const (
	secondsPerDay   = 86400
	secondsPerMonth = 30 * secondsPerDay
)

// Value is an elapsed duration as returned by the store, tagged with the
// unit of the strategy that produced it.
type Value struct {
	Raw  any
	Unit Unit
}

// Valid reports whether the store returned a value at all. A run without a
// start timestamp yields NULL.
func (v Value) Valid() bool {
	return v.Raw != nil
}

// Seconds returns the total elapsed seconds.
func (v Value) Seconds() (float64, error) {
	if v.Raw == nil {
		return 0, fmt.Errorf("%w: NULL", ErrUnsupportedValue)
	}

	switch v.Unit {
	case Seconds:
		return numericSeconds(v.Raw)
	case Interval:
		return intervalSeconds(v.Raw)
	default:
		return 0, fmt.Errorf("%w: unknown unit %s", ErrUnsupportedValue, v.Unit)
	}
}

func numericSeconds(raw any) (float64, error) {
	switch x := raw.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case []byte:
		return parseFloat(string(x))
	case string:
		return parseFloat(x)
	default:
		return 0, fmt.Errorf("%w: %T as seconds", ErrUnsupportedValue, raw)
	}
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q as seconds", ErrUnsupportedValue, s)
	}
	return f, nil
}

func intervalSeconds(raw any) (float64, error) {
	var text string
	switch x := raw.(type) {
	case time.Duration:
		return x.Seconds(), nil
	case pgtype.Interval:
		return fromInterval(x)
	case []byte:
		text = string(x)
	case string:
		text = x
	default:
		return 0, fmt.Errorf("%w: %T as interval", ErrUnsupportedValue, raw)
	}

	var iv pgtype.Interval
	if err := iv.Scan(text); err != nil {
		return 0, fmt.Errorf("%w: %q as interval: %v", ErrUnsupportedValue, text, err)
	}
	return fromInterval(iv)
}

func fromInterval(iv pgtype.Interval) (float64, error) {
	if !iv.Valid {
		return 0, fmt.Errorf("%w: NULL interval", ErrUnsupportedValue)
	}
	return float64(iv.Months)*secondsPerMonth +
		float64(iv.Days)*secondsPerDay +
		float64(iv.Microseconds)/1e6, nil
}
