package xdo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultDelay is the delay between keystrokes used when none is given.
const DefaultDelay = 12 * time.Millisecond

// ParseDelay converts a loosely typed delay into a duration. Durations are
// returned as is, integers are treated as a number of microseconds and
// strings may hold either form ("12ms" or "12000"). Anything else, and any
// negative value, yields ErrInvalidDelay.
func ParseDelay(v any) (time.Duration, error) {
	var d time.Duration
	switch v := v.(type) {
	case time.Duration:
		d = v
	case int:
		return fromMicros(int64(v))
	case int32:
		return fromMicros(int64(v))
	case int64:
		return fromMicros(v)
	case uint:
		return fromUnsignedMicros(uint64(v))
	case uint32:
		return fromUnsignedMicros(uint64(v))
	case uint64:
		return fromUnsignedMicros(v)
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return fromMicros(n)
		}
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDelay, v)
		}
		d = parsed
	default:
		return 0, fmt.Errorf("%w: got %T", ErrInvalidDelay, v)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: negative delay %s", ErrInvalidDelay, d)
	}
	return d, nil
}

// fromMicros converts an integer number of microseconds into a duration.
func fromMicros(us int64) (time.Duration, error) {
	if us < 0 {
		return 0, fmt.Errorf("%w: negative delay %dus", ErrInvalidDelay, us)
	}
	if us > math.MaxInt64/int64(time.Microsecond) {
		return 0, fmt.Errorf("%w: %dus out of range", ErrInvalidDelay, us)
	}
	return time.Duration(us) * time.Microsecond, nil
}

func fromUnsignedMicros(us uint64) (time.Duration, error) {
	if us > math.MaxInt64/uint64(time.Microsecond) {
		return 0, fmt.Errorf("%w: %dus out of range", ErrInvalidDelay, us)
	}
	return fromMicros(int64(us))
}

// microseconds converts a delay into the native useconds_t form, truncating
// toward zero.
func microseconds(d time.Duration) (uint32, error) {
	if d < 0 {
		return 0, fmt.Errorf("%w: negative delay %s", ErrInvalidDelay, d)
	}
	us := d.Microseconds()
	if us > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %s out of range", ErrInvalidDelay, d)
	}
	return uint32(us), nil
}
