package xdo

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDelay(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want time.Duration
	}{
		{"duration", 12 * time.Millisecond, 12 * time.Millisecond},
		{"zero duration", time.Duration(0), 0},
		{"int", 12000, 12 * time.Millisecond},
		{"int32", int32(500), 500 * time.Microsecond},
		{"int64", int64(1), time.Microsecond},
		{"uint", uint(0), 0},
		{"uint32", uint32(250000), 250 * time.Millisecond},
		{"uint64", uint64(3), 3 * time.Microsecond},
		{"string micros", "12000", 12 * time.Millisecond},
		{"string duration", "1.5ms", 1500 * time.Microsecond},
		{"string padded", " 20ms ", 20 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDelay(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDelayInvalid(t *testing.T) {
	for _, in := range []any{
		1.5,
		float32(2),
		true,
		nil,
		"soon",
		"",
		[]int{1},
		-1,
		int64(-12000),
		-time.Millisecond,
		"-5ms",
		uint64(math.MaxUint64),
		int64(18446744073709552),
		int(18446744073709552),
		"18446744073709552",
		"99999999999999999999",
		int64(math.MaxInt64),
		uint64(math.MaxInt64),
	} {
		_, err := ParseDelay(in)
		assert.ErrorIs(t, err, ErrInvalidDelay, "input %#v", in)
	}
}

func TestParseDelayLargest(t *testing.T) {
	largest := int64(math.MaxInt64 / int64(time.Microsecond))
	d, err := ParseDelay(largest)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(largest)*time.Microsecond, d)

	_, err = ParseDelay(largest + 1)
	assert.ErrorIs(t, err, ErrInvalidDelay)
}

func TestIntegerDelayPassesThrough(t *testing.T) {
	for _, n := range []int{0, 1, 12000, 999999} {
		d, err := ParseDelay(n)
		require.NoError(t, err)
		us, err := microseconds(d)
		require.NoError(t, err)
		assert.Equal(t, uint32(n), us)
	}
}

func TestMicroseconds(t *testing.T) {
	us, err := microseconds(1999 * time.Nanosecond)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), us)

	_, err = microseconds(time.Duration(math.MaxUint32+1) * time.Microsecond)
	assert.ErrorIs(t, err, ErrInvalidDelay)

	_, err = microseconds(-time.Nanosecond)
	assert.ErrorIs(t, err, ErrInvalidDelay)
}
