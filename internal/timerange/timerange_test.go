package timerange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 15, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Range
		want bool
	}{
		{"identical", New(at(14, 0), at(16, 0)), New(at(14, 0), at(16, 0)), true},
		{"partial overlap", New(at(14, 0), at(16, 0)), New(at(15, 0), at(17, 0)), true},
		{"containment", New(at(14, 0), at(18, 0)), New(at(15, 0), at(16, 0)), true},
		{"adjacent half-open", New(at(14, 0), at(16, 0)), New(at(16, 0), at(18, 0)), false},
		{"disjoint", New(at(8, 0), at(9, 0)), New(at(14, 0), at(16, 0)), false},
		{"one minute shared", New(at(14, 0), at(16, 1)), New(at(16, 0), at(18, 0)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// overlap is symmetric
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestOverlapsSelf(t *testing.T) {
	r := New(at(14, 0), at(16, 0))
	assert.True(t, r.Overlaps(r))
}

func TestIsValid(t *testing.T) {
	assert.True(t, New(at(14, 0), at(16, 0)).IsValid())
	assert.False(t, New(at(16, 0), at(14, 0)).IsValid())
	assert.False(t, New(at(14, 0), at(14, 0)).IsValid())
}

func TestMinutes(t *testing.T) {
	assert.Equal(t, 120, New(at(14, 0), at(16, 0)).Minutes())
	assert.Equal(t, 90, New(at(14, 30), at(16, 0)).Minutes())
}

func TestStartClock(t *testing.T) {
	assert.Equal(t, "09:05", New(at(9, 5), at(10, 0)).StartClock())
	assert.Equal(t, "23:00", New(at(23, 0), at(23, 30)).StartClock())
}
