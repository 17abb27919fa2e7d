package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hailem/recallbox/internal/srs"
)

func day(offset int) time.Time {
	base := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestStreakFromDays(t *testing.T) {
	today := day(0)

	tests := []struct {
		name string
		days []time.Time
		want int
	}{
		{"no reviews", nil, 0},
		{"single review today", []time.Time{day(0)}, 1},
		{"three consecutive days ending today", []time.Time{day(0), day(-1), day(-2)}, 3},
		{"streak survives until end of today", []time.Time{day(-1), day(-2)}, 2},
		{"gap breaks the run", []time.Time{day(0), day(-1), day(-3), day(-4)}, 2},
		{"last review two days ago", []time.Time{day(-2), day(-3)}, 0},
		{"old history only", []time.Time{day(-30)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, srs.StreakFromDays(tt.days, today))
		})
	}
}

func TestStreakFromDaysIgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2026, 8, 31, 23, 15, 0, 0, time.UTC)
	days := []time.Time{
		time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 30, 22, 30, 0, 0, time.UTC),
	}
	assert.Equal(t, 2, srs.StreakFromDays(days, today))
}
