package run

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitOvertime(t *testing.T) {
	tests := []struct {
		name          string
		minutesByWeek map[WeekKey]int
		threshold     int
		wantRegular   int
		wantOvertime  int
	}{
		{
			name:          "under threshold",
			minutesByWeek: map[WeekKey]int{{2025, 23}: 2100},
			threshold:     2400,
			wantRegular:   2100,
			wantOvertime:  0,
		},
		{
			name:          "exactly at threshold",
			minutesByWeek: map[WeekKey]int{{2025, 23}: 2400},
			threshold:     2400,
			wantRegular:   2400,
			wantOvertime:  0,
		},
		{
			name:          "45 hour week",
			minutesByWeek: map[WeekKey]int{{2025, 23}: 2700},
			threshold:     2400,
			wantRegular:   2400,
			wantOvertime:  300,
		},
		{
			name: "biweekly weeks split independently",
			minutesByWeek: map[WeekKey]int{
				{2025, 23}: 2700, // 45h
				{2025, 24}: 2100, // 35h
			},
			threshold:    2400,
			wantRegular:  4500,
			wantOvertime: 300,
		},
		{
			name:          "zero threshold makes everything overtime",
			minutesByWeek: map[WeekKey]int{{2025, 23}: 600},
			threshold:     0,
			wantRegular:   0,
			wantOvertime:  600,
		},
		{
			name:          "empty",
			minutesByWeek: map[WeekKey]int{},
			threshold:     2400,
			wantRegular:   0,
			wantOvertime:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regular, overtime := SplitOvertime(tt.minutesByWeek, tt.threshold)
			assert.Equal(t, tt.wantRegular, regular)
			assert.Equal(t, tt.wantOvertime, overtime)
		})
	}
}
