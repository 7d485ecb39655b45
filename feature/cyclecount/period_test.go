package cyclecount

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuarterOf(t *testing.T) {
	tests := []struct {
		name      string
		date      time.Time
		wantName  string
		wantStart string
		wantEnd   string
	}{
		{"MidQuarter", time.Date(2025, 7, 27, 12, 0, 0, 0, time.UTC), "Q3_2025", "2025-07-01", "2025-09-30"},
		{"FirstDay", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "Q1_2025", "2025-01-01", "2025-03-31"},
		{"LastDay", time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC), "Q4_2025", "2025-10-01", "2025-12-31"},
		{"QuarterBoundary", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), "Q2_2026", "2026-04-01", "2026-06-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuarterOf(tt.date)
			assert.Equal(t, tt.wantName, q.Name)
			assert.Equal(t, tt.wantStart, q.Start.Format("2006-01-02"))
			assert.Equal(t, tt.wantEnd, q.End.Format("2006-01-02"))
		})
	}
}
