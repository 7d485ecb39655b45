package cyclecount

import (
	"fmt"
	"time"
)

// Quarter identifies the calendar quarter a cycle count covers.
type Quarter struct {
	Name  string
	Start time.Time
	End   time.Time
}

// QuarterOf returns the quarter containing t. The name doubles as the cycle
// name, e.g. "Q3_2025", and carries a unique index so two cycles can never
// cover the same quarter.
func QuarterOf(t time.Time) Quarter {
	q := (int(t.Month())-1)/3 + 1
	start := time.Date(t.Year(), time.Month((q-1)*3+1), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 3, -1)
	return Quarter{
		Name:  fmt.Sprintf("Q%d_%d", q, t.Year()),
		Start: start,
		End:   end,
	}
}
