package weather

import (
	"fmt"
	"strconv"
	"time"
)

// monthIndex maps month names to their zero-based index. Lookups are case-sensitive.
var monthIndex = map[string]int{
	"January":   0,
	"February":  1,
	"March":     2,
	"April":     3,
	"May":       4,
	"June":      5,
	"July":      6,
	"August":    7,
	"September": 8,
	"October":   9,
	"November":  10,
	"December":  11,
}

// ParseMonth resolves a month name ("January") or zero-based index ("0".."11").
func ParseMonth(id string) (time.Month, error) {
	if idx, ok := monthIndex[id]; ok {
		return time.Month(idx + 1), nil
	}
	// Only the canonical spelling: no sign, no leading zeros.
	if idx, err := strconv.Atoi(id); err == nil && idx >= 0 && idx <= 11 && strconv.Itoa(idx) == id {
		return time.Month(idx + 1), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMonth, id)
}
