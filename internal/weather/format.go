package weather

import orderedmap "github.com/wk8/go-ordered-map/v2"

// DayKeyLayout is the grouping key format, MM-DD-YYYY.
const DayKeyLayout = "01-02-2006"

// FormatMonthlyTemps flattens per-day results and groups every sample by the date
// of its own timestamp. Keys and samples keep the order they were first seen in.
func FormatMonthlyTemps(perDay [][]HourlySample) *GroupedTemps {
	grouped := orderedmap.New[string, []HourlySample]()
	for _, day := range perDay {
		for _, sample := range day {
			key := sample.Time.Format(DayKeyLayout)
			existing, _ := grouped.Get(key)
			grouped.Set(key, append(existing, sample))
		}
	}
	return grouped
}
