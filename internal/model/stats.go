package model

// TagStats counts task occurrences per tag across all history.
type TagStats map[string]int

// TimeStats sums tracked seconds per date key.
type TimeStats map[string]int64

// DayCompletion is one day's completion ratio for charting and export.
type DayCompletion struct {
	Date              string `json:"date"`
	CompletionPercent int    `json:"completionPercent"`
	CompletedCount    int    `json:"completedCount"`
	TaskCount         int    `json:"taskCount"`
}

// TagChartPoint is a chart-ready (tag, count) pair.
type TagChartPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// TimeChartPoint is a chart-ready per-day tracked-hours value.
type TimeChartPoint struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}
