package model

// DateKeyFormat is the calendar-day key used for snapshots and stats.
const DateKeyFormat = "2006-01-02"

// HistoryRetention bounds the snapshot history to the most recent days.
const HistoryRetention = 30

// Snapshot is the full task collection as it stood on one calendar day.
type Snapshot struct {
	Date  string         `json:"date"` // yyyy-mm-dd
	Tasks TaskCollection `json:"tasks"`
}
