package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tasksheet/tasksheet-cli/internal/model"
)

// Report kinds, used for export filenames and the HTTP export surface.
const (
	KindCompletion = "task-completion"
	KindTags       = "tag-distribution"
	KindTime       = "time-tracking"
	KindHistory    = "task-history"
)

// Filename returns `<report-kind>-<yyyy-MM-dd>.csv`.
func Filename(kind string, now time.Time) string {
	return fmt.Sprintf("%s-%s.csv", kind, now.Format(model.DateKeyFormat))
}

// Values are written as-is: a field containing the delimiter is the
// caller's problem to sanitize, per the export contract.
func writeRow(b *strings.Builder, fields ...string) {
	b.WriteString(strings.Join(fields, ","))
	b.WriteString("\n")
}

// CompletionCSV renders the per-day completion summary.
func CompletionCSV(days []model.DayCompletion) string {
	var b strings.Builder
	writeRow(&b, "date", "total", "completed", "rate%")
	for _, day := range days {
		writeRow(&b,
			day.Date,
			fmt.Sprintf("%d", day.TaskCount),
			fmt.Sprintf("%d", day.CompletedCount),
			fmt.Sprintf("%d", day.CompletionPercent),
		)
	}
	return b.String()
}

// TagDistributionCSV renders (tag, count) rows preserving input order.
func TagDistributionCSV(points []model.TagChartPoint) string {
	var b strings.Builder
	writeRow(&b, "tag", "count")
	for _, point := range points {
		writeRow(&b, point.Name, fmt.Sprintf("%d", point.Value))
	}
	return b.String()
}

// TimeTrackingCSV renders per-day tracked time, ascending by date.
func TimeTrackingCSV(stats model.TimeStats) string {
	dates := make([]string, 0, len(stats))
	for date := range stats {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var b strings.Builder
	writeRow(&b, "date", "seconds", "hours")
	for _, date := range dates {
		seconds := stats[date]
		writeRow(&b,
			date,
			fmt.Sprintf("%d", seconds),
			fmt.Sprintf("%.1f", float64(seconds)/3600),
		)
	}
	return b.String()
}

// TaskHistoryCSV renders every task of every snapshot, one row per task.
func TaskHistoryCSV(snapshots []model.Snapshot) string {
	var b strings.Builder
	writeRow(&b, "date", "id", "title", "column", "tag", "completed", "start", "end", "duration_seconds")
	for _, snapshot := range snapshots {
		for _, columnID := range model.ColumnOrder {
			for _, task := range snapshot.Tasks[columnID] {
				writeRow(&b,
					snapshot.Date,
					task.ID,
					task.Title,
					columnID,
					task.Tag,
					fmt.Sprintf("%t", task.IsCompleted()),
					formatTimestamp(task.StartTime),
					formatTimestamp(task.EndTime),
					fmt.Sprintf("%d", task.TrackedSeconds()),
				)
			}
		}
	}
	return b.String()
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
