package history

import (
	"math"
	"sort"
	"time"

	"github.com/tasksheet/tasksheet-cli/internal/model"
	"github.com/tasksheet/tasksheet-cli/internal/util"
)

// dayCounts reports whether at least one task in the snapshot is completed.
func dayCounts(snapshot model.Snapshot) bool {
	for _, tasks := range snapshot.Tasks {
		for _, task := range tasks {
			if task.IsCompleted() {
				return true
			}
		}
	}
	return false
}

// CalculateStreaks walks the history backward from the most recent day.
// The current streak only survives while counting days stay contiguous
// from the most recent entry; the longest streak is the best run seen
// anywhere in the walk.
func CalculateStreaks(snapshots []model.Snapshot) (int, int) {
	if len(snapshots) == 0 {
		return 0, 0
	}

	sorted := make([]model.Snapshot, len(snapshots))
	copy(sorted, snapshots)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})

	current := 0
	longest := 0
	run := 0
	currentOpen := true
	var prevCounting time.Time
	haveAnchor := false

	for _, snapshot := range sorted {
		date, err := util.ParseDateKey(snapshot.Date)
		if err != nil {
			continue
		}
		if !dayCounts(snapshot) {
			run = 0
			haveAnchor = false
			currentOpen = false
			continue
		}

		if !haveAnchor {
			run = 1
			haveAnchor = true
		} else if util.DaysBetween(date, prevCounting) == 1 {
			run++
		} else {
			// a gap of more than one day starts a fresh segment
			currentOpen = false
			run = 1
		}
		prevCounting = date

		if run > longest {
			longest = run
		}
		if currentOpen {
			current = run
		}
	}

	return current, longest
}

// CalculateTagStats counts every tagged task occurrence across all days
// and columns, completed or not. Untagged tasks are excluded.
func CalculateTagStats(snapshots []model.Snapshot) model.TagStats {
	stats := make(model.TagStats)
	for _, snapshot := range snapshots {
		for _, tasks := range snapshot.Tasks {
			for _, task := range tasks {
				if task.Tag == "" {
					continue
				}
				stats[task.Tag]++
			}
		}
	}
	return stats
}

// CalculateTimeStats sums tracked seconds per day.
func CalculateTimeStats(snapshots []model.Snapshot) model.TimeStats {
	stats := make(model.TimeStats)
	for _, snapshot := range snapshots {
		var total int64
		for _, tasks := range snapshot.Tasks {
			for _, task := range tasks {
				total += task.TrackedSeconds()
			}
		}
		stats[snapshot.Date] = total
	}
	return stats
}

// CompletionByDay returns per-day completion ratios for the most recent
// seven days, ascending by date for charting.
func CompletionByDay(snapshots []model.Snapshot) []model.DayCompletion {
	sorted := make([]model.Snapshot, len(snapshots))
	copy(sorted, snapshots)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	if len(sorted) > 7 {
		sorted = sorted[len(sorted)-7:]
	}

	days := make([]model.DayCompletion, 0, len(sorted))
	for _, snapshot := range sorted {
		total := 0
		completed := 0
		for _, tasks := range snapshot.Tasks {
			for _, task := range tasks {
				total++
				if task.IsCompleted() {
					completed++
				}
			}
		}
		percent := 0
		if total > 0 {
			percent = int(math.Round(100 * float64(completed) / float64(total)))
		}
		days = append(days, model.DayCompletion{
			Date:              snapshot.Date,
			CompletionPercent: percent,
			CompletedCount:    completed,
			TaskCount:         total,
		})
	}
	return days
}

// CurrentWeekCompletion sums completed/total across the current calendar
// week (Monday start) and rounds to the nearest percent.
func CurrentWeekCompletion(snapshots []model.Snapshot, now time.Time) int {
	weekStart := util.StartOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	total := 0
	completed := 0
	for _, snapshot := range snapshots {
		date, err := util.ParseDateKey(snapshot.Date)
		if err != nil {
			continue
		}
		if date.Before(weekStart) || !date.Before(weekEnd) {
			continue
		}
		for _, tasks := range snapshot.Tasks {
			for _, task := range tasks {
				total++
				if task.IsCompleted() {
					completed++
				}
			}
		}
	}

	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// TagChartData orders tag counts descending by value for the pie chart.
func TagChartData(stats model.TagStats) []model.TagChartPoint {
	points := make([]model.TagChartPoint, 0, len(stats))
	for name, value := range stats {
		points = append(points, model.TagChartPoint{Name: name, Value: value})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Name < points[j].Name
	})
	return points
}

// TimeChartData converts per-day seconds to hours (one decimal), keeping
// the most recent seven entries ascending by date.
func TimeChartData(stats model.TimeStats) []model.TimeChartPoint {
	dates := make([]string, 0, len(stats))
	for date := range stats {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	if len(dates) > 7 {
		dates = dates[len(dates)-7:]
	}

	points := make([]model.TimeChartPoint, 0, len(dates))
	for _, date := range dates {
		hours := math.Round(float64(stats[date])/3600*10) / 10
		points = append(points, model.TimeChartPoint{Date: date, Hours: hours})
	}
	return points
}
