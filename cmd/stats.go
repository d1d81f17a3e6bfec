/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/tasksheet/tasksheet-cli/internal/history"
	"github.com/tasksheet/tasksheet-cli/internal/store"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streaks, completion and time analytics",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		config, err := store.LoadConfig()
		if err != nil {
			log.Printf("❌ Error loading config: %v\n", err)
			os.Exit(1)
		}

		svc, err := buildService(ctx, *config)
		if err != nil {
			log.Printf("❌ Failed to open task store: %v\n", err)
			os.Exit(1)
		}

		snapshots := svc.History()
		current, longest := history.CalculateStreaks(snapshots)

		fmt.Printf("🔥 Current streak: %d day(s)\n", current)
		fmt.Printf("🏆 Longest streak: %d day(s)\n", longest)
		fmt.Printf("📈 This week: %d%% completed\n\n", history.CurrentWeekCompletion(snapshots, time.Now()))

		completionTable := table.NewWriter()
		completionTable.SetOutputMirror(os.Stdout)
		completionTable.SetStyle(table.StyleDouble)
		completionTable.AppendHeader(table.Row{
			text.FgGreen.Sprintf("Date"),
			text.FgGreen.Sprintf("Tasks"),
			text.FgGreen.Sprintf("Completed"),
			text.FgGreen.Sprintf("Rate"),
		})
		for _, day := range history.CompletionByDay(snapshots) {
			completionTable.AppendRow(table.Row{
				day.Date, day.TaskCount, day.CompletedCount,
				fmt.Sprintf("%d%%", day.CompletionPercent),
			})
		}
		completionTable.Render()
		fmt.Println()

		tagTable := table.NewWriter()
		tagTable.SetOutputMirror(os.Stdout)
		tagTable.SetStyle(table.StyleDouble)
		tagTable.AppendHeader(table.Row{
			text.FgGreen.Sprintf("Tag"),
			text.FgGreen.Sprintf("Tasks"),
		})
		for _, point := range history.TagChartData(history.CalculateTagStats(snapshots)) {
			tagTable.AppendRow(table.Row{point.Name, point.Value})
		}
		tagTable.Render()
		fmt.Println()

		timeTable := table.NewWriter()
		timeTable.SetOutputMirror(os.Stdout)
		timeTable.SetStyle(table.StyleDouble)
		timeTable.AppendHeader(table.Row{
			text.FgGreen.Sprintf("Date"),
			text.FgGreen.Sprintf("Hours"),
		})
		for _, point := range history.TimeChartData(history.CalculateTimeStats(snapshots)) {
			timeTable.AppendRow(table.Row{point.Date, fmt.Sprintf("%.1f", point.Hours)})
		}
		timeTable.Render()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
