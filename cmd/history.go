/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/tasksheet/tasksheet-cli/internal/history"
	"github.com/tasksheet/tasksheet-cli/internal/model"
	"github.com/tasksheet/tasksheet-cli/internal/store"
	"github.com/tasksheet/tasksheet-cli/internal/util"
)

var historyFrom string
var historyTo string

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse daily board snapshots",
}

var listHistoryCmd = &cobra.Command{
	Use:     "list",
	Short:   "List snapshot days with completion counts",
	Aliases: []string{"ls"},
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

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleDouble)
		t.AppendHeader(table.Row{
			text.FgGreen.Sprintf("Date"),
			text.FgGreen.Sprintf("Tasks"),
			text.FgGreen.Sprintf("Completed"),
		})

		for _, snapshot := range svc.History() {
			if !util.IsWithinDateRange(snapshot.Date, historyFrom, historyTo) {
				continue
			}
			completed := 0
			for _, tasks := range snapshot.Tasks {
				for _, task := range tasks {
					if task.IsCompleted() {
						completed++
					}
				}
			}
			t.AppendRow(table.Row{snapshot.Date, snapshot.Tasks.TotalTasks(), completed})
		}

		t.Render()
	},
}

var showHistoryCmd = &cobra.Command{
	Use:     "show [date]",
	Short:   "Show the board as it was on a day (YYYY-MM-DD)",
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"s"},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		dateKey := args[0]

		if _, err := util.ParseDateKey(dateKey); err != nil {
			log.Fatalf("❌ Invalid date %q, expected YYYY-MM-DD", dateKey)
		}

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

		collection := history.SnapshotFor(svc.History(), dateKey)

		fmt.Printf("📅 Board on %s (%d tasks)\n", dateKey, collection.TotalTasks())

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleDouble)
		t.AppendHeader(table.Row{
			text.FgGreen.Sprintf("Column"),
			text.FgGreen.Sprintf("Title"),
			text.FgGreen.Sprintf("Tag"),
			text.FgGreen.Sprintf("Done"),
		})
		for _, columnID := range model.ColumnOrder {
			for _, task := range collection[columnID] {
				done := ""
				if task.IsCompleted() {
					done = text.FgHiGreen.Sprintf("✓")
				}
				t.AppendRow(table.Row{model.ColumnTitles[columnID], task.Title, task.Tag, done})
			}
		}
		t.Render()
	},
}

func init() {
	historyCmd.AddCommand(listHistoryCmd, showHistoryCmd)
	rootCmd.AddCommand(historyCmd)
	listHistoryCmd.Flags().StringVar(&historyFrom, "from", "", "Filter by start date (YYYY-MM-DD)")
	listHistoryCmd.Flags().StringVar(&historyTo, "to", "", "Filter by end date (YYYY-MM-DD)")
}
