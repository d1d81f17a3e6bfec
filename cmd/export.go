/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/tasksheet/tasksheet-cli/internal/export"
	"github.com/tasksheet/tasksheet-cli/internal/history"
	"github.com/tasksheet/tasksheet-cli/internal/store"
)

var exportOutDir string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [kind]",
	Short: "Export a CSV report (completion, tags, time, history)",
	Args:  cobra.ExactArgs(1),
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

		var content string
		var kind string
		switch args[0] {
		case "completion":
			content = export.CompletionCSV(history.CompletionByDay(snapshots))
			kind = export.KindCompletion
		case "tags":
			content = export.TagDistributionCSV(history.TagChartData(history.CalculateTagStats(snapshots)))
			kind = export.KindTags
		case "time":
			content = export.TimeTrackingCSV(history.CalculateTimeStats(snapshots))
			kind = export.KindTime
		case "history":
			content = export.TaskHistoryCSV(snapshots)
			kind = export.KindHistory
		default:
			log.Fatalf("❌ Unknown report kind %q (use completion, tags, time or history)", args[0])
		}

		outPath := filepath.Join(exportOutDir, export.Filename(kind, time.Now()))
		if err := os.WriteFile(outPath, []byte(content), 0644); err != nil {
			log.Fatalf("❌ Failed to write report: %v", err)
		}

		fmt.Printf("✅ Report written to %s\n", outPath)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutDir, "out", "o", ".", "Directory to write the CSV into")
}
