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
	"github.com/tasksheet/tasksheet-cli/internal/model"
	"github.com/tasksheet/tasksheet-cli/internal/store"
)

// tagCmd represents the tag command
var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage task tags",
}

var listTagCmd = &cobra.Command{
	Use:     "list",
	Short:   "List available tags",
	Aliases: []string{"ls"},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		config, err := store.LoadConfig()
		if err != nil {
			log.Printf("❌ Error loading config: %v\n", err)
			os.Exit(1)
		}

		tags, err := store.LoadAvailableTags(config.DataDir)
		if err != nil {
			log.Printf("❌ Failed to load tags: %v\n", err)
			os.Exit(1)
		}

		colors, err := store.LoadTagColors(config.DataDir)
		if err != nil {
			log.Printf("❌ Failed to load tag colors: %v\n", err)
			os.Exit(1)
		}

		svc, err := buildService(ctx, *config)
		if err != nil {
			log.Printf("❌ Failed to open task store: %v\n", err)
			os.Exit(1)
		}

		counts := make(map[string]int)
		collection := svc.Tasks()
		for _, columnID := range model.ColumnOrder {
			for _, task := range collection[columnID] {
				if task.Tag != "" {
					counts[task.Tag]++
				}
			}
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleDouble)
		t.AppendHeader(table.Row{
			text.FgGreen.Sprintf("Tag"),
			text.FgGreen.Sprintf("Color"),
			text.FgGreen.Sprintf("Tasks"),
		})
		for _, tag := range tags {
			t.AppendRow(table.Row{tag, colors[tag], counts[tag]})
		}
		t.Render()
	},
}

var setTagCmd = &cobra.Command{
	Use:   "set [Task ID] [tag]",
	Short: "Assign a tag to a task",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		taskID, tag := args[0], args[1]

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

		if err := svc.UpdateTag(ctx, taskID, tag); err != nil {
			log.Fatalf("❌ Failed to update tag: %v", err)
		}
		if err := store.AddAvailableTag(config.DataDir, tag); err != nil {
			log.Printf("⚠️ Failed to register tag %q: %v", tag, err)
		}

		fmt.Printf("✅ Task %s tagged %q\n", taskID, tag)
	},
}

var colorTagCmd = &cobra.Command{
	Use:   "color [Task ID] [color]",
	Short: "Set a task's tag color",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		taskID, tagColor := args[0], args[1]

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

		if err := svc.UpdateTagColor(ctx, taskID, tagColor); err != nil {
			log.Fatalf("❌ Failed to update tag color: %v", err)
		}

		_, task, found := svc.Find(taskID)
		if found && task.Tag != "" {
			if err := store.SaveTagColor(config.DataDir, task.Tag, tagColor); err != nil {
				log.Printf("⚠️ Failed to save tag color: %v", err)
			}
		}

		fmt.Printf("✅ Tag color for task %s set to %s\n", taskID, tagColor)
	},
}

var deleteTagCmd = &cobra.Command{
	Use:     "remove [tag]",
	Short:   "Delete a tag, reassigning its tasks to the fallback",
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"rm"},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		tag := args[0]

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

		if err := svc.DeleteTag(ctx, tag); err != nil {
			log.Fatalf("❌ Failed to delete tag: %v", err)
		}
		if err := store.DeleteAvailableTag(config.DataDir, tag); err != nil {
			log.Printf("⚠️ Failed to remove tag from the available set: %v", err)
		}

		fmt.Printf("✅ Tag %q deleted, its tasks now carry %q\n", tag, model.DefaultTag)
	},
}

func init() {
	tagCmd.AddCommand(listTagCmd, setTagCmd, colorTagCmd, deleteTagCmd)
	rootCmd.AddCommand(tagCmd)
}
