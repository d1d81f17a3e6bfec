/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/tasksheet/tasksheet-cli/internal/model"
	"github.com/tasksheet/tasksheet-cli/internal/store"
	"github.com/tasksheet/tasksheet-cli/internal/timer"
)

var taskTag string
var taskColumn string
var taskMeta bool

// taskCmd represents the task command
var taskCmd = &cobra.Command{
	Use:     "task",
	Short:   "Manage tasks on the board",
	Aliases: []string{"t"},
}

var newTaskCmd = &cobra.Command{
	Use:     "new [title]",
	Short:   "Add a new task",
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"n"},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		if err := validateColumnFlag(taskColumn); err != nil {
			log.Fatalf("❌ %v", err)
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

		task, ok := svc.AddTask(ctx, taskColumn, args[0], taskTag)
		if !ok {
			log.Printf("❌ Task title must not be empty\n")
			os.Exit(1)
		}

		if task.Tag != "" {
			if err := store.AddAvailableTag(config.DataDir, task.Tag); err != nil {
				log.Printf("⚠️ Failed to register tag %q: %v", task.Tag, err)
			}
		}

		fmt.Printf("✅ Task %q added to %s (ID: %s)\n", task.Title, model.ColumnTitles[columnOf(svc.Tasks(), task.ID)], task.ID)
	},
}

func columnOf(collection model.TaskCollection, taskID string) string {
	columnID, _, ok := collection.Find(taskID)
	if !ok {
		return model.DefaultColumn
	}
	return columnID
}

var listTaskCmd = &cobra.Command{
	Use:     "list",
	Short:   "List the board",
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

		collection := svc.Tasks()

		fmt.Println(strings.Repeat("=", 30))
		fmt.Printf("Board: %v tasks\n", collection.TotalTasks())
		fmt.Println(strings.Repeat("=", 30))

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleDouble)
		t.Style().Options.SeparateRows = false

		t.AppendHeader(table.Row{
			text.FgGreen.Sprintf("Column"),
			text.FgGreen.Sprintf("Task ID"),
			text.FgGreen.Sprintf("%s", text.Bold.Sprintf("Title")),
			text.FgGreen.Sprintf("Tag"),
			text.FgGreen.Sprintf("Status"),
			text.FgGreen.Sprintf("Tracked"),
		})

		for _, columnID := range model.ColumnOrder {
			for _, task := range collection[columnID] {
				if taskTag != "" && task.Tag != taskTag {
					continue
				}

				status := "Open"
				statusColored := text.FgHiYellow.Sprintf("%s", status)
				if task.IsCompleted() {
					status = "Done"
					statusColored = text.FgHiGreen.Sprintf("%s", status)
				} else if task.TimerRunning {
					status = "Timing"
					statusColored = text.FgHiBlue.Sprintf("%s", status)
				}

				t.AppendRow(table.Row{
					model.ColumnTitles[columnID],
					task.ID,
					task.Title,
					task.Tag,
					statusColored,
					timer.FormatDuration(task.TrackedSeconds() * 1000),
				})
			}
		}

		t.Render()
	},
}

var showTaskCmd = &cobra.Command{
	Use:     "show [Task ID]",
	Short:   "Show task detail",
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"s"},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		taskID := args[0]

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

		columnID, task, found := svc.Find(taskID)
		if !found {
			log.Printf("❌ Task with ID %s not found", taskID)
			os.Exit(1)
		}

		titleStyle := color.New(color.FgCyan, color.Bold).SprintFunc()
		fieldStyle := color.New(color.FgHiGreen).SprintFunc()

		fmt.Printf("[%v] %v\n", titleStyle(task.ID), titleStyle(task.Title))
		fmt.Println(strings.Repeat("-", 50))
		fmt.Printf("Column: %v\n", fieldStyle(model.ColumnTitles[columnID]))
		fmt.Printf("Tag: %v\n", fieldStyle(task.Tag))
		fmt.Printf("Completed: %v\n", fieldStyle(task.IsCompleted()))
		fmt.Printf("Tracked: %v\n", fieldStyle(timer.FormatDuration(task.TrackedSeconds()*1000)))
		if task.StartTime != nil {
			fmt.Printf("Started at: %v\n", fieldStyle(task.StartTime.Format("2006-01-02 15:04:05")))
		}
		if task.EndTime != nil {
			fmt.Printf("Finished at: %v\n", fieldStyle(task.EndTime.Format("2006-01-02 15:04:05")))
		}

		// Render the notes markdown unless --meta flag is used
		if !taskMeta && task.Notes != "" {
			renderedContent, err := glamour.Render(task.Notes, "dark")
			if err != nil {
				log.Printf("⚠️ Failed to render markdown content: %v", err)
			} else {
				fmt.Println(renderedContent)
			}
		}
	},
}

var moveTaskCmd = &cobra.Command{
	Use:     "move [Task ID] [column]",
	Short:   "Move a task to another column",
	Args:    cobra.ExactArgs(2),
	Aliases: []string{"mv"},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		taskID := args[0]
		targetColumn := args[1]

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

		sourceColumn, _, found := svc.Find(taskID)
		if !found {
			log.Printf("❌ Task with ID %s not found", taskID)
			os.Exit(1)
		}

		if err := svc.MoveTask(ctx, taskID, sourceColumn, targetColumn); err != nil {
			log.Fatalf("❌ Failed to move task: %v", err)
		}

		fmt.Printf("✅ Task %s moved to %s\n", taskID, model.ColumnTitles[targetColumn])
	},
}

var doneTaskCmd = &cobra.Command{
	Use:     "done [Task ID]",
	Short:   "Mark a task as completed",
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"d"},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		taskID := args[0]

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

		if err := svc.CompleteTask(ctx, taskID); err != nil {
			log.Fatalf("❌ Failed to complete task: %v", err)
		}

		fmt.Printf("✅ Task %s completed\n", taskID)
	},
}

var reopenTaskCmd = &cobra.Command{
	Use:   "reopen [Task ID]",
	Short: "Reopen a completed task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		taskID := args[0]

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

		if err := svc.ReopenTask(ctx, taskID); err != nil {
			log.Fatalf("❌ Failed to reopen task: %v", err)
		}

		fmt.Printf("🔄 Task %s reopened\n", taskID)
	},
}

var deleteTaskCmd = &cobra.Command{
	Use:     "remove [Task ID]",
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"rm"},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		taskID := args[0]

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

		if err := svc.DeleteTask(ctx, taskID); err != nil {
			log.Fatalf("❌ Failed to delete task: %v", err)
		}

		fmt.Printf("✅ Task %s deleted\n", taskID)
	},
}

func init() {
	taskCmd.AddCommand(newTaskCmd)
	taskCmd.AddCommand(listTaskCmd)
	taskCmd.AddCommand(showTaskCmd)
	taskCmd.AddCommand(moveTaskCmd)
	taskCmd.AddCommand(doneTaskCmd)
	taskCmd.AddCommand(reopenTaskCmd)
	taskCmd.AddCommand(deleteTaskCmd)
	rootCmd.AddCommand(taskCmd)
	newTaskCmd.Flags().StringVarP(&taskTag, "tag", "t", "", "Specify the tag")
	newTaskCmd.Flags().StringVarP(&taskColumn, "column", "c", "", "Target column (nonnegotiables, today, priority)")
	listTaskCmd.Flags().StringVarP(&taskTag, "tag", "t", "", "Filter by tag")
	showTaskCmd.Flags().BoolVar(&taskMeta, "meta", false, "Show only metadata without the notes")
}
