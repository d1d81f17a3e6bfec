/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tasksheet/tasksheet-cli/internal/store"
	"github.com/tasksheet/tasksheet-cli/internal/timer"
)

// timerCmd represents the timer command
var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Track time on a task",
}

var timerStartCmd = &cobra.Command{
	Use:   "start [Task ID]",
	Short: "Start the task's timer",
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

		task, err := svc.StartTimer(ctx, args[0])
		if err != nil {
			log.Fatalf("❌ Failed to start timer: %v", err)
		}

		fmt.Printf("▶️  Timer started for %q (elapsed so far: %s)\n",
			task.Title, timer.FormatDuration(task.TimerElapsed))
	},
}

var timerPauseCmd = &cobra.Command{
	Use:   "pause [Task ID]",
	Short: "Pause the task's timer",
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

		task, err := svc.PauseTimer(ctx, args[0])
		if err != nil {
			log.Fatalf("❌ Failed to pause timer: %v", err)
		}

		fmt.Printf("⏸️  Timer paused for %q (total: %s)\n",
			task.Title, timer.FormatDuration(task.TimerElapsed))
	},
}

var timerStatusCmd = &cobra.Command{
	Use:   "status [Task ID]",
	Short: "Show the task's timer state",
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

		_, task, found := svc.Find(args[0])
		if !found {
			log.Fatalf("❌ Task with ID %s not found", args[0])
		}

		state := "paused"
		if task.TimerRunning {
			state = "running"
		}
		fmt.Printf("Task: %s\n", task.Title)
		fmt.Printf("Timer: %s\n", state)
		fmt.Printf("Elapsed: %s\n", timer.FormatDuration(timer.LiveElapsed(task, time.Now())))
	},
}

var timerWatchCmd = &cobra.Command{
	Use:   "watch [Task ID]",
	Short: "Run the timer in the foreground with a live display",
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

		task, err := svc.StartTimer(ctx, taskID)
		if err != nil {
			log.Fatalf("❌ Failed to start timer: %v", err)
		}
		fmt.Printf("▶️  Timing %q (Ctrl+C to pause and exit)\n", task.Title)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()

		ticks := 0
		for {
			select {
			case <-ticker.C:
				ticks++
				_, task, found := svc.Find(taskID)
				if !found {
					log.Fatalf("❌ Task with ID %s not found", taskID)
				}
				fmt.Printf("\r⏱  %s ", timer.FormatDuration(timer.LiveElapsed(task, time.Now())))

				// persist the display value once every 10 ticks
				if ticks%10 == 0 {
					if _, err := svc.RefreshTimer(ctx, taskID); err != nil {
						log.Printf("⚠️ Failed to refresh timer: %v", err)
					}
				}
			case <-sigCh:
				fmt.Println()
				task, err := svc.PauseTimer(ctx, taskID)
				if err != nil {
					log.Fatalf("❌ Failed to pause timer: %v", err)
				}
				fmt.Printf("⏸️  Timer paused (total: %s)\n", timer.FormatDuration(task.TimerElapsed))
				return
			}
		}
	},
}

func init() {
	timerCmd.AddCommand(timerStartCmd, timerPauseCmd, timerStatusCmd, timerWatchCmd)
	rootCmd.AddCommand(timerCmd)
}
