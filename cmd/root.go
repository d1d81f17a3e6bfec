/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tasksheet",
	Short: "A personal task board with timers, history and stats",
	Long: `tasksheet is a personal task manager built around a three-column board
(non-negotiables, today, priority). Tasks carry tags and per-task timers,
every day's board is snapshotted into a 30-day history, and the history
feeds streak, tag, time and completion analytics.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
