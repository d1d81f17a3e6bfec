/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/tasksheet/tasksheet-cli/internal/store"
)

var syncDryRun bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize the local data directory with S3",
}

// runSync drives a push or pull; with --dry-run it only reports the plan.
func runSync(direction string) error {
	config, err := store.LoadConfig()
	if err != nil {
		log.Printf("❌ Error loading config: %v", err)
		return err
	}

	if syncDryRun {
		plan, err := planSync(*config, direction)
		if err != nil {
			return err
		}
		if len(plan.files) == 0 {
			log.Println("✅ Nothing to do. Everything is up-to-date.")
			return nil
		}
		log.Printf("📌 Would %s %d file(s):", direction, len(plan.files))
		for _, file := range plan.files {
			log.Println("   -", file)
		}
		return nil
	}

	files, err := SyncWithS3(*config, direction)
	if err != nil {
		log.Printf("❌ Sync failed: %v", err)
		return err
	}

	if len(files) == 0 {
		log.Println("✅ No changes detected. Everything is up-to-date.")
	} else {
		log.Printf("✅ Sync completed, %d file(s) %sed.", len(files), direction)
	}
	return nil
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload local changes to S3",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync("push")
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download latest changes from S3",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync("pull")
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pending sync work in both directions",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := store.LoadConfig()
		if err != nil {
			log.Fatalf("❌ Error loading config: %v", err)
		}

		return ShowSyncStatus(*config)
	},
}

func init() {
	syncCmd.AddCommand(syncPushCmd, syncPullCmd, syncStatusCmd)
	rootCmd.AddCommand(syncCmd)
	syncCmd.PersistentFlags().BoolVarP(&syncDryRun, "dry-run", "n", false, "Show what would be transferred without doing it")
}
