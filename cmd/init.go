/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tasksheet/tasksheet-cli/internal/model"
	"github.com/tasksheet/tasksheet-cli/internal/store"
	"gopkg.in/yaml.v3"
)

var initForce bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file and data directory",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, err := store.GetConfigPath()
		if err != nil {
			log.Fatalf("❌ Failed to get config path: %v", err)
		}

		configDir := filepath.Dir(configPath)
		configFile := filepath.Join(configDir, "config.yaml")

		if _, err := os.Stat(configFile); err == nil && !initForce {
			log.Fatalf("❌ %s already exists (re-run with --force to overwrite)", configFile)
		}

		if err := os.MkdirAll(configDir, 0755); err != nil {
			log.Fatalf("❌ Failed to create config directory: %v", err)
		}

		config := model.DefaultConfig()
		configData, err := yaml.Marshal(config)
		if err != nil {
			log.Fatalf("❌ Failed to generate config: %v", err)
		}

		if err := os.WriteFile(configFile, configData, 0644); err != nil {
			log.Fatalf("❌ Failed to create config file: %v", err)
		}

		fmt.Println("✅ tasksheet initialized successfully!")
		fmt.Println("📄 Config file created at:", configFile)
		fmt.Println("🗂  Task data will live in:", config.DataDir)
		fmt.Println("👉 Add your first task with: tasksheet task new \"My first task\"")
		fmt.Println("👉 Adjust settings any time with: tasksheet config")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
}
