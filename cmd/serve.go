/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tasksheet/tasksheet-cli/internal/server"
	"github.com/tasksheet/tasksheet-cli/internal/store"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for the web board",
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

		addr := serveAddr
		if addr == "" {
			addr = config.Server.Addr
		}
		if addr == "" {
			addr = ":8787"
		}

		srv := server.NewServer(svc, *config)
		log.Printf("🔄 Serving tasksheet API on %s", addr)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("❌ Server stopped: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (defaults to the configured server.addr)")
}
