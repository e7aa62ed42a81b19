package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/teamflow/core/cmd/api/commands"
)

// @title TeamFlow API
// @version 1.0
// @description Multi-tenant project and task management system

// @contact.name TeamFlow Support
// @contact.url https://github.com/teamflow/core

// @license.name MIT
// @license.url https://github.com/teamflow/core/blob/main/LICENSE

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "teamflow",
		Short: "TeamFlow API Server",
		Long:  `TeamFlow is a multi-tenant project and task management system with workspaces, teams, ordered task boards and activity tracking.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
