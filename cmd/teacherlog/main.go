// Package main is the entry point for the teacherlog CLI.
//
//	@title			TeacherLog API
//	@version		1.0
//	@description	Record-keeping service for teacher contribution logs with LLM-generated appraisal summaries
//	@host			localhost:8001
//	@BasePath		/api
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teacherlog/teacherlog/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teacherlog",
		Short: "TeacherLog contribution record server",
		Long:  `TeacherLog stores teacher contribution records and generates appraisal-ready summaries of them through an LLM.`,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
