package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rollmark",
	Short: "Face-recognition attendance service",
	Long: `Rollmark records student attendance from face embeddings.
Students are enrolled with a single photo; a recognition endpoint matches
faces from camera frames against the enrolled registry and marks attendance
at most once per student per day.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
