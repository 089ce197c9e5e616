package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/config"
	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/logging"
	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/shell"
)

var (
	flagBackend string
	flagUser    string
	flagTopK    int
	flagLogFile string
)

var rootCmd = &cobra.Command{
	Use:   "shop",
	Short: "Terminal client for the recommendation backend",
	Long: "An interactive shopping assistant: browse personalized\n" +
		"recommendations, search the catalog in natural language, or run the\n" +
		"cold-start onboarding dialogue if you are new.",
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&flagBackend, "backend", "", "backend base URL (overrides SHOP_BACKEND_URL)")
	rootCmd.Flags().StringVar(&flagUser, "user", "", "user/customer ID (overrides SHOP_USER_ID)")
	rootCmd.Flags().IntVar(&flagTopK, "top-k", 0, "number of recommendations to request (overrides SHOP_TOP_K)")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "debug log file (overrides SHOP_LOG_FILE)")
}

func run(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	client := cfg.Client
	if flagBackend != "" {
		client.BackendURL = flagBackend
	}
	if flagUser != "" {
		client.UserID = flagUser
	}
	if flagTopK != 0 {
		if flagTopK < 1 || flagTopK > 50 {
			return fmt.Errorf("--top-k must be between 1 and 50, got %d", flagTopK)
		}
		client.TopK = flagTopK
	}
	if flagLogFile != "" {
		client.LogFile = flagLogFile
	}

	logger, flush, err := logging.New(client.LogFile)
	if err != nil {
		return err
	}
	defer flush()

	program := tea.NewProgram(shell.New(shell.NewDeps(client, logger)), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
