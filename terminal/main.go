package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		backendURL string
		poll       time.Duration
		logPath    string
	)
	cmd := &cobra.Command{
		Use:   "gobang",
		Short: "Play Gobang in the terminal against a friend or the AI",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := buildLogger(logPath)
			if err != nil {
				return fmt.Errorf("open log %s: %w", logPath, err)
			}
			defer closeLog()

			logger.Printf("[terminal] started backend=%s poll=%s", backendURL, poll)
			api := newAPIClient(backendURL, 5*time.Second)
			if _, err := tea.NewProgram(newModel(api, logger, poll), tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("run terminal ui: %w", err)
			}
			logger.Printf("[terminal] stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&backendURL, "backend", getenv("BACKEND_URL", "http://localhost:8080"), "backend base URL")
	cmd.Flags().DurationVar(&poll, "poll", 250*time.Millisecond, "status poll interval")
	cmd.Flags().StringVar(&logPath, "log", filepath.Join(os.TempDir(), "gobang-terminal.log"), "log file path, empty to disable")
	return cmd
}

// buildLogger logs to a file only; the terminal itself belongs to the UI.
func buildLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.New(f, "", log.LstdFlags)
	return logger, func() { _ = f.Close() }, nil
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
