package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rvalencia/moodplan/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  moodplan config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	reader := bufio.NewReader(os.Stdin)

	cfg.Schedule.BlockMinutes = promptInt(reader, "Block minutes", cfg.Schedule.BlockMinutes)
	cfg.Schedule.DefaultDurationMinutes = promptInt(reader, "Default duration (minutes)", cfg.Schedule.DefaultDurationMinutes)
	cfg.Schedule.MeetingBufferMinutes = promptInt(reader, "Meeting buffer (minutes)", cfg.Schedule.MeetingBufferMinutes)
	cfg.Schedule.HorizonHours = promptInt(reader, "Planning horizon (hours)", cfg.Schedule.HorizonHours)
	cfg.Chat.DefaultMode = promptValue(reader, "Default mode", cfg.Chat.DefaultMode)
	cfg.Chat.DefaultPriority = promptValue(reader, "Default priority", cfg.Chat.DefaultPriority)
	cfg.LLM.Provider = promptValue(reader, "LLM provider (ollama, lmstudio, none)", cfg.LLM.Provider)
	cfg.LLM.Model = promptValue(reader, "LLM model", cfg.LLM.Model)
	cfg.LLM.BaseURL = promptValue(reader, "LLM base URL (Ollama/LM Studio)", cfg.LLM.BaseURL)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[schedule]")
	fmt.Printf("  block_minutes            = %d\n", cfg.Schedule.BlockMinutes)
	fmt.Printf("  default_duration_minutes = %d\n", cfg.Schedule.DefaultDurationMinutes)
	fmt.Printf("  meeting_buffer_minutes   = %d\n", cfg.Schedule.MeetingBufferMinutes)
	fmt.Printf("  horizon_hours            = %d\n", cfg.Schedule.HorizonHours)
	fmt.Printf("  event_window             = %d\n", cfg.Schedule.EventWindow)
	fmt.Println("\n[chat]")
	fmt.Printf("  auto_add                 = %t\n", cfg.Chat.AutoAdd)
	fmt.Printf("  auto_schedule            = %t\n", cfg.Chat.AutoSchedule)
	fmt.Printf("  default_mode             = %s\n", cfg.Chat.DefaultMode)
	fmt.Printf("  default_priority         = %s\n", cfg.Chat.DefaultPriority)
	fmt.Println("\n[llm]")
	fmt.Printf("  provider                 = %s\n", cfg.LLM.Provider)
	fmt.Printf("  model                    = %s\n", cfg.LLM.Model)
	fmt.Printf("  base_url                 = %s\n", cfg.LLM.BaseURL)
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path                  = %s\n", cfg.Storage.DBPath)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		raw := promptValue(reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Printf("  Not a number: %q\n", raw)
			continue
		}
		return n
	}
}
