// Package config provides configuration types and defaults for agentshell.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidConfig is returned by Validate when a setting cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all configuration for agentshell.
type Config struct {
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	LogRotation LogRotationConfig `yaml:"log_rotation" mapstructure:"log_rotation"`
	UI          UIConfig          `yaml:"ui" mapstructure:"ui"`
	Journal     JournalConfig     `yaml:"journal" mapstructure:"journal"`
	Overview    OverviewConfig    `yaml:"overview" mapstructure:"overview"`
	Workflow    WorkflowConfig    `yaml:"workflow" mapstructure:"workflow"`
	Tooling     ToolingConfig     `yaml:"tooling" mapstructure:"tooling"`
	Validation  ValidationConfig  `yaml:"validation" mapstructure:"validation"`
	DataVault   DataVaultConfig   `yaml:"datavault" mapstructure:"datavault"`
}

// PathsConfig holds file paths for the journal and debug log.
type PathsConfig struct {
	Journal  string `yaml:"journal" mapstructure:"journal"`
	DebugLog string `yaml:"debug_log" mapstructure:"debug_log"` // Directory-relative file used in TUI mode
}

// LogRotationConfig holds settings for the TUI debug log (lumberjack-based rotation).
type LogRotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool `yaml:"compress" mapstructure:"compress"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Eyebrow       string `yaml:"eyebrow" mapstructure:"eyebrow"`
	Title         string `yaml:"title" mapstructure:"title"`
	Subtitle      string `yaml:"subtitle" mapstructure:"subtitle"`
	InitialScreen string `yaml:"initial_screen" mapstructure:"initial_screen"`
	TimeFormat    string `yaml:"time_format" mapstructure:"time_format"` // Go layout for log and last-run stamps
}

// JournalConfig controls the JSON-lines event journal.
type JournalConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// MetricConfig is one static card on the Overview screen.
type MetricConfig struct {
	Label string `yaml:"label" mapstructure:"label"`
	Value string `yaml:"value" mapstructure:"value"`
	Note  string `yaml:"note" mapstructure:"note"`
}

// OverviewConfig holds the Overview screen copy.
type OverviewConfig struct {
	Summary    string         `yaml:"summary" mapstructure:"summary"`
	Metrics    []MetricConfig `yaml:"metrics" mapstructure:"metrics"`
	Highlights []string       `yaml:"highlights" mapstructure:"highlights"`
}

// StepConfig describes one workflow step.
type StepConfig struct {
	ID    string `yaml:"id" mapstructure:"id"`
	Title string `yaml:"title" mapstructure:"title"`
	Note  string `yaml:"note" mapstructure:"note"`
}

// WorkflowConfig holds the workflow steps and the status order they cycle through.
type WorkflowConfig struct {
	States []string     `yaml:"states" mapstructure:"states"`
	Steps  []StepConfig `yaml:"steps" mapstructure:"steps"`
}

// ToolingConfig holds the mock toolchain narrative.
type ToolingConfig struct {
	Lines         []string `yaml:"lines" mapstructure:"lines"`                     // One batch per run, in display order
	MaxLogEntries int      `yaml:"max_log_entries" mapstructure:"max_log_entries"` // 0 = unbounded
}

// ValidationConfig holds the validation status order.
type ValidationConfig struct {
	States []string `yaml:"states" mapstructure:"states"`
}

// DataVaultConfig holds the DataVault counters' starting values.
type DataVaultConfig struct {
	InitialSnapshots int           `yaml:"initial_snapshots" mapstructure:"initial_snapshots"`
	InitialMemoryGB  float64       `yaml:"initial_memory_gb" mapstructure:"initial_memory_gb"`
	MemoryStepGB     float64       `yaml:"memory_step_gb" mapstructure:"memory_step_gb"`
	InitialSyncAge   time.Duration `yaml:"initial_sync_age" mapstructure:"initial_sync_age"`
	Retention        string        `yaml:"retention" mapstructure:"retention"`
}

// Default returns a Config reproducing the stock shell.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Journal:  ".agentshell/journal.jsonl",
			DebugLog: ".agentshell/agentshell-debug.log",
		},
		LogRotation: LogRotationConfig{
			MaxSizeMB:  20,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
		UI: UIConfig{
			Eyebrow:       "Agentic AI Assistant",
			Title:         "Tool Orchestration",
			Subtitle:      "Autonomous goal decomposition, dynamic tool routing, and validation loops.",
			InitialScreen: "overview",
			TimeFormat:    "15:04:05",
		},
		Journal: JournalConfig{
			Enabled: false,
		},
		Overview: OverviewConfig{
			Summary: "Custom agent that decomposes tasks, orchestrates tools, and validates outputs with dual-LLM verification.",
			Metrics: []MetricConfig{
				{Label: "Goals Planned", Value: "14", Note: "Active workflows"},
				{Label: "Tools Routed", Value: "9", Note: "Regex routing"},
				{Label: "Validation Pass", Value: "96%", Note: "Last 24h"},
				{Label: "Context Saved", Value: "38%", Note: "DataVault offload"},
			},
			Highlights: []string{
				"Kotlin + Jetpack Compose runtime",
				"External DataVault storage layer",
				"Regex-based tool orchestration",
				"Dual-LLM verification loop",
			},
		},
		Workflow: WorkflowConfig{
			States: []string{"Pending", "Running", "Done"},
			Steps: []StepConfig{
				{ID: "parse", Title: "Parse Intent", Note: "Extract constraints + deliverables."},
				{ID: "plan", Title: "Plan Goals", Note: "Break into atomic tasks."},
				{ID: "route", Title: "Select Tools", Note: "Match tasks to tools."},
				{ID: "execute", Title: "Execute + Verify", Note: "Run tools + validate outputs."},
			},
		},
		Tooling: ToolingConfig{
			Lines: []string{
				"Router matched: JS runtime",
				"Executed tool: WebView eval",
				"Stored output to DataVault",
			},
			MaxLogEntries: 0,
		},
		Validation: ValidationConfig{
			States: []string{"Passed", "Failed"},
		},
		DataVault: DataVaultConfig{
			InitialSnapshots: 12,
			InitialMemoryGB:  1.8,
			MemoryStepGB:     0.2,
			InitialSyncAge:   2 * time.Minute,
			Retention:        "30 days",
		},
	}
}

// Validate checks the settings that the shell cannot run without.
func (c *Config) Validate() error {
	if err := validateStates("workflow.states", c.Workflow.States); err != nil {
		return err
	}
	if err := validateStates("validation.states", c.Validation.States); err != nil {
		return err
	}
	if len(c.Workflow.Steps) == 0 {
		return fmt.Errorf("%w: workflow.steps is empty", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Workflow.Steps))
	for i, step := range c.Workflow.Steps {
		if step.ID == "" {
			return fmt.Errorf("%w: workflow.steps[%d] has no id", ErrInvalidConfig, i)
		}
		if seen[step.ID] {
			return fmt.Errorf("%w: duplicate workflow step %q", ErrInvalidConfig, step.ID)
		}
		seen[step.ID] = true
	}
	if len(c.Tooling.Lines) == 0 {
		return fmt.Errorf("%w: tooling.lines is empty", ErrInvalidConfig)
	}
	if c.Tooling.MaxLogEntries < 0 {
		return fmt.Errorf("%w: tooling.max_log_entries must be >= 0", ErrInvalidConfig)
	}
	if c.DataVault.InitialSnapshots < 0 || c.DataVault.InitialMemoryGB < 0 {
		return fmt.Errorf("%w: datavault counters must be >= 0", ErrInvalidConfig)
	}
	if c.DataVault.MemoryStepGB <= 0 {
		return fmt.Errorf("%w: datavault.memory_step_gb must be > 0", ErrInvalidConfig)
	}
	// Memory is counted in tenths of a GB.
	if !wholeTenths(c.DataVault.InitialMemoryGB) {
		return fmt.Errorf("%w: datavault.initial_memory_gb must be a multiple of 0.1", ErrInvalidConfig)
	}
	if !wholeTenths(c.DataVault.MemoryStepGB) {
		return fmt.Errorf("%w: datavault.memory_step_gb must be a multiple of 0.1", ErrInvalidConfig)
	}
	if c.UI.TimeFormat == "" {
		return fmt.Errorf("%w: ui.time_format is empty", ErrInvalidConfig)
	}
	return nil
}

func wholeTenths(gb float64) bool {
	return math.Abs(gb*10-math.Round(gb*10)) <= 1e-9
}

func validateStates(field string, states []string) error {
	if len(states) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrInvalidConfig, field)
	}
	for i, s := range states {
		if s == "" {
			return fmt.Errorf("%w: %s[%d] is empty", ErrInvalidConfig, field, i)
		}
	}
	return nil
}
