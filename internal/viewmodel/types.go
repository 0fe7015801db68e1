// Package viewmodel provides the read-only snapshot types shared by the shell
// session, the TUI and the CLI's JSON output.
package viewmodel

import "time"

// Metric is one labelled value card.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Note  string `json:"note"`
}

// OverviewView is the Overview screen content.
type OverviewView struct {
	Summary    string   `json:"summary"`
	Metrics    []Metric `json:"metrics"`
	Highlights []string `json:"highlights"`
}

// StepView is one workflow step and its current status.
type StepView struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Note   string `json:"note"`
	Status string `json:"status"`
}

// LogLine is one rendered execution log entry.
type LogLine struct {
	ID   string    `json:"id"`
	Time time.Time `json:"time"`
	Text string    `json:"text"`
}

// ToolingView is the Tooling screen content. Logs are newest first.
type ToolingView struct {
	Runs int       `json:"runs"`
	Logs []LogLine `json:"logs"`
}

// ValidationView is the Validation screen content.
type ValidationView struct {
	Status  string    `json:"status"`
	Runs    int       `json:"runs"`
	LastRun time.Time `json:"last_run,omitempty"` // Zero before the first run
}

// DataVaultView is the DataVault screen content.
type DataVaultView struct {
	Snapshots  int       `json:"snapshots"`
	MemoryGB   float64   `json:"memory_gb"`
	LastSync   time.Time `json:"last_sync"`
	LastSyncAt string    `json:"last_sync_label"` // Humanized relative to the snapshot time
	Retention  string    `json:"retention"`
}

// ShellView is a point-in-time copy of every screen's state.
type ShellView struct {
	Screen     string         `json:"screen"`
	TakenAt    time.Time      `json:"taken_at"`
	Overview   OverviewView   `json:"overview"`
	Workflow   []StepView     `json:"workflow"`
	Tooling    ToolingView    `json:"tooling"`
	Validation ValidationView `json:"validation"`
	DataVault  DataVaultView  `json:"datavault"`
}
