package main

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag names for Viper binding
const (
	// Global flags
	FlagVerbose     = "verbose"
	FlagConfig      = "config"
	FlagJournalFile = "journal-file"

	// Run command flags
	FlagHeadless = "headless"
	FlagScreen   = "screen"
	FlagJournal  = "journal"

	// Script command flags
	FlagJSON = "json"

	// Events command flags
	FlagFollow = "follow"
	FlagCount  = "count"
)

// configKeys maps flags that override a config setting to that setting's
// viper key, so flags, env and files all land in the same place.
var configKeys = map[string]string{
	FlagJournalFile: "paths.journal",
	FlagScreen:      "ui.initial_screen",
	FlagJournal:     "journal.enabled",
}

// bindFlags binds every flag in fs to viper.
func bindFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		key := f.Name
		if k, ok := configKeys[f.Name]; ok {
			key = k
		}
		_ = viper.BindPFlag(key, f)
	})
}
