package config

import "time"

// HiveConfig represents the hive configuration file structure
type HiveConfig struct {
	// Defaults contains default settings for commands
	Defaults DefaultsConfig `yaml:"defaults,omitempty" json:"defaults,omitempty"`

	// Bench contains benchmark-specific settings
	Bench BenchConfig `yaml:"bench,omitempty" json:"bench,omitempty"`

	// Tick contains cyclic-executor settings
	Tick TickConfig `yaml:"tick,omitempty" json:"tick,omitempty"`
}

// DefaultsConfig contains default configuration values
type DefaultsConfig struct {
	// Workers is the pool size; zero or negative values are offsets
	// from the number of logical CPUs
	Workers int `yaml:"workers,omitempty" json:"workers,omitempty"`

	// OutputFormat is the default output format (table, json, yaml)
	OutputFormat string `yaml:"outputFormat,omitempty" json:"outputFormat,omitempty"`

	// NoColor disables colored output
	NoColor bool `yaml:"noColor,omitempty" json:"noColor,omitempty"`
}

// BenchConfig contains benchmark settings
type BenchConfig struct {
	// Tasks is the number of tasks per benchmark run
	Tasks int `yaml:"tasks,omitempty" json:"tasks,omitempty"`

	// TaskWork is the simulated busy time per task
	TaskWork time.Duration `yaml:"taskWork,omitempty" json:"taskWork,omitempty"`
}

// TickConfig contains cyclic-executor settings
type TickConfig struct {
	// Period is the minimum interval between invocations
	Period time.Duration `yaml:"period,omitempty" json:"period,omitempty"`

	// Window is how long the ticker runs
	Window time.Duration `yaml:"window,omitempty" json:"window,omitempty"`
}
