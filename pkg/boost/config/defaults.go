// Package config provides configuration management for the gptboost optimizer.
package config

// Default configuration values for gptboost.
const (
	// DefaultMonitorDuration is the default resource monitoring duration
	// in seconds after an optimization run.
	DefaultMonitorDuration = 30

	// DefaultOutput is the default run report format.
	DefaultOutput = "pretty"

	// DefaultRetentionDays is the default number of days to retain run
	// history entries.
	DefaultRetentionDays = 30

	// DefaultPowerSchemeLabel is the label of the power scheme activated
	// during an optimization run.
	DefaultPowerSchemeLabel = "High Performance"

	// DefaultTerminateWait is how long, in seconds, to wait for a process
	// to exit after a graceful terminate before force killing it.
	DefaultTerminateWait = 3
)

// DefaultProcesses contains the background processes closed by default
// during an optimization run.
var DefaultProcesses = []string{
	"OneDrive.exe",
	"SearchApp.exe",
	"Cortana.exe",
	"Teams.exe",
	"SkypeApp.exe",
	"YourPhone.exe",
	"GameBarPresenceWriter.exe",
	"Xbox.exe",
}
