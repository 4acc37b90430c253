// Package settings carries tuning knobs that are not part of the report
// configuration itself.
package settings

import "runtime"

// Settings holds cross-cutting processing options.
type Settings struct {
	// MaximumDecimalPlaces controls how coverage quotas are rounded in
	// generated reports.
	MaximumDecimalPlaces int

	// MaxClassWorkers bounds the per-assembly worker pool used while
	// processing classes. Values below 1 fall back to the CPU count.
	MaxClassWorkers int
}

// NewSettings returns settings with their defaults.
func NewSettings() *Settings {
	return &Settings{
		MaximumDecimalPlaces: 1,
		MaxClassWorkers:      runtime.NumCPU(),
	}
}
