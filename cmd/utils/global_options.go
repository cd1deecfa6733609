package utils

import (
	"github.com/sirupsen/logrus"

	"github.com/rampworks/ramp-gateway/internal/crashtracker"
)

type GlobalOptionsType struct {
	LogLevel    logrus.Level
	SentryDSN   string
	Environment string
	Version     string
	GitCommit   string
	// EnvFile is only declared so the CLI accepts --env-file, the file itself is loaded before the CLI starts.
	EnvFile string
}

// PopulateCrashTrackerOptions populates the CrashTrackerOptions from the global options.
func (g GlobalOptionsType) PopulateCrashTrackerOptions(crashTrackerOptions *crashtracker.CrashTrackerOptions) {
	if crashTrackerOptions.CrashTrackerType == crashtracker.CrashTrackerTypeSentry {
		crashTrackerOptions.SentryDSN = g.SentryDSN
	}
	crashTrackerOptions.Environment = g.Environment
	crashTrackerOptions.GitCommit = g.GitCommit
}
