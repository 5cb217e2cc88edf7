package util

import (
	"github.com/rs/zerolog"
)

// LogLevelFromString parses a zerolog level, falling back to debug on malformed input.
func LogLevelFromString(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.DebugLevel
	}

	return level
}
