package yamlsettings

import (
	"os"

	"github.com/rs/zerolog"
)

// DebugEnvVar enables the debug logging channel when set to "true" or "1".
// Error messages never depend on this channel; it exists purely for tracing
// which files were resolved, loaded, and merged.
const DebugEnvVar = "PSY_DEBUG"

func defaultLogger() zerolog.Logger {
	switch os.Getenv(DebugEnvVar) {
	case "true", "1":
		return zerolog.New(os.Stderr).With().Timestamp().Str("component", "yamlsettings").Logger().Level(zerolog.DebugLevel)
	default:
		return zerolog.Nop()
	}
}
