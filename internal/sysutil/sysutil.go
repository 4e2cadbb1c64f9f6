// Package sysutil holds small process-level helpers shared by the server
// entrypoint: log level wiring and environment string utilities.
package sysutil

import (
	"strings"

	"github.com/rs/zerolog"
)

// levelByName maps the accepted LOG_LEVEL spellings. "warning" stays as an
// alias for operators used to other stacks.
var levelByName = map[string]zerolog.Level{
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warn":    zerolog.WarnLevel,
	"warning": zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
	"fatal":   zerolog.FatalLevel,
	"panic":   zerolog.PanicLevel,
}

// SetLogLevel sets the global zerolog level by name. Unknown or empty names
// fall back to info so a typo in LOG_LEVEL never mutes the process.
func SetLogLevel(name string) {
	lvl, ok := levelByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// FirstNonEmpty returns the first value that is not blank after trimming,
// preserving its original spacing, or "" when all are blank.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
