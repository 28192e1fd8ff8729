package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/wire"
	"github.com/trebuchet-org/treb-gov/internal/domain/config"
)

// LevelEnv overrides the log level (debug, info, warn, error).
const LevelEnv = "TREB_GOV_LOG_LEVEL"

var LoggingSet = wire.NewSet(
	NewLogger,
)

// NewLogger creates the process logger on stderr.
//
// Records are JSON when --json is set and text otherwise, and carry the
// selected network.
func NewLogger(cfg *config.RuntimeConfig) *slog.Logger {
	return newLogger(os.Stderr, cfg)
}

func newLogger(w io.Writer, cfg *config.RuntimeConfig) *slog.Logger {
	level := parseLevel(os.Getenv(LevelEnv))
	if cfg.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.Debug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				if !cfg.Debug {
					return slog.Attr{}
				}
			case slog.SourceKey:
				if source, ok := a.Value.Any().(*slog.Source); ok {
					source.File = shortPath(source.File)
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	log := slog.New(handler)
	if cfg.Network != nil && cfg.Network.Name != "" {
		log = log.With(slog.Group("network",
			slog.String("name", cfg.Network.Name),
			slog.Uint64("chain_id", cfg.Network.ChainID),
		))
	}
	return log
}

// parseLevel maps a level name to a slog level. Unknown names keep info.
func parseLevel(val string) slog.Level {
	val = strings.ToLower(strings.TrimSpace(val))
	if val == "warning" {
		val = "warn"
	}
	var level slog.Level
	if val == "" || level.UnmarshalText([]byte(val)) != nil {
		return slog.LevelInfo
	}
	return level
}

// shortPath trims a source path to its location inside the module.
func shortPath(file string) string {
	for _, marker := range []string{"/internal/", "/cli/"} {
		if idx := strings.LastIndex(file, marker); idx != -1 {
			return file[idx+1:]
		}
	}
	if idx := strings.LastIndex(file, "/"); idx != -1 {
		return file[idx+1:]
	}
	return file
}
