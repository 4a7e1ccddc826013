// Package logging wires the two loggers every subsystem shares: a rotated
// JSON file logger for later inspection, and a human-readable console
// logger for whoever is watching the terminal. Subsystems never touch
// either logger directly — they call ForService for a child logger
// carrying their name.
package logging

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"sync"

	"github.com/tphakala/lecturenotes/internal/conf"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	structuredLogger *slog.Logger
	loggerMu         sync.RWMutex
	currentLogLevel  = new(slog.LevelVar)
	initOnce         sync.Once
)

// defaultReplaceAttr formats timestamps to second precision and truncates
// float attributes to 2 decimal places, so sensor readings (CPU/battery
// temperatures from the endurance controller) don't flood log lines with
// float noise.
func defaultReplaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		a.Value = slog.StringValue(a.Value.Time().Format("2006-01-02T15:04:05Z07:00"))
	}
	if a.Value.Kind() == slog.KindFloat64 {
		truncated := math.Trunc(a.Value.Float64()*100) / 100.0
		a.Value = slog.Float64Value(truncated)
	}
	return a
}

// rotationDefaults returns the lumberjack size/backup/age triple implied by
// a configured rotation policy, falling back to conf.LogConfig.MaxSize for
// size-based rotation.
func rotationDefaults(logConf conf.LogConfig) (maxSizeMB, maxBackups, maxAgeDays int) {
	maxSizeMB, maxBackups, maxAgeDays = 10, 3, 28
	if configuredMB := int(logConf.MaxSize / (1024 * 1024)); configuredMB > 0 {
		maxSizeMB = configuredMB
	}
	switch logConf.Rotation {
	case conf.RotationDaily:
		maxAgeDays, maxBackups = 1, 30
	case conf.RotationWeekly:
		maxAgeDays, maxBackups = 7, 4
	case conf.RotationSize:
		// size-based rotation uses maxSizeMB as computed above
	}
	return maxSizeMB, maxBackups, maxAgeDays
}

// Init wires the global loggers from conf.Setting(): a JSON logger rotated
// by lumberjack into Main.Log.Path, and a text logger to stdout. Debug mode
// lowers both to slog.LevelDebug. Safe to call multiple times; only the
// first call takes effect.
func Init() {
	initOnce.Do(func() {
		settings := conf.Setting()

		level := slog.LevelInfo
		if settings.Debug {
			level = slog.LevelDebug
		}
		currentLogLevel.Set(level)

		logConf := settings.Main.Log
		logPath := logConf.Path
		if logPath == "" {
			logPath = "logs/lecturenotes.log"
		}
		if err := os.MkdirAll("logs", 0o755); err != nil {
			fmt.Printf("failed to create logs directory: %v\n", err)
			os.Exit(1)
		}

		maxSizeMB, maxBackups, maxAgeDays := rotationDefaults(logConf)
		rotator := &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}

		structuredHandler := slog.NewJSONHandler(rotator, &slog.HandlerOptions{
			Level:       currentLogLevel,
			ReplaceAttr: defaultReplaceAttr,
		})
		humanReadableHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:       currentLogLevel,
			ReplaceAttr: defaultReplaceAttr,
		})

		loggerMu.Lock()
		structuredLogger = slog.New(structuredHandler)
		loggerMu.Unlock()

		slog.SetDefault(slog.New(humanReadableHandler))
	})
}

// ForService returns a logger carrying a "service" attribute, writing to
// the rotated structured log. Before Init has run it falls back to
// slog.Default().
func ForService(serviceName string) *slog.Logger {
	loggerMu.RLock()
	logger := structuredLogger
	loggerMu.RUnlock()

	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("service", serviceName)
}
