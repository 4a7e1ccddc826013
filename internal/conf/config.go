// Package conf provides configuration management for lecturenotes.
package conf

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yaml
var configFiles embed.FS

// Settings is the root configuration tree for the engine and its ambient
// stack. Unmarshaled from YAML via viper; environment variables prefixed
// LECTURENOTES_ override any field.
type Settings struct {
	Debug bool // true to enable debug mode

	Main struct {
		Name string // identifies this engine instance in logs
		Log  LogConfig
	}

	Engine struct {
		TickIntervalMillis int // nominal host tick cadence, used to scale wall-clock windows
		ModelsDir          string
		DBPath             string
	}

	Audio struct {
		DeviceName   string // "" or "default" selects the system default capture device
		BufferFrames uint32 // malgo capture buffer size in frames
	}

	Models struct {
		ASRBackend      string // "tflite" or "heuristic" (no-op stub)
		EmbedderBackend string // "tflite" or "heuristic"
		ASRModelFile    string // relative to Engine.ModelsDir
		EmbedderModelFile string
	}

	Store struct {
		FTSEnabled bool
		// Passphrase feeds Argon2id key derivation for note content
		// encryption. Override via LECTURENOTES_STORE_PASSPHRASE in any
		// real deployment; the embedded default exists only so a fresh
		// checkout runs end to end without external secret provisioning.
		Passphrase string
	}

	Endurance struct {
		CPUHighCelsius     float64
		CPULowCelsius      float64
		BatteryHighCelsius float64
		BatteryLowCelsius  float64
	}
}

// LogConfig defines the configuration for a log file.
type LogConfig struct {
	Enabled     bool         // true to enable this log
	Path        string       // path to the log file
	Rotation    RotationType // type of log rotation
	MaxSize     int64        // max size in bytes for RotationSize
	RotationDay time.Weekday // day of the week for RotationWeekly
}

// RotationType defines different types of log rotations.
type RotationType string

const (
	RotationDaily  RotationType = "daily"
	RotationWeekly RotationType = "weekly"
	RotationSize   RotationType = "size"
)

var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment variables into a fresh Settings.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	applyDefaultsIfZero(settings)

	settingsInstance = settings
	return settings, nil
}

// applyDefaultsIfZero fills fields viper left empty with safe fallbacks,
// since the embedded config.yaml may be overridden by a user config that
// omits newer sections.
func applyDefaultsIfZero(s *Settings) {
	if s.Engine.TickIntervalMillis <= 0 {
		s.Engine.TickIntervalMillis = DefaultTickIntervalMillis
	}
	if s.Engine.ModelsDir == "" {
		s.Engine.ModelsDir = "models"
	}
	if s.Engine.DBPath == "" {
		s.Engine.DBPath = "lecturenotes.db"
	}
}

func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("LECTURENOTES")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	setDefaultConfig()

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return createDefaultConfig(configPaths)
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPaths returns OS-appropriate directories searched for config.yaml.
func GetDefaultConfigPaths() ([]string, error) {
	paths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "lecturenotes"))
	}
	return paths, nil
}

func createDefaultConfig(configPaths []string) error {
	configPath := filepath.Join(configPaths[0], "config.yaml")
	defaultConfig, err := fs.ReadFile(configFiles, "config.yaml")
	if err != nil {
		return fmt.Errorf("error reading embedded default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}
	if err := os.WriteFile(configPath, defaultConfig, 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	return viper.ReadInConfig()
}

// GetSettings returns the current settings instance.
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// Setting returns the current settings instance, initializing it if necessary.
func Setting() *Settings {
	once.Do(func() {
		if settingsInstance == nil {
			if _, err := Load(); err != nil {
				panic(fmt.Sprintf("error loading settings: %v", err))
			}
		}
	})
	return GetSettings()
}
