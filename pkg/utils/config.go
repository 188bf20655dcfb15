package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/oxygene76/vector3/pkg/astronomy/orbital"
)

// Output formats understood by the CLI
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatFixed = "fixed"
)

// EnvPrefix is the prefix for environment overrides, e.g. VECTOR3_OUTPUT_FORMAT
const EnvPrefix = "VECTOR3"

// Config represents the CLI configuration
type Config struct {
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Simulation SimulationConfig `yaml:"simulation" mapstructure:"simulation"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	Format    string `yaml:"format" mapstructure:"format"`
	Precision int    `yaml:"precision" mapstructure:"precision"`
}

// LogConfig controls the logger
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	JSON  bool   `yaml:"json" mapstructure:"json"`
}

// BodyConfig describes one body orbiting the central mass
type BodyConfig struct {
	ID       string                  `yaml:"id" mapstructure:"id"`
	Mass     float64                 `yaml:"mass" mapstructure:"mass"`
	Elements orbital.OrbitalElements `yaml:"elements" mapstructure:"elements"`
}

// SimulationConfig contains n-body integration settings
type SimulationConfig struct {
	CentralMass   float64      `yaml:"central_mass" mapstructure:"central_mass"`
	Timestep      float64      `yaml:"timestep" mapstructure:"timestep"`
	Duration      float64      `yaml:"duration" mapstructure:"duration"`
	Tolerance     float64      `yaml:"tolerance" mapstructure:"tolerance"`
	SnapshotEvery int          `yaml:"snapshot_every" mapstructure:"snapshot_every"`
	SnapshotPath  string       `yaml:"snapshot_path" mapstructure:"snapshot_path"`
	Bodies        []BodyConfig `yaml:"bodies" mapstructure:"bodies"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format:    FormatText,
			Precision: -1,
		},
		Log: LogConfig{
			Level: "info",
		},
		Simulation: SimulationConfig{
			CentralMass:   1,
			Timestep:      1,
			Duration:      365.25,
			SnapshotEvery: 30,
			Bodies: []BodyConfig{
				{
					ID:   "earth",
					Mass: 3.003e-6,
					Elements: orbital.OrbitalElements{
						SemiMajorAxis:          1.00000011,
						Eccentricity:           0.01671022,
						Inclination:            0.00000087,
						LongitudeAscendingNode: 0,
						ArgumentPerihelion:     1.79677,
						MeanAnomaly:            6.24006,
					},
				},
			},
		},
	}
}

// SetDefaults registers every default value with v so that environment
// variables can override keys that are absent from the config file.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.precision", d.Output.Precision)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("simulation.central_mass", d.Simulation.CentralMass)
	v.SetDefault("simulation.timestep", d.Simulation.Timestep)
	v.SetDefault("simulation.duration", d.Simulation.Duration)
	v.SetDefault("simulation.tolerance", d.Simulation.Tolerance)
	v.SetDefault("simulation.snapshot_every", d.Simulation.SnapshotEvery)
	v.SetDefault("simulation.snapshot_path", d.Simulation.SnapshotPath)
}

// LoadConfig reads the configuration into v. An empty cfgFile searches
// $HOME/.vector3, the working directory and ./configs for config.yaml; when
// none exists the defaults are used. An explicit cfgFile must exist.
func LoadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".vector3"))
		}
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := DefaultConfig()
	if v.IsSet("simulation.bodies") {
		config.Simulation.Bodies = nil
	}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// SaveConfig writes config as YAML to path, creating parent directories
func SaveConfig(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetConfigPath returns the default config file location
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".vector3", "config.yaml"), nil
}

// LogLevel parses the configured log level
func (c *Config) LogLevel() (zerolog.Level, error) {
	return zerolog.ParseLevel(c.Log.Level)
}

func validateConfig(config *Config) error {
	switch config.Output.Format {
	case FormatText, FormatJSON, FormatYAML, FormatFixed:
	default:
		return fmt.Errorf("unknown output format %q", config.Output.Format)
	}

	if config.Output.Precision < -1 || config.Output.Precision > 18 {
		return fmt.Errorf("precision must be between -1 and 18, got %d", config.Output.Precision)
	}

	if _, err := config.LogLevel(); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	sim := config.Simulation
	if sim.Timestep <= 0 {
		return fmt.Errorf("simulation timestep must be positive")
	}
	if sim.Duration < 0 {
		return fmt.Errorf("simulation duration cannot be negative")
	}
	if sim.Tolerance < 0 {
		return fmt.Errorf("simulation tolerance cannot be negative")
	}
	if sim.SnapshotEvery < 1 {
		return fmt.Errorf("snapshot interval must be at least 1 step")
	}
	if sim.CentralMass <= 0 {
		return fmt.Errorf("central mass must be positive")
	}
	for _, b := range sim.Bodies {
		if b.ID == "" {
			return fmt.Errorf("every body needs an id")
		}
		if b.Mass < 0 {
			return fmt.Errorf("body %s has negative mass", b.ID)
		}
		if b.Elements.SemiMajorAxis <= 0 {
			return fmt.Errorf("body %s needs a positive semi-major axis", b.ID)
		}
		if b.Elements.Eccentricity < 0 || b.Elements.Eccentricity >= 1 {
			return fmt.Errorf("body %s must be on a bound orbit (0 <= e < 1)", b.ID)
		}
	}

	return nil
}
