package app

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentstation/racepatch/pkg/constants"
	"github.com/agentstation/racepatch/pkg/errors"
)

// EnvPrefix prefixes every environment variable the CLI reads, except the
// LOG_* variables shared with pkg/logging.
const EnvPrefix = "RACEPATCH"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Patch configuration
	DataDir                string
	LoadOrder              string
	OutputDir              string
	PatchName              string
	HeightSource           string
	SkeletonSource         string
	HeightChangeMultiplier float64
	DryRun                 bool
	ExactDiff              bool

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables (RACEPATCH_*)
// 3. .env files
// 4. Config file (racepatch.yaml, .json or .toml in . or $HOME)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile is LoadConfig with an explicit config file. An empty path
// searches the standard locations, where a missing file is not an error.
func LoadConfigFile(path string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := newViper()
	if path == "" {
		path = v.GetString("config")
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "failed to read "+path, err)
		}
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName("racepatch")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "failed to read config file", err)
			}
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		DataDir:                v.GetString("data_dir"),
		LoadOrder:              v.GetString("load_order"),
		OutputDir:              v.GetString("output_dir"),
		PatchName:              v.GetString("patch_name"),
		HeightSource:           v.GetString("height_source"),
		SkeletonSource:         v.GetString("skeleton_source"),
		HeightChangeMultiplier: v.GetFloat64("height_change_multiplier"),
		DryRun:                 v.GetBool("dry_run"),
		ExactDiff:              v.GetBool("exact_diff"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}

	// NO_COLOR is honoured regardless of prefix.
	if os.Getenv("NO_COLOR") != "" {
		config.NoColor = true
	}

	return config, nil
}

// newViper returns a viper instance with defaults and env bindings.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("data_dir", ".")
	v.SetDefault("load_order", "")
	v.SetDefault("output_dir", "")
	v.SetDefault("patch_name", constants.DefaultPatchName)
	v.SetDefault("height_source", constants.DefaultHeightSource)
	v.SetDefault("skeleton_source", constants.DefaultSkeletonSource)
	v.SetDefault("height_change_multiplier", constants.DefaultHeightChangeMultiplier)
	v.SetDefault("dry_run", false)
	v.SetDefault("exact_diff", false)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	// Logging variables are shared with pkg/logging and carry no prefix.
	_ = v.BindEnv("log_level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("log_format", EnvPrefix+"_LOG_FORMAT", "LOG_FORMAT")
	_ = v.BindEnv("log_output", EnvPrefix+"_LOG_OUTPUT", "LOG_OUTPUT")

	return v
}

// UpdateFromFlags updates config values from parsed command flags.
// Only flags the user actually set override file and env values.
func (c *Config) UpdateFromFlags(flags *pflag.FlagSet) {
	setBool := func(name string, dst *bool) {
		if f := flags.Lookup(name); f != nil && f.Changed {
			*dst, _ = flags.GetBool(name)
		}
	}
	setString := func(name string, dst *string) {
		if f := flags.Lookup(name); f != nil && f.Changed {
			*dst, _ = flags.GetString(name)
		}
	}

	setBool("verbose", &c.Verbose)
	setBool("quiet", &c.Quiet)
	setBool("no-color", &c.NoColor)
	setString("format", &c.Format)
	setString("log-level", &c.LogLevel)

	setString("data-dir", &c.DataDir)
	setString("load-order", &c.LoadOrder)
	setString("patch-name", &c.PatchName)
	setString("height-source", &c.HeightSource)
	setString("skeleton-source", &c.SkeletonSource)
	setString("output-dir", &c.OutputDir)
	setBool("dry-run", &c.DryRun)
	setBool("exact-diff", &c.ExactDiff)

	if f := flags.Lookup("multiplier"); f != nil && f.Changed {
		c.HeightChangeMultiplier, _ = flags.GetFloat64("multiplier")
	}
}

// PatchDir returns the directory the patch is written to. It defaults to
// the data directory.
func (c *Config) PatchDir() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return c.DataDir
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
