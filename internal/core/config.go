package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config contains all of the configuration options available to the edes
// command and its subcommands.
type Config struct {
	// Full path to file to which logs will be written. Blank will write to stderr.
	LogFilePath string `mapstructure:"log_file_path"`
	// Minimum level of a log required to be written. Options: debug, info, warn, error
	LogLevel string `mapstructure:"log_level"`
	// Cipher mode used when none is given on the command line (e-des or des-ecb).
	Mode string `mapstructure:"mode"`
	// Number of goroutines a message's blocks are spread across.
	Workers int `mapstructure:"workers"`

	Speed struct {
		// Number of timed runs per operation.
		Runs int `mapstructure:"runs"`
		// Size in bytes of the random buffer encrypted on every run.
		BufferSize int `mapstructure:"buffer_size"`
	} `mapstructure:"speed"`

	Database struct {
		// Either sqlite or postgres.
		Engine string `mapstructure:"engine"`
		// Path of the database file when using sqlite.
		Filename string `mapstructure:"filename"`
		// Hostname of the Postgres database instance.
		Host string `mapstructure:"host"`
		// Port on host on which the Postgres instance is accepting connections.
		Port int `mapstructure:"port"`
		// Name of the database in Postgres.
		Name string `mapstructure:"name"`
		// Username and password of a user with full RW privileges to the database.
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
		// Set to verify-full if the Postgres instance supports SSL.
		SSLMode string `mapstructure:"sslmode"`
	} `mapstructure:"database"`

	Debugging struct {
		// Start a pprof server while long running commands execute.
		Enabled bool `mapstructure:"enabled"`
		// Port on which a pprof server will be started if debug mode is enabled.
		PprofPort int `mapstructure:"pprof_port"`
		// Dump the derived S-boxes at debug level. Never enable this with real secrets.
		DumpSBoxes bool `mapstructure:"dump_sboxes"`
	} `mapstructure:"debugging"`
}

const envVarPrefix = "EDES"

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_file_path", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("mode", "e-des")
	v.SetDefault("workers", 1)
	v.SetDefault("speed.runs", 100000)
	v.SetDefault("speed.buffer_size", 4*1024)
	v.SetDefault("database.engine", "sqlite")
	v.SetDefault("database.filename", "edes.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "edes")
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("debugging.enabled", false)
	v.SetDefault("debugging.pprof_port", 6060)
	v.SetDefault("debugging.dump_sboxes", false)
}

// LoadConfig reads config.yaml from configPath on top of the defaults. A missing
// config file is not an error; every option has a usable default.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(configPath)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envVarPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// This allows us to set nested yaml config options through environment
	// variables. For example, database.host can be set using: <envVarPrefix>_DATABASE_HOST
	for _, k := range v.AllKeys() {
		envVar := strings.ReplaceAll(strings.ToUpper(k), ".", "_")
		if err := v.BindEnv(k, envVarPrefix+"_"+envVar); err != nil {
			return nil, fmt.Errorf("error binding %s to %s: %w", k, envVarPrefix+"_"+envVar, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config object: %w", err)
	}
	return config, config.Validate()
}

// Validate checks the options that have no usable zero value. Callers that
// override fields after LoadConfig should call it again.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Speed.Runs < 1 {
		return fmt.Errorf("speed.runs must be at least 1, got %d", c.Speed.Runs)
	}
	if c.Speed.BufferSize < 1 {
		return fmt.Errorf("speed.buffer_size must be at least 1, got %d", c.Speed.BufferSize)
	}
	switch c.Database.Engine {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database engine %q", c.Database.Engine)
	}
	return nil
}

const databaseURITemplate = "host=%s port=%d dbname=%s user=%s password=%s sslmode=%s"

// DatabaseURL returns a Postgres connection string generated from the provided config values.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		databaseURITemplate,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.Username,
		c.Database.Password,
		c.Database.SSLMode,
	)
}

// DatabaseFile returns the sqlite file path, resolved against dir when relative.
func (c *Config) DatabaseFile(dir string) string {
	if filepath.IsAbs(c.Database.Filename) {
		return c.Database.Filename
	}
	return filepath.Join(dir, c.Database.Filename)
}
