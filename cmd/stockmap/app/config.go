package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/droxline/stockmap/pkg/constants"
)

// Config holds the application configuration loaded from config files,
// environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Engine configuration
	SupplierDir  string
	PlatformDir  string
	OutputDir    string
	ReportDir    string
	MappingsFile string
	Workers      int
	Suppliers    []string
	Platforms    []string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of
// precedence: command-line flags (applied later by cobra), environment
// variables, .env files, the config file, then defaults.
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".stockmap")
		}
	}
	// A missing config file is fine; everything has a default.
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		ConfigFile: viper.ConfigFileUsed(),

		SupplierDir:  viper.GetString("supplier_dir"),
		PlatformDir:  viper.GetString("platform_dir"),
		OutputDir:    viper.GetString("output_dir"),
		ReportDir:    viper.GetString("report_dir"),
		MappingsFile: viper.GetString("mappings_file"),
		Workers:      viper.GetInt("workers"),
		Suppliers:    viper.GetStringSlice("suppliers"),
		Platforms:    viper.GetStringSlice("platforms"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	// Defaults
	if config.SupplierDir == "" {
		config.SupplierDir = "fichiers_fournisseurs"
	}
	if config.PlatformDir == "" {
		config.PlatformDir = "fichiers_plateformes"
	}
	if config.OutputDir == "" {
		config.OutputDir = constants.DefaultOutputDir
	}
	if config.MappingsFile == "" {
		config.MappingsFile = constants.DefaultMappingsFile
	}
	if config.Workers == 0 {
		config.Workers = constants.DefaultWorkers
	}

	return config, nil
}

// UpdateFromFlags applies parsed command flags, which take precedence
// over config file and environment values.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files;
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
