package device

import (
	"fmt"

	"github.com/spf13/viper"
)

// ProbeConfig holds configuration for LUKS2 device probing
type ProbeConfig struct {
	MapperDir       string `mapstructure:"mapper_dir"`
	MaxMetadataSize int64  `mapstructure:"max_metadata_size"`
	SecondaryOffset int64  `mapstructure:"secondary_offset"`
}

// LoadProbeConfig loads probe configuration using Viper
func LoadProbeConfig() (*ProbeConfig, error) {
	viper.SetConfigName("cryptstatus-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("$HOME/.cryptstatus")
	viper.AddConfigPath("/etc/cryptstatus")

	// Set defaults
	viper.SetDefault("mapper_dir", "/dev/mapper")
	viper.SetDefault("max_metadata_size", 4*1024*1024)
	viper.SetDefault("secondary_offset", 0x4000)

	// Allow environment variables
	viper.SetEnvPrefix("CRYPTSTATUS")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	var config ProbeConfig
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// DefaultProbeConfig returns the defaults without touching the environment
// or any config file.
func DefaultProbeConfig() *ProbeConfig {
	return &ProbeConfig{
		MapperDir:       "/dev/mapper",
		MaxMetadataSize: 4 * 1024 * 1024,
		SecondaryOffset: 0x4000,
	}
}
