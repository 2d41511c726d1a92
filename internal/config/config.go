package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	S3        S3Config        `mapstructure:"s3"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Tracking  TrackingConfig  `mapstructure:"tracking"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// AssistantConfig points at the hosted voice-AI service the conversation
// bridge relays to. SuppressPatterns lists substrings of upstream error
// events that are known noise; matching events are dropped inside the
// bridge instead of being forwarded to the client.
type AssistantConfig struct {
	URL              string   `mapstructure:"url"`
	APIKey           string   `mapstructure:"api_key"`
	AssistantID      string   `mapstructure:"assistant_id"`
	SuppressPatterns []string `mapstructure:"suppress_patterns"`
}

// TrackingConfig holds defaults for the workout-tracking engine.
type TrackingConfig struct {
	RestDuration time.Duration `mapstructure:"rest_duration"`
	DefaultSets  int           `mapstructure:"default_sets"`
	DefaultReps  int           `mapstructure:"default_reps"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	// Nested keys map to env vars, e.g. assistant.api_key -> ASSISTANT_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "fitness_coach")
	viper.SetDefault("s3.use_ssl", true)
	viper.SetDefault("jwt.expiration", "24h")
	viper.SetDefault("assistant.suppress_patterns", []string{"Meeting has ended"})
	viper.SetDefault("tracking.rest_duration", "90s")
	viper.SetDefault("tracking.default_sets", 3)
	viper.SetDefault("tracking.default_reps", 10)

	err = viper.ReadInConfig()
	// A missing config file is fine; env vars and defaults still apply.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
