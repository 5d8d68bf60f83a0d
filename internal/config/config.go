// Package config loads glint's runtime configuration from defaults,
// environment variables and an optional .env file, grounded on the
// godotenv+viper combination used for Brokle's own config loader.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every tunable glint needs at startup.
type Config struct {
	// QueryAPIPort is the REST/JSON query API port (spec §4.5).
	QueryAPIPort int `mapstructure:"query_api_port"`
	// OTLPHTTPPort is the OTLP/HTTP binary receiver port (spec §4.5 ingestion).
	OTLPHTTPPort int `mapstructure:"otlp_http_port"`
	// OTLPGRPCPort is the OTLP gRPC receiver port (spec §4.4).
	OTLPGRPCPort int `mapstructure:"otlp_grpc_port"`
	// DBPath overrides project-database resolution when non-empty.
	DBPath string `mapstructure:"db_path"`
	// LogLevel is one of debug|info|warn|error.
	LogLevel string `mapstructure:"log_level"`
	// LogFormat is json or text.
	LogFormat string `mapstructure:"log_format"`
}

// Load builds a Config from defaults, an optional .env file, and
// GLINT_-prefixed environment variables, in that precedence order.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.SetDefault("query_api_port", 7070)
	v.SetDefault("otlp_http_port", 4318)
	v.SetDefault("otlp_grpc_port", 4317)
	v.SetDefault("db_path", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetEnvPrefix("glint")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("query_api_port", "GLINT_QUERY_API_PORT")
	_ = v.BindEnv("otlp_http_port", "GLINT_OTLP_HTTP_PORT")
	_ = v.BindEnv("otlp_grpc_port", "GLINT_OTLP_GRPC_PORT")
	_ = v.BindEnv("db_path", "GLINT_DB_PATH")
	_ = v.BindEnv("log_level", "GLINT_LOG_LEVEL")
	_ = v.BindEnv("log_format", "GLINT_LOG_FORMAT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
