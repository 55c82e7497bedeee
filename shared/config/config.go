package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	HttpPort          int           `yaml:"http_port" validate:"required"`
	LogLevel          string        `yaml:"log_level"`
	LogJSON           bool          `yaml:"log_json"`
	AllowedOrigins    []string      `yaml:"allowed_origins"`
	SecureCookies     bool          `yaml:"secure_cookies"`
	PgDriver          string        `yaml:"pg_driver" validate:"omitempty,oneof=postgres pgx"`
	MigrateOnStart    bool          `yaml:"migrate_on_start"`
	RequestsPerSecond float64       `yaml:"requests_per_second" validate:"required,gt=0"`
	SSEHeartbeat      time.Duration `yaml:"sse_heartbeat" validate:"required"` // seconds
	UserCacheTTL      time.Duration `yaml:"user_cache_ttl" validate:"required"` // seconds
	JwtIssuer         string        `yaml:"jwt_issuer"`                         // empty disables the issuer check
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
	SSLMode  string `yaml:"sslmode"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key" validate:"required"`
	Pg     Pg     `yaml:"pg"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) SSEHeartbeat() time.Duration {
	return c.Public.SSEHeartbeat * time.Second
}

func (c *Config) UserCacheTTL() time.Duration {
	return c.Public.UserCacheTTL * time.Second
}

func (c *Config) PgDriver() string {
	if c.Public.PgDriver == "" {
		return "postgres"
	}
	return c.Public.PgDriver
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic(fmt.Sprintf("can't unmarshal config file %s: %v", configPath, err))
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(output); err != nil {
		panic(fmt.Sprintf("invalid config file %s: %v", configPath, err))
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder and panics on
// any missing file or required field.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	return &Config{Public: public, Private: private}
}
