package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr        string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	BasePath    string        `yaml:"base_path" env:"API_BASE_PATH" env-default:"/api/v1"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Database struct {
	Host            string        `yaml:"host" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"port" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"-" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"name" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"sslmode" env:"PG_SSLMODE" env-default:"disable"`
	MaxOpenConns    int           `yaml:"max_open_conns" env-default:"25"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env-default:"5m"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"username" env:"REDIS_USER" env-default:""`
	Password string `yaml:"-" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Security struct {
	JWTKey   string        `yaml:"-" env:"JWT_SECRET" env-required:"true"`
	TokenTTL time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"24h"`
}

type RateLimit struct {
	MaxAttempts int64         `yaml:"max_attempts" env:"LOGIN_MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"window_size" env:"LOGIN_WINDOW_SIZE" env-default:"15m"`
}

type Migrations struct {
	Path string `yaml:"path" env-default:"./migrations"`
}

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"development"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Database   Database   `yaml:"database"`
	Redis      Redis      `yaml:"redis"`
	Security   Security   `yaml:"security"`
	RateLimit  RateLimit  `yaml:"rate_limit"`
	Migrations Migrations `yaml:"migrations"`
}

// Load reads the config file at path, applying environment overrides.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	return &cfg, nil
}

// MustLoad resolves the config path from CONFIG_PATH or the -config flag.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flag.StringVar(&configPath, "config", "", "path to config file")
		flag.Parse()

		if configPath == "" {
			log.Fatal("Config path is not set")
		}
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %s", err.Error())
	}

	return cfg
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *Redis) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d", r.Username, r.Password, r.Host, r.Port, r.DB)
}
