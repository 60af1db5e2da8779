package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"CLICKWORK_ENV" env-default:"local"`
	Postgres   Postgres   `yaml:"postgres"`
	Server     Server     `yaml:"server"`
	Auth       Auth       `yaml:"auth"`
	Scheduler  Scheduler  `yaml:"scheduler"`
	Exclusion  Exclusion  `yaml:"exclusion"`
	AutoReview AutoReview `yaml:"auto_review"`
}

type Postgres struct {
	Username        string        `env:"POSTGRES_USER" env-required:"true"`
	Password        string        `env:"POSTGRES_PASSWORD" env-required:"true"`
	Host            string        `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port            string        `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	Database        string        `yaml:"database" env:"POSTGRES_DB" env-required:"true"`
	MaxOpenConns    int           `yaml:"max_open_conns" env-default:"50"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env-default:"10"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env-default:"1m"`
}

type Server struct {
	Host            string        `yaml:"host" env-default:"localhost"`
	Port            string        `yaml:"port" env-default:"8080"`
	Timeout         time.Duration `yaml:"timeout" env-default:"5s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type Auth struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
	// AllowUserHeader accepts X-User-ID without a token. Local development only.
	AllowUserHeader bool `yaml:"allow_user_header" env-default:"false"`
}

type Scheduler struct {
	// Seed for the tie-break among equally ranked tasks; 0 seeds from the clock.
	Seed            int64 `yaml:"seed" env:"SCHEDULER_SEED" env-default:"0"`
	CandidateWindow int   `yaml:"candidate_window" env-default:"100"`
}

type Exclusion struct {
	Path string `yaml:"path" env:"EXCLUSION_PATH"`
}

type AutoReview struct {
	SyncSchedule string `yaml:"sync_schedule" env-default:"*/5 * * * *"`
}

func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		return nil, errors.New("CONFIG_PATH is not set")
	}

	return LoadPath(configPath)
}

func LoadPath(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file does not exist: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}

	return cfg
}

func (c *Config) validate() error {
	if c.Scheduler.CandidateWindow <= 0 {
		return fmt.Errorf("scheduler.candidate_window must be positive, got %d", c.Scheduler.CandidateWindow)
	}

	if c.Auth.JWTSecret == "" && !c.Auth.AllowUserHeader {
		return errors.New("auth: either JWT_SECRET or allow_user_header must be configured")
	}

	return nil
}

// DSN returns a postgres connection URL; extra is appended as the query string.
func (p Postgres) DSN(extra string) string {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		p.Username, p.Password, p.Host, p.Port, p.Database,
	)

	if extra != "" {
		dsn += "?" + extra
	}

	return dsn
}
