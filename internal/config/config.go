package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Registration write modes
const (
	RegistrationModeCheckThenInsert = "check_then_insert"
	RegistrationModeUpsert          = "upsert"
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Registration RegistrationConfig `yaml:"registration"`
	Log          LogConfig          `yaml:"log"`
	Email        EmailConfig        `yaml:"email"`
	Push         PushConfig         `yaml:"push"`
	Scheduler    SchedulerConfig    `yaml:"scheduler"`
}

// ServerConfig contains HTTP and gRPC listener settings
type ServerConfig struct {
	Host     string `yaml:"host" env:"SERVER_HOST"`
	Port     int    `yaml:"port" env:"SERVER_PORT" validate:"min=1,max=65535"`
	GRPCPort int    `yaml:"grpc_port" env:"SERVER_GRPC_PORT" validate:"omitempty,min=1,max=65535"`
	// CORSOrigins lists origins allowed to call the API from a browser build
	CORSOrigins []string `yaml:"cors_origins" env:"SERVER_CORS_ORIGINS" envSeparator:","`
}

// DatabaseConfig contains PostgreSQL connection settings. Password doubles as
// the database access key.
type DatabaseConfig struct {
	Driver   string `yaml:"driver" env:"DB_DRIVER" validate:"oneof=postgres pgx"`
	Host     string `yaml:"host" env:"DB_HOST" validate:"required"`
	Port     int    `yaml:"port" env:"DB_PORT" validate:"min=1,max=65535"`
	User     string `yaml:"user" env:"DB_USER" validate:"required"`
	Password string `yaml:"password" env:"DB_PASSWORD" validate:"required"`
	Database string `yaml:"database" env:"DB_NAME" validate:"required"`
	SSLMode  string `yaml:"ssl_mode" env:"DB_SSL_MODE"`
}

// RegistrationConfig selects how register-for-shift writes are performed
type RegistrationConfig struct {
	Mode string `yaml:"mode" env:"REGISTRATION_MODE" validate:"oneof=check_then_insert upsert"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`   // "debug", "info", "warn", "error"
	Format string `yaml:"format" env:"LOG_FORMAT"` // "json" or "text"
}

// EmailConfig contains SendGrid settings. An empty API key logs emails instead
// of sending them.
type EmailConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key" env:"SENDGRID_API_KEY"`
	FromEmail      string `yaml:"from_email" env:"EMAIL_FROM" validate:"omitempty,email"`
	FromName       string `yaml:"from_name" env:"EMAIL_FROM_NAME"`
}

// PushConfig contains Firebase Cloud Messaging settings. Push is disabled
// when no credentials file is configured.
type PushConfig struct {
	ProjectID       string `yaml:"project_id" env:"FIREBASE_PROJECT_ID"`
	CredentialsFile string `yaml:"credentials_file" env:"FIREBASE_CREDENTIALS_FILE"`
}

// SchedulerConfig contains cron schedule settings (seconds precision, UTC)
type SchedulerConfig struct {
	SendShiftReminders       string `yaml:"send_shift_reminders" env:"CRON_SHIFT_REMINDERS"`
	AwardAchievements        string `yaml:"award_achievements" env:"CRON_AWARD_ACHIEVEMENTS"`
	ReconcileVolunteerCounts string `yaml:"reconcile_volunteer_counts" env:"CRON_RECONCILE_COUNTS"`
}

var validate = validator.New()

// Load reads configuration from a YAML file, overlays environment variables
// and validates the result. A missing file is tolerated so that deployments
// can be configured from the environment alone.
func Load(configPath string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8081
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Registration.Mode == "" {
		c.Registration.Mode = RegistrationModeCheckThenInsert
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "Volunteer Match"
	}
	if c.Scheduler.SendShiftReminders == "" {
		c.Scheduler.SendShiftReminders = "0 0 17 * * *" // 5 PM UTC, for tomorrow's shifts
	}
	if c.Scheduler.AwardAchievements == "" {
		c.Scheduler.AwardAchievements = "0 0 3 * * *"
	}
	if c.Scheduler.ReconcileVolunteerCounts == "" {
		c.Scheduler.ReconcileVolunteerCounts = "0 */15 * * * *"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Server.GRPCPort != 0 && c.Server.GRPCPort == c.Server.Port {
		return fmt.Errorf("grpc port must differ from http port: %d", c.Server.Port)
	}
	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection URL usable by
// both lib/pq and pgx
func (c *Config) GetDatabaseConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     net.JoinHostPort(c.Database.Host, strconv.Itoa(c.Database.Port)),
		Path:     "/" + c.Database.Database,
		RawQuery: url.Values{"sslmode": []string{c.Database.SSLMode}}.Encode(),
	}
	return u.String()
}

// GetServerAddress returns the HTTP API address
func (c *Config) GetServerAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// GetGRPCAddress returns the gRPC health server address, or "" when disabled
func (c *Config) GetGRPCAddress() string {
	if c.Server.GRPCPort == 0 {
		return ""
	}
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.GRPCPort))
}
