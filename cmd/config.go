package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by LoadConfig,
// e.g. FULFILLMENT_DB_HOST.
const EnvPrefix = "FULFILLMENT"

type Config struct {
	HTTPPort string

	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisChannel  string

	LogLevel  string
	LogFormat string
	LogOutput string
	SQLLevel  string

	// NotificationChannels lists the enabled notifier channels: "log", "redis".
	NotificationChannels []string

	ReplenishmentSchedule  string
	OverdueRefreshSchedule string

	SystemActorID    string
	SystemActorName  string
	SystemActorEmail string
}

var defaults = map[string]any{
	"http_port":                "8080",
	"db_host":                  "localhost",
	"db_port":                  "5432",
	"db_user":                  "postgres",
	"db_password":              "",
	"db_name":                  "fulfillment",
	"db_sslmode":               "disable",
	"db_max_open_conns":        25,
	"db_max_idle_conns":        5,
	"db_conn_max_lifetime":     "30m",
	"redis_addr":               "localhost:6379",
	"redis_password":           "",
	"redis_db":                 0,
	"redis_channel":            "fulfillment.notifications",
	"log_level":                "info",
	"log_format":               "json",
	"log_output":               "stdout",
	"sql_log_level":            "warn",
	"notification_channels":    "log",
	"replenishment_schedule":   "0 0 6 * * *",
	"overdue_refresh_schedule": "0 0 * * * *",
	"system_actor_id":          "00000000-0000-0000-0000-000000000001",
	"system_actor_name":        "Fulfillment System",
	"system_actor_email":       "system@fulfillment.local",
}

// LoadConfig reads the optional env files into the process environment,
// then builds the configuration from FULFILLMENT_* variables over the
// built-in defaults. A missing env file is not an error.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	cfg := Config{
		HTTPPort:               v.GetString("http_port"),
		DBHost:                 v.GetString("db_host"),
		DBPort:                 v.GetString("db_port"),
		DBUser:                 v.GetString("db_user"),
		DBPassword:             v.GetString("db_password"),
		DBName:                 v.GetString("db_name"),
		DBSslMode:              v.GetString("db_sslmode"),
		DBMaxOpenConns:         v.GetInt("db_max_open_conns"),
		DBMaxIdleConns:         v.GetInt("db_max_idle_conns"),
		DBConnMaxLifetime:      v.GetDuration("db_conn_max_lifetime"),
		RedisAddr:              v.GetString("redis_addr"),
		RedisPassword:          v.GetString("redis_password"),
		RedisDB:                v.GetInt("redis_db"),
		RedisChannel:           v.GetString("redis_channel"),
		LogLevel:               v.GetString("log_level"),
		LogFormat:              v.GetString("log_format"),
		LogOutput:              v.GetString("log_output"),
		SQLLevel:               v.GetString("sql_log_level"),
		NotificationChannels:   splitList(v.GetString("notification_channels")),
		ReplenishmentSchedule:  v.GetString("replenishment_schedule"),
		OverdueRefreshSchedule: v.GetString("overdue_refresh_schedule"),
		SystemActorID:          v.GetString("system_actor_id"),
		SystemActorName:        v.GetString("system_actor_name"),
		SystemActorEmail:       v.GetString("system_actor_email"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var problems []error
	if c.HTTPPort == "" {
		problems = append(problems, errs.NewValueIsRequiredError("http_port"))
	}
	if c.DBHost == "" {
		problems = append(problems, errs.NewValueIsRequiredError("db_host"))
	}
	if c.DBName == "" {
		problems = append(problems, errs.NewValueIsRequiredError("db_name"))
	}
	if _, err := c.SystemActor(); err != nil {
		problems = append(problems, err)
	}
	for _, ch := range c.NotificationChannels {
		if ch != "log" && ch != "redis" {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("notification_channels",
				fmt.Errorf("unknown channel %q", ch)))
		}
	}
	return errors.Join(problems...)
}

// SystemActor parses SystemActorID.
func (c Config) SystemActor() (kernel.UUID, error) {
	return kernel.UUIDFromString(c.SystemActorID)
}

// HasChannel reports whether the named notifier channel is enabled.
func (c Config) HasChannel(name string) bool {
	for _, ch := range c.NotificationChannels {
		if ch == name {
			return true
		}
	}
	return false
}

// DSN is the PostgreSQL connection string for gorm.io/driver/postgres.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
