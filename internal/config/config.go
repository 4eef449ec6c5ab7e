package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	Email     EmailConfig
	Detention DetentionConfig
	Billing   BillingConfig
	Import    ImportConfig
	Alerts    AlertConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string   `mapstructure:"provider"`
	Region      string   `mapstructure:"region"`
	FromAddress string   `mapstructure:"from_address"`
	FromName    string   `mapstructure:"from_name"`
	DepotEmail  string   `mapstructure:"depot_email"`
	DeptEmails  []string `mapstructure:"dept_emails"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds object storage settings for archived reports.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// Enabled reports whether a bucket is configured.
func (s *S3Config) Enabled() bool {
	return s.Bucket != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DetentionConfig holds the day thresholds for detention tiers.
type DetentionConfig struct {
	UrgentDays  int `mapstructure:"urgent_days"`
	WarningDays int `mapstructure:"warning_days"`
}

// BillingConfig holds debit note and inventory settings.
type BillingConfig struct {
	VATRate      float64 `mapstructure:"vat_rate"`
	WeightFactor float64 `mapstructure:"weight_factor"`
	Company      string  `mapstructure:"company"`
}

// ImportConfig holds fallback values for manifest import.
type ImportConfig struct {
	DefaultPkgs       int     `mapstructure:"default_pkgs"`
	DefaultWeight     float64 `mapstructure:"default_weight"`
	ContainerSize     string  `mapstructure:"container_size"`
	VehicleSize       string  `mapstructure:"vehicle_size"`
	Depot             string  `mapstructure:"depot"`
	Carrier           string  `mapstructure:"carrier"`
	DetentionFreeDays int     `mapstructure:"detention_free_days"`
}

// AlertConfig holds settings for the detention alert worker. A zero
// PollInterval disables it.
type AlertConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	RemindAfter  time.Duration `mapstructure:"remind_after"`
	Concurrency  int           `mapstructure:"concurrency"`
}

// Load reads configuration from environment variables with the PORTOPS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PORTOPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "portops")
	v.SetDefault("db.password", "portops_secret")
	v.SetDefault("db.name", "portops_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults; empty bucket disables report archiving
	v.SetDefault("s3.region", "ap-southeast-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-southeast-1")
	v.SetDefault("email.from_address", "noreply@portops.local")
	v.SetDefault("email.from_name", "PortOps")
	v.SetDefault("email.depot_email", "depot@portops.local")
	v.SetDefault("email.dept_emails", "transport@portops.local,depot@portops.local,inspector@portops.local")

	v.SetDefault("detention.urgent_days", 2)
	v.SetDefault("detention.warning_days", 5)

	v.SetDefault("billing.vat_rate", 0.08)
	v.SetDefault("billing.weight_factor", 1.8)
	v.SetDefault("billing.company", "")

	// Import fallbacks
	v.SetDefault("import.default_pkgs", 16)
	v.SetDefault("import.default_weight", 28.8)
	v.SetDefault("import.container_size", "40'HC")
	v.SetDefault("import.vehicle_size", "Xe thớt")
	v.SetDefault("import.depot", "TIEN SA")
	v.SetDefault("import.carrier", "N/A")
	v.SetDefault("import.detention_free_days", 7)

	// Detention alerts
	v.SetDefault("alerts.poll_interval", "0s")
	v.SetDefault("alerts.remind_after", "24h")
	v.SetDefault("alerts.concurrency", 4)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "PORTOPS_SERVER_PORT",
		"server.read_timeout":        "PORTOPS_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "PORTOPS_SERVER_WRITE_TIMEOUT",
		"server.environment":         "PORTOPS_SERVER_ENVIRONMENT",
		"db.host":                    "PORTOPS_DB_HOST",
		"db.port":                    "PORTOPS_DB_PORT",
		"db.user":                    "PORTOPS_DB_USER",
		"db.password":                "PORTOPS_DB_PASSWORD",
		"db.name":                    "PORTOPS_DB_NAME",
		"db.sslmode":                 "PORTOPS_DB_SSLMODE",
		"db.max_open":                "PORTOPS_DB_MAX_OPEN",
		"db.max_idle":                "PORTOPS_DB_MAX_IDLE",
		"s3.region":                  "PORTOPS_S3_REGION",
		"s3.bucket":                  "PORTOPS_S3_BUCKET",
		"s3.endpoint":                "PORTOPS_S3_ENDPOINT",
		"s3.access_key":              "PORTOPS_S3_ACCESS_KEY",
		"s3.secret_key":              "PORTOPS_S3_SECRET_KEY",
		"s3.presign_expiry":          "PORTOPS_S3_PRESIGN_EXPIRY",
		"log.level":                  "PORTOPS_LOG_LEVEL",
		"log.format":                 "PORTOPS_LOG_FORMAT",
		"cors.allowed_origins":       "PORTOPS_CORS_ALLOWED_ORIGINS",
		"email.provider":             "PORTOPS_EMAIL_PROVIDER",
		"email.region":               "PORTOPS_EMAIL_REGION",
		"email.from_address":         "PORTOPS_EMAIL_FROM_ADDRESS",
		"email.from_name":            "PORTOPS_EMAIL_FROM_NAME",
		"email.depot_email":          "PORTOPS_EMAIL_DEPOT_EMAIL",
		"email.dept_emails":          "PORTOPS_EMAIL_DEPT_EMAILS",
		"detention.urgent_days":      "PORTOPS_DETENTION_URGENT_DAYS",
		"detention.warning_days":     "PORTOPS_DETENTION_WARNING_DAYS",
		"billing.vat_rate":           "PORTOPS_BILLING_VAT_RATE",
		"billing.weight_factor":      "PORTOPS_BILLING_WEIGHT_FACTOR",
		"billing.company":            "PORTOPS_BILLING_COMPANY",
		"import.default_pkgs":        "PORTOPS_IMPORT_DEFAULT_PKGS",
		"import.default_weight":      "PORTOPS_IMPORT_DEFAULT_WEIGHT",
		"import.container_size":      "PORTOPS_IMPORT_CONTAINER_SIZE",
		"import.vehicle_size":        "PORTOPS_IMPORT_VEHICLE_SIZE",
		"import.depot":               "PORTOPS_IMPORT_DEPOT",
		"import.carrier":             "PORTOPS_IMPORT_CARRIER",
		"import.detention_free_days": "PORTOPS_IMPORT_DETENTION_FREE_DAYS",
		"alerts.poll_interval":       "PORTOPS_ALERTS_POLL_INTERVAL",
		"alerts.remind_after":        "PORTOPS_ALERTS_REMIND_AFTER",
		"alerts.concurrency":         "PORTOPS_ALERTS_CONCURRENCY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Container platforms set PORT. Use it if PORTOPS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PORTOPS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		DepotEmail:  v.GetString("email.depot_email"),
		DeptEmails:  splitList(v.GetString("email.dept_emails")),
	}
	cfg.Detention = DetentionConfig{
		UrgentDays:  v.GetInt("detention.urgent_days"),
		WarningDays: v.GetInt("detention.warning_days"),
	}
	cfg.Billing = BillingConfig{
		VATRate:      v.GetFloat64("billing.vat_rate"),
		WeightFactor: v.GetFloat64("billing.weight_factor"),
		Company:      v.GetString("billing.company"),
	}
	cfg.Import = ImportConfig{
		DefaultPkgs:       v.GetInt("import.default_pkgs"),
		DefaultWeight:     v.GetFloat64("import.default_weight"),
		ContainerSize:     v.GetString("import.container_size"),
		VehicleSize:       v.GetString("import.vehicle_size"),
		Depot:             v.GetString("import.depot"),
		Carrier:           v.GetString("import.carrier"),
		DetentionFreeDays: v.GetInt("import.detention_free_days"),
	}
	cfg.Alerts = AlertConfig{
		PollInterval: v.GetDuration("alerts.poll_interval"),
		RemindAfter:  v.GetDuration("alerts.remind_after"),
		Concurrency:  v.GetInt("alerts.concurrency"),
	}

	if cfg.Billing.VATRate < 0 || cfg.Billing.VATRate >= 1 {
		return nil, fmt.Errorf("billing.vat_rate must be in [0,1), got %v", cfg.Billing.VATRate)
	}
	if cfg.Billing.WeightFactor <= 0 {
		return nil, fmt.Errorf("billing.weight_factor must be positive, got %v", cfg.Billing.WeightFactor)
	}

	if cfg.Alerts.PollInterval < 0 {
		return nil, fmt.Errorf("alerts.poll_interval must not be negative, got %s", cfg.Alerts.PollInterval)
	}

	return cfg, nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
