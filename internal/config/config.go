package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Pricing   PricingConfig
	Notify    NotifyConfig
	Printer   PrinterConfig
	Store     StoreConfig
	Jobs      JobsConfig

	// EnvFileError is set when .env could not be read; environment variables
	// and defaults still apply.
	EnvFileError error
}

type AppConfig struct {
	Name          string
	Env           string
	Port          string
	Debug         bool
	Timezone      string
	SnowflakeNode int64
}

type DatabaseConfig struct {
	Driver   string // postgres or sqlite
	Path     string // sqlite file
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

// JWTConfig holds the shared secret used by the hosted auth provider to sign
// access tokens.
type JWTConfig struct {
	Secret      string
	Issuer      string
	ExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type LogConfig struct {
	Mode     string
	Level    string
	Filename string
}

// PricingConfig selects how order totals are derived from the subtotal.
type PricingConfig struct {
	TaxPolicy string
	TaxRate   string
}

type NotifyConfig struct {
	Driver        string // resend, smtp or none
	ResendAPIKey  string
	ResendBaseURL string
	From          string
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	Timeout       time.Duration
}

type PrinterConfig struct {
	Type    string // usb, network or none
	USBPath string
	Address string
	Width   int
}

type StoreConfig struct {
	Name              string
	Address           string
	Phone             string
	Currency          string
	LowStockThreshold int
}

type JobsConfig struct {
	Enabled            bool
	IdempotencyPurge   string
	LoanAlertsSchedule string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	envErr := viper.ReadInConfig()

	viper.SetDefault("APP_NAME", "laundromart-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_TIMEZONE", "Africa/Freetown")
	viper.SetDefault("SNOWFLAKE_NODE", 1)
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_PATH", "laundromart.db")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "laundromart")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_RPS", 10)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("LOG_MODE", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("PRICING_TAX_POLICY", "none")
	viper.SetDefault("PRICING_TAX_RATE", "0.10")
	viper.SetDefault("NOTIFY_DRIVER", "none")
	viper.SetDefault("RESEND_BASE_URL", "https://api.resend.com")
	viper.SetDefault("NOTIFY_FROM", "Laundromart <onboarding@resend.dev>")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("NOTIFY_TIMEOUT_SECONDS", 10)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("STORE_NAME", "Laundromart")
	viper.SetDefault("CURRENCY_CODE", "SLE")
	viper.SetDefault("LOW_STOCK_THRESHOLD", 10)
	viper.SetDefault("JOBS_ENABLED", true)
	viper.SetDefault("JOBS_IDEMPOTENCY_PURGE", "@daily")
	viper.SetDefault("JOBS_LOAN_ALERTS", "0 7 * * *")

	return &Config{
		App: AppConfig{
			Name:          viper.GetString("APP_NAME"),
			Env:           viper.GetString("APP_ENV"),
			Port:          viper.GetString("APP_PORT"),
			Debug:         viper.GetBool("APP_DEBUG"),
			Timezone:      viper.GetString("APP_TIMEZONE"),
			SnowflakeNode: viper.GetInt64("SNOWFLAKE_NODE"),
		},
		Database: DatabaseConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Path:     viper.GetString("DB_PATH"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			Issuer:      viper.GetString("JWT_ISSUER"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
		Log: LogConfig{
			Mode:     viper.GetString("LOG_MODE"),
			Level:    viper.GetString("LOG_LEVEL"),
			Filename: viper.GetString("LOG_FILE"),
		},
		Pricing: PricingConfig{
			TaxPolicy: viper.GetString("PRICING_TAX_POLICY"),
			TaxRate:   viper.GetString("PRICING_TAX_RATE"),
		},
		Notify: NotifyConfig{
			Driver:        viper.GetString("NOTIFY_DRIVER"),
			ResendAPIKey:  viper.GetString("RESEND_API_KEY"),
			ResendBaseURL: viper.GetString("RESEND_BASE_URL"),
			From:          viper.GetString("NOTIFY_FROM"),
			SMTPHost:      viper.GetString("SMTP_HOST"),
			SMTPPort:      viper.GetInt("SMTP_PORT"),
			SMTPUsername:  viper.GetString("SMTP_USERNAME"),
			SMTPPassword:  viper.GetString("SMTP_PASSWORD"),
			Timeout:       time.Duration(viper.GetInt("NOTIFY_TIMEOUT_SECONDS")) * time.Second,
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
		Store: StoreConfig{
			Name:              viper.GetString("STORE_NAME"),
			Address:           viper.GetString("STORE_ADDRESS"),
			Phone:             viper.GetString("STORE_PHONE"),
			Currency:          viper.GetString("CURRENCY_CODE"),
			LowStockThreshold: viper.GetInt("LOW_STOCK_THRESHOLD"),
		},
		Jobs: JobsConfig{
			Enabled:            viper.GetBool("JOBS_ENABLED"),
			IdempotencyPurge:   viper.GetString("JOBS_IDEMPOTENCY_PURGE"),
			LoanAlertsSchedule: viper.GetString("JOBS_LOAN_ALERTS"),
		},
		EnvFileError: envErr,
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// Location resolves the business timezone used for report windows and
// overdue checks, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
