package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// OrgTimezone is the organization's fixed local timezone. Every
	// calendar-day decision (punch bucketing, ledger dates, closing months)
	// uses Location, regardless of storage timezone.
	OrgTimezone string
	Location    *time.Location

	// MinBreakMinutes is the minimum interval between saida_intervalo and
	// retorno_intervalo.
	MinBreakMinutes int

	// DefaultDailyHours is the expected workload for users created without an
	// explicit value.
	DefaultDailyHours float64

	// DailyClosingHour is the local hour (0-23) at which the in-process
	// scheduler runs the daily closing batch.
	DailyClosingHour int

	// SchedulerEnabled turns the in-process daily closing trigger on or off.
	// Deployments driven by an external scheduler hit the HTTP entry point
	// instead.
	SchedulerEnabled bool

	// PunchRateLimit is a ulule/limiter formatted rate (e.g. "30-M") applied
	// to the kiosk punch endpoint.
	PunchRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "8h")
	viper.SetDefault("JWT_ISSUER", "ponto-backend")
	viper.SetDefault("ORG_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("MIN_BREAK_MINUTES", 60)
	viper.SetDefault("DEFAULT_DAILY_HOURS", 8.0)
	viper.SetDefault("DAILY_CLOSING_HOUR", 23)
	viper.SetDefault("SCHEDULER_ENABLED", true)
	viper.SetDefault("PUNCH_RATE_LIMIT", "30-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = 8 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.OrgTimezone = viper.GetString("ORG_TIMEZONE")
	loc, err := time.LoadLocation(cfg.OrgTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid ORG_TIMEZONE %q: %w", cfg.OrgTimezone, err)
	}
	cfg.Location = loc

	cfg.MinBreakMinutes = viper.GetInt("MIN_BREAK_MINUTES")
	if cfg.MinBreakMinutes <= 0 {
		return nil, fmt.Errorf("MIN_BREAK_MINUTES must be positive, got %d", cfg.MinBreakMinutes)
	}

	cfg.DefaultDailyHours = viper.GetFloat64("DEFAULT_DAILY_HOURS")
	if cfg.DefaultDailyHours <= 0 || cfg.DefaultDailyHours > 24 {
		return nil, fmt.Errorf("DEFAULT_DAILY_HOURS must be in (0, 24], got %v", cfg.DefaultDailyHours)
	}

	cfg.DailyClosingHour = viper.GetInt("DAILY_CLOSING_HOUR")
	if cfg.DailyClosingHour < 0 || cfg.DailyClosingHour > 23 {
		return nil, fmt.Errorf("DAILY_CLOSING_HOUR must be in [0, 23], got %d", cfg.DailyClosingHour)
	}

	cfg.SchedulerEnabled = viper.GetBool("SCHEDULER_ENABLED")
	cfg.PunchRateLimit = viper.GetString("PUNCH_RATE_LIMIT")

	return cfg, nil
}
