package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// FacilityTimezone anchors calendar-day arithmetic (subscription expiry,
	// grace windows) to the gym's local day rather than UTC.
	FacilityTimezone string

	// Door relay controller
	DoorSignalURL     string
	DoorSignalTimeout time.Duration

	// CheckinRateLimit is a ulule/limiter formatted rate (e.g. "30-M").
	CheckinRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "8h")
	viper.SetDefault("JWT_ISSUER", "gymtrack-api")
	viper.SetDefault("FACILITY_TIMEZONE", "America/Argentina/Buenos_Aires")
	viper.SetDefault("DOOR_SIGNAL_URL", "")
	viper.SetDefault("DOOR_SIGNAL_TIMEOUT", "3s")
	viper.SetDefault("CHECKIN_RATE_LIMIT", "30-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 8 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.FacilityTimezone = viper.GetString("FACILITY_TIMEZONE")
	if _, err := time.LoadLocation(cfg.FacilityTimezone); err != nil {
		log.Printf("Warning: Invalid FACILITY_TIMEZONE ('%s'). Defaulting to UTC.\n", cfg.FacilityTimezone)
		cfg.FacilityTimezone = "UTC"
	}

	cfg.DoorSignalURL = viper.GetString("DOOR_SIGNAL_URL")
	if cfg.DoorSignalURL == "" {
		log.Println("Warning: DOOR_SIGNAL_URL not set. Door signaling is disabled.")
	}

	doorTimeoutStr := viper.GetString("DOOR_SIGNAL_TIMEOUT")
	doorTimeout, err := time.ParseDuration(doorTimeoutStr)
	if err != nil {
		doorTimeout = 3 * time.Second
		log.Printf("Warning: Invalid value for DOOR_SIGNAL_TIMEOUT ('%s'). Defaulting to %s.\n", doorTimeoutStr, doorTimeout.String())
	}
	cfg.DoorSignalTimeout = doorTimeout

	cfg.CheckinRateLimit = viper.GetString("CHECKIN_RATE_LIMIT")

	return cfg, nil
}
