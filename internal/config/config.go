package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string   `mapstructure:"PORT"`
	Env          string   `mapstructure:"ENV"`
	DatabaseURL  string   `mapstructure:"DATABASE_URL"`
	DBMaxConns   int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns   int32    `mapstructure:"DB_MIN_CONNS"`
	AuthSecret   string   `mapstructure:"AUTH_SECRET"`
	AuthIssuer   string   `mapstructure:"AUTH_ISSUER"`
	AuthAudience string   `mapstructure:"AUTH_AUDIENCE"`
	CORSOrigins  []string `mapstructure:"CORS_ORIGINS"`

	RateLimitRPS    float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst  int     `mapstructure:"RATE_LIMIT_BURST"`
	RequestTimeoutS int     `mapstructure:"REQUEST_TIMEOUT_SECONDS"`

	// Generation defaults, overridable per run via CLI flags.
	GenSeed     int64 `mapstructure:"GEN_SEED"`
	GenHCPCount int   `mapstructure:"GEN_HCP_COUNT"`
	GenMonths   int   `mapstructure:"GEN_MONTHS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 30)
	v.SetDefault("GEN_SEED", 42)
	v.SetDefault("GEN_HCP_COUNT", 2000)
	v.SetDefault("GEN_MONTHS", 12)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("AUTH_SECRET")
	v.BindEnv("AUTH_ISSUER")
	v.BindEnv("AUTH_AUDIENCE")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")
	v.BindEnv("REQUEST_TIMEOUT_SECONDS")
	v.BindEnv("GEN_SEED")
	v.BindEnv("GEN_HCP_COUNT")
	v.BindEnv("GEN_MONTHS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() {
		log.Println("WARNING: server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: DevAuthMiddleware is active — all requests are trusted.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Outside development
// mode AUTH_SECRET must be set so real JWT authentication is enforced.
func (c *Config) Validate() error {
	if !c.IsDev() && c.AuthSecret == "" {
		return fmt.Errorf("AUTH_SECRET is required when ENV is not development")
	}
	if c.GenHCPCount <= 0 {
		return fmt.Errorf("GEN_HCP_COUNT must be positive, got %d", c.GenHCPCount)
	}
	if c.GenMonths <= 0 {
		return fmt.Errorf("GEN_MONTHS must be positive, got %d", c.GenMonths)
	}
	return nil
}
