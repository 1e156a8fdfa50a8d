package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds application configuration loaded from environment variables.
// Defaults target a local dev server.
type Config struct {
	AppName  string `validate:"required"`
	Env      string `validate:"oneof=development staging production test"` // development, staging, production
	LogLevel string `validate:"omitempty,oneof=trace debug info warn error"`

	// Remote API
	APIURL      string        `validate:"required,url"`
	HTTPTimeout time.Duration `validate:"gt=0"`

	// Session persistence
	SessionBackend string `validate:"oneof=memory file redis"`
	SessionFile    string // empty means the per-user config dir

	// Redis
	RedisAddr       string `validate:"required_if=SessionBackend redis"`
	RedisPassword   string
	RedisDB         int `validate:"gte=0"`
	RedisSessionKey string

	// Dev server
	Port           string `validate:"required,numeric"`
	GinMode        string `validate:"oneof=debug release test"`
	HTTPLogEnabled bool
	RateLimit      int    `validate:"gte=0"` // requests per minute per client; 0 disables
	DBPath         string // sqlite file; empty keeps the dev server's data in memory
	// CORS
	CORSAllowedOrigins string // comma-separated
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName:  getenv("APP_NAME", "yatter"),
		Env:      getenv("APP_ENV", "development"),
		LogLevel: getenv("LOG_LEVEL", ""),

		APIURL:      strings.TrimRight(getenv("API_URL", "http://localhost:8080"), "/"),
		HTTPTimeout: getdur("HTTP_TIMEOUT", 15*time.Second),

		SessionBackend: getenv("SESSION_BACKEND", "file"),
		SessionFile:    getenv("SESSION_FILE", ""),

		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getenv("REDIS_PASSWORD", ""),
		RedisDB:         getint("REDIS_DB", 0),
		RedisSessionKey: getenv("REDIS_SESSION_KEY", "yatter:session:username"),

		Port:           getenv("PORT", "8080"),
		GinMode:        getenv("GIN_MODE", "release"),
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
		RateLimit:      getint("RATE_LIMIT_PER_MINUTE", 300),
		DBPath:         getenv("DEV_DB_PATH", ""),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the loaded values and reports every offending field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// APIBase returns the versioned API root, e.g. http://host/v1/.
func (c *Config) APIBase() string {
	return c.APIURL + "/v1/"
}

// CORSOrigins splits CORSAllowedOrigins, dropping blanks.
func (c *Config) CORSOrigins() []string {
	var res []string
	for _, p := range strings.Split(c.CORSAllowedOrigins, ",") {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}
