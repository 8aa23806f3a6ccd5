package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Port           int
	UsersFile      string
	MediaDir       string
	MediaExts      []string
	OTPTTL         time.Duration
	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from the process environment. SMTP credentials are
// mandatory: OTP delivery has no fallback provider, so starting without them
// would only defer the failure to the first send.
func Load() *Config {
	cfg := &Config{
		Port:           getEnvInt("PORT", 8080),
		UsersFile:      getEnv("USERS_FILE", "users.json"),
		MediaDir:       getEnv("MEDIA_DIR", "movies"),
		MediaExts:      splitList(getEnv("MEDIA_EXTENSIONS", ".mp4,.mkv,.webm")),
		OTPTTL:         time.Duration(getEnvInt("OTP_TTL_MINUTES", 5)) * time.Minute,
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),
		SMTPUsername:   os.Getenv("SMTP_USERNAME"),
		SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
		RateLimitRPS:   getEnvFloat64("RATE_LIMIT_RPS", 3),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 5),
	}

	if cfg.SMTPUsername == "" || cfg.SMTPPassword == "" {
		log.Fatal().Msg("SMTP_USERNAME and SMTP_PASSWORD must be set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
		log.Warn().Str("key", key).Str("value", val).Msg("Invalid integer in environment, using default")
	}
	return fallback
}

func getEnvFloat64(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Str("value", val).Msg("Invalid float in environment, using default")
	}
	return fallback
}

func splitList(val string) []string {
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
