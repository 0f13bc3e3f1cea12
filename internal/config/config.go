package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Host         string
	Port         string
	DBPath       string
	CSRFKey      []byte
	SessionKey   []byte
	JWTSecret    []byte
	JWTTTL       time.Duration
	CookieDomain string
	CookieSecure bool
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		Host:         getEnv("HOST", "localhost"),
		Port:         getEnv("PORT", "5500"),
		DBPath:       getEnv("DB_PATH", "./cse340.db"),
		CookieDomain: getEnv("COOKIE_DOMAIN", ""),
		CookieSecure: getEnv("COOKIE_SECURE", "false") == "true",
	}

	cfg.CSRFKey = loadKey("CSRF_KEY")
	cfg.SessionKey = loadKey("SESSION_KEY")
	cfg.JWTSecret = loadKey("ACCESS_TOKEN_SECRET")

	ttlStr := getEnv("ACCESS_TOKEN_TTL", "1h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		slog.Warn("Invalid ACCESS_TOKEN_TTL, using 1h", "value", ttlStr)
		ttl = time.Hour
	}
	cfg.JWTTTL = ttl

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "5500"
	}

	return cfg, nil
}

// loadKey decodes a base64 signing key from the environment, generating a
// random development key when the variable is missing or too short.
func loadKey(name string) []byte {
	raw := os.Getenv(name)
	if raw == "" {
		slog.Warn("Signing key not set; generating a random key for development. Tokens and sessions will be invalid on restart.", "key", name)
		return randomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn("Signing key is invalid or too short (min 32 bytes); generating a random key for development.", "key", name)
		return randomBytes(32)
	}
	return decoded
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		slog.Error("Failed to read random bytes", "error", err)
		fallback := "fallback-insecure-key-" + strconv.FormatInt(time.Now().UnixNano(), 10)
		padded := make([]byte, n)
		copy(padded, fallback)
		return padded
	}
	return b
}
