package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment.
type Config struct {
	HTTPAddr  string
	DBURL     string
	RedisURL  string
	AppEnv    string
	LogLevel  string
	LogFormat string

	SessionSecret string

	TalkJSAppID     string
	TalkJSSecretKey string
	TalkJSBaseURL   string
	AvatarBaseURL   string

	ConversationCacheTTL time.Duration

	AsynqConcurrency int
	AsynqQueues      map[string]int
}

// Production reports whether cookies should be marked secure.
func (c Config) Production() bool {
	return c.AppEnv == "production"
}

// LoadDotenv loads .env files into the environment. With no files it loads
// ./.env and tolerates its absence; files named explicitly must exist.
func LoadDotenv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		if len(files) == 0 && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load .env: %w", err)
	}
	return nil
}

// FromEnv builds a Config from the current environment.
// DB_URL, REDIS_URL and SESSION_SECRET are required.
func FromEnv() (Config, error) {
	cfg := Config{
		HTTPAddr:             envOr("HTTP_ADDR", ":8080"),
		DBURL:                env("DB_URL"),
		RedisURL:             env("REDIS_URL"),
		AppEnv:               envOr("APP_ENV", "development"),
		LogLevel:             envOr("LOG_LEVEL", "info"),
		LogFormat:            envOr("LOG_FORMAT", "text"),
		SessionSecret:        env("SESSION_SECRET"),
		TalkJSAppID:          env("TALKJS_APP_ID"),
		TalkJSSecretKey:      env("TALKJS_SECRET_KEY"),
		TalkJSBaseURL:        envOr("TALKJS_BASE_URL", "https://api.talkjs.com"),
		AvatarBaseURL:        envOr("AVATAR_BASE_URL", "https://randomuser.me"),
		ConversationCacheTTL: 15 * time.Second,
		AsynqConcurrency:     10,
		AsynqQueues:          map[string]int{"default": 1, "talkjs": 1},
	}

	if v := env("CONVERSATION_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: CONVERSATION_CACHE_TTL: %w", err)
		}
		cfg.ConversationCacheTTL = d
	}
	if v := env("ASYNQ_CONCURRENCY"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			cfg.AsynqConcurrency = i
		}
	}
	if v := env("ASYNQ_QUEUES"); v != "" {
		if parsed := ParseQueueWeights(v); len(parsed) > 0 {
			cfg.AsynqQueues = parsed
		}
	}

	var missing []string
	for _, req := range []struct{ name, value string }{
		{"DB_URL", cfg.DBURL},
		{"REDIS_URL", cfg.RedisURL},
		{"SESSION_SECRET", cfg.SessionSecret},
	} {
		if req.value == "" {
			missing = append(missing, req.name)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("config: missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

// ParseQueueWeights parses strings like "critical=6,default=3,low=1" into a map.
func ParseQueueWeights(s string) map[string]int {
	res := make(map[string]int)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		name := strings.TrimSpace(kv[0])
		if name == "" {
			continue
		}
		w := 1
		if len(kv) == 2 {
			if i, err := strconv.Atoi(strings.TrimSpace(kv[1])); err == nil && i > 0 {
				w = i
			}
		}
		res[name] = w
	}
	return res
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envOr(key, fallback string) string {
	if v := env(key); v != "" {
		return v
	}
	return fallback
}
