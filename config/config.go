package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server      ServerConfig
	Logger      LoggerConfig
	Postgres    PostgresConfig
	Session     SessionConfig
	POS         POSConfig
	Auth        AuthConfig
	Idempotency IdempotencyConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Elastic     ElasticsearchConfig
}

type ServerConfig struct {
	AppEnv   string
	HTTPPort string
}

func (s ServerConfig) IsProduction() bool {
	return s.AppEnv == "production"
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type SessionConfig struct {
	// Secret signs the session token. Empty outside production falls back
	// to a fixed development key; empty in production fails requests closed.
	Secret     string
	TTLHours   int
	CookieName string
}

type POSConfig struct {
	// Accounts lists the shared POS login emails that require a password.
	Accounts []string
	// Passwords maps a restricted account email to its configured secret.
	Passwords map[string]string
}

type AuthConfig struct {
	// AdminEmails are granted the admin role. AdminDomain grants admin to
	// every address under the domain when set.
	AdminEmails []string
	AdminDomain string
}

type IdempotencyConfig struct {
	Backend    string // "memory" or "redis"
	TTLSeconds int
	MaxEntries int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	Enabled bool
}

type ElasticsearchConfig struct {
	Addresses []string
	Username  string
	Password  string
	Enabled   bool
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:   getEnv("APP_ENV", "development"),
			HTTPPort: getEnv("HTTP_PORT", ":8080"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5432"),
			User:            getEnv("POSTGRES_USER", "pos"),
			Password:        getEnv("POSTGRES_PASSWORD", "pos"),
			DBName:          getEnv("POSTGRES_DB", "pos_admin"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", ""),
			TTLHours:   getEnvInt("SESSION_TTL_HOURS", 8),
			CookieName: getEnv("SESSION_COOKIE_NAME", "pos_session"),
		},
		POS: POSConfig{
			Accounts:  getEnvSlice("POS_ACCOUNTS", nil),
			Passwords: getEnvMap("POS_PASSWORDS"),
		},
		Auth: AuthConfig{
			AdminEmails: getEnvSlice("AUTH_ADMIN_EMAILS", nil),
			AdminDomain: getEnv("AUTH_ADMIN_DOMAIN", ""),
		},
		Idempotency: IdempotencyConfig{
			Backend:    getEnv("IDEMPOTENCY_BACKEND", "memory"),
			TTLSeconds: getEnvInt("IDEMPOTENCY_TTL_SECONDS", 300),
			MaxEntries: getEnvInt("IDEMPOTENCY_MAX_ENTRIES", 500),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_TOPIC_ORDERS", "orders.events"),
			GroupID: getEnv("KAFKA_GROUP_INVENTORY", "inventory"),
			Enabled: getEnvBool("KAFKA_ENABLED", false),
		},
		Elastic: ElasticsearchConfig{
			Addresses: getEnvSlice("ELASTICSEARCH_ADDRESSES", []string{"http://localhost:9200"}),
			Username:  getEnv("ELASTICSEARCH_USERNAME", ""),
			Password:  getEnv("ELASTICSEARCH_PASSWORD", ""),
			Enabled:   getEnvBool("ELASTICSEARCH_ENABLED", false),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return fallback
}

// getEnvMap parses "k1=v1,k2=v2" style values. Entries without '=' are skipped.
func getEnvMap(key string) map[string]string {
	out := map[string]string{}
	value, ok := os.LookupEnv(key)
	if !ok {
		return out
	}
	for _, pair := range strings.Split(value, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found || k == "" {
			continue
		}
		out[k] = v
	}
	return out
}
