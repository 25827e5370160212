package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Chat     ChatConfig
	Payment  PaymentConfig
	Email    EmailConfig
	Uploads  UploadsConfig
	Presence PresenceConfig
	Feed     FeedConfig
	CORS     CORSConfig
	Log      LogConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig holds the session-token signing secret and per-kind lifetimes.
type JWTConfig struct {
	Secret      string
	UserExpiry  time.Duration
	AdminExpiry time.Duration
	Issuer      string
}

// ChatConfig configures the hosted chat service used for direct messaging.
// The secret stays server-side; clients only ever receive minted chat tokens.
type ChatConfig struct {
	APIKey    string
	APISecret string
	TokenTTL  time.Duration
}

// PaymentConfig configures the mobile-money gateway integration and the
// confirmation-polling loop that unlocks chat access.
type PaymentConfig struct {
	PublicKey       string
	SecretKey       string
	VerifyURL       string
	Amount          int64
	Currency        string
	PollInterval    time.Duration
	MaxPollAttempts int
}

// EmailConfig configures outbound SMTP for contact and subscription mail.
type EmailConfig struct {
	Host         string
	Port         int
	Username     string
	Password     string
	From         string
	ContactEmail string
	Workers      int
	MaxRetries   int
}

// UploadsConfig controls where profile and post images land on disk.
type UploadsConfig struct {
	BaseDir          string
	MaxFileSizeBytes int64
}

// PresenceConfig defines how recent a heartbeat must be for a user to count
// as online.
type PresenceConfig struct {
	StalenessThreshold time.Duration
}

// FeedConfig tunes the public post feed cache.
type FeedConfig struct {
	CacheTTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:      v.GetString("JWT_SECRET_KEY"),
		UserExpiry:  parseDuration(v.GetString("JWT_USER_EXPIRATION"), 24*time.Hour),
		AdminExpiry: parseDuration(v.GetString("JWT_ADMIN_EXPIRATION"), 24*time.Hour),
		Issuer:      v.GetString("JWT_ISSUER"),
	}

	cfg.Chat = ChatConfig{
		APIKey:    v.GetString("CHAT_API_KEY"),
		APISecret: v.GetString("CHAT_API_SECRET"),
		TokenTTL:  parseDuration(v.GetString("CHAT_TOKEN_TTL"), 24*time.Hour),
	}

	cfg.Payment = PaymentConfig{
		PublicKey:       v.GetString("PAYMENT_PUBLIC_KEY"),
		SecretKey:       v.GetString("PAYMENT_SECRET_KEY"),
		VerifyURL:       v.GetString("PAYMENT_VERIFY_URL"),
		Amount:          v.GetInt64("PAYMENT_AMOUNT"),
		Currency:        v.GetString("PAYMENT_CURRENCY"),
		PollInterval:    parseDuration(v.GetString("PAYMENT_POLL_INTERVAL"), 5*time.Second),
		MaxPollAttempts: v.GetInt("PAYMENT_MAX_POLL_ATTEMPTS"),
	}

	cfg.Email = EmailConfig{
		Host:         v.GetString("EMAIL_HOST"),
		Port:         v.GetInt("EMAIL_PORT"),
		Username:     v.GetString("EMAIL_USER"),
		Password:     v.GetString("EMAIL_PASS"),
		From:         v.GetString("EMAIL_FROM"),
		ContactEmail: v.GetString("CONTACT_EMAIL"),
		Workers:      v.GetInt("EMAIL_WORKERS"),
		MaxRetries:   v.GetInt("EMAIL_MAX_RETRIES"),
	}

	maxUploadSize := v.GetInt64("UPLOADS_MAX_FILE_SIZE")
	if maxUploadSize <= 0 {
		maxUploadSize = 5 * 1024 * 1024
	}
	cfg.Uploads = UploadsConfig{
		BaseDir:          v.GetString("UPLOADS_DIR"),
		MaxFileSizeBytes: maxUploadSize,
	}

	cfg.Presence = PresenceConfig{
		StalenessThreshold: parseDuration(v.GetString("PRESENCE_STALENESS"), 5*time.Minute),
	}

	cfg.Feed = FeedConfig{
		CacheTTL: parseDuration(v.GetString("FEED_CACHE_TTL"), time.Minute),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "unimate")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET_KEY", "dev_secret")
	v.SetDefault("JWT_USER_EXPIRATION", "24h")
	v.SetDefault("JWT_ADMIN_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "unimate-api")

	v.SetDefault("CHAT_API_KEY", "")
	v.SetDefault("CHAT_API_SECRET", "")
	v.SetDefault("CHAT_TOKEN_TTL", "24h")

	v.SetDefault("PAYMENT_PUBLIC_KEY", "")
	v.SetDefault("PAYMENT_SECRET_KEY", "")
	v.SetDefault("PAYMENT_VERIFY_URL", "https://api.flutterwave.com/v3/transactions/verify_by_reference")
	v.SetDefault("PAYMENT_AMOUNT", 500)
	v.SetDefault("PAYMENT_CURRENCY", "UGX")
	v.SetDefault("PAYMENT_POLL_INTERVAL", "5s")
	v.SetDefault("PAYMENT_MAX_POLL_ATTEMPTS", 10)

	v.SetDefault("EMAIL_HOST", "smtp.gmail.com")
	v.SetDefault("EMAIL_PORT", 587)
	v.SetDefault("EMAIL_USER", "")
	v.SetDefault("EMAIL_PASS", "")
	v.SetDefault("EMAIL_FROM", "")
	v.SetDefault("CONTACT_EMAIL", "")
	v.SetDefault("EMAIL_WORKERS", 1)
	v.SetDefault("EMAIL_MAX_RETRIES", 3)

	v.SetDefault("UPLOADS_DIR", "./uploads")
	v.SetDefault("UPLOADS_MAX_FILE_SIZE", 5*1024*1024)

	v.SetDefault("PRESENCE_STALENESS", "5m")
	v.SetDefault("FEED_CACHE_TTL", "1m")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
