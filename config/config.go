package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	MongoURI    string
	MongoDBName string
	RedisURL    string

	KafkaBrokers    string
	KafkaOrderTopic string

	FlutterwaveSecretKey   string
	FlutterwaveWebhookHash string
	FlutterwaveRedirectURL string
	Currency               string

	JWTSecret string

	PhoneDigits     int
	CartTTL         time.Duration
	CheckoutTimeout time.Duration
	AllowedOrigins  string
}

func Load() Config {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("APP_ENV", "development"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: getEnv("MONGO_DB", "storefront"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),

		KafkaBrokers:    getEnv("KAFKA_BROKERS", ""),
		KafkaOrderTopic: getEnv("KAFKA_ORDER_TOPIC", "order.events"),

		FlutterwaveSecretKey:   getEnv("FLW_SECRET_KEY", ""),
		FlutterwaveWebhookHash: getEnv("FLW_WEBHOOK_HASH", ""),
		FlutterwaveRedirectURL: getEnv("FLW_REDIRECT_URL", "http://localhost:8080/payments/callback"),
		Currency:               getEnv("CURRENCY", "NGN"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		PhoneDigits:     getEnvInt("PHONE_DIGITS", 11),
		CartTTL:         getEnvDuration("CART_TTL", time.Hour*24*7),
		CheckoutTimeout: getEnvDuration("CHECKOUT_TIMEOUT", 30*time.Minute),
		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "*"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
