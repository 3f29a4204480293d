package configs

import (
	"fmt"
	"os"
)

type Config struct {
	AppPort       string
	PublicBaseURL string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3UseSSL    bool
	S3Bucket    string

	RedisHost string
	RedisPort string

	KafkaBrokers string
	KafkaTopic   string
	KafkaGroup   string

	JWTSecret string

	SMTPAddr string
	SMTPFrom string

	AutoMigrate bool
}

func LoadConfig() *Config {
	return &Config{
		AppPort:       getEnv("APP_PORT", ":8080"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBUser: getEnv("DB_USER", "diary"),
		DBPass: getEnv("DB_PASS", "diarypass"),
		DBName: getEnv("DB_NAME", "diary_db"),

		S3Endpoint:  getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", "minioadmin"),
		S3SecretKey: getEnv("S3_SECRET_KEY", "minioadmin"),
		S3UseSSL:    getEnv("S3_USE_SSL", "") == "true",
		S3Bucket:    getEnv("S3_BUCKET", "images"),

		RedisHost: getEnv("REDIS_HOST", "localhost"),
		RedisPort: getEnv("REDIS_PORT", "6379"),

		KafkaBrokers: getEnv("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "diary.posts"),
		KafkaGroup:   getEnv("KAFKA_GROUP_ID", "diary-notifier"),

		JWTSecret: getEnv("JWT_SECRET", "replace-this-with-a-strong-secret"),

		// SMTP_ADDR empty means the magic link is only logged (dev mode).
		SMTPAddr: getEnv("SMTP_ADDR", ""),
		SMTPFrom: getEnv("SMTP_FROM", "diary@localhost"),

		AutoMigrate: getEnv("AUTO_MIGRATE", "true") == "true",
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName,
	)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
