package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

type ServerConfig struct {
	Port             int
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	AllowedOrigins   []string
	ValidarUFEstrita bool
}

type DatabaseConfig struct {
	Host       string
	Port       int
	Name       string
	User       string
	Password   string
	SecretID   string
	SSLDisable bool
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

type KafkaConfig struct {
	Enabled      bool
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
}

// Load lê o .env (se existir) e monta a configuração a partir das variáveis de ambiente.
func Load() *Config {
	// .env é opcional; em produção as variáveis vêm do ambiente
	_ = godotenv.Load()

	return &Config{
		Env: getEnvString("APP_ENV", "development"),
		Server: ServerConfig{
			Port:             getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:      time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 15)) * time.Second,
			WriteTimeout:     time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 15)) * time.Second,
			AllowedOrigins:   getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			ValidarUFEstrita: getEnvBool("VALIDAR_UF_ESTRITA", false),
		},
		Database: DatabaseConfig{
			Host:       getEnvString("DB_HOST", "localhost"),
			Port:       getEnvInt("DB_PORT", 5432),
			Name:       getEnvString("DB_NAME", "comissoes"),
			User:       getEnvString("DB_USERNAME", ""),
			Password:   getEnvString("DB_PASSWORD", ""),
			SecretID:   getEnvString("DB_SECRET_ID", ""),
			SSLDisable: getEnvBool("DB_SSL_MODE_DISABLE", false),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnvString("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("REDIS_TTL_SECONDS", 300)) * time.Second,
		},
		Kafka: KafkaConfig{
			Enabled:      getEnvBool("KAFKA_ENABLED", false),
			Brokers:      getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:        getEnvString("KAFKA_TOPIC_VENDAS", "vendas.liquidadas"),
			BatchTimeout: time.Duration(getEnvInt("KAFKA_BATCH_TIMEOUT_MS", 10)) * time.Millisecond,
		},
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
