package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort   string `mapstructure:"APP_PORT"`
	Env       string `mapstructure:"ENV"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	ClientURL string `mapstructure:"CLIENT_URL"`

	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	JWTSecret         string `mapstructure:"JWT_SECRET"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// VNPay gateway.
	VNPTmnCode    string `mapstructure:"VNP_TMNCODE"`
	VNPHashSecret string `mapstructure:"VNP_HASHSECRET"`
	VNPURL        string `mapstructure:"VNP_URL"`
	VNPReturnURL  string `mapstructure:"VNP_RETURN_URL"`

	// MoMo gateway.
	MoMoPartnerCode string `mapstructure:"MOMO_PARTNER_CODE"`
	MoMoAccessKey   string `mapstructure:"MOMO_ACCESS_KEY"`
	MoMoSecretKey   string `mapstructure:"MOMO_SECRET_KEY"`
	MoMoReturnURL   string `mapstructure:"MOMO_RETURN_URL"`
	MoMoIPNURL      string `mapstructure:"MOMO_IPN_URL"`
	MoMoEndpoint    string `mapstructure:"MOMO_API_ENDPOINT"`

	// PayPal gateway.
	PayPalClientID     string  `mapstructure:"PAYPAL_CLIENT_ID"`
	PayPalSecret       string  `mapstructure:"PAYPAL_SECRET"`
	PayPalEndpoint     string  `mapstructure:"PAYPAL_API_ENDPOINT"`
	PayPalMode         string  `mapstructure:"PAYPAL_MODE"`
	PayPalExchangeRate float64 `mapstructure:"PAYPAL_EXCHANGE_RATE"`

	// Map providers for shipment quoting.
	GoongAPIKey  string `mapstructure:"GOONG_API_KEY"`
	GoogleAPIKey string `mapstructure:"GOOGLE_API_KEY"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CLIENT_URL", "http://localhost:3000")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "nekokin")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("PAYPAL_MODE", "sandbox")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

// PayPalAPIBase resolves the PayPal API host. An explicit endpoint wins;
// otherwise the mode picks between the live and sandbox hosts.
func (c Config) PayPalAPIBase() string {
	if c.PayPalEndpoint != "" {
		return c.PayPalEndpoint
	}
	if strings.ToLower(c.PayPalMode) == "live" {
		return "https://api-m.paypal.com"
	}
	return "https://api-m.sandbox.paypal.com"
}

func IsProduction() bool {
	return GetEnv() == "production"
}
