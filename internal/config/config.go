package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/adotefacil/service-adoption/pkg/database"
)

// JWTConfig holds token signing configuration.
type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// KafkaConfig holds broker and consumer group configuration.
type KafkaConfig struct {
	Brokers       []string
	ConsumerGroup string
}

// BreedAPIConfig holds settings for one external breed catalog.
type BreedAPIConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// ServiceConfig holds all configuration for the adoption service.
type ServiceConfig struct {
	Port          string
	AppEnv        string
	MigrationsDir string
	DBConfig      database.PostgresConfig
	JWTConfig     JWTConfig
	KafkaConfig   KafkaConfig
	DogAPI        BreedAPIConfig
	CatAPI        BreedAPIConfig
}

// Load reads configuration from ADOPTION_-prefixed environment variables.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("ADOPTION")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("SERVICE_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("MIGRATIONS_DIR", "migrations")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "adoption")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("JWT_SECRET", "dev-secret-change-me")
	v.SetDefault("JWT_ACCESS_TTL", "15m")
	v.SetDefault("JWT_REFRESH_TTL", "168h")

	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_CONSUMER_GROUP", "service-adoption")

	v.SetDefault("DOG_API_URL", "https://api.thedogapi.com/v1/breeds")
	v.SetDefault("DOG_API_KEY", "")
	v.SetDefault("CAT_API_URL", "https://api.thecatapi.com/v1/breeds")
	v.SetDefault("CAT_API_KEY", "")
	v.SetDefault("BREED_API_TIMEOUT", "10s")

	breedTimeout := v.GetDuration("BREED_API_TIMEOUT")

	port := v.GetString("SERVICE_PORT")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	return &ServiceConfig{
		Port:          port,
		AppEnv:        v.GetString("APP_ENV"),
		MigrationsDir: v.GetString("MIGRATIONS_DIR"),
		DBConfig: database.PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWTConfig: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			AccessTTL:  v.GetDuration("JWT_ACCESS_TTL"),
			RefreshTTL: v.GetDuration("JWT_REFRESH_TTL"),
		},
		KafkaConfig: KafkaConfig{
			Brokers:       strings.Split(v.GetString("KAFKA_BROKERS"), ","),
			ConsumerGroup: v.GetString("KAFKA_CONSUMER_GROUP"),
		},
		DogAPI: BreedAPIConfig{
			BaseURL: v.GetString("DOG_API_URL"),
			APIKey:  v.GetString("DOG_API_KEY"),
			Timeout: breedTimeout,
		},
		CatAPI: BreedAPIConfig{
			BaseURL: v.GetString("CAT_API_URL"),
			APIKey:  v.GetString("CAT_API_KEY"),
			Timeout: breedTimeout,
		},
	}, nil
}
