package config

import "time"

// APIConfig holds runtime configuration for the API service.
type APIConfig struct {
	Environment        string
	Addr               string
	DatabaseURL        string
	MigrationsDir      string
	JWTSecret          string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	BcryptCost         int
	LogLevel           string
	RateLimitRedisAddr string
	RateLimitRedisPass string
	RateLimitRedisDB   int
}

// LoadAPIConfig constructs an APIConfig from environment variables.
func LoadAPIConfig() APIConfig {
	return APIConfig{
		Environment:        GetString("APP_ENV", "development"),
		Addr:               GetString("API_ADDR", ":8080"),
		DatabaseURL:        GetString("DATABASE_URL", "postgres://hoax:hoax@db:5432/hoax?sslmode=disable"),
		MigrationsDir:      GetString("DB_MIGRATIONS_DIR", "db/migrations"),
		JWTSecret:          GetString("JWT_SECRET", "supersecuresecret"),
		AccessTokenTTL:     time.Duration(GetInt("ACCESS_TOKEN_TTL_MIN", 15)) * time.Minute,
		RefreshTokenTTL:    time.Duration(GetInt("REFRESH_TOKEN_TTL_HOURS", 24)) * time.Hour,
		BcryptCost:         GetInt("BCRYPT_COST", 10),
		LogLevel:           GetString("LOG_LEVEL", "info"),
		RateLimitRedisAddr: GetString("RATE_LIMIT_REDIS_ADDR", ""),
		RateLimitRedisPass: GetString("RATE_LIMIT_REDIS_PASSWORD", ""),
		RateLimitRedisDB:   GetInt("RATE_LIMIT_REDIS_DB", 0),
	}
}
