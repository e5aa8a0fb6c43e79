package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr    string
	PostgresDSN string
	LogLevel    string

	JWTSecret         string
	JWTIssuer         string
	JWTLeewaySecs     int
	RevocationTTLSecs int

	IdentityURL         string
	IdentityTimeoutSecs int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:            addr,
		PostgresDSN:         os.Getenv("POSTGRES_DSN"),
		LogLevel:            envDefault("LOG_LEVEL", "info"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		JWTIssuer:           os.Getenv("JWT_ISSUER"),
		JWTLeewaySecs:       envIntDefault("JWT_LEEWAY_SECONDS", 30),
		RevocationTTLSecs:   envIntDefault("REVOCATION_TTL_SECONDS", 86400),
		IdentityURL:         os.Getenv("IDENTITY_URL"),
		IdentityTimeoutSecs: envIntDefault("IDENTITY_TIMEOUT_SECONDS", 5),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             envIntDefault("REDIS_DB", 0),
	}
}

func envDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func (c Config) JWTLeeway() time.Duration {
	return time.Duration(c.JWTLeewaySecs) * time.Second
}

func (c Config) RevocationTTL() time.Duration {
	return time.Duration(c.RevocationTTLSecs) * time.Second
}

func (c Config) IdentityTimeout() time.Duration {
	return time.Duration(c.IdentityTimeoutSecs) * time.Second
}
