package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config agrupa toda la configuración externa de la aplicación.
// Todos los valores vienen del entorno (.env en desarrollo).
type Config struct {
	Port    string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	JWTExpiry   time.Duration

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string

	PushURL string

	AllowedOrigins []string
}

// Load lee la configuración desde variables de entorno con defaults
// razonables para desarrollo. JWT_SECRET es obligatorio.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	mailPort, err := strconv.Atoi(getEnv("MAIL_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAIL_PORT: %w", err)
	}

	expiry, err := parseDuration(getEnv("JWT_EXPIRES_IN", "1d"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
	}

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		DBUser: getEnv("DB_USER", "root"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: getEnv("DB_HOST", "127.0.0.1"),
		DBPort: getEnv("DB_PORT", "3306"),
		DBName: getEnv("DB_NAME", "nearbiz"),

		JWTSecret:   secret,
		JWTIssuer:   getEnv("JWT_ISSUER", "NearBiz"),
		JWTAudience: getEnv("JWT_AUDIENCE", "NearBizApp"),
		JWTExpiry:   expiry,

		MailHost: getEnv("MAIL_HOST", "smtp.gmail.com"),
		MailPort: mailPort,
		MailUser: os.Getenv("MAIL_USER"),
		MailPass: os.Getenv("MAIL_PASS"),
		MailFrom: getEnv("MAIL_FROM", "NearBiz Company <nearbizcompany@gmail.com>"),

		PushURL: getEnv("PUSH_URL", "https://exp.host/--/api/v2/push/send"),
	}

	origins := getEnv("ALLOW_ORIGIN", "*")
	for _, o := range strings.Split(origins, ",") {
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, strings.TrimSpace(o))
	}

	return cfg, nil
}

// DSN arma el data source name para el driver de MySQL.
// clientFoundRows hace que los UPDATE reporten filas encontradas y no
// filas cambiadas: un UPDATE sin cambios reales no debe parecer un 404.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}

// parseDuration acepta segundos planos ("86400") o sufijos s/m/h/d ("1d").
func parseDuration(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	if strings.HasSuffix(v, "d") {
		n, err := strconv.Atoi(strings.TrimSuffix(v, "d"))
		if err != nil {
			return 0, fmt.Errorf("bad duration %q", v)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(v)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
