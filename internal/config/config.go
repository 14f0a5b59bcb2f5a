package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StageDev  = "dev"
	StageProd = "prod"
)

// Config reúne tudo que a API lê do ambiente.
type Config struct {
	Porta    string
	Stage    string
	LogLevel string

	DB        DBConfig
	Auth      AuthConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig

	CORSOrigins      []string
	WebhookAlertaURL string

	// credenciais do administrador criado na primeira subida
	AdminEmail string
	AdminSenha string
}

type DBConfig struct {
	Host       string
	Porta      uint
	Nome       string
	Usuario    string
	Senha      string
	SecretID   string
	SSLDisable bool
}

type AuthConfig struct {
	ChavePrivadaPath string
	KID              string
	Issuer           string
	Audience         string
	CookieSecure     bool
}

type CacheConfig struct {
	RedisAddr string
	TTL       time.Duration
}

type RateLimitConfig struct {
	Requisicoes int
	Janela      time.Duration
}

// Load carrega o .env (se existir) e monta a configuração.
// Variáveis já definidas no ambiente têm precedência sobre o arquivo.
func Load(arquivos ...string) (*Config, error) {
	if len(arquivos) == 0 {
		arquivos = []string{".env"}
	}
	for _, a := range arquivos {
		if err := godotenv.Load(a); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("lendo %s: %w", a, err)
		}
	}

	porta, err := uintEnv("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	ttl, err := durationEnv("CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	janela, err := durationEnv("RATE_LIMIT_JANELA", time.Minute)
	if err != nil {
		return nil, err
	}
	reqs, err := uintEnv("RATE_LIMIT_REQUISICOES", 60)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Porta:    getEnv("PORT", "8080"),
		Stage:    getEnv("STAGE", StageDev),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DB: DBConfig{
			Host:       getEnv("DB_HOST", "localhost"),
			Porta:      porta,
			Nome:       getEnv("DB_NAME", "folha"),
			Usuario:    os.Getenv("DB_USERNAME"),
			Senha:      os.Getenv("DB_PASSWORD"),
			SecretID:   os.Getenv("DB_SECRET_ID"),
			SSLDisable: os.Getenv("DB_SSL_MODE_DISABLE") == "true",
		},
		Auth: AuthConfig{
			ChavePrivadaPath: os.Getenv("AUTH_RSA_PRIVATE_PATH"),
			KID:              os.Getenv("AUTH_KID"),
			Issuer:           os.Getenv("AUTH_ISSUER"),
			Audience:         os.Getenv("AUTH_AUDIENCE"),
			CookieSecure:     os.Getenv("COOKIE_SECURE") == "true",
		},
		Cache: CacheConfig{
			RedisAddr: os.Getenv("REDIS_ADDR"),
			TTL:       ttl,
		},
		RateLimit: RateLimitConfig{
			Requisicoes: int(reqs),
			Janela:      janela,
		},
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		WebhookAlertaURL: os.Getenv("WEBHOOK_ALERTA_URL"),
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		AdminSenha:       os.Getenv("ADMIN_SENHA"),
	}

	if cfg.DB.Usuario == "" && cfg.DB.SecretID == "" {
		return nil, errors.New("defina DB_USERNAME/DB_PASSWORD ou DB_SECRET_ID")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func uintEnv(key string, def uint) (uint, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s inválido: %w", key, err)
	}
	return uint(n), nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s inválido: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
