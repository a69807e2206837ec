package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Catalog  CatalogConfig
	WhatsApp WhatsAppConfig
	Redis    RedisConfig
	Session  SessionConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.WhatsApp.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MARE_APP_ENV" default:"dev"`
	Port         string `envconfig:"MARE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"MARE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MARE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CatalogConfig struct {
	FeedURL         string        `envconfig:"MARE_CATALOG_FEED_URL" default:"https://ferabensrl.github.io/mare-catalogo-web/datos/productos.json"`
	RequestTimeout  time.Duration `envconfig:"MARE_CATALOG_REQUEST_TIMEOUT" default:"10s"`
	FetchRetries    uint64        `envconfig:"MARE_CATALOG_FETCH_RETRIES" default:"3"`
	RefreshInterval time.Duration `envconfig:"MARE_CATALOG_REFRESH_INTERVAL" default:"15m"`
	CachePath       string        `envconfig:"MARE_CATALOG_CACHE_PATH" default:"catalogo.db"`
}

// WhatsAppConfig drives order dispatch link construction. The length caps
// exist because wa.me links are subject to practical URL limits; the
// 1800/1600 defaults are load-bearing and match what the receiving side
// has always been sent.
type WhatsAppConfig struct {
	Recipient  string `envconfig:"MARE_WHATSAPP_NUMBER" default:"59897998999"`
	BaseURL    string `envconfig:"MARE_WHATSAPP_BASE_URL" default:"https://wa.me"`
	MaxChars   int    `envconfig:"MARE_WHATSAPP_MAX_CHARS" default:"1800"`
	TruncateAt int    `envconfig:"MARE_WHATSAPP_TRUNCATE_AT" default:"1600"`
}

func (w WhatsAppConfig) validate() error {
	if strings.TrimSpace(w.Recipient) == "" {
		return fmt.Errorf("%s is required", EnvWhatsAppNumber)
	}
	if w.TruncateAt <= 0 || w.MaxChars <= 0 || w.TruncateAt >= w.MaxChars {
		return fmt.Errorf("whatsapp truncate threshold must be positive and below the max length")
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"MARE_REDIS_URL"`
	Address      string        `envconfig:"MARE_REDIS_ADDR"`
	Password     string        `envconfig:"MARE_REDIS_PASSWORD"`
	DB           int           `envconfig:"MARE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MARE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MARE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MARE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MARE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MARE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SessionConfig struct {
	TTL time.Duration `envconfig:"MARE_SESSION_TTL" default:"720h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"MARE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,https://ferabensrl.github.io"`
}
