package config

// EnvPrefix is passed to envconfig; individual fields carry the full
// variable names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv          = "MARE_APP_ENV"
	EnvAppPort         = "MARE_APP_PORT"
	EnvLogLevel        = "MARE_LOG_LEVEL"
	EnvCatalogFeedURL  = "MARE_CATALOG_FEED_URL"
	EnvCatalogCache    = "MARE_CATALOG_CACHE_PATH"
	EnvWhatsAppNumber  = "MARE_WHATSAPP_NUMBER"
	EnvWhatsAppBaseURL = "MARE_WHATSAPP_BASE_URL"
	EnvRedisURL        = "MARE_REDIS_URL"
	EnvRedisAddr       = "MARE_REDIS_ADDR"
	EnvSessionTTL      = "MARE_SESSION_TTL"
)
