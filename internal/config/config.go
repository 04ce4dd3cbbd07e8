// config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string
	Port        string
	OrderStore  string // mongo | memory
	MongoURI    string
	MongoDBName string
	RabbitURL   string
	RedisAddr   string
	CartTTL     time.Duration
	JWTSecret   string

	// Protege las rutas de administración con JWT + rol admin.
	AdminAuth bool
	// La ruta /payment-status acepta "refunded".
	PaymentAllowRefunded bool
	// delivered / cancelled como estados finales.
	OrderStatusGuard bool
	// Ignora el totalAmount del cliente y guarda la suma de los items.
	RecomputeTotal bool
}

// Load lee .env (si existe) y luego el entorno. Las variables ya definidas
// en el entorno tienen prioridad sobre .env.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:               getEnv("APP_ENV", "local"),
		Port:                 getEnv("PORT", "8080"),
		OrderStore:           strings.ToLower(getEnv("ORDER_STORE", "mongo")),
		MongoURI:             getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:          getEnv("MONGO_DB_NAME", "storefront"),
		RabbitURL:            getEnv("RABBIT_URL", ""),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		CartTTL:              getDuration("CART_TTL", 72*time.Hour),
		JWTSecret:            getEnv("JWT_SECRET", "your-secret-key"),
		AdminAuth:            getBool("ADMIN_AUTH", false),
		PaymentAllowRefunded: getBool("PAYMENT_ALLOW_REFUNDED", true),
		OrderStatusGuard:     getBool("ORDER_STATUS_GUARD", false),
		RecomputeTotal:       getBool("RECOMPUTE_TOTAL", false),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
