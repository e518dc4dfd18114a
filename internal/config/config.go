package config

import (
	"log"
	"os"
	"strings"
)

// Config is loaded once at init and passed explicitly; no scattered
// os.Getenv calls in business code.
type Config struct {
	Port           string
	AllowedOrigins string

	MidtransServerKey  string
	MidtransProduction bool
}

// sandboxKeyPrefix marks Midtrans sandbox server keys.
const sandboxKeyPrefix = "SB-"

// Load reads the environment into a Config. The gateway mode flag is
// auto-corrected when it disagrees with the server-key prefix: a
// sandbox-prefixed key forces sandbox mode and a production key forces
// production mode, whatever MIDTRANS_PRODUCTION says.
func Load() *Config {
	cfg := &Config{
		Port:               getEnv("PORT", "3000"),
		AllowedOrigins:     getEnv("ALLOWED_ORIGINS", "*"),
		MidtransServerKey:  os.Getenv("MIDTRANS_SERVER_KEY"),
		MidtransProduction: strings.EqualFold(os.Getenv("MIDTRANS_PRODUCTION"), "true"),
	}

	if cfg.MidtransServerKey != "" {
		isSandboxKey := strings.HasPrefix(cfg.MidtransServerKey, sandboxKeyPrefix)
		if cfg.MidtransProduction && isSandboxKey {
			log.Println("Warning: MIDTRANS_PRODUCTION=true but server key is sandbox-prefixed, forcing sandbox mode")
			cfg.MidtransProduction = false
		} else if !cfg.MidtransProduction && !isSandboxKey {
			log.Println("Warning: MIDTRANS_PRODUCTION=false but server key is not sandbox-prefixed, forcing production mode")
			cfg.MidtransProduction = true
		}
		log.Printf("Midtrans configured (key=%s, production=%v)", MaskKey(cfg.MidtransServerKey), cfg.MidtransProduction)
	} else {
		log.Println("Warning: MIDTRANS_SERVER_KEY not set, QRIS checkout disabled")
	}

	return cfg
}

// MaskKey hides all but the first six characters of a secret so logs
// never carry the full key.
func MaskKey(key string) string {
	if len(key) <= 6 {
		return "******"
	}
	return key[:6] + strings.Repeat("*", len(key)-6)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
