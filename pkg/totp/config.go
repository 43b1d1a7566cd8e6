package totp

import (
	"sync"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically
)

var (
	cfg  Config
	once sync.Once
)

type Config struct {
	EncryptionKey string `env:"TOTP_ENCRYPTION_KEY"` // Base64-encoded 32-byte key for encrypting persisted secrets
}

// LoadConfig loads the package configuration from environment variables.
// The configuration is parsed once per process; subsequent calls return the
// cached value. An unset encryption key is not an error here because
// encryption at rest is optional; GetEncryptionKey reports ErrEncryptionKeyNotSet
// when a caller actually needs the key.
func LoadConfig() (Config, error) {
	var err error
	once.Do(func() {
		var c Config
		if err = env.Parse(&c); err != nil {
			return
		}
		cfg = c
	})
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}
