package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu     sync.Mutex
	values = make(map[string]any)

	defaultEnvLoaded sync.Once
)

// Load parses environment variables into the provided configuration struct
// based on its env field tags. Each configuration type is parsed once per
// process; later calls for the same type return the cached value. The default
// .env file is loaded lazily before the first parse.
//
// Example:
//
//	type StorageConfig struct {
//		Backend  string `env:"OTPKIT_STORAGE" envDefault:"file"`
//		VaultDir string `env:"OTPKIT_VAULT_DIR" envDefault:".otpkit"`
//	}
//
//	var cfg StorageConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	defaultEnvLoaded.Do(func() {
		// The .env file is optional, a missing one is not an error.
		_ = godotenv.Load()
	})

	typeName := typeNameOf[T]()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := values[typeName]; ok {
		*v = cached.(T)
		return nil
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	values[typeName] = *v // stored by value to shield the cache from later edits
	return nil
}

// MustLoad works like Load but panics if configuration loading fails. Use it
// for configuration the application cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// typeNameOf returns a string identifier for the generic type T.
func typeNameOf[T any]() string {
	var zero T
	if t := reflect.TypeOf(zero); t != nil {
		return t.String()
	}
	return fmt.Sprintf("%T", *new(T))
}
