package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// cache holds one parsed value per configuration type.
	cache sync.Map // reflect.Type -> parsed struct value

	// dotenvOnce guards the one-time .env autoload.
	dotenvOnce sync.Once
)

// Load parses environment variables into cfg based on its `env` struct tags.
// Each configuration type is parsed once per process; later calls for the
// same type return the cached value. A .env file in the working directory is
// loaded into the environment on first use, without overriding variables that
// are already set.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		// Missing .env is the normal production case.
		_ = godotenv.Load()
	})

	typ := reflect.TypeOf(*cfg)
	if cached, ok := cache.Load(typ); ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", typ, err)
	}

	actual, _ := cache.LoadOrStore(typ, *cfg)
	*cfg = actual.(T)
	return nil
}

// MustLoad is Load but panics on failure. Useful at startup where a missing
// required variable should stop the process.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
