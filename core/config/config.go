package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParse wraps every failure to parse environment variables.
var ErrParse = errors.New("config: failed to parse environment")

var (
	dotenvOnce sync.Once

	mu    sync.Mutex
	cache = map[reflect.Type]any{}
)

func loadDotenv() {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})
}

// Load fills dst from the environment, parsing each type only once.
func Load[T any](dst *T) error {
	loadDotenv()

	typ := reflect.TypeFor[T]()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[typ]; ok {
		*dst = cached.(T)
		return nil
	}

	var v T
	if err := env.Parse(&v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrParse, typ, err)
	}
	cache[typ] = v
	*dst = v
	return nil
}

// MustLoad is Load that panics on error. Meant for program start-up.
func MustLoad[T any](dst *T) {
	if err := Load(dst); err != nil {
		panic(err)
	}
}

// Parse fills dst from the environment without touching the cache or the
// .env file.
func Parse[T any](dst *T) error {
	var v T
	if err := env.Parse(&v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrParse, reflect.TypeFor[T](), err)
	}
	*dst = v
	return nil
}
