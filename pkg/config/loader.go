package config

import (
	"errors"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option configures a Load call.
type Option func(*options)

type options struct {
	prefix    string
	files     []string
	overrides map[string]string
}

// WithPrefix prepends prefix to every env tag of the target struct.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvFiles reads variables from the given dotenv files. Variables already set
// in the process environment win over file values.
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.files = append(o.files, files...) }
}

// WithEnvironment sets variables that override both the process environment
// and env files.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) {
		if o.overrides == nil {
			o.overrides = make(map[string]string, len(vars))
		}
		for k, v := range vars {
			o.overrides[k] = v
		}
	}
}

// Load parses environment variables into a new T based on its env struct tags.
// The process environment is read on every call and never modified.
//
// Example:
//
//	type DecoderConfig struct {
//		MaxFrameSize int `env:"MAX_FRAME_SIZE" envDefault:"16777216"`
//		MaxDepth     int `env:"MAX_DEPTH" envDefault:"1000"`
//	}
//
//	cfg, err := config.Load[DecoderConfig](config.WithPrefix("SERIAL_"))
func Load[T any](opts ...Option) (T, error) {
	var (
		v T
		o options
	)
	for _, opt := range opts {
		opt(&o)
	}

	environ := env.ToMap(os.Environ())
	if len(o.files) > 0 {
		fileVars, err := godotenv.Read(o.files...)
		if err != nil {
			return v, errors.Join(ErrReadingEnvFile, err)
		}
		for k, val := range fileVars {
			if _, ok := environ[k]; !ok {
				environ[k] = val
			}
		}
	}
	for k, val := range o.overrides {
		environ[k] = val
	}

	if err := env.ParseWithOptions(&v, env.Options{
		Environment: environ,
		Prefix:      o.prefix,
	}); err != nil {
		return v, errors.Join(ErrParsingConfig, err)
	}
	return v, nil
}

// MustLoad works like Load but panics if configuration loading fails.
// This is useful for configurations that are required for the application to start.
func MustLoad[T any](opts ...Option) T {
	v, err := Load[T](opts...)
	if err != nil {
		panic("failed to load required configuration: " + err.Error())
	}
	return v
}
