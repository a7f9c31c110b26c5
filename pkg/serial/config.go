package serial

import (
	"github.com/dmitrymomot/typekit/pkg/config"
)

const (
	// DefaultMaxFrameSize bounds a single frame read from a stream.
	DefaultMaxFrameSize = 16 << 20

	// DefaultMaxDepth bounds nesting of values in a graph.
	DefaultMaxDepth = 1000
)

// Config holds decoder limits. Zero or negative values keep the defaults.
type Config struct {
	MaxFrameSize int `env:"MAX_FRAME_SIZE" envDefault:"16777216"`
	MaxDepth     int `env:"MAX_DEPTH" envDefault:"1000"`
}

// DefaultConfig returns the limits used when no configuration is given.
func DefaultConfig() Config {
	return Config{
		MaxFrameSize: DefaultMaxFrameSize,
		MaxDepth:     DefaultMaxDepth,
	}
}

// LoadConfig reads Config from SERIAL_-prefixed environment variables.
//
//	SERIAL_MAX_FRAME_SIZE=1048576
//	SERIAL_MAX_DEPTH=64
func LoadConfig(opts ...config.Option) (Config, error) {
	return config.Load[Config](append([]config.Option{config.WithPrefix("SERIAL_")}, opts...)...)
}
