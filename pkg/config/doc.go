// Package config loads typed configuration structs from environment variables.
//
// Fields are described with github.com/caarlos0/env tags. Values come from the
// process environment, optional dotenv files read with github.com/joho/godotenv,
// and explicit overrides, in increasing order of precedence for overrides and
// with the process environment winning over files.
//
//	type Limits struct {
//		MaxDepth int `env:"MAX_DEPTH" envDefault:"1000"`
//	}
//
//	limits, err := config.Load[Limits](
//		config.WithPrefix("SERIAL_"),
//		config.WithEnvFiles(".env"),
//	)
//
// Load never mutates the process environment and does not cache results, so
// tests can call it with different overrides in parallel.
//
// # Errors
//
//   - ErrParsingConfig: a value could not be parsed or a required variable is missing
//   - ErrReadingEnvFile: an env file passed with WithEnvFiles could not be read
package config
