// Package config loads typed configuration from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct-tag parsing and
// github.com/joho/godotenv for .env files. Every configuration type is parsed
// once and cached, so packages can call Load for their own config struct
// without coordinating:
//
//	type Config struct {
//	    Addr    string        `env:"HTTP_ADDR" envDefault:":8080"`
//	    Timeout time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Errors wrap ErrParsingConfig, ErrLoadingEnvFile or ErrNilPointer and can be
// tested with errors.Is. ResetCache clears the cache, which tests use after
// changing the environment.
package config
