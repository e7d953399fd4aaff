package apiclient

import "time"

// Config holds backend connection settings.
type Config struct {
	BaseURL string        `env:"STORE_API_URL" envDefault:"http://localhost:1337"` // Backend origin, without the /api path prefix
	Timeout time.Duration `env:"STORE_API_TIMEOUT" envDefault:"15s"`
}
