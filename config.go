package storekit

import (
	"time"

	"github.com/dmitrymomot/storekit/pkg/apiclient"
)

// Config collects the environment-driven settings of an App. Load it
// with pkg/config and pass it to New.
type Config struct {
	API apiclient.Config

	// StateFile backs the durable storage scope. The parent directory
	// is created on first write.
	StateFile string `env:"STORE_STATE_FILE" envDefault:".storekit/state.json"`

	// CartKey is the storage key of the cart snapshot.
	CartKey string `env:"STORE_CART_KEY" envDefault:"cart"`

	// UndoWindow bounds how long a removed cart line can be restored.
	UndoWindow time.Duration `env:"STORE_UNDO_WINDOW" envDefault:"4s"`

	// ComuniFile is the local fallback for the Italian municipality
	// dataset; the backend copy is tried first.
	ComuniFile string `env:"STORE_COMUNI_FILE" envDefault:"comuni.json"`

	// CountryFile is the country dial code dataset.
	CountryFile string `env:"STORE_COUNTRY_FILE" envDefault:"country-codes.json"`
}
