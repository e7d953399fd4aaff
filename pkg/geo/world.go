package geo

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/storekit/pkg/logger"
)

// Country is one entry of the dial code dataset.
type Country struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	DialCode string `json:"dial_code"`
}

// World answers country dial code lookups for phone number inputs.
type World struct {
	localFile string
	log       *slog.Logger

	mu   sync.RWMutex
	data []Country
}

// WorldOption configures a World lookup.
type WorldOption func(*World)

// WithWorldLocalFile sets the bundled dataset path.
func WithWorldLocalFile(path string) WorldOption {
	return func(w *World) {
		w.localFile = path
	}
}

// WithWorldLogger sets the logger for load diagnostics.
func WithWorldLogger(log *slog.Logger) WorldOption {
	return func(w *World) {
		if log != nil {
			w.log = log.With(logger.Component("geo.world"))
		}
	}
}

// NewWorld creates a country dial code lookup.
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		localFile: "country-codes.json",
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Init loads and sorts the dataset once. A failed attempt may be
// retried.
func (w *World) Init(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.data) > 0 {
		return nil
	}

	raw, err := os.ReadFile(w.localFile)
	if err != nil {
		return errors.Join(ErrDataUnavailable, err)
	}
	var data []Country
	if err := json.Unmarshal(raw, &data); err != nil {
		return errors.Join(ErrDecodeData, err)
	}

	coll := collate.New(language.Italian)
	sort.Slice(data, func(a, b int) bool {
		return coll.CompareString(data[a].Name, data[b].Name) < 0
	})
	w.data = data
	w.log.InfoContext(ctx, "country data loaded", slog.Int("countries", len(data)))
	return nil
}

// Countries returns all countries sorted by name.
func (w *World) Countries() []Country {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Country, len(w.data))
	copy(out, w.data)
	return out
}

// DialCode returns the dial prefix for an ISO country code, or empty
// when unknown.
func (w *World) DialCode(countryCode string) string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, c := range w.data {
		if c.Code == countryCode {
			return c.DialCode
		}
	}
	return ""
}
