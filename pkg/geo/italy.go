package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/storekit/pkg/logger"
)

// Province is a province within a region, identified by its full name
// and the two-letter short code used on forms.
type Province struct {
	Name string
	Code string
}

// City is a municipality with its primary postal code.
type City struct {
	Name string
	Zip  string
}

// Location is the result of a reverse ZIP lookup. Province carries the
// short code, matching what address forms store.
type Location struct {
	City     string
	Province string
	Region   string
}

// zipList tolerates the dataset's two encodings of the postal code
// field, a list of strings or a single string.
type zipList []string

func (z *zipList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*z = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*z = []string{one}
	return nil
}

type comune struct {
	Nome    string  `json:"nome"`
	Codice  string  `json:"codice"`
	Sigla   string  `json:"sigla"`
	Zips    zipList `json:"cap"`
	Regione struct {
		Codice string `json:"codice"`
		Nome   string `json:"nome"`
	} `json:"regione"`
	Provincia struct {
		Codice string `json:"codice"`
		Nome   string `json:"nome"`
	} `json:"provincia"`
}

// Italy answers region/province/city lookups over the Italian
// municipality dataset. The zero value is unusable; construct with
// NewItaly and call Init once before querying.
type Italy struct {
	remoteBase string
	localFile  string
	httpClient *http.Client
	log        *slog.Logger

	mu   sync.RWMutex
	data []comune
}

// ItalyOption configures an Italy lookup.
type ItalyOption func(*Italy)

// WithItalyRemote sets the backend origin serving comuni.json.
func WithItalyRemote(base string) ItalyOption {
	return func(i *Italy) {
		i.remoteBase = strings.TrimRight(base, "/")
	}
}

// WithItalyLocalFile sets the bundled fallback dataset path.
func WithItalyLocalFile(path string) ItalyOption {
	return func(i *Italy) {
		i.localFile = path
	}
}

// WithItalyHTTPClient replaces the HTTP client used for the remote
// fetch.
func WithItalyHTTPClient(hc *http.Client) ItalyOption {
	return func(i *Italy) {
		if hc != nil {
			i.httpClient = hc
		}
	}
}

// WithItalyLogger sets the logger for load diagnostics.
func WithItalyLogger(log *slog.Logger) ItalyOption {
	return func(i *Italy) {
		if log != nil {
			i.log = log.With(logger.Component("geo.italy"))
		}
	}
}

// NewItaly creates an Italian geo lookup.
func NewItaly(opts ...ItalyOption) *Italy {
	i := &Italy{
		localFile:  "comuni.json",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Init loads the dataset once. The remote copy is tried first; when it
// is missing or unreadable the local fallback file is used. Init is a
// no-op once data is loaded, and a failed attempt may be retried.
func (i *Italy) Init(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if len(i.data) > 0 {
		return nil
	}

	raw, err := i.fetchRemote(ctx)
	if err != nil {
		i.log.WarnContext(ctx, "remote geo data unavailable, using local fallback", logger.Error(err))
		raw, err = os.ReadFile(i.localFile)
		if err != nil {
			return errors.Join(ErrDataUnavailable, err)
		}
	}

	var data []comune
	if err := json.Unmarshal(raw, &data); err != nil {
		return errors.Join(ErrDecodeData, err)
	}
	i.data = data
	i.log.InfoContext(ctx, "geo data loaded", slog.Int("municipalities", len(data)))
	return nil
}

func (i *Italy) fetchRemote(ctx context.Context) ([]byte, error) {
	if i.remoteBase == "" {
		return nil, errors.New("no remote configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.remoteBase+"/comuni.json", nil)
	if err != nil {
		return nil, err
	}
	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Regions returns the unique region names in Italian collation order.
func (i *Italy) Regions() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for _, c := range i.data {
		if _, ok := seen[c.Regione.Nome]; ok {
			continue
		}
		seen[c.Regione.Nome] = struct{}{}
		out = append(out, c.Regione.Nome)
	}
	sortItalian(out)
	return out
}

// Provinces returns the provinces of a region, sorted by name. An
// unknown or empty region yields an empty slice.
func (i *Italy) Provinces(region string) []Province {
	if region == "" {
		return nil
	}
	i.mu.RLock()
	defer i.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []Province
	for _, c := range i.data {
		if c.Regione.Nome != region {
			continue
		}
		if _, ok := seen[c.Provincia.Nome]; ok {
			continue
		}
		seen[c.Provincia.Nome] = struct{}{}
		out = append(out, Province{Name: c.Provincia.Nome, Code: c.Sigla})
	}
	coll := collate.New(language.Italian)
	sort.Slice(out, func(a, b int) bool {
		return coll.CompareString(out[a].Name, out[b].Name) < 0
	})
	return out
}

// Cities returns the municipalities of a province by full province
// name, each with its primary ZIP, sorted by name.
func (i *Italy) Cities(province string) []City {
	if province == "" {
		return nil
	}
	i.mu.RLock()
	defer i.mu.RUnlock()

	var out []City
	for _, c := range i.data {
		if c.Provincia.Nome != province {
			continue
		}
		zip := ""
		if len(c.Zips) > 0 {
			zip = c.Zips[0]
		}
		out = append(out, City{Name: c.Nome, Zip: zip})
	}
	coll := collate.New(language.Italian)
	sort.Slice(out, func(a, b int) bool {
		return coll.CompareString(out[a].Name, out[b].Name) < 0
	})
	return out
}

// Zip returns the primary postal code of a city in a province, or
// empty when unknown.
func (i *Italy) Zip(city, province string) string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	for _, c := range i.data {
		if c.Nome == city && c.Provincia.Nome == province {
			if len(c.Zips) > 0 {
				return c.Zips[0]
			}
			return ""
		}
	}
	return ""
}

// FindByZip reverse-resolves a five-digit postal code to its city,
// province short code and region. Shorter inputs return nil without
// searching.
func (i *Italy) FindByZip(zip string) *Location {
	if len(zip) < 5 {
		return nil
	}
	i.mu.RLock()
	defer i.mu.RUnlock()

	for _, c := range i.data {
		for _, z := range c.Zips {
			if z == zip {
				return &Location{
					City:     c.Nome,
					Province: c.Sigla,
					Region:   c.Regione.Nome,
				}
			}
		}
	}
	return nil
}

func sortItalian(names []string) {
	coll := collate.New(language.Italian)
	sort.Slice(names, func(a, b int) bool {
		return coll.CompareString(names[a], names[b]) < 0
	})
}
