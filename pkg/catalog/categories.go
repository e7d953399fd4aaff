package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/storekit/pkg/apiclient"
	"github.com/dmitrymomot/storekit/pkg/logger"
)

// heroPlaceholders maps category slugs to bundled fallback images used
// when the backend record carries no hero image.
var heroPlaceholders = map[string]string{
	"colorificio":      "/img/cat_paint.png",
	"cappotto-termico": "/img/cat_insulation.png",
	"cartongesso":      "/img/cat_drywall.png",
	"resina":           "/img/cat_resin.png",
	"piscine":          "/img/cat_pool.png",
	"edilizia":         "/img/prod_mortar.png",
}

type categoryDoc struct {
	ID          int       `json:"id"`
	DocumentID  string    `json:"documentId"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	HeroImage   *mediaDoc `json:"heroImage"`
}

// Categories fetches the storefront category grid.
type Categories struct {
	client *apiclient.Client
	log    *slog.Logger

	mu      sync.Mutex
	items   []Category
	lastErr string
}

// CategoriesOption configures a Categories service.
type CategoriesOption func(*Categories)

// WithCategoriesLogger sets the logger used for fetch failures.
func WithCategoriesLogger(log *slog.Logger) CategoriesOption {
	return func(c *Categories) {
		if log != nil {
			c.log = log.With(logger.Component("catalog.categories"))
		}
	}
}

// NewCategories creates a category service on top of client.
func NewCategories(client *apiclient.Client, opts ...CategoriesOption) *Categories {
	c := &Categories{
		client: client,
		log:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch loads all categories. The first and last entries are flagged
// wide for the two-column grid slots; missing hero images fall back to
// the per-slug placeholder table.
func (c *Categories) Fetch(ctx context.Context) error {
	var env apiclient.Envelope[[]categoryDoc]
	err := c.client.Get(ctx, "/categories", apiclient.NewParams().Populate("*").Values(), &env)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err.Error()
		c.log.ErrorContext(ctx, "fetch categories", logger.Error(err))
		return err
	}
	items := make([]Category, 0, len(env.Data))
	for i, doc := range env.Data {
		image := ""
		if doc.HeroImage != nil {
			image = c.client.MediaURL(doc.HeroImage.URL)
		}
		if image == "" {
			image = heroPlaceholders[doc.Slug]
		}
		items = append(items, Category{
			ID:          documentID(doc.DocumentID, doc.ID),
			Slug:        doc.Slug,
			Name:        doc.Name,
			Description: doc.Description,
			HeroImage:   image,
			Wide:        i == 0 || i == len(env.Data)-1,
		})
	}
	c.items = items
	c.lastErr = ""
	return nil
}

// Items returns a copy of the last fetched category list.
func (c *Categories) Items() []Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Category, len(c.items))
	copy(out, c.items)
	return out
}

// Err returns the last recorded error message.
func (c *Categories) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
