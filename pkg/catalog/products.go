package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storekit/pkg/apiclient"
	"github.com/dmitrymomot/storekit/pkg/logger"
)

// productDoc is the backend shape of a product with its relations
// expanded.
type productDoc struct {
	ID             int              `json:"id"`
	DocumentID     string           `json:"documentId"`
	Name           string           `json:"name"`
	Subtitle       string           `json:"subtitle"`
	SKU            string           `json:"sku"`
	Price          decimal.Decimal  `json:"price"`
	Stock          int              `json:"stock"`
	Description    string           `json:"description"`
	TechnicalData  []TechnicalEntry `json:"technical_data"`
	Images         []mediaDoc       `json:"images"`
	Image          *mediaDoc        `json:"image"`
	TechnicalSheet *mediaDoc        `json:"technical_sheet"`
	Category       *struct {
		Slug string `json:"slug"`
		Name string `json:"name"`
	} `json:"category"`
}

// ProductInput is the write payload for creating or updating a product.
// Image, when set, switches the request to multipart and attaches the
// file under the product's image relation.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	SKU         string
	Subtitle    string
	CategoryID  int
	Image       *apiclient.FormFile
}

// productPayload is the JSON document sent on writes.
type productPayload struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	SKU          string          `json:"sku"`
	Subtitle     string          `json:"subtitle"`
	Category     int             `json:"category,omitempty"`
	Availability string          `json:"availability"`
}

// Products fetches and mutates the product catalog. Mutations refetch
// the list unconditionally so the local state always reflects the
// backend, at the cost of an extra request.
type Products struct {
	client *apiclient.Client
	log    *slog.Logger

	mu      sync.Mutex
	items   []Product
	lastErr string
}

// ProductsOption configures a Products service.
type ProductsOption func(*Products)

// WithProductsLogger sets the logger used for fetch and write failures.
func WithProductsLogger(log *slog.Logger) ProductsOption {
	return func(p *Products) {
		if log != nil {
			p.log = log.With(logger.Component("catalog.products"))
		}
	}
}

// NewProducts creates a product service on top of client.
func NewProducts(client *apiclient.Client, opts ...ProductsOption) *Products {
	p := &Products{
		client: client,
		log:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fetch loads the full product list with relations expanded. On failure
// the previous items are kept and the error is recorded.
func (p *Products) Fetch(ctx context.Context) error {
	var env apiclient.Envelope[[]productDoc]
	err := p.client.Get(ctx, "/products", apiclient.NewParams().Populate("*").Values(), &env)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.lastErr = err.Error()
		p.log.ErrorContext(ctx, "fetch products", logger.Error(err))
		return err
	}
	items := make([]Product, 0, len(env.Data))
	for _, doc := range env.Data {
		items = append(items, p.mapProduct(doc))
	}
	p.items = items
	p.lastErr = ""
	return nil
}

// Get loads a single product by its document id.
func (p *Products) Get(ctx context.Context, id string) (*Product, error) {
	var env apiclient.Envelope[productDoc]
	if err := p.client.Get(ctx, "/products/"+id, apiclient.NewParams().Populate("*").Values(), &env); err != nil {
		p.mu.Lock()
		p.lastErr = err.Error()
		p.mu.Unlock()
		p.log.ErrorContext(ctx, "fetch product", slog.String("id", id), logger.Error(err))
		return nil, err
	}
	prod := p.mapProduct(env.Data)
	return &prod, nil
}

// Create adds a product and refetches the list. It reports whether the
// write succeeded.
func (p *Products) Create(ctx context.Context, in ProductInput) bool {
	payload := productPayload{
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Stock:        in.Stock,
		SKU:          in.SKU,
		Subtitle:     in.Subtitle,
		Category:     in.CategoryID,
		Availability: "Disponibile",
	}
	if err := p.client.Post(ctx, "/products", writeBody(payload, "image", in.Image), nil); err != nil {
		p.mu.Lock()
		p.lastErr = err.Error()
		p.mu.Unlock()
		p.log.ErrorContext(ctx, "create product", logger.Error(err))
		return false
	}
	_ = p.Fetch(ctx)
	return true
}

// Update rewrites a product and refetches the list.
func (p *Products) Update(ctx context.Context, id string, in ProductInput) bool {
	payload := productPayload{
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Stock:        in.Stock,
		SKU:          in.SKU,
		Subtitle:     in.Subtitle,
		Category:     in.CategoryID,
		Availability: availabilityStatus(in.Stock),
	}
	if err := p.client.Put(ctx, "/products/"+id, writeBody(payload, "image", in.Image), nil); err != nil {
		p.mu.Lock()
		p.lastErr = err.Error()
		p.mu.Unlock()
		p.log.ErrorContext(ctx, "update product", slog.String("id", id), logger.Error(err))
		return false
	}
	_ = p.Fetch(ctx)
	return true
}

// Delete removes a product and refetches the list.
func (p *Products) Delete(ctx context.Context, id string) bool {
	if err := p.client.Delete(ctx, "/products/"+id); err != nil {
		p.mu.Lock()
		p.lastErr = err.Error()
		p.mu.Unlock()
		p.log.ErrorContext(ctx, "delete product", slog.String("id", id), logger.Error(err))
		return false
	}
	_ = p.Fetch(ctx)
	return true
}

// Items returns a copy of the last fetched product list.
func (p *Products) Items() []Product {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Product, len(p.items))
	copy(out, p.items)
	return out
}

// Err returns the last recorded error message, empty when the last
// operation succeeded.
func (p *Products) Err() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *Products) mapProduct(doc productDoc) Product {
	image := ""
	if len(doc.Images) > 0 {
		image = p.client.MediaURL(doc.Images[0].URL)
	} else if doc.Image != nil {
		image = p.client.MediaURL(doc.Image.URL)
	}

	var docs []Document
	if doc.TechnicalSheet != nil {
		docs = []Document{{
			Name: "Scheda Tecnica",
			URL:  p.client.MediaURL(doc.TechnicalSheet.URL),
			Size: "PDF",
			Type: "PDF",
		}}
	}

	var cat *CategoryRef
	if doc.Category != nil {
		cat = &CategoryRef{Slug: doc.Category.Slug, Name: doc.Category.Name}
	}

	technical := doc.TechnicalData
	if technical == nil {
		technical = []TechnicalEntry{}
	}

	return Product{
		ID:            documentID(doc.DocumentID, doc.ID),
		Name:          doc.Name,
		Subtitle:      doc.Subtitle,
		SKU:           doc.SKU,
		Price:         doc.Price,
		Unit:          "Pz",
		Availability:  availabilityLabel(doc.Stock),
		Stock:         doc.Stock,
		Image:         image,
		Description:   doc.Description,
		TechnicalData: technical,
		Documents:     docs,
		Category:      cat,
	}
}

// availabilityStatus is the coarse status stored on the record itself,
// distinct from the display label derived at read time.
func availabilityStatus(stock int) string {
	if stock > 0 {
		return "Disponibile"
	}
	return "Esaurito"
}

// writeBody picks JSON or multipart depending on whether a file is
// attached. The file travels under files.<relation> next to the data
// document.
func writeBody(payload any, relation string, file *apiclient.FormFile) apiclient.Body {
	if file == nil {
		return apiclient.JSON(map[string]any{"data": payload})
	}
	f := *file
	f.Field = "files." + relation
	return &apiclient.Multipart{
		Data:  payload,
		Files: []apiclient.FormFile{f},
	}
}
