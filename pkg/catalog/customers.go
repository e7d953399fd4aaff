package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storekit/pkg/apiclient"
	"github.com/dmitrymomot/storekit/pkg/logger"
)

type customerDoc struct {
	ID         int             `json:"id"`
	DocumentID string          `json:"documentId"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Status     string          `json:"status"`
	Spent      decimal.Decimal `json:"spent"`
	Orders     int             `json:"orders"`
	Avatar     string          `json:"avatar"`
}

// Customers fetches the admin customers table page by page.
type Customers struct {
	client *apiclient.Client
	log    *slog.Logger

	mu      sync.Mutex
	items   []Customer
	page    apiclient.Pagination
	lastErr string
}

// CustomersOption configures a Customers service.
type CustomersOption func(*Customers)

// WithCustomersLogger sets the logger used for fetch failures.
func WithCustomersLogger(log *slog.Logger) CustomersOption {
	return func(c *Customers) {
		if log != nil {
			c.log = log.With(logger.Component("catalog.customers"))
		}
	}
}

// NewCustomers creates a customers service on top of client.
func NewCustomers(client *apiclient.Client, opts ...CustomersOption) *Customers {
	c := &Customers{
		client: client,
		log:    logger.Discard(),
		page:   apiclient.Pagination{Page: 1, PageSize: 25, PageCount: 1},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch loads one page of customers sorted by name.
func (c *Customers) Fetch(ctx context.Context, page, pageSize int) error {
	query := apiclient.NewParams().Sort("name:asc").Paginate(page, pageSize).Values()

	var env apiclient.Envelope[[]customerDoc]
	err := c.client.Get(ctx, "/customers", query, &env)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err.Error()
		c.log.ErrorContext(ctx, "fetch customers", logger.Error(err))
		return err
	}
	items := make([]Customer, 0, len(env.Data))
	for _, doc := range env.Data {
		items = append(items, mapCustomer(doc))
	}
	c.items = items
	c.page = env.Meta.Pagination
	c.lastErr = ""
	return nil
}

// Get loads a single customer by its document id.
func (c *Customers) Get(ctx context.Context, id string) (*Customer, error) {
	var env apiclient.Envelope[customerDoc]
	if err := c.client.Get(ctx, "/customers/"+id, nil, &env); err != nil {
		c.mu.Lock()
		c.lastErr = err.Error()
		c.mu.Unlock()
		c.log.ErrorContext(ctx, "fetch customer", slog.String("id", id), logger.Error(err))
		return nil, err
	}
	cust := mapCustomer(env.Data)
	return &cust, nil
}

// Items returns a copy of the last fetched page.
func (c *Customers) Items() []Customer {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Customer, len(c.items))
	copy(out, c.items)
	return out
}

// Page returns the pagination metadata of the last fetch.
func (c *Customers) Page() apiclient.Pagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Err returns the last recorded error message.
func (c *Customers) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func mapCustomer(doc customerDoc) Customer {
	avatar := doc.Avatar
	if avatar == "" {
		avatar = initials(doc.Name)
	}
	return Customer{
		ID:     documentID(doc.DocumentID, doc.ID),
		Name:   doc.Name,
		Email:  doc.Email,
		Status: doc.Status,
		Spent:  doc.Spent,
		Orders: doc.Orders,
		Avatar: avatar,
	}
}
