package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storekit/pkg/apiclient"
	"github.com/dmitrymomot/storekit/pkg/logger"
)

// ErrEmptyOrder is returned when an order is submitted without lines.
var ErrEmptyOrder = errors.New("catalog.empty_order")

type orderDoc struct {
	ID         int             `json:"id"`
	DocumentID string          `json:"documentId"`
	Customer   string          `json:"customer"`
	Email      string          `json:"email"`
	Status     string          `json:"status"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	Items      []OrderItem     `json:"items"`
}

// OrderLine is one product line submitted with a new order.
type OrderLine struct {
	ProductID string          `json:"product"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderInput is the payload for creating an order or opening a payment
// session for one.
type OrderInput struct {
	Customer string      `json:"customer"`
	Email    string      `json:"email"`
	Lines    []OrderLine `json:"items"`
}

// Orders fetches the admin orders table and submits new orders.
type Orders struct {
	client *apiclient.Client
	log    *slog.Logger

	mu      sync.Mutex
	items   []Order
	page    apiclient.Pagination
	lastErr string
}

// OrdersOption configures an Orders service.
type OrdersOption func(*Orders)

// WithOrdersLogger sets the logger used for fetch and write failures.
func WithOrdersLogger(log *slog.Logger) OrdersOption {
	return func(o *Orders) {
		if log != nil {
			o.log = log.With(logger.Component("catalog.orders"))
		}
	}
}

// NewOrders creates an orders service on top of client.
func NewOrders(client *apiclient.Client, opts ...OrdersOption) *Orders {
	o := &Orders{
		client: client,
		log:    logger.Discard(),
		page:   apiclient.Pagination{Page: 1, PageSize: 25, PageCount: 1},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Fetch loads one page of orders, newest first.
func (o *Orders) Fetch(ctx context.Context, page, pageSize int) error {
	query := apiclient.NewParams().Sort("date:desc").Paginate(page, pageSize).Values()

	var env apiclient.Envelope[[]orderDoc]
	err := o.client.Get(ctx, "/orders", query, &env)

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.lastErr = err.Error()
		o.log.ErrorContext(ctx, "fetch orders", logger.Error(err))
		return err
	}
	items := make([]Order, 0, len(env.Data))
	for _, doc := range env.Data {
		items = append(items, mapOrder(doc))
	}
	o.items = items
	o.page = env.Meta.Pagination
	o.lastErr = ""
	return nil
}

// Create submits a new order and returns the stored record.
func (o *Orders) Create(ctx context.Context, in OrderInput) (*Order, error) {
	if len(in.Lines) == 0 {
		return nil, ErrEmptyOrder
	}
	var env apiclient.Envelope[orderDoc]
	if err := o.client.Post(ctx, "/orders", apiclient.JSON(map[string]any{"data": in}), &env); err != nil {
		o.mu.Lock()
		o.lastErr = err.Error()
		o.mu.Unlock()
		o.log.ErrorContext(ctx, "create order", logger.Error(err))
		return nil, err
	}
	ord := mapOrder(env.Data)
	return &ord, nil
}

// CheckoutSession opens a payment session for the given order and
// returns the redirect URL the customer must be sent to.
func (o *Orders) CheckoutSession(ctx context.Context, in OrderInput) (string, error) {
	if len(in.Lines) == 0 {
		return "", ErrEmptyOrder
	}
	var out struct {
		URL string `json:"url"`
	}
	if err := o.client.Post(ctx, "/orders/checkout-session", apiclient.JSON(map[string]any{"data": in}), &out); err != nil {
		o.mu.Lock()
		o.lastErr = err.Error()
		o.mu.Unlock()
		o.log.ErrorContext(ctx, "checkout session", logger.Error(err))
		return "", err
	}
	return out.URL, nil
}

// Items returns a copy of the last fetched page.
func (o *Orders) Items() []Order {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Order, len(o.items))
	copy(out, o.items)
	return out
}

// Page returns the pagination metadata of the last fetch.
func (o *Orders) Page() apiclient.Pagination {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.page
}

// Err returns the last recorded error message.
func (o *Orders) Err() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

func mapOrder(doc orderDoc) Order {
	items := doc.Items
	if items == nil {
		items = []OrderItem{}
	}
	return Order{
		ID:       documentID(doc.DocumentID, doc.ID),
		Customer: doc.Customer,
		Email:    doc.Email,
		Status:   doc.Status,
		Amount:   doc.Amount,
		Date:     doc.Date,
		Items:    items,
	}
}
