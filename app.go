package storekit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/storekit/pkg/apiclient"
	"github.com/dmitrymomot/storekit/pkg/auth"
	"github.com/dmitrymomot/storekit/pkg/cart"
	"github.com/dmitrymomot/storekit/pkg/catalog"
	"github.com/dmitrymomot/storekit/pkg/geo"
	"github.com/dmitrymomot/storekit/pkg/kvstore"
	"github.com/dmitrymomot/storekit/pkg/logger"
	"github.com/dmitrymomot/storekit/pkg/notify"
)

// App is the composition root. Every collaborator is an exported field
// so callers reach features directly: app.Cart, app.Auth, app.Products.
type App struct {
	Logger   *slog.Logger
	Client   *apiclient.Client
	KV       *kvstore.Scoped
	Notifier *notify.Hub

	Auth *auth.Manager
	Cart *cart.Cart

	Products      *catalog.Products
	Categories    *catalog.Categories
	Professionals *catalog.Professionals
	Customers     *catalog.Customers
	Orders        *catalog.Orders
	Search        *catalog.Search

	Italy *geo.Italy
	World *geo.World

	durable kvstore.Store
	session kvstore.Store
}

// Option overrides a default collaborator before wiring.
type Option func(*options)

type options struct {
	log        *slog.Logger
	durable    kvstore.Store
	session    kvstore.Store
	httpClient *http.Client
}

// WithLogger sets the logger shared by all components.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithDurableStore replaces the file-backed durable scope, e.g. with a
// redis store in multi-process deployments.
func WithDurableStore(s kvstore.Store) Option {
	return func(o *options) {
		o.durable = s
	}
}

// WithSessionStore replaces the in-memory session scope.
func WithSessionStore(s kvstore.Store) Option {
	return func(o *options) {
		o.session = s
	}
}

// WithHTTPClient replaces the HTTP client used for backend requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// New wires an App from cfg. The returned App is ready for queries;
// call Init to hydrate cart, session and geo state from storage and
// the backend.
func New(cfg Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	log := o.log
	if log == nil {
		log = logger.Discard()
	}

	durable := o.durable
	if durable == nil {
		fs, err := kvstore.NewFileStore(cfg.StateFile)
		if err != nil {
			return nil, err
		}
		durable = fs
	}
	session := o.session
	if session == nil {
		session = kvstore.NewMemoryStore()
	}
	scoped := kvstore.NewScoped(durable, session)

	hub := notify.NewHub(notify.WithHubLogger(log))

	// The client needs the session token before the auth manager
	// exists, so the token source closes over the manager variable
	// assigned below.
	var mgr *auth.Manager
	clientOpts := []apiclient.Option{
		apiclient.WithLogger(log),
		apiclient.WithTokenSource(func(ctx context.Context) string {
			if mgr == nil {
				return ""
			}
			return mgr.Token()
		}),
	}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, apiclient.WithHTTPClient(o.httpClient))
	}
	client, err := apiclient.New(cfg.API, clientOpts...)
	if err != nil {
		return nil, err
	}
	mgr = auth.New(client, scoped, auth.WithLogger(log))

	app := &App{
		Logger:   log,
		Client:   client,
		KV:       scoped,
		Notifier: hub,
		Auth:     mgr,
		Cart: cart.New(
			cart.WithNotifier(hub),
			cart.WithStorage(scoped, cfg.CartKey),
			cart.WithUndoWindow(cfg.UndoWindow),
			cart.WithLogger(log),
		),
		Products:      catalog.NewProducts(client, catalog.WithProductsLogger(log)),
		Categories:    catalog.NewCategories(client, catalog.WithCategoriesLogger(log)),
		Professionals: catalog.NewProfessionals(client, catalog.WithProfessionalsLogger(log)),
		Customers:     catalog.NewCustomers(client, catalog.WithCustomersLogger(log)),
		Orders:        catalog.NewOrders(client, catalog.WithOrdersLogger(log)),
		Search:        catalog.NewSearch(),
		Italy: geo.NewItaly(
			geo.WithItalyRemote(cfg.API.BaseURL),
			geo.WithItalyLocalFile(cfg.ComuniFile),
			geo.WithItalyLogger(log),
		),
		World: geo.NewWorld(
			geo.WithWorldLocalFile(cfg.CountryFile),
			geo.WithWorldLogger(log),
		),
		durable: durable,
		session: session,
	}
	return app, nil
}

// Init hydrates startup state: the persisted cart snapshot, the saved
// auth session and the geo datasets. Each step is independent and
// non-fatal; the joined error reports what was skipped.
func (a *App) Init(ctx context.Context) error {
	var errs []error
	if err := a.Cart.Restore(ctx); err != nil {
		a.Logger.WarnContext(ctx, "cart snapshot not restored", logger.Error(err))
		errs = append(errs, err)
	}
	a.Auth.InitAuth(ctx)
	if err := a.Italy.Init(ctx); err != nil {
		a.Logger.WarnContext(ctx, "italian geo data unavailable", logger.Error(err))
		errs = append(errs, err)
	}
	if err := a.World.Init(ctx); err != nil {
		a.Logger.WarnContext(ctx, "country data unavailable", logger.Error(err))
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Close releases timers and store connections. The App must not be
// used afterwards.
func (a *App) Close() error {
	a.Cart.Close()
	var errs []error
	for _, s := range []kvstore.Store{a.durable, a.session} {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
