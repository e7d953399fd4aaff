package catalog

import (
	"context"
	"log/slog"
	"net/url"
	"sync"

	"github.com/dmitrymomot/storekit/pkg/apiclient"
	"github.com/dmitrymomot/storekit/pkg/logger"
)

type professionalDoc struct {
	ID           int        `json:"id"`
	DocumentID   string     `json:"documentId"`
	Name         string     `json:"name"`
	City         string     `json:"city"`
	ProfilePhoto *mediaDoc  `json:"profilePhoto"`
	Gallery      []mediaDoc `json:"gallery"`
	Skills       []struct {
		ID         int    `json:"id"`
		DocumentID string `json:"documentId"`
		Name       string `json:"name"`
		Slug       string `json:"slug"`
	} `json:"skills"`
	User *struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
}

// Professionals fetches the professionals directory page by page.
type Professionals struct {
	client *apiclient.Client
	log    *slog.Logger

	mu      sync.Mutex
	items   []Professional
	page    apiclient.Pagination
	lastErr string
}

// ProfessionalsOption configures a Professionals service.
type ProfessionalsOption func(*Professionals)

// WithProfessionalsLogger sets the logger used for fetch failures.
func WithProfessionalsLogger(log *slog.Logger) ProfessionalsOption {
	return func(p *Professionals) {
		if log != nil {
			p.log = log.With(logger.Component("catalog.professionals"))
		}
	}
}

// NewProfessionals creates a professionals service on top of client.
func NewProfessionals(client *apiclient.Client, opts ...ProfessionalsOption) *Professionals {
	p := &Professionals{
		client: client,
		log:    logger.Discard(),
		page:   apiclient.Pagination{Page: 1, PageSize: 25, PageCount: 1},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fetch loads one directory page. Extra query values, typically city or
// skill filters, are merged before the populate and pagination keys.
// The stored pagination is replaced wholesale by the response metadata.
func (p *Professionals) Fetch(ctx context.Context, page, pageSize int, extra url.Values) error {
	query := url.Values{}
	for k, vs := range extra {
		query[k] = append([]string(nil), vs...)
	}
	for k, vs := range apiclient.NewParams().
		Populate("user", "skills", "profilePhoto", "gallery").
		Paginate(page, pageSize).
		Values() {
		query[k] = vs
	}

	var env apiclient.Envelope[[]professionalDoc]
	err := p.client.Get(ctx, "/professionals", query, &env)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.lastErr = "Impossibile caricare i professionisti."
		p.log.ErrorContext(ctx, "fetch professionals", logger.Error(err))
		return err
	}
	items := make([]Professional, 0, len(env.Data))
	for _, doc := range env.Data {
		items = append(items, p.mapProfessional(doc))
	}
	p.items = items
	p.page = env.Meta.Pagination
	p.lastErr = ""
	return nil
}

// Items returns a copy of the last fetched page.
func (p *Professionals) Items() []Professional {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Professional, len(p.items))
	copy(out, p.items)
	return out
}

// Page returns the pagination metadata of the last fetch.
func (p *Professionals) Page() apiclient.Pagination {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// Err returns the last recorded error message.
func (p *Professionals) Err() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *Professionals) mapProfessional(doc professionalDoc) Professional {
	name := "Professionista"
	if doc.Name != "" {
		name = doc.Name
	} else if doc.User != nil && doc.User.Username != "" {
		name = doc.User.Username
	}

	photo := ""
	if doc.ProfilePhoto != nil {
		photo = p.client.MediaURL(doc.ProfilePhoto.URL)
	}

	gallery := make([]string, 0, len(doc.Gallery))
	for _, g := range doc.Gallery {
		if resolved := p.client.MediaURL(g.URL); resolved != "" {
			gallery = append(gallery, resolved)
		}
	}

	skills := make([]CategoryRef, 0, len(doc.Skills))
	for _, s := range doc.Skills {
		skills = append(skills, CategoryRef{Slug: s.Slug, Name: s.Name})
	}

	out := Professional{
		ID:           documentID(doc.DocumentID, doc.ID),
		Name:         name,
		City:         doc.City,
		ProfilePhoto: photo,
		Gallery:      gallery,
		Skills:       skills,
	}
	if doc.User != nil {
		out.Username = doc.User.Username
		out.Email = doc.User.Email
	}
	return out
}
