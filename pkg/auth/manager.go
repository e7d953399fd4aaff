package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/storekit/pkg/apiclient"
	"github.com/dmitrymomot/storekit/pkg/kvstore"
	"github.com/dmitrymomot/storekit/pkg/logger"
)

// Fixed persistence keys. Exactly one scope holds each at any time.
const (
	tokenKey = "auth_token"
	userKey  = "auth_user"
)

// Manager authenticates the user and keeps the session state. Token and
// user are set and cleared together; the only sanctioned intermediate state
// is a token with the minimal inline user while a full profile fetch is in
// flight.
type Manager struct {
	client *apiclient.Client
	store  *kvstore.Scoped
	logger *slog.Logger

	mu      sync.RWMutex
	token   string
	user    *User
	lastErr string
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger for the manager.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.logger = log
		}
	}
}

// New creates a session manager on top of the API client and the scoped
// store.
func New(client *apiclient.Client, store *kvstore.Scoped, opts ...Option) *Manager {
	m := &Manager{
		client: client,
		store:  store,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TokenSource exposes the live token for the API client.
func (m *Manager) TokenSource() apiclient.TokenSource {
	return func(ctx context.Context) string {
		return m.Token()
	}
}

// Token returns the current bearer token, or "" when unauthenticated.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// User returns a copy of the cached profile, or nil.
func (m *Manager) User() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Err returns the user-facing message of the last failed operation, or "".
func (m *Manager) Err() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// IsAdmin reports whether the cached profile carries the admin role.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.IsAdmin()
}

type loginResponse struct {
	JWT  string `json:"jwt"`
	User User   `json:"user"`
}

// Login exchanges credentials for a token. remember selects the durable
// scope, otherwise the session scope; the sibling scope's copy is purged in
// the same write. A failed profile fetch right after the exchange is
// recoverable: the minimal inline user is kept until the next refresh.
// Returns false with a translated Err message on failure; never panics or
// propagates transport errors.
func (m *Manager) Login(ctx context.Context, identifier, password string, remember bool) bool {
	m.setErr("")

	var resp loginResponse
	err := m.client.Post(ctx, "/auth/local", apiclient.JSON(map[string]string{
		"identifier": identifier,
		"password":   password,
	}), &resp)
	if err != nil {
		m.setErr(translateError(backendMessage(err)))
		return false
	}

	scope := kvstore.ScopeSession
	if remember {
		scope = kvstore.ScopeDurable
	}

	m.mu.Lock()
	m.token = resp.JWT
	m.mu.Unlock()

	if err := m.store.Set(ctx, scope, tokenKey, resp.JWT); err != nil {
		m.logger.Warn("failed to persist auth token", logger.Scope(string(scope)), logger.Error(err))
	}

	user := resp.User
	var full User
	if err := m.client.Get(ctx, "/users/me", apiclient.NewParams().Populate("*").Values(), &full); err != nil {
		// Fall back to the minimal user returned by the credential exchange.
		m.logger.Warn("failed to fetch user profile after login", logger.Error(err))
	} else {
		user = full
	}

	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()
	m.persistUser(ctx, scope, &user)

	return true
}

// Registration is the signup payload. Attaching a profile photo or gallery
// switches the request to the backend's multipart protocol; otherwise it
// goes out as JSON.
type Registration struct {
	Name           string
	Surname        string
	Email          string
	Password       string
	Phone          string
	IsProfessional bool
	Skills         []Skill
	ProfilePhoto   *apiclient.FormFile
	Gallery        []apiclient.FormFile
}

// Skill references a category the professional covers.
type Skill struct {
	ID   any    `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Slug string `json:"slug,omitempty"`
}

// Register submits the registration. It does not establish a session: the
// backend requires email confirmation before login. Returns false with a
// translated Err message on failure.
func (m *Manager) Register(ctx context.Context, reg Registration) bool {
	m.setErr("")

	skills, err := json.Marshal(reg.Skills)
	if err != nil {
		skills = []byte("[]")
	}
	payload := map[string]any{
		// The backend keys accounts by username; email doubles as it.
		"username":       reg.Email,
		"email":          reg.Email,
		"password":       reg.Password,
		"name":           reg.Name,
		"surname":        reg.Surname,
		"phone":          reg.Phone,
		"isProfessional": reg.IsProfessional,
		"skills":         string(skills),
	}

	var body apiclient.Body
	if reg.IsProfessional && (reg.ProfilePhoto != nil || len(reg.Gallery) > 0) {
		mp := &apiclient.Multipart{Data: payload}
		if reg.ProfilePhoto != nil {
			photo := *reg.ProfilePhoto
			photo.Field = "files.profilePhoto"
			mp.Files = append(mp.Files, photo)
		}
		for _, g := range reg.Gallery {
			g.Field = "files.gallery"
			mp.Files = append(mp.Files, g)
		}
		body = mp
	} else {
		body = apiclient.JSON(payload)
	}

	if err := m.client.Post(ctx, "/auth/custom-register", body, nil); err != nil {
		m.setErr(translateError(backendMessage(err)))
		return false
	}
	return true
}

// Logout clears the in-memory session and both storage scopes
// unconditionally.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.lastErr = ""
	m.mu.Unlock()

	if err := m.store.Clear(ctx, tokenKey, userKey); err != nil {
		m.logger.Warn("failed to clear persisted session", logger.Error(err))
	}
}

// FetchUser refreshes the cached profile from the backend. On failure the
// cached profile is left unchanged and the error is returned; a backend
// token rejection is surfaced, not acted upon.
func (m *Manager) FetchUser(ctx context.Context) error {
	var full User
	if err := m.client.Get(ctx, "/users/me", apiclient.NewParams().Populate("*").Values(), &full); err != nil {
		m.logger.Warn("failed to fetch user profile", logger.Error(err))
		return err
	}

	m.mu.Lock()
	m.user = &full
	m.mu.Unlock()

	// Persist next to wherever the token currently lives.
	if _, scope, err := m.store.Get(ctx, tokenKey); err == nil {
		m.persistUser(ctx, scope, &full)
	}
	return nil
}

// UpdateUser patches the profile and then refetches it, trusting the server
// copy over the patch response for derived fields. Returns false when no
// user is cached or the backend rejects the patch.
func (m *Manager) UpdateUser(ctx context.Context, patch map[string]any) bool {
	current := m.User()
	if current == nil {
		return false
	}

	if err := m.client.Put(ctx, fmt.Sprintf("/users/%d", current.ID), apiclient.JSON(patch), nil); err != nil {
		m.setErr(backendMessage(err))
		return false
	}

	if err := m.FetchUser(ctx); err != nil {
		m.logger.Warn("profile refresh after update failed", logger.Error(err))
	}
	return true
}

// InitAuth hydrates session state on process start: the token is read from
// whichever scope holds one (durable first), the stored profile snapshot is
// applied optimistically, then a profile refresh reconciles staleness.
func (m *Manager) InitAuth(ctx context.Context) {
	token, _, err := m.store.Get(ctx, tokenKey)
	if err != nil {
		return
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	if raw, _, err := m.store.Get(ctx, userKey); err == nil {
		var u User
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			m.mu.Lock()
			m.user = &u
			m.mu.Unlock()
		}
	}

	// Best effort: a failure keeps the optimistic snapshot.
	_ = m.FetchUser(ctx)
}

func (m *Manager) setErr(msg string) {
	m.mu.Lock()
	m.lastErr = msg
	m.mu.Unlock()
}

func (m *Manager) persistUser(ctx context.Context, scope kvstore.Scope, u *User) {
	data, err := json.Marshal(u)
	if err != nil {
		m.logger.Warn("failed to serialize user profile", logger.Error(err))
		return
	}
	if err := m.store.Set(ctx, scope, userKey, string(data)); err != nil {
		m.logger.Warn("failed to persist user profile", logger.Scope(string(scope)), logger.Error(err))
	}
}

// backendMessage extracts the structured backend message from an error
// chain, or "" when the failure never reached the backend.
func backendMessage(err error) string {
	if apiErr, ok := apiclient.IsAPIError(err); ok {
		return apiErr.Message
	}
	return ""
}
