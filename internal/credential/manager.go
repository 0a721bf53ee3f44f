package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/appforge/appforge/internal/credstore"
	"github.com/appforge/appforge/internal/platform/turso"
	"github.com/appforge/appforge/internal/provisioning"
	"github.com/appforge/appforge/internal/util/naming"
)

// Status is the terminal state of one Ensure call.
type Status string

const (
	// StatusReused means the stored token validated and was returned as is.
	StatusReused Status = "reused"
	// StatusGenerated means a fresh token was minted and persisted.
	StatusGenerated Status = "generated"
	// StatusLoginRequired means the user must log in through the CLI
	// before provisioning can proceed. Not an error: a pause point.
	StatusLoginRequired Status = "login-required"
)

// ErrEmptyToken indicates the CLI reported a logged-in session but returned
// no token. Fatal, and distinct from not being logged in.
var ErrEmptyToken = errors.New("turso CLI returned an empty token")

// Result is the outcome of Ensure. Token is set for reused and generated.
type Result struct {
	Status Status
	Token  string
}

// PlatformAPI is the token-lifecycle slice of the platform client.
type PlatformAPI interface {
	ValidateToken(ctx context.Context) error
	ListTokens(ctx context.Context) ([]turso.APIToken, error)
	CreateToken(ctx context.Context, name string) (*turso.CreatedToken, error)
	RevokeToken(ctx context.Context, name string) error
}

// LoginCLI is the CLI slice the manager drives for login probing.
type LoginCLI interface {
	AuthStatus(ctx context.Context) (bool, error)
	AuthToken(ctx context.Context) (string, error)
}

// Store abstracts the persisted credential file.
type Store interface {
	Load() (path string, doc map[string]any, err error)
	Save(path string, doc map[string]any) error
}

// FileStore is the production Store backed by the per-user config file.
type FileStore struct{}

func (FileStore) Load() (string, map[string]any, error)      { return credstore.Load() }
func (FileStore) Save(path string, doc map[string]any) error { return credstore.Save(path, doc) }

// Options configures one Ensure call.
type Options struct {
	// SuppressPrompts silences the instructional login message.
	SuppressPrompts bool
}

// Manager drives the credential lifecycle. All collaborators are injected;
// no process-wide token cache exists, so concurrent test harness runs
// never leak state between them.
type Manager struct {
	store     Store
	cli       LoginCLI
	api       func(token string) PlatformAPI
	observer  provisioning.Observer
	tokenName string
}

// NewManager creates a credential manager using the production
// collaborators.
func NewManager(observer provisioning.Observer) *Manager {
	return &Manager{
		store:    FileStore{},
		cli:      turso.NewCLI(),
		api:      func(token string) PlatformAPI { return turso.NewClient(token) },
		observer: observer,
	}
}

// NewManagerWith creates a fully injected manager. Used in tests and by
// callers that override the API endpoint.
func NewManagerWith(store Store, cli LoginCLI, api func(token string) PlatformAPI, observer provisioning.Observer) *Manager {
	return &Manager{store: store, cli: cli, api: api, observer: observer}
}

// TokenName returns the deterministic scoped token name for this host.
func (m *Manager) TokenName() string {
	if m.tokenName == "" {
		m.tokenName = naming.TokenName()
	}
	return m.tokenName
}

// Ensure returns a usable platform token, reusing the stored one when it
// still validates and minting a fresh one otherwise.
//
// Terminal states: reused, generated, login-required, or an error. There
// is no retry loop here; the caller decides whether to re-invoke.
func (m *Manager) Ensure(ctx context.Context, opts Options) (*Result, error) {
	path, doc, err := m.store.Load()
	if err != nil {
		return nil, err
	}

	if stored, ok := credstore.AccessKey(doc, credstore.SectionTurso); ok {
		switch v := m.validate(ctx, stored); v.Validity {
		case Valid:
			// Idempotent reuse: no mint or revoke call happens.
			m.observer.Printf("Reusing stored platform token")
			return &Result{Status: StatusReused, Token: stored}, nil
		case Unknown:
			// A possibly-valid token must never be destroyed on a
			// transient failure.
			return nil, fmt.Errorf("could not validate stored token: %w", v.Err)
		case Invalid:
			m.observer.Printf("Stored platform token is no longer valid, regenerating")
		}
	}

	management, res, err := m.login(ctx, opts)
	if err != nil || res != nil {
		return res, err
	}

	token, err := m.recreateToken(ctx, management)
	if err != nil {
		return nil, err
	}

	// Persist only after a successful mint: the old token stays in the
	// file until the new one exists, so there is no lost-token window.
	credstore.SetAccessKey(doc, credstore.SectionTurso, token)
	if err := m.store.Save(path, doc); err != nil {
		return nil, fmt.Errorf("failed to persist new token: %w", err)
	}

	m.observer.Printf("Generated new platform token %q", m.TokenName())
	return &Result{Status: StatusGenerated, Token: token}, nil
}

// login probes the CLI session and returns a management-scoped token.
// A non-nil Result short-circuits Ensure with the login-required outcome.
func (m *Manager) login(ctx context.Context, opts Options) (string, *Result, error) {
	loggedIn, err := m.cli.AuthStatus(ctx)
	if err != nil {
		// Missing binary surfaces here as ErrToolNotInstalled.
		return "", nil, err
	}

	if !loggedIn {
		if !opts.SuppressPrompts {
			m.observer.Printf("You are not logged in to Turso. Run `turso auth login` and retry.")
		}
		return "", &Result{Status: StatusLoginRequired}, nil
	}

	management, err := m.cli.AuthToken(ctx)
	if err != nil {
		return "", nil, err
	}
	if management == "" {
		return "", nil, ErrEmptyToken
	}
	return management, nil, nil
}

// recreateToken revokes any token under the deterministic scoped name and
// mints a new one. Control-plane errors leave no torn state: nothing is
// persisted until the mint succeeds.
func (m *Manager) recreateToken(ctx context.Context, management string) (string, error) {
	api := m.api(management)
	name := m.TokenName()

	tokens, err := api.ListTokens(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list platform tokens: %w", err)
	}

	for _, tok := range tokens {
		if tok.Name != name {
			continue
		}
		if err := api.RevokeToken(ctx, name); err != nil {
			return "", fmt.Errorf("failed to revoke stale token %q: %w", name, err)
		}
		m.observer.Printf("Revoked stale platform token %q", name)
		break
	}

	created, err := api.CreateToken(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to mint platform token %q: %w", name, err)
	}
	if created.Token == "" {
		return "", ErrEmptyToken
	}
	return created.Token, nil
}
