package credential

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforge/appforge/internal/credstore"
	"github.com/appforge/appforge/internal/platform/turso"
	"github.com/appforge/appforge/internal/provisioning"
)

type nopObserver struct{}

func (o *nopObserver) Printf(_ string, _ ...interface{}) {}
func (o *nopObserver) Event(_ provisioning.Event)        {}

// memStore is an in-memory credential store.
type memStore struct {
	doc     map[string]any
	saves   int
	loadErr error
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{doc: map[string]any{}}
}

func (s *memStore) Load() (string, map[string]any, error) {
	if s.loadErr != nil {
		return "", nil, s.loadErr
	}
	// Copy so the manager mutates its own view until Save.
	doc := map[string]any{}
	for k, v := range s.doc {
		doc[k] = v
	}
	return "mem", doc, nil
}

func (s *memStore) Save(_ string, doc map[string]any) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.doc = doc
	return nil
}

func (s *memStore) storedToken(t *testing.T) string {
	t.Helper()
	token, _ := credstore.AccessKey(s.doc, credstore.SectionTurso)
	return token
}

func (s *memStore) setToken(token string) {
	credstore.SetAccessKey(s.doc, credstore.SectionTurso, token)
}

// fakeCLI scripts the turso CLI.
type fakeCLI struct {
	loggedIn  bool
	token     string
	statusErr error
	tokenErr  error
}

func (c *fakeCLI) AuthStatus(_ context.Context) (bool, error) {
	if c.statusErr != nil {
		return false, c.statusErr
	}
	return c.loggedIn, nil
}

func (c *fakeCLI) AuthToken(_ context.Context) (string, error) {
	if c.tokenErr != nil {
		return "", c.tokenErr
	}
	return c.token, nil
}

// fakeAPI records platform token calls. validateErrs maps bearer token to
// the validation result for a client bound to that token.
type fakeAPI struct {
	boundToken string
	shared     *apiState
}

type apiState struct {
	validateErrs map[string]error
	existing     []turso.APIToken
	mintedToken  string
	listErr      error
	revokeErr    error
	createErr    error

	validateCalls int
	listCalls     int
	revokeCalls   []string
	createCalls   []string
}

func (a *fakeAPI) ValidateToken(_ context.Context) error {
	a.shared.validateCalls++
	return a.shared.validateErrs[a.boundToken]
}

func (a *fakeAPI) ListTokens(_ context.Context) ([]turso.APIToken, error) {
	a.shared.listCalls++
	return a.shared.existing, a.shared.listErr
}

func (a *fakeAPI) CreateToken(_ context.Context, name string) (*turso.CreatedToken, error) {
	a.shared.createCalls = append(a.shared.createCalls, name)
	if a.shared.createErr != nil {
		return nil, a.shared.createErr
	}
	return &turso.CreatedToken{Name: name, ID: "id", Token: a.shared.mintedToken}, nil
}

func (a *fakeAPI) RevokeToken(_ context.Context, name string) error {
	a.shared.revokeCalls = append(a.shared.revokeCalls, name)
	return a.shared.revokeErr
}

func newTestManager(store Store, cli LoginCLI, state *apiState) *Manager {
	m := NewManagerWith(store, cli, func(token string) PlatformAPI {
		return &fakeAPI{boundToken: token, shared: state}
	}, &nopObserver{})
	m.tokenName = "appforge-test-host"
	return m
}

func unauthorized() error {
	return &turso.APIError{StatusCode: http.StatusUnauthorized}
}

func TestEnsureReusesValidToken(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.setToken("stored-token")
	state := &apiState{validateErrs: map[string]error{"stored-token": nil}}
	m := newTestManager(store, &fakeCLI{}, state)

	res, err := m.Ensure(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusReused, res.Status)
	assert.Equal(t, "stored-token", res.Token)

	// Idempotent reuse: no mint or revoke network call occurred.
	assert.Empty(t, state.createCalls)
	assert.Empty(t, state.revokeCalls)
	assert.Zero(t, state.listCalls)
	assert.Zero(t, store.saves)
}

func TestEnsureUnknownValidationLeavesTokenUntouched(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.setToken("stored-token")
	state := &apiState{validateErrs: map[string]error{"stored-token": errors.New("connection refused")}}
	m := newTestManager(store, &fakeCLI{loggedIn: true, token: "mgmt"}, state)

	_, err := m.Ensure(context.Background(), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not validate")

	// No regeneration and the stored token survives.
	assert.Empty(t, state.createCalls)
	assert.Empty(t, state.revokeCalls)
	assert.Equal(t, "stored-token", store.storedToken(t))
}

func TestEnsureInvalidTokenRegeneratesOnce(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.setToken("expired-token")
	state := &apiState{
		validateErrs: map[string]error{"expired-token": unauthorized()},
		existing:     []turso.APIToken{{Name: "appforge-test-host", ID: "old"}},
		mintedToken:  "fresh-token",
	}
	m := newTestManager(store, &fakeCLI{loggedIn: true, token: "mgmt"}, state)

	res, err := m.Ensure(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusGenerated, res.Status)
	assert.Equal(t, "fresh-token", res.Token)

	// Exactly one revoke+create cycle.
	assert.Equal(t, []string{"appforge-test-host"}, state.revokeCalls)
	assert.Equal(t, []string{"appforge-test-host"}, state.createCalls)
	assert.Equal(t, "fresh-token", store.storedToken(t))
	assert.Equal(t, 1, store.saves)
}

func TestEnsureNoStaleTokenSkipsRevoke(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	state := &apiState{
		existing:    []turso.APIToken{{Name: "someone-elses-token", ID: "x"}},
		mintedToken: "fresh-token",
	}
	m := newTestManager(store, &fakeCLI{loggedIn: true, token: "mgmt"}, state)

	res, err := m.Ensure(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusGenerated, res.Status)
	assert.Empty(t, state.revokeCalls)
}

func TestEnsureMintFailureLeavesStoredTokenIntact(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.setToken("expired-token")
	state := &apiState{
		validateErrs: map[string]error{"expired-token": unauthorized()},
		createErr:    errors.New("rate limited"),
	}
	m := newTestManager(store, &fakeCLI{loggedIn: true, token: "mgmt"}, state)

	_, err := m.Ensure(context.Background(), Options{})
	require.Error(t, err)

	// No lost-token window: the old token is still persisted.
	assert.Equal(t, "expired-token", store.storedToken(t))
	assert.Zero(t, store.saves)
}

func TestEnsureLoginRequired(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	state := &apiState{}
	m := newTestManager(store, &fakeCLI{loggedIn: false}, state)

	res, err := m.Ensure(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusLoginRequired, res.Status)
	assert.Empty(t, res.Token)
	assert.Empty(t, state.createCalls)
}

func TestEnsureToolNotInstalled(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	m := newTestManager(store, &fakeCLI{statusErr: turso.ErrToolNotInstalled}, &apiState{})

	_, err := m.Ensure(context.Background(), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, turso.ErrToolNotInstalled)
}

func TestEnsureEmptyCLITokenIsFatal(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	m := newTestManager(store, &fakeCLI{loggedIn: true, token: ""}, &apiState{})

	_, err := m.Ensure(context.Background(), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestEnsureEmptyMintedTokenIsFatal(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	state := &apiState{mintedToken: ""}
	m := newTestManager(store, &fakeCLI{loggedIn: true, token: "mgmt"}, state)

	_, err := m.Ensure(context.Background(), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyToken)
	assert.Zero(t, store.saves)
}

// TestEnsureLifecycleScenario walks the full first-run story: no token and
// logged out, then logged in, then a warm third run reusing the minted
// token with no further token-lifecycle calls.
func TestEnsureLifecycleScenario(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	cli := &fakeCLI{loggedIn: false}
	state := &apiState{mintedToken: "minted-token"}
	m := newTestManager(store, cli, state)

	// Run 1: fresh machine, not logged in.
	res, err := m.Ensure(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusLoginRequired, res.Status)
	assert.Empty(t, store.storedToken(t))

	// User logs in externally.
	cli.loggedIn = true
	cli.token = "mgmt"

	// Run 2: token minted and persisted.
	state.validateErrs = map[string]error{"minted-token": nil}
	res, err = m.Ensure(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusGenerated, res.Status)
	assert.Equal(t, "minted-token", store.storedToken(t))

	createsAfterRun2 := len(state.createCalls)
	listsAfterRun2 := state.listCalls

	// Run 3: warm start reuses the identical token with zero additional
	// token-lifecycle API calls.
	res, err = m.Ensure(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusReused, res.Status)
	assert.Equal(t, "minted-token", res.Token)
	assert.Len(t, state.createCalls, createsAfterRun2)
	assert.Equal(t, listsAfterRun2, state.listCalls)
}

func TestValidityString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "valid", Valid.String())
	assert.Equal(t, "invalid", Invalid.String())
	assert.Equal(t, "unknown", Unknown.String())
}
