package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/knothost/siteapi/internal/client/api"
	"github.com/knothost/siteapi/internal/client/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	signupReq api.SignupRequest
	loginUser string
	loginPass string
	meToken   string
	resetPass string
	contact   api.ContactRequest

	token  string
	exists bool
	err    error
}

func (f *fakeAPI) Signup(_ context.Context, req api.SignupRequest) (string, error) {
	f.signupReq = req
	return "User created. Confirmation email sent.", f.err
}
func (f *fakeAPI) Login(_ context.Context, email, password string) (string, error) {
	f.loginUser, f.loginPass = email, password
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}
func (f *fakeAPI) Forgot(context.Context, string) (string, error) {
	return "If the email exists, a reset link has been sent.", f.err
}
func (f *fakeAPI) CheckEmail(context.Context, string) (bool, error) { return f.exists, f.err }
func (f *fakeAPI) Reset(_ context.Context, _, password string) error {
	f.resetPass = password
	return f.err
}
func (f *fakeAPI) Me(_ context.Context, token string) (*api.Profile, error) {
	f.meToken = token
	if f.err != nil {
		return nil, f.err
	}
	return &api.Profile{Email: "jane@x.com", FirstName: "Jane", LastName: "Doe"}, nil
}
func (f *fakeAPI) Contact(_ context.Context, req api.ContactRequest) (*api.ContactResult, error) {
	f.contact = req
	if f.err != nil {
		return nil, f.err
	}
	return &api.ContactResult{Success: true, Message: "Request received.", ID: "m-1"}, nil
}

// stubInputs answers text prompts from lines in order and every password
// prompt with password.
func stubInputs(t *testing.T, password string, lines ...string) {
	t.Helper()
	origST, origGP, origML := getSimpleText, getPassword, getMultiline

	next := func() string {
		if len(lines) == 0 {
			return ""
		}
		l := lines[0]
		lines = lines[1:]
		return l
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }

	t.Cleanup(func() { getSimpleText, getPassword, getMultiline = origST, origGP, origML })
}

type fakeStore struct {
	email, token string
	cleared      bool
	err          error
}

func (s *fakeStore) Load(context.Context) (string, string, error) { return s.email, s.token, s.err }
func (s *fakeStore) Save(_ context.Context, email, token string) error {
	if s.err != nil {
		return s.err
	}
	s.email, s.token = email, token
	return nil
}
func (s *fakeStore) Clear(context.Context) error {
	if s.err != nil {
		return s.err
	}
	s.email, s.token, s.cleared = "", "", true
	return nil
}

func newTestApp(f *fakeAPI) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{config: &config.Config{}, api: f, reader: bufio.NewReader(strings.NewReader("")), out: &out}, &out
}

func TestSignup(t *testing.T) {
	stubInputs(t, "Secret1!", "Jane", "Doe", "jane@x.com")
	f := &fakeAPI{}
	a, out := newTestApp(f)

	require.NoError(t, a.Signup(context.Background()))
	assert.Equal(t, api.SignupRequest{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com", Password: "Secret1!"}, f.signupReq)
	assert.Contains(t, out.String(), "User created")
}

func TestLoginMeLogout(t *testing.T) {
	stubInputs(t, "Secret1!", "jane@x.com")
	f := &fakeAPI{token: "tok"}
	a, out := newTestApp(f)
	ctx := context.Background()

	require.ErrorIs(t, a.Me(ctx), errNotLoggedIn)

	require.NoError(t, a.Login(ctx))
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "jane@x.com", a.status())

	require.NoError(t, a.Me(ctx))
	assert.Equal(t, "tok", f.meToken)
	assert.Contains(t, out.String(), "Jane Doe <jane@x.com>")

	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "anonymous", a.status())
}

func TestLogin_ServerMessageShown(t *testing.T) {
	stubInputs(t, "wrong", "jane@x.com")
	f := &fakeAPI{err: &api.APIError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}}
	a, out := newTestApp(f)

	err := a.Login(context.Background())
	require.Error(t, err)
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Error: Invalid credentials")
}

func TestForgotCheckReset(t *testing.T) {
	stubInputs(t, "N3w!", "jane@x.com", "jane@x.com", "jane@x.com")
	f := &fakeAPI{exists: true}
	a, out := newTestApp(f)
	ctx := context.Background()

	require.NoError(t, a.Forgot(ctx))
	require.NoError(t, a.CheckEmail(ctx))
	require.NoError(t, a.Reset(ctx))

	assert.Equal(t, "N3w!", f.resetPass)
	s := out.String()
	assert.Contains(t, s, "If the email exists")
	assert.Contains(t, s, "Email is registered")
	assert.Contains(t, s, "Password updated")
}

func TestContact(t *testing.T) {
	stubInputs(t, "", "Bob", "bob@x.com", "", "New deck")
	f := &fakeAPI{}
	a, out := newTestApp(f)

	require.NoError(t, a.Contact(context.Background()))
	assert.Equal(t, api.ContactRequest{Name: "Bob", Email: "bob@x.com", Details: "New deck"}, f.contact)
	assert.Contains(t, out.String(), "reference m-1")
}

func TestReportUnavailable(t *testing.T) {
	stubInputs(t, "", "jane@x.com")
	a, out := newTestApp(&fakeAPI{err: errors.Join(api.ErrUnavailable, errors.New("dial tcp"))})

	require.Error(t, a.CheckEmail(context.Background()))
	assert.Contains(t, out.String(), "Error: server unavailable")
}

func TestNewApp_UsesConfigToken(t *testing.T) {
	store := &fakeStore{email: "old@x.com", token: "stored"}
	a := NewApp(context.Background(), &config.Config{ServerURL: "http://localhost:4000", RequestTimeout: time.Second, Token: "env-token"}, store)
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "token", a.status())
	assert.Equal(t, "env-token", a.token)
}

func TestNewApp_RestoresStoredSession(t *testing.T) {
	store := &fakeStore{email: "jane@x.com", token: "stored"}
	a := NewApp(context.Background(), &config.Config{ServerURL: "http://localhost:4000", RequestTimeout: time.Second}, store)
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "jane@x.com", a.status())
}

func TestNewApp_NilStore(t *testing.T) {
	a := NewApp(context.Background(), &config.Config{ServerURL: "http://localhost:4000", RequestTimeout: time.Second}, nil)
	assert.False(t, a.isLoggedIn())
}

func TestLoginLogout_PersistSession(t *testing.T) {
	stubInputs(t, "Secret1!", "jane@x.com")
	store := &fakeStore{}
	a, _ := newTestApp(&fakeAPI{token: "tok"})
	a.store = store
	ctx := context.Background()

	require.NoError(t, a.Login(ctx))
	assert.Equal(t, "jane@x.com", store.email)
	assert.Equal(t, "tok", store.token)

	require.NoError(t, a.Logout(ctx))
	assert.True(t, store.cleared)
	assert.Empty(t, store.token)
}

func TestLogin_StoreFailureIsWarning(t *testing.T) {
	stubInputs(t, "Secret1!", "jane@x.com")
	a, out := newTestApp(&fakeAPI{token: "tok"})
	a.store = &fakeStore{err: errors.New("disk full")}

	require.NoError(t, a.Login(context.Background()))
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Warning: session not saved")
}
