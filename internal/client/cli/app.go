package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/knothost/siteapi/internal/client/api"
	"github.com/knothost/siteapi/internal/client/config"
)

// apiClient is the server surface the CLI needs; *api.Client satisfies it.
type apiClient interface {
	Signup(ctx context.Context, req api.SignupRequest) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Forgot(ctx context.Context, email string) (string, error)
	CheckEmail(ctx context.Context, email string) (bool, error)
	Reset(ctx context.Context, email, password string) error
	Me(ctx context.Context, token string) (*api.Profile, error)
	Contact(ctx context.Context, req api.ContactRequest) (*api.ContactResult, error)
}

// sessionStore remembers the login between runs; *session.Store satisfies it.
type sessionStore interface {
	Load(ctx context.Context) (email, token string, err error)
	Save(ctx context.Context, email, token string) error
	Clear(ctx context.Context) error
}

type App struct {
	config *config.Config
	api    apiClient
	store  sessionStore
	reader *bufio.Reader
	out    io.Writer
	token  string
	email  string
}

// NewApp builds the CLI. store may be nil, in which case logins last only for
// the current run. A token from configuration wins over a stored session.
func NewApp(ctx context.Context, c *config.Config, store sessionStore) *App {
	a := &App{
		config: c,
		api:    api.NewClient(c.ServerURL, c.RequestTimeout),
		store:  store,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		token:  c.Token,
	}

	if a.token == "" && store != nil {
		email, token, err := store.Load(ctx)
		if err != nil {
			fmt.Fprintf(a.out, "Warning: could not load saved session: %v\n", err)
		} else {
			a.email, a.token = email, token
		}
	}

	return a
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "KnotHost CLI, server %s (type 'help' for commands)\n", a.config.ServerURL)
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) status() string {
	switch {
	case a.email != "":
		return a.email
	case a.token != "":
		return "token"
	default:
		return "anonymous"
	}
}

// report prints a command failure in user terms and returns err unchanged.
func (a *App) report(err error) error {
	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr):
		fmt.Fprintf(a.out, "Error: %s\n", apiErr.Error())
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Error: server unavailable")
	default:
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
	return err
}
