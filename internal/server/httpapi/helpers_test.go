package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/knothost/siteapi/internal/logging"
	"github.com/knothost/siteapi/internal/server/auth"
	"github.com/knothost/siteapi/internal/server/repositories/memory"
	"github.com/knothost/siteapi/internal/server/services"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	handler http.Handler
	repos   *memory.RepositoryManager
	tokens  *auth.JWTIssuer
	mock    sqlmock.Sqlmock
}

// newTestEnv wires the real services over in-memory repositories. The
// sqlmock DB expects nothing, so any stray SQL fails ExpectationsWereMet.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repos := memory.NewRepositoryManager()
	tokens := auth.NewJWTIssuer([]byte("test-secret"), time.Hour)
	logger := logging.Nop()

	us := services.NewUserService(db, repos, auth.NewBcryptHasher(bcrypt.MinCost), tokens, services.NewLogMailer(logger), logger)
	cs := services.NewContactService(db, repos, logger)

	srv := NewServer(Options{AllowedOrigins: []string{"http://localhost:5173"}}, logger, us, cs)
	return &testEnv{handler: srv.Handler(), repos: repos, tokens: tokens, mock: mock}
}

func do(t *testing.T, h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}
