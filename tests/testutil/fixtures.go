package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	adaptershttp "github.com/Matthew-Troost/double-entry-ledger/internal/adapter/http"
	"github.com/Matthew-Troost/double-entry-ledger/internal/adapter/http/handler"
	"github.com/Matthew-Troost/double-entry-ledger/internal/adapter/repository/memory"
	"github.com/Matthew-Troost/double-entry-ledger/internal/infrastructure/metrics"
	"github.com/Matthew-Troost/double-entry-ledger/internal/usecase"
)

// App bundles a fully wired service over the in-memory store, exposing both
// the HTTP surface and the use cases underneath it.
type App struct {
	Router    http.Handler
	AccountUC *usecase.AccountUseCase
	EntryUC   *usecase.EntryUseCase
	LedgerUC  *usecase.LedgerUseCase

	t *testing.T
}

// NewApp wires the service the way the server entrypoint does, minus the
// network listener and external dependencies.
func NewApp(t *testing.T) *App {
	t.Helper()

	store := memory.NewStore()
	accountRepo := memory.NewAccountRepository(store)
	transactionRepo := memory.NewTransactionRepository(store)
	entryRepo := memory.NewEntryRepository(store)
	idGen := memory.NewUUIDGenerator()
	m := metrics.New(prometheus.NewRegistry())

	entryUC := usecase.NewEntryUseCase(entryRepo, idGen)
	accountUC := usecase.NewAccountUseCase(accountRepo, entryUC, idGen, m)
	ledgerUC := usecase.NewLedgerUseCase(store, accountUC, entryUC, transactionRepo, idGen, m)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransactionHandler: handler.NewTransactionHandler(ledgerUC),
		EntryHandler:       handler.NewEntryHandler(entryUC),
		HealthHandler:      handler.NewHealthHandler(nil),
		Logger:             zerolog.Nop(),
	})

	return &App{
		Router:    router,
		AccountUC: accountUC,
		EntryUC:   entryUC,
		LedgerUC:  ledgerUC,
		t:         t,
	}
}

// PostJSON sends a JSON POST request through the router.
func (a *App) PostJSON(path string, payload any) *httptest.ResponseRecorder {
	a.t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		a.t.Fatalf("failed to encode payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)

	return rec
}

// Get sends a GET request through the router.
func (a *App) Get(path string) *httptest.ResponseRecorder {
	a.t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)

	return rec
}

// Decode unmarshals a recorded JSON response body into out.
func (a *App) Decode(rec *httptest.ResponseRecorder, out any) {
	a.t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		a.t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

// CreateAccount creates an account through the API and fails the test on
// any non-201 response.
func (a *App) CreateAccount(id, name, direction string) {
	a.t.Helper()

	rec := a.PostJSON("/api/v1/accounts/", map[string]string{
		"id":        id,
		"name":      name,
		"direction": direction,
	})
	if rec.Code != http.StatusCreated {
		a.t.Fatalf("failed to create account %s: %d %s", id, rec.Code, rec.Body.String())
	}
}
