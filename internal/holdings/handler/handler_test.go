package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bondbuy/internal/bonds"
	"bondbuy/internal/holdings"
	"bondbuy/pkg/testutil"
)

const (
	testWallet = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"
	testTxHash = "5KtP3mW8qRvN2xLx4yBhZjUcGdEaFsT1oI9nM6pQ7rS8"
)

func newTestRouter(t *testing.T, now time.Time) chi.Router {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := holdings.NewService(holdings.NewInMemoryStore(), bonds.NewSeededCatalog(), logger).
		WithClock(func() time.Time { return now })

	r := chi.NewRouter()
	New(svc, logger).Register(r)
	return r
}

func purchaseBody(units, amount float64) map[string]any {
	return map[string]any{
		"wallet_address":  testWallet,
		"bond_id":         "in-gs-2030",
		"units":           units,
		"invested_amount": amount,
		"tx_hash":         testTxHash,
	}
}

func TestRecordPurchase(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	router := newTestRouter(t, now)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/holdings",
		purchaseBody(10, 1000),
	))
	require.Equal(t, http.StatusCreated, rr.Code)

	var holding holdings.Holding
	testutil.DecodeJSON(t, rr, &holding)
	assert.NotEmpty(t, holding.ID)
	assert.Equal(t, testWallet, holding.WalletAddress)
	assert.Equal(t, "India G-Sec 2030 (7.18%)", holding.BondName)
	assert.Equal(t, 7.18, holding.APY)
	assert.Equal(t, testTxHash, holding.TxHash)
	assert.True(t, holding.PurchaseDate.Equal(now))
}

func TestRecordPurchaseValidation(t *testing.T) {
	router := newTestRouter(t, time.Now())

	t.Run("missing tx hash", func(t *testing.T) {
		body := purchaseBody(10, 1000)
		delete(body, "tx_hash")
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/holdings", body))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("non-positive units", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/holdings",
			purchaseBody(0, 1000),
		))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/holdings", "not-json-object"))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown bond", func(t *testing.T) {
		body := purchaseBody(10, 1000)
		body["bond_id"] = "no-such-bond"
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/holdings", body))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListHoldings(t *testing.T) {
	purchased := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	router := newTestRouter(t, purchased)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/holdings",
		purchaseBody(10, 1000),
	))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/wallets/"+testWallet+"/holdings"))
	require.Equal(t, http.StatusOK, rr.Code)

	var positions []holdings.Position
	testutil.DecodeJSON(t, rr, &positions)
	require.Len(t, positions, 1)
	assert.Equal(t, "in-gs-2030", positions[0].BondID)
	// Purchase and read share a fixed clock, so nothing has accrued yet.
	assert.Equal(t, 0.0, positions[0].AccruedYield)
}

func TestListHoldingsEmptyWallet(t *testing.T) {
	router := newTestRouter(t, time.Now())

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/wallets/"+testWallet+"/holdings"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}
