package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"redmango/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) Gateway {
	return NewRazorpayClient(config.RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "rzp_test_secret",
		BaseURL:   baseURL,
		Currency:  "INR",
	}, zerolog.Nop())
}

func TestRazorpayClient_CreateOrder_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "rzp_test_secret", pass)

		var req OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(39950), req.Amount)
		assert.Equal(t, "INR", req.Currency)
		assert.NotEmpty(t, req.Receipt)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Order{
			ID:       "order_test123",
			Amount:   req.Amount,
			Currency: req.Currency,
			Receipt:  req.Receipt,
			Status:   "created",
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	order, err := client.CreateOrder(context.Background(), OrderRequest{
		Amount:   39950,
		Currency: "INR",
		Receipt:  "rcpt_1",
	})
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "order_test123", order.ID)
	assert.Equal(t, int64(39950), order.Amount)
	assert.Equal(t, "created", order.Status)
}

func TestRazorpayClient_CreateOrder_GatewayRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Authentication failed"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	order, err := client.CreateOrder(context.Background(), OrderRequest{
		Amount:   100,
		Currency: "INR",
		Receipt:  "rcpt_2",
	})
	require.Error(t, err)
	assert.Nil(t, order)

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusBadRequest, gwErr.StatusCode)
	assert.Equal(t, "BAD_REQUEST_ERROR", gwErr.Code)
	assert.Equal(t, "Authentication failed", gwErr.Description)
}

func TestRazorpayClient_CreateOrder_MissingOrderID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"created"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	order, err := client.CreateOrder(context.Background(), OrderRequest{
		Amount:   100,
		Currency: "INR",
		Receipt:  "rcpt_3",
	})
	require.Error(t, err)
	assert.Nil(t, order)
	assert.Contains(t, err.Error(), "without an id")
}

func TestOrderRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     OrderRequest
		wantErr string
	}{
		{"valid", OrderRequest{Amount: 100, Currency: "INR", Receipt: "r"}, ""},
		{"zero amount", OrderRequest{Amount: 0, Currency: "INR", Receipt: "r"}, "amount must be positive"},
		{"negative amount", OrderRequest{Amount: -5, Currency: "INR", Receipt: "r"}, "amount must be positive"},
		{"missing currency", OrderRequest{Amount: 100, Receipt: "r"}, "currency is required"},
		{"missing receipt", OrderRequest{Amount: 100, Currency: "INR"}, "receipt is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestRazorpayClient_CreateOrder_InvalidRequestNoNetworkCall(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.CreateOrder(context.Background(), OrderRequest{})
	require.Error(t, err)
	assert.False(t, called, "an invalid request must be rejected before any network call")
}
