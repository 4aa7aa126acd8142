package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"petstore/internal/apiclient"
	"petstore/internal/models"
	"petstore/internal/repositories"
	"petstore/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.Handler) *apiclient.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return apiclient.New(apiclient.Options{
		BaseURL:       server.URL + "/",
		Timeout:       time.Second,
		RetryAttempts: 3,
		Backoff:       retry.ConstantBackoff(time.Millisecond),
	}, nil)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func TestCatalog_NormalizesProductIDs(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items", r.URL.Path)
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": "a", "name": "A", "price": 10},
			{"_id": "b", "name": "B", "price": 20},
			{"productId": "c", "name": "C", "price": 30},
			{"id": "d", "_id": "ignored", "name": "D", "price": 40},
		})
	}))

	products, err := client.Catalog().GetAll(context.Background())
	require.NoError(t, err)

	var ids []string
	for _, p := range products {
		ids = append(ids, p.ID)
		assert.NotNil(t, p.Tags)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
}

func TestCatalog_NonArrayBodyIsEmptyList(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"unexpected": true})
	}))

	team, err := client.Catalog().GetTeam(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, team)
	assert.Empty(t, team)
}

func TestCatalog_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			writeJSON(w, http.StatusBadGateway, map[string]string{"message": "try later"})
			return
		}
		writeJSON(w, http.StatusOK, []map[string]any{{"_id": "pc1", "name": "Dogs"}})
	}))

	pets, err := client.Catalog().GetPetCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, pets, 1)
	assert.Equal(t, "Dogs", pets[0].Name)
	assert.Equal(t, int32(3), calls.Load())
}

func TestCatalog_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/items/missing", r.URL.Path)
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
	}))

	_, err := client.Catalog().GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, repositories.ErrNotFound)
	var se *apiclient.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Product not found", se.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCatalog_GivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.Catalog().GetFeatured(context.Background())

	var se *apiclient.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.Equal(t, "Internal Server Error", se.Message)
	assert.Equal(t, int32(3), calls.Load())
}

func TestOrders_Create(t *testing.T) {
	tests := []struct {
		name     string
		response map[string]any
		wantID   string
	}{
		{"orderId", map[string]any{"success": true, "orderId": "ORD-1", "message": "ok"}, "ORD-1"},
		{"mongo id", map[string]any{"_id": "665f"}, "665f"},
		{"plain id", map[string]any{"id": "42"}, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/orders", r.URL.Path)
				var req models.OrderRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "1234", req.CardNumber)
				writeJSON(w, http.StatusCreated, tt.response)
			}))

			resp, err := client.Orders().Create(context.Background(), models.OrderRequest{CardNumber: "1234"})
			require.NoError(t, err)
			assert.True(t, resp.Success)
			assert.Equal(t, tt.wantID, resp.OrderID)
			assert.NotEmpty(t, resp.Message)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestOrders_CreateGeneratesMissingID(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"message": "queued"})
	}))

	resp, err := client.Orders().Create(context.Background(), models.OrderRequest{})
	require.NoError(t, err)
	assert.Regexp(t, `^ORD-\d+$`, resp.OrderID)
	assert.Equal(t, "queued", resp.Message)
}

func TestOrders_CreateIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "down"})
	}))

	_, err := client.Orders().Create(context.Background(), models.OrderRequest{})
	assert.True(t, apiclient.Temporary(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestOrders_ListByEmail(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "jane+pets@example.com", r.URL.Query().Get("email"))
		writeJSON(w, http.StatusOK, []models.Order{{OrderID: "ORD-1", Status: "pending"}})
	}))

	orders, err := client.Orders().ListByEmail(context.Background(), "jane+pets@example.com")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ORD-1", orders[0].OrderID)
}

func TestSupport_CreateAndList(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			writeJSON(w, http.StatusCreated, map[string]any{"id": "t1"})
		default:
			assert.Equal(t, "pending", r.URL.Query().Get("status"))
			writeJSON(w, http.StatusOK, []map[string]any{{"_id": "t1", "status": "pending"}})
		}
	}))
	api := client.Orders()
	form := models.ContactForm{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Message: "Hello there!"}

	ticket, err := api.CreateTicket(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "t1", ticket.ID)
	assert.Equal(t, models.SupportStatusOpen, ticket.Status)
	assert.Equal(t, "jane@example.com", ticket.Email)

	tickets, err := api.ListTickets(context.Background(), models.SupportStatusPending)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, models.SupportStatusPending, tickets[0].Status)
}

func TestTemporary(t *testing.T) {
	assert.False(t, apiclient.Temporary(nil))
	assert.False(t, apiclient.Temporary(context.Canceled))
	assert.False(t, apiclient.Temporary(&apiclient.StatusError{Code: http.StatusBadRequest}))
	assert.True(t, apiclient.Temporary(&apiclient.StatusError{Code: http.StatusBadGateway}))
	assert.True(t, apiclient.Temporary(assert.AnError))
}
