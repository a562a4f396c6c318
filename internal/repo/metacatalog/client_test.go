package metacatalog_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/todomarket/whatsapp-bot/internal/config"
	"github.com/todomarket/whatsapp-bot/internal/models"
	"github.com/todomarket/whatsapp-bot/internal/repo/metacatalog"
)

func newTestClient(t *testing.T, baseURL string) metacatalog.Client {
	t.Helper()
	client, err := metacatalog.NewClient(&config.Config{
		Catalog: config.CatalogConfig{
			BaseURL:      baseURL,
			AccessToken:  "test-token",
			CatalogID:    "cat-1",
			PageSize:     2,
			FetchTimeout: 2 * time.Second,
		},
	})
	require.NoError(t, err)
	return client
}

func TestListProducts(t *testing.T) {
	t.Parallel()

	t.Run("pages through cursors and dedups by retailer id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

			after := r.URL.Query().Get("after")
			switch after {
			case "":
				fmt.Fprint(w, `{
					"data": [
						{"id": "100", "retailer_id": "SKU-1", "name": "Pan integral", "price": 2.50, "currency": "USD", "availability": "in stock"},
						{"id": "101", "retailer_id": "SKU-2", "name": "Leche entera", "price": 1.20, "currency": "USD", "availability": "in stock"}
					],
					"paging": {"cursors": {"after": "c1"}, "next": "http://next"}
				}`)
			case "c1":
				fmt.Fprint(w, `{
					"data": [
						{"id": "102", "retailer_id": "SKU-2", "name": "Leche entera duplicada", "price": 1.20, "currency": "USD", "availability": "in stock"},
						{"id": "103", "retailer_id": "", "name": "Queso fresco", "price": 4.00, "currency": "USD", "availability": "out of stock"}
					],
					"paging": {"cursors": {"after": ""}, "next": ""}
				}`)
			default:
				t.Errorf("unexpected cursor %q", after)
			}
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		products, err := client.ListProducts(t.Context(), "cat-1")
		require.NoError(t, err)

		require.Len(t, products, 3)
		assert.Equal(t, "SKU-1", products[0].Key())
		// first occurrence of SKU-2 wins
		assert.Equal(t, "Leche entera", products[1].Name)
		// retailer id empty, falls back to catalog id
		assert.Equal(t, "103", products[2].Key())
		assert.Equal(t, "2.5", products[0].Price.String())
	})

	t.Run("non-2xx becomes a typed fetch error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"invalid token"}}`, http.StatusUnauthorized)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		_, err := client.ListProducts(t.Context(), "cat-1")
		require.Error(t, err)

		var fetchErr *metacatalog.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.StatusUnauthorized, fetchErr.StatusCode)
		assert.ErrorIs(t, err, models.ErrCatalogFetch)
	})

	t.Run("empty catalog id is a configuration error", func(t *testing.T) {
		client := newTestClient(t, "http://unused")
		_, err := client.ListProducts(t.Context(), "")
		assert.ErrorIs(t, err, models.ErrConfiguration)
	})
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	_, err := metacatalog.NewClient(&config.Config{})
	assert.ErrorIs(t, err, models.ErrConfiguration)
}
