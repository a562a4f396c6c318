package metacatalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/todomarket/whatsapp-bot/internal/config"
	"github.com/todomarket/whatsapp-bot/internal/models"
	"github.com/todomarket/whatsapp-bot/pkg/util"
)

const productFields = "id,retailer_id,name,description,price,currency,availability"

// FetchError carries the upstream status for a failed catalog request.
type FetchError struct {
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("catalog API returned status %d: %s", e.StatusCode, e.Message)
}

func (e *FetchError) Unwrap() error {
	return models.ErrCatalogFetch
}

// productRecord is the raw response shape from the catalog API.
type productRecord struct {
	ID           string      `json:"id"`
	RetailerID   string      `json:"retailer_id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Price        json.Number `json:"price"`
	Currency     string      `json:"currency"`
	Availability string      `json:"availability"`
}

type productsResponse struct {
	Data   []productRecord `json:"data"`
	Paging struct {
		Cursors struct {
			After string `json:"after"`
		} `json:"cursors"`
		Next string `json:"next"`
	} `json:"paging"`
}

type Client interface {
	ListProducts(ctx context.Context, catalogID string) ([]models.Product, error)
}

type client struct {
	httpClient   *resty.Client
	baseURL      string
	accessToken  string
	pageSize     int
	fetchTimeout time.Duration
}

func NewClient(conf *config.Config) (Client, error) {
	cfg := conf.Catalog
	if cfg.AccessToken == "" || cfg.CatalogID == "" {
		return nil, fmt.Errorf("catalog access token and catalog id are required: %w", models.ErrConfiguration)
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	return &client{
		httpClient:   util.NewRestyClient(),
		baseURL:      cfg.BaseURL,
		accessToken:  cfg.AccessToken,
		pageSize:     pageSize,
		fetchTimeout: cfg.FetchTimeout,
	}, nil
}

// ListProducts pages through the catalog until the API stops returning a
// next cursor. The same retailer_id occasionally repeats across pages, so
// results are deduplicated by retailer_id (falling back to id) with the
// first occurrence winning.
func (c *client) ListProducts(ctx context.Context, catalogID string) ([]models.Product, error) {
	if catalogID == "" {
		return nil, fmt.Errorf("empty catalog id: %w", models.ErrConfiguration)
	}

	var products []models.Product
	seen := make(map[string]struct{})
	after := ""

	for {
		page, err := c.fetchPage(ctx, catalogID, after)
		if err != nil {
			return nil, err
		}

		for _, record := range page.Data {
			product := mapToProduct(record)
			key := product.Key()
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			products = append(products, product)
		}

		if page.Paging.Next == "" || page.Paging.Cursors.After == "" {
			break
		}
		after = page.Paging.Cursors.After
	}

	return products, nil
}

func (c *client) fetchPage(ctx context.Context, catalogID, after string) (*productsResponse, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	req := c.httpClient.R().
		SetContext(reqCtx).
		SetAuthToken(c.accessToken).
		SetQueryParam("fields", productFields).
		SetQueryParam("limit", fmt.Sprintf("%d", c.pageSize))
	if after != "" {
		req.SetQueryParam("after", after)
	}

	resp, err := req.Get(fmt.Sprintf("%s/%s/products", c.baseURL, catalogID))
	if err != nil {
		return nil, fmt.Errorf("fetch catalog page: %w", err)
	}

	if resp.IsError() {
		return nil, &FetchError{
			StatusCode: resp.StatusCode(),
			Message:    string(resp.Body()),
		}
	}

	var page productsResponse
	if err := json.Unmarshal(resp.Body(), &page); err != nil {
		return nil, fmt.Errorf("decode catalog page: %w", err)
	}

	return &page, nil
}

func mapToProduct(record productRecord) models.Product {
	price, err := decimal.NewFromString(record.Price.String())
	if err != nil {
		price = decimal.Zero
	}

	return models.Product{
		ID:           record.ID,
		RetailerID:   record.RetailerID,
		Name:         record.Name,
		Description:  record.Description,
		Price:        price,
		Currency:     record.Currency,
		Availability: record.Availability,
	}
}
