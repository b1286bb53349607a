package products

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/microshop/orders/internal/orders/domain"
)

// Client talks to the product service over HTTP. It implements
// ports.ProductCatalog.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type validateRequest struct {
	IDs []int64 `json:"ids"`
}

type validateResponse struct {
	Products []productPayload `json:"products"`
}

type productPayload struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
}

// ValidateProducts asks the product service which of the given ids exist.
// IDs unknown to the product service are simply absent from the result.
func (c *Client) ValidateProducts(ctx context.Context, ids []int64) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(validateRequest{IDs: ids})
	if err != nil {
		return nil, fmt.Errorf("marshal validate request: %w", err)
	}

	url := c.baseURL + "/products/validate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create validate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call product service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("product service returned %d: %s", resp.StatusCode, payload)
	}

	var parsed validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode validate response: %w", err)
	}

	found := make([]domain.Product, 0, len(parsed.Products))
	for _, p := range parsed.Products {
		found = append(found, domain.Product{
			ID:         p.ID,
			Name:       p.Name,
			PriceCents: p.PriceCents,
		})
	}

	return found, nil
}
