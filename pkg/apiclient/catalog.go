package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/omeeai/appshell/pkg/catalog"
)

// Load fetches the price catalog from the backend. It satisfies the session
// store's CatalogSource contract.
func (c *Client) Load(ctx context.Context) (*catalog.PriceCatalog, error) {
	resp, err := c.get(ctx, "/api/subscription-price")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		drain(resp)
		return nil, errors.Join(ErrUnexpectedStatus, fmt.Errorf("subscription-price returned %d", resp.StatusCode))
	}

	var pricing catalog.PriceCatalog
	if err := decode(resp, &pricing); err != nil {
		return nil, fmt.Errorf("apiclient: decode price catalog: %w", err)
	}
	return &pricing, nil
}
