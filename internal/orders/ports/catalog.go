package ports

import (
	"context"
	"errors"

	"github.com/microshop/orders/internal/orders/domain"
)

// ErrCatalogUnavailable marks a transport or upstream failure of the
// product service, as opposed to a product id it does not know.
var ErrCatalogUnavailable = errors.New("product catalog unavailable")

// ProductCatalog validates product references against the remote
// product service. Every id the catalog recognizes comes back as a
// record; an id absent from the result is implicitly not found.
// Implementations must be safe for concurrent use and should skip the
// remote call entirely for an empty id set.
type ProductCatalog interface {
	ValidateProducts(ctx context.Context, ids []int64) ([]domain.Product, error)
}
