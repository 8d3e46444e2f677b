package repositories

import (
	"context"

	"github.com/kaimen83/lunchlab/pkg/domain/entities"
)

// StockRepository provides point-in-time on-hand stock snapshots for a
// company's containers. The snapshot is optional input; implementations may
// return an empty slice.
type StockRepository interface {
	GetStockSnapshots(ctx context.Context, companyID string) ([]*entities.StockSnapshot, error)
}
