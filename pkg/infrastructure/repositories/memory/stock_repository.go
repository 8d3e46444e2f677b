package memory

import (
	"context"

	"github.com/kaimen83/lunchlab/pkg/domain/entities"
	"github.com/kaimen83/lunchlab/pkg/domain/repositories"
)

// StockRepository provides in-memory stock snapshot storage
type StockRepository struct {
	snapshots map[string][]*entities.StockSnapshot
}

// NewStockRepository creates a new in-memory stock repository
func NewStockRepository() *StockRepository {
	return &StockRepository{
		snapshots: make(map[string][]*entities.StockSnapshot),
	}
}

// Verify interface compliance
var _ repositories.StockRepository = (*StockRepository)(nil)

// AddSnapshot records a stock snapshot for a company
func (r *StockRepository) AddSnapshot(companyID string, snapshot entities.StockSnapshot) {
	r.snapshots[companyID] = append(r.snapshots[companyID], &snapshot)
}

// GetStockSnapshots returns the stock snapshots recorded for a company
func (r *StockRepository) GetStockSnapshots(
	ctx context.Context,
	companyID string,
) ([]*entities.StockSnapshot, error) {
	return r.snapshots[companyID], nil
}
