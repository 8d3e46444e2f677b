package repositories

import (
	"context"

	"github.com/kaimen83/lunchlab/pkg/domain/entities"
)

// IngredientRepository provides access to ingredient masters
type IngredientRepository interface {
	GetIngredient(ctx context.Context, id entities.IngredientID) (*entities.Ingredient, error)
}
