package memory

import (
	"context"
	"fmt"

	"github.com/kaimen83/lunchlab/pkg/domain/entities"
	"github.com/kaimen83/lunchlab/pkg/domain/repositories"
)

// IngredientRepository provides in-memory ingredient master storage
type IngredientRepository struct {
	ingredients map[entities.IngredientID]*entities.Ingredient
}

// NewIngredientRepository creates a new in-memory ingredient repository
func NewIngredientRepository() *IngredientRepository {
	return &IngredientRepository{
		ingredients: make(map[entities.IngredientID]*entities.Ingredient),
	}
}

// Verify interface compliance
var _ repositories.IngredientRepository = (*IngredientRepository)(nil)

// AddIngredient adds an ingredient master record
func (r *IngredientRepository) AddIngredient(ingredient entities.Ingredient) {
	r.ingredients[ingredient.ID] = &ingredient
}

// RemoveIngredient deletes an ingredient master, simulating a master deleted
// after recipes referencing it were created
func (r *IngredientRepository) RemoveIngredient(id entities.IngredientID) {
	delete(r.ingredients, id)
}

// GetIngredient returns an ingredient master record by id
func (r *IngredientRepository) GetIngredient(
	ctx context.Context,
	id entities.IngredientID,
) (*entities.Ingredient, error) {
	ingredient, exists := r.ingredients[id]
	if !exists {
		return nil, fmt.Errorf("ingredient %s: %w", id, repositories.ErrNotFound)
	}
	return ingredient, nil
}
