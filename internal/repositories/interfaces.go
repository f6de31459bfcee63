package repositories

import (
	"context"

	"tribute-api/internal/models"
)

// TributeRepository defines persistence operations for tributes.
// Every method issues exactly one statement.
type TributeRepository interface {
	// Create inserts a tribute and returns the stored row, including the
	// database-assigned ID and creation timestamp
	Create(ctx context.Context, tribute *models.Tribute) (*models.Tribute, error)

	// Update overwrites from_name, message and photos of the tribute with the
	// given ID and returns the stored row
	Update(ctx context.Context, tribute *models.Tribute) (*models.Tribute, error)

	// Delete deletes a tribute by its ID
	Delete(ctx context.Context, id int64) error

	// List returns tributes newest first, windowed by limit and offset
	List(ctx context.Context, limit, offset int) ([]*models.Tribute, error)

	// Count returns the total number of tributes
	Count(ctx context.Context) (int64, error)
}
