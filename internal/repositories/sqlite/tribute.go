package sqlite

import (
	"context"
	"database/sql"

	"tribute-api/internal/models"
	"tribute-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

const tributeColumns = "id, from_name, message, photos, created_at"

// TributeRepository implements the TributeRepository interface for SQLite and libSQL
type TributeRepository struct {
	*BaseRepository
}

// NewTributeRepository creates a new tribute repository
func NewTributeRepository(db DBTX, logger *logrus.Logger) repositories.TributeRepository {
	return &TributeRepository{
		BaseRepository: NewBaseRepository(db, "tributes", "tribute", logger),
	}
}

// Create inserts a tribute and returns the stored row
func (r *TributeRepository) Create(ctx context.Context, tribute *models.Tribute) (*models.Tribute, error) {
	if err := tribute.Validate(); err != nil {
		return nil, repositories.ValidationError("tribute", "", err)
	}

	query := `
		INSERT INTO tributes (from_name, message, photos)
		VALUES (?, ?, ?)
		RETURNING ` + tributeColumns

	created := &models.Tribute{}
	err := r.scanRow(ctx, "create", query,
		[]interface{}{tribute.FromName, tribute.Message, tribute.Photos},
		scanTargets(created)...,
	)
	if err == sql.ErrNoRows {
		return nil, repositories.NewRepositoryErrorWithMessage("create", "tribute", "",
			"Failed to insert tribute or retrieve inserted row.", err)
	}
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Update overwrites the mutable fields of a tribute in a single statement
func (r *TributeRepository) Update(ctx context.Context, tribute *models.Tribute) (*models.Tribute, error) {
	if err := r.validateID(tribute.ID); err != nil {
		return nil, err
	}
	if err := tribute.Validate(); err != nil {
		return nil, repositories.ValidationError("tribute", formatID(tribute.ID), err)
	}

	query := `
		UPDATE tributes
		SET from_name = ?, message = ?, photos = ?
		WHERE id = ?
		RETURNING ` + tributeColumns

	updated := &models.Tribute{}
	err := r.scanRow(ctx, "update", query,
		[]interface{}{tribute.FromName, tribute.Message, tribute.Photos, tribute.ID},
		scanTargets(updated)...,
	)
	if err == sql.ErrNoRows {
		return nil, repositories.NotFoundError("tribute", formatID(tribute.ID))
	}
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete deletes a tribute by ID
func (r *TributeRepository) Delete(ctx context.Context, id int64) error {
	if err := r.validateID(id); err != nil {
		return err
	}

	query := "DELETE FROM tributes WHERE id = ?"
	result, err := r.executeExec(ctx, "delete", query, id)
	if err != nil {
		return err
	}

	return r.checkRowsAffected(result, "delete", id)
}

// List returns tributes newest first. Rows sharing a created_at value are
// ordered by descending ID so pages do not overlap.
func (r *TributeRepository) List(ctx context.Context, limit, offset int) ([]*models.Tribute, error) {
	query := "SELECT " + tributeColumns + `
		FROM tributes
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`

	rows, err := r.executeQuery(ctx, "list", query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tributes := make([]*models.Tribute, 0, limit)
	for rows.Next() {
		tribute := &models.Tribute{}
		if err := rows.Scan(scanTargets(tribute)...); err != nil {
			return nil, repositories.NewRepositoryError("list", "tribute", "", err)
		}
		tributes = append(tributes, tribute)
	}

	if err = rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list", "tribute", "", err)
	}

	return tributes, nil
}

// Count returns the total number of tributes
func (r *TributeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.scanRow(ctx, "count", "SELECT COUNT(*) FROM tributes", nil, &count); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}

	return count, nil
}

func scanTargets(t *models.Tribute) []interface{} {
	return []interface{}{&t.ID, &t.FromName, &t.Message, &t.Photos, &t.CreatedAt}
}
