package sqlite

import (
	"context"

	"github.com/srs-sudeep/vyuwer/internal/model"
)

// DescriptionRepository implements repository.DescriptionRepository for SQLite.
type DescriptionRepository struct {
	db *DB
}

// NewDescriptionRepository creates a new SQLite image description repository.
func NewDescriptionRepository(db *DB) *DescriptionRepository {
	return &DescriptionRepository{db: db}
}

// Insert adds a new image description record to the database.
func (r *DescriptionRepository) Insert(ctx context.Context, desc *model.ImageDescription) error {
	conn, err := r.db.open(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.ExecContext(ctx, `
		INSERT INTO image_description (image_name, datetime, camera_id, anomaly)
		VALUES (?, ?, ?, ?)
	`, desc.ImageName, desc.Datetime, desc.CameraID, desc.Anomaly)
	if err != nil {
		return wrapErr("insert image description", err)
	}
	return nil
}
