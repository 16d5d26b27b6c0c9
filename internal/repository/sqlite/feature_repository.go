package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/srs-sudeep/vyuwer/internal/codec"
	"github.com/srs-sudeep/vyuwer/internal/model"
)

const insertFeatureQuery = `
	INSERT INTO image_features (id, keypoints, descriptors, motion_mean, motion_std, created_at_utc, img_filename, camera_id)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// FeatureRepository implements repository.FeatureRepository for SQLite.
type FeatureRepository struct {
	db *DB
}

// NewFeatureRepository creates a new SQLite image feature repository.
func NewFeatureRepository(db *DB) *FeatureRepository {
	return &FeatureRepository{db: db}
}

// Insert adds a new image feature record. The keypoints and descriptors are
// encoded before anything is written.
func (r *FeatureRepository) Insert(ctx context.Context, feature *model.ImageFeature) error {
	keypoints, descriptors, err := encodeFeature(feature)
	if err != nil {
		return err
	}

	conn, err := r.db.open(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return insertFeature(ctx, conn, feature, keypoints, descriptors)
}

// DeleteByCamera removes every feature recorded for cameraID and returns how
// many rows were removed. No matching rows is not an error.
func (r *FeatureRepository) DeleteByCamera(ctx context.Context, cameraID string) (int64, error) {
	conn, err := r.db.open(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx, `DELETE FROM image_features WHERE camera_id = ?`, cameraID)
	if err != nil {
		return 0, wrapErr("delete image features", err)
	}
	return result.RowsAffected()
}

// ReplaceByCamera deletes all features for cameraID and inserts feature in
// a single transaction. If any step fails the previous rows are kept.
func (r *FeatureRepository) ReplaceByCamera(ctx context.Context, cameraID string, feature *model.ImageFeature) error {
	keypoints, descriptors, err := encodeFeature(feature)
	if err != nil {
		return err
	}

	conn, err := r.db.open(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM image_features WHERE camera_id = ?`, cameraID); err != nil {
		return wrapErr("delete image features", err)
	}

	if err := insertFeature(ctx, tx, feature, keypoints, descriptors); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return wrapErr("commit transaction", err)
	}
	return nil
}

// GetByCamera retrieves the first feature stored for cameraID, in whatever
// order SQLite yields rows. It returns nil, nil when the camera has no features.
func (r *FeatureRepository) GetByCamera(ctx context.Context, cameraID string) (*model.ImageFeature, error) {
	conn, err := r.db.open(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var (
		feature                model.ImageFeature
		keypoints, descriptors []byte
		motionMean, motionStd  sql.NullFloat64
		imgFilename            sql.NullString
	)
	err = conn.QueryRowContext(ctx, `
		SELECT id, keypoints, descriptors, motion_mean, motion_std, created_at_utc, img_filename, camera_id
		FROM image_features WHERE camera_id = ? LIMIT 1
	`, cameraID).Scan(&feature.ID, &keypoints, &descriptors, &motionMean, &motionStd,
		&feature.CreatedAtUTC, &imgFilename, &feature.CameraID)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("get image feature", err)
	}

	if feature.Keypoints, err = codec.DecodeKeypoints(keypoints); err != nil {
		return nil, fmt.Errorf("failed to decode image feature %s: %w", feature.ID, err)
	}
	if feature.Descriptors, err = codec.DecodeDescriptors(descriptors); err != nil {
		return nil, fmt.Errorf("failed to decode image feature %s: %w", feature.ID, err)
	}
	feature.MotionMean = motionMean.Float64
	feature.MotionStd = motionStd.Float64
	if imgFilename.Valid {
		feature.ImgFilename = model.StringPtr(imgFilename.String)
	}

	return &feature, nil
}

func encodeFeature(feature *model.ImageFeature) (keypoints, descriptors []byte, err error) {
	if keypoints, err = codec.EncodeKeypoints(feature.Keypoints); err != nil {
		return nil, nil, fmt.Errorf("failed to encode keypoints: %w", err)
	}
	if descriptors, err = codec.EncodeDescriptors(feature.Descriptors); err != nil {
		return nil, nil, fmt.Errorf("failed to encode descriptors: %w", err)
	}
	return keypoints, descriptors, nil
}

func insertFeature(ctx context.Context, e execer, feature *model.ImageFeature, keypoints, descriptors []byte) error {
	_, err := e.ExecContext(ctx, insertFeatureQuery,
		feature.ID, keypoints, descriptors, feature.MotionMean, feature.MotionStd,
		feature.CreatedAtUTC, feature.ImgFilename, feature.CameraID)
	if err != nil {
		return wrapErr("insert image feature", err)
	}
	return nil
}
