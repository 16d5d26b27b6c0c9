package sqlite

import "context"

const featureSchema = `
CREATE TABLE IF NOT EXISTS image_features (
	id TEXT PRIMARY KEY,
	keypoints BLOB,
	descriptors BLOB,
	motion_mean REAL,
	motion_std REAL,
	created_at_utc TEXT NOT NULL,
	img_filename TEXT,
	camera_id TEXT NOT NULL
);
`

const descriptionSchema = `
CREATE TABLE IF NOT EXISTS image_description (
	image_name TEXT PRIMARY KEY,
	datetime TEXT NOT NULL,
	camera_id TEXT NOT NULL,
	anomaly TEXT
);
`

// EnsureFeatureTable creates the image_features table if it doesn't exist.
func (db *DB) EnsureFeatureTable(ctx context.Context) error {
	return db.exec(ctx, "create image_features table", featureSchema)
}

// EnsureDescriptionTable creates the image_description table if it doesn't exist.
func (db *DB) EnsureDescriptionTable(ctx context.Context) error {
	return db.exec(ctx, "create image_description table", descriptionSchema)
}

// DropFeatureTable removes the image_features table and all its rows.
// It is meant for clearing the test target between runs.
func (db *DB) DropFeatureTable(ctx context.Context) error {
	return db.exec(ctx, "drop image_features table", `DROP TABLE IF EXISTS image_features`)
}

func (db *DB) exec(ctx context.Context, action, query string) error {
	conn, err := db.open(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, query); err != nil {
		return wrapErr(action, err)
	}
	return nil
}
