package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/srs-sudeep/vyuwer/internal/config"
	"github.com/srs-sudeep/vyuwer/internal/logger"
	"github.com/srs-sudeep/vyuwer/internal/model"
	"github.com/srs-sudeep/vyuwer/internal/repository/sqlite"
)

// Storage target names accepted by the CLI.
const (
	TargetProduction = "prod"
	TargetTest       = "test"
)

type App struct {
	config *config.Config
	logger *logger.Logger
	out    io.Writer
}

func NewApp(cfg *config.Config, logger *logger.Logger, out io.Writer) *App {
	return &App{
		config: cfg,
		logger: logger,
		out:    out,
	}
}

// db returns the storage target selected by name.
func (a *App) db(name string) (*sqlite.DB, error) {
	opts := sqlite.Options{
		BusyTimeoutMs: a.config.BusyTimeoutMs,
		JournalMode:   a.config.JournalMode,
	}

	switch name {
	case TargetProduction, "":
		return sqlite.New(a.config.ProductionTarget(), opts), nil
	case TargetTest:
		return sqlite.New(a.config.TestTarget(), opts), nil
	default:
		return nil, fmt.Errorf("unknown storage target %q (use %s or %s)", name, TargetProduction, TargetTest)
	}
}

// InitTables creates both tables on the named target.
func (a *App) InitTables(ctx context.Context, target string) error {
	db, err := a.db(target)
	if err != nil {
		return err
	}

	if err := db.EnsureFeatureTable(ctx); err != nil {
		return err
	}
	if err := db.EnsureDescriptionTable(ctx); err != nil {
		return err
	}

	a.logger.Info("Tables ready in %s", db.Target())
	return nil
}

// RunDemo sets up both targets, stores a sample description and feature in
// production and reads the feature back by camera.
func (a *App) RunDemo(ctx context.Context) error {
	for _, target := range []string{TargetProduction, TargetTest} {
		if err := a.InitTables(ctx, target); err != nil {
			return err
		}
	}

	prod, err := a.db(TargetProduction)
	if err != nil {
		return err
	}

	description := &model.ImageDescription{
		ImageName: "test_image.jpg",
		Datetime:  "2024-06-12T12:34:56Z",
		CameraID:  "camera_1",
	}
	if err := sqlite.NewDescriptionRepository(prod).Insert(ctx, description); err != nil {
		return err
	}
	a.logger.Info("Stored description %s for camera %s", description.ImageName, description.CameraID)

	feature := &model.ImageFeature{
		ID: "1",
		Keypoints: []model.Keypoint{
			{X: 0, Y: 0, Size: 1, Angle: 0},
			{X: 1, Y: 1, Size: 2, Angle: 45},
		},
		Descriptors:  []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		MotionMean:   0.5,
		MotionStd:    0.1,
		CreatedAtUTC: "2024-06-12T12:34:56Z",
		ImgFilename:  model.StringPtr("image_1.jpg"),
		CameraID:     "camera_1",
	}
	if err := sqlite.NewFeatureRepository(prod).Insert(ctx, feature); err != nil {
		return err
	}
	a.logger.Info("Stored feature %s for camera %s", feature.ID, feature.CameraID)

	return a.ShowFeature(ctx, TargetProduction, feature.CameraID)
}

// ShowFeature prints the first feature stored for cameraID, or reports that there is none.
func (a *App) ShowFeature(ctx context.Context, target, cameraID string) error {
	db, err := a.db(target)
	if err != nil {
		return err
	}

	feature, err := sqlite.NewFeatureRepository(db).GetByCamera(ctx, cameraID)
	if err != nil {
		return err
	}
	if feature == nil {
		fmt.Fprintln(a.out, "No image feature found for the given camera_id.")
		return nil
	}

	data, err := json.Marshal(feature)
	if err != nil {
		return fmt.Errorf("failed to format image feature: %w", err)
	}
	fmt.Fprintf(a.out, "Retrieved image feature: %s\n", data)
	return nil
}

// DeleteFeatures removes every feature stored for cameraID.
func (a *App) DeleteFeatures(ctx context.Context, target, cameraID string) error {
	db, err := a.db(target)
	if err != nil {
		return err
	}

	removed, err := sqlite.NewFeatureRepository(db).DeleteByCamera(ctx, cameraID)
	if err != nil {
		return err
	}

	a.logger.Info("Deleted %d feature(s) for camera %s from %s", removed, cameraID, db.Target())
	fmt.Fprintf(a.out, "Deleted %d image feature(s).\n", removed)
	return nil
}

// ClearTest drops the image_features table on the test target.
func (a *App) ClearTest(ctx context.Context) error {
	db, err := a.db(TargetTest)
	if err != nil {
		return err
	}

	if err := db.DropFeatureTable(ctx); err != nil {
		return err
	}

	a.logger.Warning("Dropped image_features in %s", db.Target())
	return nil
}
