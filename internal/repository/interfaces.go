package repository

import (
	"context"

	"github.com/srs-sudeep/vyuwer/internal/model"
)

// Target names the SQLite file an operation acts against (production or test).
type Target string

// FeatureRepository defines the interface for image feature data operations.
type FeatureRepository interface {
	// Create operations
	Insert(ctx context.Context, feature *model.ImageFeature) error

	// Read operations
	GetByCamera(ctx context.Context, cameraID string) (*model.ImageFeature, error)

	// Delete operations
	DeleteByCamera(ctx context.Context, cameraID string) (int64, error)

	// Replace operations
	ReplaceByCamera(ctx context.Context, cameraID string, feature *model.ImageFeature) error
}

// DescriptionRepository defines the interface for image description data operations.
type DescriptionRepository interface {
	// Create operations
	Insert(ctx context.Context, desc *model.ImageDescription) error
}
