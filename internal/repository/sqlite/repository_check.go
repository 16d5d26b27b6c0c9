package sqlite

import "github.com/srs-sudeep/vyuwer/internal/repository"

var (
	_ repository.FeatureRepository     = (*FeatureRepository)(nil)
	_ repository.DescriptionRepository = (*DescriptionRepository)(nil)
)
