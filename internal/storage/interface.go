package storage

import (
	"context"

	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"
)

// ProfileRepository reads the per-user record in user_health_profiles.
// GetProfile returns (nil, nil) when no record exists yet; that is a valid
// state, not an error. The portal never writes records during normal
// operation (the diagnosis service does); UpsertProfile exists for seeding
// the development backend and for tests.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*internal.HealthProfile, error)
	UpsertProfile(ctx context.Context, profile *internal.HealthProfile) error
}
