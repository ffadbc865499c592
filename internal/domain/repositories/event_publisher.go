package repositories

import (
	"context"

	"profile-api.backend/internal/domain/entities"
)

// ProfileEventPublisher announces committed profile writes to other services.
type ProfileEventPublisher interface {
	Publish(ctx context.Context, event *entities.ProfileEvent) error
}
