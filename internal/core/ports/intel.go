package ports

import (
	"context"

	"github.com/voxline-studio/backend/internal/core/domain"
)

// CompetitorIntel resolves competitor names to channel profiles used to
// ground the research prompt. Optional: a nil implementation means research
// is generated without live channel data.
type CompetitorIntel interface {
	LookupChannels(ctx context.Context, names []string) ([]domain.CompetitorProfile, error)
}
