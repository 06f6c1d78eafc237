package ports

import (
	"context"
	"encoding/json"

	"github.com/voxline-studio/backend/internal/core/domain"
)

// Generator is the single integration point with the external generative
// service. Implementations own transport, authentication, per-call timeouts
// and retries; they return raw JSON without interpreting its content.
// Implementations must be safe for concurrent use by independent requests.
type Generator interface {
	Generate(ctx context.Context, kind domain.SectionKind, instruction string) (json.RawMessage, error)
}
