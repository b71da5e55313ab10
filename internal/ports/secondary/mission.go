// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"

	"github.com/example/aerobridge/internal/core/recommendation"
)

// MissionSource defines the secondary port for loading the mission context.
type MissionSource interface {
	// Load reads, schema-checks and validates the mission context.
	// Invalid data returns an error matching recommendation.ErrSchema.
	Load(ctx context.Context) (*recommendation.MissionContext, error)

	// Name describes where the mission context comes from (path or embedded name).
	Name() string
}
