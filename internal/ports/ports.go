package ports

import (
	"context"

	"github.com/forPelevin/reelplan/internal/types"
)

// ScriptWriter produces narration beats for a brief that has no script.
// Implementations that call out to a service must honor ctx.
type ScriptWriter interface {
	Write(ctx context.Context, req types.PlanningRequest) ([]types.Beat, error)
}
