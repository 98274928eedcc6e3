// Package schedule turns ordered beats into timed, directed segments.
package schedule

import (
	"fmt"
	"math"
	"strings"

	"github.com/forPelevin/reelplan/internal/config"
	"github.com/forPelevin/reelplan/internal/domain/emphasis"
	"github.com/forPelevin/reelplan/internal/domain/timing"
	"github.com/forPelevin/reelplan/internal/types"
)

// Segment times are computed in tenths of a second.
const unitsPerSecond = 10

// Build partitions req.Duration across beats by word count, with a floor of
// MinSegmentShare per beat. Segments are contiguous and the last one ends
// exactly at req.Duration.
func Build(beats []types.Beat, req types.PlanningRequest, p config.Policy) ([]types.Segment, error) {
	if len(beats) < 2 {
		return nil, &types.CompositionError{Reason: fmt.Sprintf("need at least 2 beats, got %d", len(beats))}
	}
	weights := make([]float64, len(beats))
	for i, b := range beats {
		if strings.TrimSpace(b.Text) == "" {
			return nil, &types.CompositionError{Reason: fmt.Sprintf("beat %d is empty", i+1)}
		}
		w := b.Weight
		if w <= 0 {
			w = float64(len(strings.Fields(b.Text)))
		}
		weights[i] = w
	}

	total := req.Duration * unitsPerSecond
	floor := int(math.Ceil(p.MinSegmentShare*float64(total) - 1e-9))
	parts := timing.Split(total, weights, floor)
	if parts == nil {
		return nil, &types.CompositionError{
			Reason: fmt.Sprintf("%d beats do not fit into %d seconds", len(beats), req.Duration),
		}
	}

	segs := make([]types.Segment, len(beats))
	ordinals := map[types.Role]int{}
	cursor := 0
	for i, b := range beats {
		ord := ordinals[b.Role]
		ordinals[b.Role]++

		visual, camera := direct(b.Role, ord, req.Topic, req.AvatarStyle)
		segs[i] = types.Segment{
			ID:           fmt.Sprintf("seg-%02d", i+1),
			Label:        b.Role.Label(),
			Role:         b.Role,
			Text:         b.Text,
			Start:        seconds(cursor),
			End:          seconds(cursor + parts[i]),
			VisualPrompt: visual,
			CameraAction: camera,
			CaptionStyle: types.CaptionStyle{
				EmphasisWords: emphasis.Pick(b.Text, req.Topic, p.MaxEmphasisWords),
			},
		}
		cursor += parts[i]
	}
	return segs, nil
}

func seconds(units int) float64 { return float64(units) / unitsPerSecond }
