// Package request validates a raw brief into a PlanningRequest.
package request

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/forPelevin/reelplan/internal/config"
	"github.com/forPelevin/reelplan/internal/types"
)

const DefaultAvatarStyle = "bokeh-silhouette"

// Normalize validates raw and fills defaults for omitted fields. Present but
// unknown enum values and out-of-range durations are rejected, never coerced.
func Normalize(raw types.RawRequest, p config.Policy) (types.PlanningRequest, error) {
	topic := strings.Join(strings.Fields(raw.Topic), " ")
	if topic == "" {
		return types.PlanningRequest{}, types.Invalid("topic", "must not be empty")
	}

	duration, err := parseDuration(raw.Duration, p)
	if err != nil {
		return types.PlanningRequest{}, err
	}

	platform := types.PlatformYouTubeShorts
	if strings.TrimSpace(raw.Platform) != "" {
		v, ok := types.ParsePlatform(raw.Platform)
		if !ok || !p.AllowsPlatform(v) {
			return types.PlanningRequest{}, types.Invalid("platform", "unsupported value %q", raw.Platform)
		}
		platform = v
	}

	gender := types.VoiceFemale
	if strings.TrimSpace(raw.VoiceGender) != "" {
		v, ok := types.ParseVoiceGender(raw.VoiceGender)
		if !ok || !p.AllowsVoiceGender(v) {
			return types.PlanningRequest{}, types.Invalid("voiceGender", "unsupported value %q", raw.VoiceGender)
		}
		gender = v
	}

	tone := types.ToneHighEnergy
	if strings.TrimSpace(raw.VoiceTone) != "" {
		v, ok := types.ParseVoiceTone(raw.VoiceTone)
		if !ok || !p.AllowsVoiceTone(v) {
			return types.PlanningRequest{}, types.Invalid("voiceTone", "unsupported value %q", raw.VoiceTone)
		}
		tone = v
	}

	avatar := strings.TrimSpace(raw.AvatarStyle)
	if avatar == "" {
		avatar = DefaultAvatarStyle
	}

	return types.PlanningRequest{
		Topic:       topic,
		Script:      strings.TrimSpace(raw.Script),
		Duration:    duration,
		Platform:    platform,
		VoiceGender: gender,
		VoiceTone:   tone,
		AvatarStyle: avatar,
	}, nil
}

func parseDuration(v any, p config.Policy) (int, error) {
	var f float64
	switch x := v.(type) {
	case nil:
		return p.DefaultDuration, nil
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case float64:
		f = x
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return 0, types.Invalid("duration", "not a number: %q", x.String())
		}
		f = n
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return p.DefaultDuration, nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, types.Invalid("duration", "not a number: %q", x)
		}
		f = n
	default:
		return 0, types.Invalid("duration", "unsupported type %T", v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, types.Invalid("duration", "must be a whole number of seconds, got %v", f)
	}
	if f < float64(p.MinDuration) || f > float64(p.MaxDuration) {
		return 0, types.Invalid("duration", "must be between %d and %d seconds, got %v", p.MinDuration, p.MaxDuration, f)
	}
	return int(f), nil
}
