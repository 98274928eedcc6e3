// Package checklist lists the production and export steps for a plan.
package checklist

import (
	"fmt"

	"github.com/forPelevin/reelplan/internal/types"
)

type platformSpec struct {
	export   string
	safeZone string
	lufs     int
	publish  []string
}

var specs = map[types.Platform]platformSpec{
	types.PlatformYouTubeShorts: {
		export:   "Export vertical 9:16 at 1080x1920, 30 fps, H.264",
		safeZone: "Keep captions clear of the Shorts title and subscribe overlay",
		lufs:     -14,
		publish:  []string{"Add #Shorts to the title or description"},
	},
	types.PlatformTikTok: {
		export:   "Export vertical 9:16 at 1080x1920, 30 fps, H.264",
		safeZone: "Keep captions above the bottom 20% TikTok UI overlay",
		lufs:     -14,
		publish:  []string{"Add 3-5 niche hashtags", "Enable duets and stitches"},
	},
	types.PlatformInstagramReels: {
		export:   "Export vertical 9:16 at 1080x1920, 30 fps, H.264",
		safeZone: "Keep captions inside the central 4:5 area so the grid crop stays readable",
		lufs:     -14,
		publish:  []string{"Upload a 1080x1920 cover that reads in the 4:5 grid crop"},
	},
	types.PlatformFacebookReels: {
		export:   "Export vertical 9:16 at 1080x1920, 30 fps, H.264",
		safeZone: "Keep captions above the bottom 20% Reels UI overlay",
		lufs:     -16,
		publish:  []string{"Upload a 1080x1920 cover that reads in the 4:5 grid crop"},
	},
	types.PlatformLinkedIn: {
		export:   "Export portrait 4:5 at 1080x1350, 30 fps, H.264",
		safeZone: "Keep captions in the middle third for feed autoplay",
		lufs:     -16,
		publish:  []string{"Attach the caption file as closed captions for muted autoplay"},
	},
}

// Build returns the ordered, de-duplicated steps for platform and duration.
func Build(platform types.Platform, duration int) []string {
	spec, ok := specs[platform]
	if !ok {
		spec = specs[types.PlatformYouTubeShorts]
	}

	var items []string
	items = append(items,
		spec.export,
		"Burn in captions with emphasis styling",
		spec.safeZone,
		fmt.Sprintf("Normalize narration loudness to %d LUFS", spec.lufs),
		"Duck the soundtrack about 12 dB under narration",
	)
	items = append(items, durationSteps(duration)...)
	items = append(items, "Pick a cover frame from the hook segment")
	items = append(items, spec.publish...)
	items = append(items, "Export the caption track as a sidecar file for accessibility")
	return dedupe(items)
}

func durationSteps(duration int) []string {
	switch {
	case duration <= 20:
		return []string{"Loop the final frame into the hook for seamless replays"}
	case duration <= 40:
		return []string{"Land the climax before the 80% mark to protect retention"}
	default:
		return []string{
			"Add a visual re-hook near the halfway mark",
			"Land the climax before the 80% mark to protect retention",
		}
	}
}

func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
