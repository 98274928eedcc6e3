// Package soundtrack picks a backing track for a platform and voice tone.
package soundtrack

import "github.com/forPelevin/reelplan/internal/types"

type key struct {
	platform types.Platform
	tone     types.VoiceTone
}

var byPlatformTone = map[key]types.Soundtrack{
	{types.PlatformTikTok, types.ToneHighEnergy}:           {TrackName: "Neon Rush (phonk edit)", Vibe: "Hard-hitting phonk drop timed to the hook"},
	{types.PlatformTikTok, types.ToneFriendly}:             {TrackName: "Sunday Scooter", Vibe: "Bouncy ukulele pop that stays out of the voice's way"},
	{types.PlatformYouTubeShorts, types.ToneHighEnergy}:    {TrackName: "Momentum Pulse", Vibe: "Driving synthwave with a build into the climax"},
	{types.PlatformYouTubeShorts, types.ToneAuthoritative}: {TrackName: "Boardroom Grid", Vibe: "Minimal corporate pulse with confident low end"},
	{types.PlatformInstagramReels, types.ToneHighEnergy}:   {TrackName: "Golden Hour Strut", Vibe: "Glossy dance-pop with a snappy four-on-the-floor"},
	{types.PlatformInstagramReels, types.ToneCalm}:         {TrackName: "Linen Morning", Vibe: "Airy lo-fi keys with soft vinyl texture"},
	{types.PlatformLinkedIn, types.ToneAuthoritative}:      {TrackName: "Clear Signal", Vibe: "Understated piano and strings for a credible tone"},
}

var byTone = map[types.VoiceTone]types.Soundtrack{
	types.ToneHighEnergy:    {TrackName: "Voltage Loop", Vibe: "Punchy electronic beat with fast hats"},
	types.ToneCalm:          {TrackName: "Still Water", Vibe: "Ambient pads and gentle piano"},
	types.ToneFriendly:      {TrackName: "Porch Light", Vibe: "Warm acoustic strum with claps"},
	types.ToneAuthoritative: {TrackName: "Keynote", Vibe: "Steady cinematic pulse with restrained brass"},
	types.ToneDramatic:      {TrackName: "Undertow", Vibe: "Dark cinematic strings with a slow riser"},
}

// Default is used when neither the platform/tone pair nor the tone is mapped.
var Default = types.Soundtrack{TrackName: "Open Road", Vibe: "Neutral upbeat bed that sits under any voice"}

func Select(platform types.Platform, tone types.VoiceTone) types.Soundtrack {
	if s, ok := byPlatformTone[key{platform, tone}]; ok {
		return s
	}
	if s, ok := byTone[tone]; ok {
		return s
	}
	return Default
}
