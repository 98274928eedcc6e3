package types

import "strings"

type Platform string

const (
	PlatformYouTubeShorts  Platform = "youtube-shorts"
	PlatformTikTok         Platform = "tiktok"
	PlatformInstagramReels Platform = "instagram-reels"
	PlatformFacebookReels  Platform = "facebook-reels"
	PlatformLinkedIn       Platform = "linkedin"
)

var platforms = []Option{
	{Value: string(PlatformYouTubeShorts), Label: "YouTube Shorts"},
	{Value: string(PlatformTikTok), Label: "TikTok"},
	{Value: string(PlatformInstagramReels), Label: "Instagram Reels"},
	{Value: string(PlatformFacebookReels), Label: "Facebook Reels"},
	{Value: string(PlatformLinkedIn), Label: "LinkedIn"},
}

type VoiceGender string

const (
	VoiceFemale  VoiceGender = "female"
	VoiceMale    VoiceGender = "male"
	VoiceNeutral VoiceGender = "neutral"
)

var voiceGenders = []Option{
	{Value: string(VoiceFemale), Label: "Female"},
	{Value: string(VoiceMale), Label: "Male"},
	{Value: string(VoiceNeutral), Label: "Neutral"},
}

type VoiceTone string

const (
	ToneHighEnergy    VoiceTone = "high-energy"
	ToneCalm          VoiceTone = "calm"
	ToneFriendly      VoiceTone = "friendly"
	ToneAuthoritative VoiceTone = "authoritative"
	ToneDramatic      VoiceTone = "dramatic"
)

var voiceTones = []Option{
	{Value: string(ToneHighEnergy), Label: "High energy"},
	{Value: string(ToneCalm), Label: "Calm"},
	{Value: string(ToneFriendly), Label: "Friendly"},
	{Value: string(ToneAuthoritative), Label: "Authoritative"},
	{Value: string(ToneDramatic), Label: "Dramatic"},
}

// AvatarStyles lists the suggested avatar tags. Avatar style is free-form,
// so these are hints for clients, not a closed set.
var avatarStyles = []Option{
	{Value: "bokeh-silhouette", Label: "Bokeh silhouette"},
	{Value: "neon-hologram", Label: "Neon hologram"},
	{Value: "studio-presenter", Label: "Studio presenter"},
	{Value: "animated-mascot", Label: "Animated mascot"},
}

// Role is the structural position of a beat in the narrative arc.
type Role string

const (
	RoleHook   Role = "hook"
	RoleBody   Role = "body"
	RoleClimax Role = "climax"
	RoleCTA    Role = "cta"
)

func (r Role) Label() string {
	switch r {
	case RoleHook:
		return "Hook"
	case RoleBody:
		return "Build"
	case RoleClimax:
		return "Climax"
	case RoleCTA:
		return "Call to action"
	default:
		return string(r)
	}
}

func ParsePlatform(s string) (Platform, bool) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	return p, hasOption(platforms, string(p))
}

func ParseVoiceGender(s string) (VoiceGender, bool) {
	g := VoiceGender(strings.ToLower(strings.TrimSpace(s)))
	return g, hasOption(voiceGenders, string(g))
}

func ParseVoiceTone(s string) (VoiceTone, bool) {
	t := VoiceTone(strings.ToLower(strings.TrimSpace(s)))
	return t, hasOption(voiceTones, string(t))
}

func (p Platform) Label() string    { return optionLabel(platforms, string(p)) }
func (g VoiceGender) Label() string { return optionLabel(voiceGenders, string(g)) }
func (t VoiceTone) Label() string   { return optionLabel(voiceTones, string(t)) }

// Vertical reports whether the platform expects 9:16 video.
func (p Platform) Vertical() bool { return p != PlatformLinkedIn }

func PlatformOptions() []Option    { return cloneOptions(platforms) }
func VoiceGenderOptions() []Option { return cloneOptions(voiceGenders) }
func VoiceToneOptions() []Option   { return cloneOptions(voiceTones) }
func AvatarStyleOptions() []Option { return cloneOptions(avatarStyles) }

func hasOption(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

func optionLabel(opts []Option, v string) string {
	for _, o := range opts {
		if o.Value == v {
			return o.Label
		}
	}
	return v
}

func cloneOptions(opts []Option) []Option {
	return append([]Option(nil), opts...)
}
