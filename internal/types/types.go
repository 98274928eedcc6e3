package types

// RawRequest is the loosely typed brief accepted at the boundary.
// Duration may arrive as a JSON number or a numeric string.
type RawRequest struct {
	Topic       string `json:"topic"`
	Script      string `json:"script"`
	Duration    any    `json:"duration"`
	Platform    string `json:"platform"`
	VoiceGender string `json:"voiceGender"`
	VoiceTone   string `json:"voiceTone"`
	AvatarStyle string `json:"avatarStyle"`
}

// PlanningRequest is a validated brief. Duration is in whole seconds.
type PlanningRequest struct {
	Topic       string
	Script      string
	Duration    int
	Platform    Platform
	VoiceGender VoiceGender
	VoiceTone   VoiceTone
	AvatarStyle string
}

// Beat is one narration unit before timing is assigned.
type Beat struct {
	Text   string
	Role   Role
	Weight float64
}

type CaptionStyle struct {
	EmphasisWords []string `json:"emphasisWords"`
}

type Segment struct {
	ID           string       `json:"id"`
	Label        string       `json:"label"`
	Role         Role         `json:"role"`
	Text         string       `json:"text"`
	Start        float64      `json:"start"`
	End          float64      `json:"end"`
	VisualPrompt string       `json:"visualPrompt"`
	CameraAction string       `json:"cameraAction"`
	CaptionStyle CaptionStyle `json:"captionStyle"`
}

func (s Segment) Duration() float64 { return s.End - s.Start }

type Caption struct {
	SegmentID string  `json:"segmentId"`
	Text      string  `json:"text"`
	At        float64 `json:"at"`
	Duration  float64 `json:"duration"`
	Emphasis  bool    `json:"emphasis"`
}

func (c Caption) End() float64 { return c.At + c.Duration }

type VoiceDirection struct {
	Gender             VoiceGender `json:"gender"`
	Tone               VoiceTone   `json:"tone"`
	Pace               string      `json:"pace"`
	PronunciationHints []string    `json:"pronunciationHints"`
	Script             string      `json:"script"`
}

type Soundtrack struct {
	TrackName string `json:"trackName"`
	Vibe      string `json:"vibe"`
}

type VideoPlan struct {
	Hook            string         `json:"hook"`
	Summary         string         `json:"summary"`
	Duration        int            `json:"duration"`
	Platform        Platform       `json:"platform"`
	Segments        []Segment      `json:"segments"`
	Voice           VoiceDirection `json:"voice"`
	Captions        []Caption      `json:"captions"`
	Soundtrack      Soundtrack     `json:"soundtrack"`
	ExportChecklist []string       `json:"exportChecklist"`
}

// Option is a selectable enum member as shown to clients.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Stage names a finished step of plan assembly, reported to progress listeners.
type Stage string

const (
	StageNormalized Stage = "normalized"
	StageScripted   Stage = "scripted"
	StageScheduled  Stage = "scheduled"
	StageAssembled  Stage = "assembled"
)
