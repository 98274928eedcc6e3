package api

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

type OptionResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type OptionsResponse struct {
	Platforms       []OptionResponse `json:"platforms"`
	VoiceGenders    []OptionResponse `json:"voiceGenders"`
	VoiceTones      []OptionResponse `json:"voiceTones"`
	AvatarStyles    []OptionResponse `json:"avatarStyles"`
	MinDuration     int              `json:"minDuration"`
	MaxDuration     int              `json:"maxDuration"`
	DefaultDuration int              `json:"defaultDuration"`
}

const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeComposition = "COMPOSITION_ERROR"
	CodeTimeout     = "GENERATION_TIMEOUT"
	CodeBadRequest  = "BAD_REQUEST"
	CodeInternal    = "INTERNAL_ERROR"
	CodeCanceled    = "REQUEST_CANCELED"
)
