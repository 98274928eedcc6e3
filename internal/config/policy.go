package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/forPelevin/reelplan/internal/types"
)

// Policy holds the pacing and validation knobs of the planner.
// Zero values in a YAML file keep the defaults.
type Policy struct {
	MinDuration     int `yaml:"min_duration"`
	MaxDuration     int `yaml:"max_duration"`
	DefaultDuration int `yaml:"default_duration"`

	// MinSegmentShare is the smallest fraction of the duration any beat gets.
	MinSegmentShare float64 `yaml:"min_segment_share"`
	MaxBeats        int     `yaml:"max_beats"`

	MinCueSeconds    float64 `yaml:"min_cue_seconds"`
	MaxWordsPerCue   int     `yaml:"max_words_per_cue"`
	MaxEmphasisWords int     `yaml:"max_emphasis_words"`

	GenerationTimeout time.Duration `yaml:"generation_timeout"`

	// Allow-lists narrow the accepted enum members. Empty means all known members.
	Platforms    []string `yaml:"platforms"`
	VoiceGenders []string `yaml:"voice_genders"`
	VoiceTones   []string `yaml:"voice_tones"`

	PronunciationWatchlist []string `yaml:"pronunciation_watchlist"`
}

func DefaultPolicy() Policy {
	return Policy{
		MinDuration:       15,
		MaxDuration:       60,
		DefaultDuration:   30,
		MinSegmentShare:   0.08,
		MaxBeats:          12,
		MinCueSeconds:     0.3,
		MaxWordsPerCue:    4,
		MaxEmphasisWords:  3,
		GenerationTimeout: 20 * time.Second,
		PronunciationWatchlist: []string{
			"niche", "genre", "gif", "cache", "quinoa", "meme", "saas", "entrepreneur", "algorithm",
		},
	}
}

// LoadPolicy overlays the YAML file at path on DefaultPolicy.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy: %w", err)
	}
	var overlay Policy
	if err := yaml.Unmarshal(b, &overlay); err != nil {
		return Policy{}, fmt.Errorf("parse policy %s: %w", path, err)
	}
	p.merge(overlay)
	if err := p.Validate(); err != nil {
		return Policy{}, fmt.Errorf("policy %s: %w", path, err)
	}
	return p, nil
}

func (p *Policy) merge(o Policy) {
	if o.MinDuration > 0 {
		p.MinDuration = o.MinDuration
	}
	if o.MaxDuration > 0 {
		p.MaxDuration = o.MaxDuration
	}
	if o.DefaultDuration > 0 {
		p.DefaultDuration = o.DefaultDuration
	}
	if o.MinSegmentShare > 0 {
		p.MinSegmentShare = o.MinSegmentShare
	}
	if o.MaxBeats > 0 {
		p.MaxBeats = o.MaxBeats
	}
	if o.MinCueSeconds > 0 {
		p.MinCueSeconds = o.MinCueSeconds
	}
	if o.MaxWordsPerCue > 0 {
		p.MaxWordsPerCue = o.MaxWordsPerCue
	}
	if o.MaxEmphasisWords > 0 {
		p.MaxEmphasisWords = o.MaxEmphasisWords
	}
	if o.GenerationTimeout > 0 {
		p.GenerationTimeout = o.GenerationTimeout
	}
	if len(o.Platforms) > 0 {
		p.Platforms = o.Platforms
	}
	if len(o.VoiceGenders) > 0 {
		p.VoiceGenders = o.VoiceGenders
	}
	if len(o.VoiceTones) > 0 {
		p.VoiceTones = o.VoiceTones
	}
	if len(o.PronunciationWatchlist) > 0 {
		p.PronunciationWatchlist = o.PronunciationWatchlist
	}
}

func (p Policy) Validate() error {
	if p.MinDuration <= 0 {
		return errors.New("min_duration must be > 0")
	}
	if p.MaxDuration < p.MinDuration {
		return errors.New("max_duration must be >= min_duration")
	}
	if p.DefaultDuration < p.MinDuration || p.DefaultDuration > p.MaxDuration {
		return fmt.Errorf("default_duration must be within [%d, %d]", p.MinDuration, p.MaxDuration)
	}
	if p.MinSegmentShare <= 0 || p.MinSegmentShare >= 0.5 {
		return errors.New("min_segment_share must be in (0, 0.5)")
	}
	if p.MaxBeats < 2 {
		return errors.New("max_beats must be >= 2")
	}
	if p.MinCueSeconds <= 0 {
		return errors.New("min_cue_seconds must be > 0")
	}
	if p.MaxWordsPerCue <= 0 {
		return errors.New("max_words_per_cue must be > 0")
	}
	if p.GenerationTimeout <= 0 {
		return errors.New("generation_timeout must be > 0")
	}
	for _, v := range p.Platforms {
		if _, ok := types.ParsePlatform(v); !ok {
			return fmt.Errorf("platforms: unknown platform %q", v)
		}
	}
	for _, v := range p.VoiceGenders {
		if _, ok := types.ParseVoiceGender(v); !ok {
			return fmt.Errorf("voice_genders: unknown gender %q", v)
		}
	}
	for _, v := range p.VoiceTones {
		if _, ok := types.ParseVoiceTone(v); !ok {
			return fmt.Errorf("voice_tones: unknown tone %q", v)
		}
	}
	return nil
}

func (p Policy) AllowsPlatform(v types.Platform) bool { return allowed(p.Platforms, string(v)) }

func (p Policy) AllowsVoiceGender(v types.VoiceGender) bool {
	return allowed(p.VoiceGenders, string(v))
}

func (p Policy) AllowsVoiceTone(v types.VoiceTone) bool { return allowed(p.VoiceTones, string(v)) }

func allowed(list []string, v string) bool {
	if len(list) == 0 {
		return true
	}
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}
