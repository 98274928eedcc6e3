// Package voice derives narration delivery directions.
package voice

import (
	"strings"
	"unicode"

	"github.com/forPelevin/reelplan/internal/config"
	"github.com/forPelevin/reelplan/internal/types"
)

var paceByTone = map[types.VoiceTone]string{
	types.ToneHighEnergy:    "brisk",
	types.ToneCalm:          "measured",
	types.ToneFriendly:      "conversational",
	types.ToneAuthoritative: "steady",
	types.ToneDramatic:      "deliberate",
}

type voiceKey struct {
	gender types.VoiceGender
	tone   types.VoiceTone
}

var paceOverrides = map[voiceKey]string{
	{types.VoiceMale, types.ToneDramatic}:      "slow-burn",
	{types.VoiceNeutral, types.ToneHighEnergy}: "upbeat",
	{types.VoiceFemale, types.ToneCalm}:        "unhurried",
}

func Pace(gender types.VoiceGender, tone types.VoiceTone) string {
	if p, ok := paceOverrides[voiceKey{gender, tone}]; ok {
		return p
	}
	if p, ok := paceByTone[tone]; ok {
		return p
	}
	return "natural"
}

// Direct builds the voice direction for the ordered beats.
func Direct(req types.PlanningRequest, beats []types.Beat, p config.Policy) types.VoiceDirection {
	texts := make([]string, len(beats))
	for i, b := range beats {
		texts[i] = strings.TrimSpace(b.Text)
	}
	full := strings.Join(texts, " ")
	return types.VoiceDirection{
		Gender:             req.VoiceGender,
		Tone:               req.VoiceTone,
		Pace:               Pace(req.VoiceGender, req.VoiceTone),
		PronunciationHints: hints(full, p.PronunciationWatchlist, shoutedWords(req.Topic)),
		Script:             full,
	}
}

// Hints lists the distinct tokens of script a narrator may stumble on:
// acronyms, tokens with digits, CamelCase brand names and watchlist words.
// Matching is case-insensitive; the first spelling seen is kept.
func Hints(script string, watchlist []string) []string {
	return hints(script, watchlist, nil)
}

// shoutedWords are ordinary words a script may print in capitals, such as the
// comment keyword built from the topic. They are not acronyms.
func shoutedWords(topic string) map[string]struct{} {
	out := map[string]struct{}{"yes": {}}
	for _, raw := range strings.Fields(topic) {
		w := strings.TrimFunc(raw, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if w == "" || isAcronym(w) {
			continue
		}
		out[strings.ToLower(w)] = struct{}{}
	}
	return out
}

func hints(script string, watchlist []string, shouted map[string]struct{}) []string {
	watch := make(map[string]struct{}, len(watchlist))
	for _, w := range watchlist {
		watch[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}

	out := []string{}
	seen := map[string]struct{}{}
	for _, raw := range strings.Fields(script) {
		tok := strings.TrimFunc(raw, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if tok == "" {
			continue
		}
		key := strings.ToLower(tok)
		if _, dup := seen[key]; dup {
			continue
		}
		_, listed := watch[key]
		_, plain := shouted[key]
		acronym := isAcronym(tok) && !plain
		if !listed && !acronym && !hasDigit(tok) && !isCamelCase(tok) {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tok)
	}
	return out
}

func isAcronym(tok string) bool {
	upper := 0
	for _, r := range tok {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return upper >= 2
}

func hasDigit(tok string) bool {
	return strings.IndexFunc(tok, unicode.IsDigit) >= 0
}

func isCamelCase(tok string) bool {
	lower := false
	for i, r := range []rune(tok) {
		if unicode.IsLower(r) {
			lower = true
		}
		if i > 0 && unicode.IsUpper(r) && lower {
			return true
		}
	}
	return false
}
