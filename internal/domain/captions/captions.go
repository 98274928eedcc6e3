// Package captions cuts segment narration into timed on-screen cues.
package captions

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/forPelevin/reelplan/internal/config"
	"github.com/forPelevin/reelplan/internal/domain/emphasis"
	"github.com/forPelevin/reelplan/internal/domain/timing"
	"github.com/forPelevin/reelplan/internal/types"
)

// Cue times are computed in centiseconds.
const unitsPerSecond = 100

// BuildAll returns the cues of every segment in segment order.
func BuildAll(segs []types.Segment, p config.Policy) []types.Caption {
	out := []types.Caption{}
	for _, s := range segs {
		out = append(out, Build(s, p)...)
	}
	return out
}

// Build splits one segment into cues of at most MaxWordsPerCue words. Cue
// time is proportional to character length with a MinCueSeconds floor, and
// the cues tile [seg.Start, seg.End). The last cue ends at seg.End.
func Build(seg types.Segment, p config.Policy) []types.Caption {
	words := strings.Fields(seg.Text)
	start := toUnits(seg.Start)
	span := toUnits(seg.End) - start
	if len(words) == 0 || span <= 0 {
		return nil
	}

	groups := group(words, p.MaxWordsPerCue)
	if len(groups) > span {
		groups = chunk(words, (len(words)+span-1)/span)
	}

	weights := make([]float64, len(groups))
	for i, g := range groups {
		weights[i] = float64(charLen(g))
	}
	parts := timing.Split(span, weights, toUnits(p.MinCueSeconds))

	hot := emphasis.Set(seg.CaptionStyle.EmphasisWords)
	out := make([]types.Caption, len(groups))
	cursor := start
	for i, g := range groups {
		at := fromUnits(cursor)
		end := fromUnits(cursor + parts[i])
		if i == len(groups)-1 {
			end = seg.End
		}
		out[i] = types.Caption{
			SegmentID: seg.ID,
			Text:      strings.Join(g, " "),
			At:        at,
			Duration:  fitDuration(at, end),
			Emphasis:  emphasized(g, hot),
		}
		cursor += parts[i]
	}
	return out
}

// fitDuration returns end-at, nudged down until at+duration does not pass end
// in floating point.
func fitDuration(at, end float64) float64 {
	d := end - at
	for d > 0 && at+d > end {
		d = math.Nextafter(d, 0)
	}
	return d
}

// group packs words into cues, closing a cue early after clause punctuation.
func group(words []string, max int) [][]string {
	if max < 1 {
		max = 1
	}
	var out [][]string
	var cur []string
	for _, w := range words {
		cur = append(cur, w)
		if len(cur) >= max || endsClause(w) {
			out = append(out, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func chunk(words []string, size int) [][]string {
	var out [][]string
	for i := 0; i < len(words); i += size {
		end := min(i+size, len(words))
		out = append(out, words[i:end])
	}
	return out
}

func endsClause(w string) bool {
	w = strings.TrimRight(w, `"')]”’`)
	if w == "" {
		return false
	}
	switch w[len(w)-1] {
	case ',', '.', '!', '?', ';', ':':
		return true
	}
	return false
}

func charLen(words []string) int {
	n := 0
	for _, w := range words {
		n += utf8.RuneCountInString(w)
	}
	return n
}

func emphasized(words []string, hot map[string]struct{}) bool {
	for _, w := range words {
		if _, ok := hot[emphasis.Normalize(w)]; ok {
			return true
		}
	}
	return false
}

func toUnits(sec float64) int      { return int(math.Round(sec * unitsPerSecond)) }
func fromUnits(units int) float64 { return float64(units) / unitsPerSecond }
