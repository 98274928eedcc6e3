package subtitles

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/forPelevin/reelplan/internal/types"
)

// RenderASS renders caption cues as an ASS track sized for the platform.
// Each word gets a karaoke tag sized by its share of the cue's characters;
// emphasized cues use the Pop style.
func RenderASS(captions []types.Caption, platform types.Platform) string {
	var b strings.Builder
	b.WriteString(assHeader(platform))
	b.WriteString("\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, c := range captions {
		start := dur(c.At)
		end := dur(c.At + c.Duration)
		style := "Caption"
		if c.Emphasis {
			style = "Pop"
		}
		b.WriteString("Dialogue: 0,")
		b.WriteString(assTime(start))
		b.WriteString(",")
		b.WriteString(assTime(end))
		b.WriteString(",")
		b.WriteString(style)
		b.WriteString(",,0,0,0,,")
		b.WriteString(karaoke(c.Text, end-start))
		b.WriteString("\n")
	}
	return b.String()
}

func karaoke(text string, total time.Duration) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	chars := 0
	for _, w := range words {
		chars += utf8.RuneCountInString(w)
	}
	totalCS := int(total / (10 * time.Millisecond))

	var b strings.Builder
	used := 0
	for i, w := range words {
		cs := totalCS * utf8.RuneCountInString(w) / max(chars, 1)
		if i == len(words)-1 {
			cs = totalCS - used
		}
		if cs < 1 {
			cs = 1
		}
		used += cs
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(fmt.Sprintf("{\\k%d}%s", cs, sanitizeASS(w)))
	}
	return b.String()
}

func assHeader(platform types.Platform) string {
	resX, resY, marginV := 1080, 1920, 420
	if !platform.Vertical() {
		resX, resY, marginV = 1080, 1350, 260
	}
	return fmt.Sprintf(strings.TrimSpace(`
[Script Info]
ScriptType: v4.00+
PlayResX: %d
PlayResY: %d
ScaledBorderAndShadow: yes

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Caption, Inter, 78, &H00FFFFFF, &H00FFD200, &H00000000, &H64000000, 1,0,0,0,100,100,0,0,1,6,2,2, 80,80,%d,1
Style: Pop, Inter, 92, &H0000D7FF, &H00FFFFFF, &H00000000, &H64000000, 1,0,0,0,105,105,0,0,1,7,3,2, 80,80,%d,1
`), resX, resY, marginV, marginV)
}

func assTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hs := int(d / time.Hour)
	d -= time.Duration(hs) * time.Hour
	ms := int(d / time.Minute)
	d -= time.Duration(ms) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	cs := int(d / (10 * time.Millisecond))
	return fmt.Sprintf("%d:%02d:%02d.%02d", hs, ms, s, cs)
}

func sanitizeASS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	return strings.TrimSpace(s)
}

// dur rounds to the millisecond so cue boundaries on centiseconds survive
// float seconds.
func dur(sec float64) time.Duration {
	return (time.Duration(sec*float64(time.Second)) + time.Millisecond/2).Truncate(time.Millisecond)
}
