package script

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/forPelevin/reelplan/internal/config"
	"github.com/forPelevin/reelplan/internal/types"
)

func TestCompose_ThreeSentencesThreeBeats(t *testing.T) {
	in := "AI can write your emails.   But it cannot  close deals!\nLearn the difference today?"
	beats, err := Compose(in, config.DefaultPolicy())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	want := []string{
		"AI can write your emails.",
		"But it cannot close deals!",
		"Learn the difference today?",
	}
	if len(beats) != len(want) {
		t.Fatalf("expected %d beats, got %d: %+v", len(want), len(beats), beats)
	}
	for i, b := range beats {
		if b.Text != want[i] {
			t.Fatalf("beat %d = %q, want %q", i, b.Text, want[i])
		}
	}
	if beats[0].Role != types.RoleHook || beats[1].Role != types.RoleClimax || beats[2].Role != types.RoleCTA {
		t.Fatalf("unexpected roles: %s %s %s", beats[0].Role, beats[1].Role, beats[2].Role)
	}
	if beats[1].Weight != 5 {
		t.Fatalf("expected weight to be the word count, got %v", beats[1].Weight)
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"decimal stays", "Revenue grew 3.5 times. Wild.", []string{"Revenue grew 3.5 times.", "Wild."}},
		{"closing quote", `He said "go!" Then left.`, []string{`He said "go!"`, "Then left."}},
		{"ellipsis run", "Wait... what happened?", []string{"Wait...", "what happened?"}},
		{"no terminal punctuation", "first line\nsecond line", []string{"first line", "second line"}},
		{"punctuation only dropped", "Hello. ... !", []string{"Hello."}},
		{"blank", "  \n\t ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.in)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Fatalf("SplitSentences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCompose_SingleSentenceSplitsAtClause(t *testing.T) {
	beats, err := Compose("If you remember one thing, never skip the warmup", config.DefaultPolicy())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if len(beats) != 2 {
		t.Fatalf("expected 2 beats, got %d", len(beats))
	}
	if beats[0].Text != "If you remember one thing," || beats[1].Text != "never skip the warmup" {
		t.Fatalf("unexpected split: %q / %q", beats[0].Text, beats[1].Text)
	}
	if beats[0].Role != types.RoleHook || beats[1].Role != types.RoleCTA {
		t.Fatalf("expected hook+cta, got %s+%s", beats[0].Role, beats[1].Role)
	}
}

func TestCompose_Errors(t *testing.T) {
	p := config.DefaultPolicy()
	p.MaxBeats = 3

	tests := map[string]string{
		"empty":          "   ",
		"one word":       "Hello.",
		"too many beats": "One. Two. Three. Four.",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Compose(in, p)
			var ce *types.CompositionError
			if !errors.As(err, &ce) {
				t.Fatalf("expected CompositionError, got %v", err)
			}
		})
	}
}

func TestAssignRoles_MiddleThird(t *testing.T) {
	beats := AssignRoles([]string{"a", "b", "c", "d", "e", "f"})
	want := []types.Role{types.RoleHook, types.RoleBody, types.RoleBody, types.RoleClimax, types.RoleClimax, types.RoleCTA}
	for i, b := range beats {
		if b.Role != want[i] {
			t.Fatalf("beat %d role = %s, want %s", i, b.Role, want[i])
		}
	}
}

func TestSkeleton_Deterministic(t *testing.T) {
	req := types.PlanningRequest{Topic: "AI side hustle", Duration: 30, VoiceTone: types.ToneHighEnergy}
	a := Skeleton(req)
	b, err := TemplateWriter{}.Write(context.Background(), req)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(a) != 5 || len(b) != 5 {
		t.Fatalf("expected 5 beats for 30s, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("beat %d differs: %+v vs %+v", i, a[i], b[i])
		}
		if strings.TrimSpace(a[i].Text) == "" {
			t.Fatalf("beat %d is empty", i)
		}
	}
	if !strings.Contains(a[0].Text, "AI side hustle") {
		t.Fatalf("expected hook to mention topic, got %q", a[0].Text)
	}
	if !strings.Contains(a[len(a)-1].Text, "HUSTLE") {
		t.Fatalf("expected cta keyword, got %q", a[len(a)-1].Text)
	}
	if a[3].Role != types.RoleClimax {
		t.Fatalf("expected climax before cta, got %s", a[3].Role)
	}
}

func TestSkeleton_LongVideoGetsThirdBody(t *testing.T) {
	for _, tone := range []types.VoiceTone{types.ToneCalm, types.ToneFriendly, types.ToneAuthoritative, types.ToneDramatic} {
		beats := Skeleton(types.PlanningRequest{Topic: "sourdough", Duration: 45, VoiceTone: tone})
		if len(beats) != 6 {
			t.Fatalf("%s: expected 6 beats, got %d", tone, len(beats))
		}
	}
}

func TestCommentKeyword(t *testing.T) {
	tests := map[string]string{
		"AI side hustle": "HUSTLE",
		"  ":             "YES",
		"cats & dogs!":   "CATS",
	}
	for in, want := range tests {
		if got := CommentKeyword(in); got != want {
			t.Fatalf("CommentKeyword(%q) = %q, want %q", in, got, want)
		}
	}
}
