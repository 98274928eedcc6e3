package script

import (
	"context"
	"fmt"
	"strings"

	"github.com/forPelevin/reelplan/internal/types"
)

type toneTemplates struct {
	hook   string
	bodies [3]string
	climax string
	cta    string
}

// Every template takes the topic once; cta also takes the comment keyword.
var templates = map[types.VoiceTone]toneTemplates{
	types.ToneHighEnergy: {
		hook: "Stop scrolling, this is the %s move nobody is talking about!",
		bodies: [3]string{
			"Most people try %s with zero plan and quit in a week.",
			"Here is the trick: pick one tiny %s task and ship it today.",
			"Then stack wins daily, because %s rewards speed over perfection.",
		},
		climax: "Do that for thirty days and %s stops being a dream and starts paying you.",
		cta:    "Follow for part two on %s and comment %s for the full playbook!",
	},
	types.ToneCalm: {
		hook: "Let's slow down and look at %s the way it actually works.",
		bodies: [3]string{
			"The first step with %s is simply noticing where you already are.",
			"From there, one small and steady %s habit does most of the work.",
			"Give it time, and %s starts to feel natural instead of forced.",
		},
		climax: "That quiet consistency is the real secret behind %s.",
		cta:    "Save this for later, follow for more on %s, and comment %s if it helped.",
	},
	types.ToneFriendly: {
		hook: "Okay, let me tell you what I wish I knew about %s sooner.",
		bodies: [3]string{
			"I used to overthink %s and never actually start.",
			"What changed was treating %s like a fun weekend experiment.",
			"Once I shared my %s progress, friends started asking how.",
		},
		climax: "And honestly, that is when %s finally clicked for me.",
		cta:    "Follow along for more %s tips and comment %s so I know you're here!",
	},
	types.ToneAuthoritative: {
		hook: "Here is the data-backed truth about %s.",
		bodies: [3]string{
			"Most %s advice ignores the one metric that matters: consistency.",
			"The winning %s framework has three parts: focus, measure, iterate.",
			"Apply it weekly and your %s results compound predictably.",
		},
		climax: "This is exactly how experts turn %s into a repeatable system.",
		cta:    "Follow for the full %s breakdown and comment %s for the checklist.",
	},
	types.ToneDramatic: {
		hook: "Nobody warned me what %s would really cost.",
		bodies: [3]string{
			"At first %s looked easy, almost too easy.",
			"Then every shortcut in %s started falling apart.",
			"I had one last chance to get %s right.",
		},
		climax: "And what happened next changed how I see %s forever.",
		cta:    "Follow for part two of the %s story and comment %s if you want it now.",
	},
}

// Skeleton builds a deterministic beat list from the topic: hook, two body
// beats (three for videos of 45 seconds or more), climax and cta.
func Skeleton(req types.PlanningRequest) []types.Beat {
	tpl, ok := templates[req.VoiceTone]
	if !ok {
		tpl = templates[types.ToneHighEnergy]
	}
	topic := strings.TrimSpace(req.Topic)

	bodies := 2
	if req.Duration >= 45 {
		bodies = 3
	}

	texts := make([]string, 0, bodies+3)
	texts = append(texts, fmt.Sprintf(tpl.hook, topic))
	for i := 0; i < bodies; i++ {
		texts = append(texts, fmt.Sprintf(tpl.bodies[i], topic))
	}
	texts = append(texts,
		fmt.Sprintf(tpl.climax, topic),
		fmt.Sprintf(tpl.cta, topic, CommentKeyword(topic)),
	)

	beats := make([]types.Beat, len(texts))
	for i, text := range texts {
		role := types.RoleBody
		switch {
		case i == 0:
			role = types.RoleHook
		case i == len(texts)-1:
			role = types.RoleCTA
		case i == len(texts)-2:
			role = types.RoleClimax
		}
		beats[i] = types.Beat{Text: text, Role: role, Weight: float64(WordCount(text))}
	}
	return beats
}

// CommentKeyword picks the longest topic word (first wins on ties), upper-cased.
func CommentKeyword(topic string) string {
	best := ""
	for _, w := range strings.Fields(topic) {
		w = strings.TrimFunc(w, func(r rune) bool { return !isWordRune(r) })
		if len([]rune(w)) > len([]rune(best)) {
			best = w
		}
	}
	if best == "" {
		return "YES"
	}
	return strings.ToUpper(best)
}

// TemplateWriter produces skeleton beats without any external call.
type TemplateWriter struct{}

func (TemplateWriter) Write(_ context.Context, req types.PlanningRequest) ([]types.Beat, error) {
	return Skeleton(req), nil
}
