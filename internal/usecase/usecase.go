package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/forPelevin/reelplan/internal/config"
	"github.com/forPelevin/reelplan/internal/domain/captions"
	"github.com/forPelevin/reelplan/internal/domain/checklist"
	"github.com/forPelevin/reelplan/internal/domain/request"
	"github.com/forPelevin/reelplan/internal/domain/schedule"
	"github.com/forPelevin/reelplan/internal/domain/script"
	"github.com/forPelevin/reelplan/internal/domain/soundtrack"
	"github.com/forPelevin/reelplan/internal/domain/voice"
	"github.com/forPelevin/reelplan/internal/ports"
	"github.com/forPelevin/reelplan/internal/types"
)

type Deps struct {
	// Writer drafts beats when the brief has no script. Nil means the
	// built-in template writer.
	Writer ports.ScriptWriter
	// Policy zero value means config.DefaultPolicy.
	Policy config.Policy
}

// Usecase is safe for concurrent use: it holds only read-only dependencies.
type Usecase struct{ d Deps }

func New(d Deps) Usecase {
	if d.Writer == nil {
		d.Writer = script.TemplateWriter{}
	}
	if d.Policy.MaxDuration == 0 {
		d.Policy = config.DefaultPolicy()
	}
	return Usecase{d: d}
}

// Build runs the planning pipeline for one brief. It returns a complete plan
// or an error; ctx is checked between stages.
func (u Usecase) Build(ctx context.Context, raw types.RawRequest) (types.VideoPlan, error) {
	return u.BuildStaged(ctx, raw, nil)
}

// BuildStaged is Build with onStage called after each completed stage.
// onStage runs on the caller's goroutine and may be nil.
func (u Usecase) BuildStaged(ctx context.Context, raw types.RawRequest, onStage func(types.Stage)) (types.VideoPlan, error) {
	p := u.d.Policy
	if onStage == nil {
		onStage = func(types.Stage) {}
	}

	req, err := request.Normalize(raw, p)
	if err != nil {
		return types.VideoPlan{}, err
	}
	onStage(types.StageNormalized)

	beats, err := u.beats(ctx, req)
	if err != nil {
		return types.VideoPlan{}, err
	}
	if err := ctx.Err(); err != nil {
		return types.VideoPlan{}, err
	}
	onStage(types.StageScripted)

	segs, err := schedule.Build(beats, req, p)
	if err != nil {
		return types.VideoPlan{}, err
	}
	if err := ctx.Err(); err != nil {
		return types.VideoPlan{}, err
	}
	onStage(types.StageScheduled)

	plan := types.VideoPlan{
		Hook:            hookLine(segs, req),
		Summary:         summary(req),
		Duration:        req.Duration,
		Platform:        req.Platform,
		Segments:        segs,
		Voice:           voice.Direct(req, beats, p),
		Captions:        captions.BuildAll(segs, p),
		Soundtrack:      soundtrack.Select(req.Platform, req.VoiceTone),
		ExportChecklist: checklist.Build(req.Platform, req.Duration),
	}
	onStage(types.StageAssembled)
	return plan, nil
}

func (u Usecase) beats(ctx context.Context, req types.PlanningRequest) ([]types.Beat, error) {
	if req.Script != "" {
		return script.Compose(req.Script, u.d.Policy)
	}

	timeout := u.d.Policy.GenerationTimeout
	genCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	beats, err := u.d.Writer.Write(genCtx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var timeoutErr *types.GenerationTimeout
		if errors.As(err, &timeoutErr) {
			return nil, err
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(genCtx.Err(), context.DeadlineExceeded) {
			return nil, &types.GenerationTimeout{After: timeout}
		}
		return nil, fmt.Errorf("write script: %w", err)
	}
	if len(beats) < 2 {
		return nil, &types.CompositionError{Reason: fmt.Sprintf("script writer returned %d beats, need at least 2", len(beats))}
	}
	out := make([]types.Beat, len(beats))
	for i, b := range beats {
		b.Text = strings.TrimSpace(b.Text)
		if b.Text == "" {
			return nil, &types.CompositionError{Reason: fmt.Sprintf("script writer returned empty beat %d", i+1)}
		}
		out[i] = b
	}
	return out, nil
}

func hookLine(segs []types.Segment, req types.PlanningRequest) string {
	if len(segs) > 0 && segs[0].Text != "" {
		return segs[0].Text
	}
	return fmt.Sprintf("The truth about %s in %d seconds.", req.Topic, req.Duration)
}

func summary(req types.PlanningRequest) string {
	return fmt.Sprintf("A %d-second %s video about %s, narrated by a %s %s voice.",
		req.Duration,
		req.Platform.Label(),
		req.Topic,
		strings.ToLower(req.VoiceTone.Label()),
		strings.ToLower(req.VoiceGender.Label()),
	)
}
