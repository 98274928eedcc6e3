package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/forPelevin/reelplan/internal/config"
	"github.com/forPelevin/reelplan/internal/domain/script"
	"github.com/forPelevin/reelplan/internal/domain/subtitles"
	"github.com/forPelevin/reelplan/internal/ports"
	"github.com/forPelevin/reelplan/internal/ports/adapters/openrouter"
	"github.com/forPelevin/reelplan/internal/types"
	"github.com/forPelevin/reelplan/internal/usecase"
)

type Config struct {
	Request types.RawRequest

	// OutDir receives a per-run directory with plan.json, captions.ass and
	// voiceover.txt. If empty, the plan JSON is written to Stdout instead.
	OutDir string
	Stdout io.Writer
	Logf   func(format string, args ...any)

	Settings config.Settings
	Policy   config.Policy
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Request.Topic) == "" {
		return errors.New("topic is empty")
	}
	if c.OutDir == "" && c.Stdout == nil {
		return errors.New("either an output directory or stdout is required")
	}
	if err := c.Settings.Validate(); err != nil {
		return err
	}
	if c.Settings.ScriptWriter == config.WriterOpenRouter {
		return openrouter.ValidateBaseURL(
			c.Settings.OpenRouterBaseURL,
			c.Settings.OpenRouterAllowedHosts,
		)
	}
	return nil
}

// Result describes one finished run. RunDir is empty when the plan went to
// stdout.
type Result struct {
	Plan   types.VideoPlan
	RunDir string
}

// NewWriter picks the script writer named by the settings.
func NewWriter(s config.Settings, p config.Policy) (ports.ScriptWriter, error) {
	switch s.ScriptWriter {
	case "", config.WriterTemplate:
		return script.TemplateWriter{}, nil
	case config.WriterOpenRouter:
		if err := openrouter.ValidateBaseURL(s.OpenRouterBaseURL, s.OpenRouterAllowedHosts); err != nil {
			return nil, err
		}
		return openrouter.New(s.OpenRouterAPIKey, s.OpenRouterModel, s.OpenRouterBaseURL, p), nil
	default:
		return nil, fmt.Errorf("unknown script writer %q", s.ScriptWriter)
	}
}

func Run(ctx context.Context, cfg Config) (Result, error) {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	policy := cfg.Policy
	if policy.MaxDuration == 0 {
		policy = config.DefaultPolicy()
	}

	writer, err := NewWriter(cfg.Settings, policy)
	if err != nil {
		return Result{}, err
	}
	uc := usecase.New(usecase.Deps{Writer: writer, Policy: policy})

	if cfg.Request.Script == "" {
		logf("drafting script with %s writer", cfg.Settings.ScriptWriter)
	} else {
		logf("composing supplied script")
	}
	started := time.Now()
	plan, err := uc.Build(ctx, cfg.Request)
	if err != nil {
		return Result{}, err
	}
	logf("plan ready: %d segments, %d captions in %s",
		len(plan.Segments), len(plan.Captions), time.Since(started).Round(time.Millisecond))

	b, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("marshal plan: %w", err)
	}

	if cfg.OutDir == "" {
		if _, err := cfg.Stdout.Write(append(b, '\n')); err != nil {
			return Result{}, err
		}
		return Result{Plan: plan}, nil
	}

	runOutDir := buildRunOutDir(cfg.OutDir, plan.Platform, cfg.Request.Topic, time.Now().UTC(), runSuffix())
	if err := os.MkdirAll(runOutDir, 0o755); err != nil {
		return Result{}, err
	}
	logf("output run dir: %s", runOutDir)

	files := []struct {
		name string
		data []byte
	}{
		{"plan.json", b},
		{"captions.ass", []byte(subtitles.RenderASS(plan.Captions, plan.Platform))},
		{"voiceover.txt", []byte(plan.Voice.Script + "\n")},
	}
	for _, f := range files {
		p := filepath.Join(runOutDir, f.name)
		if err := os.WriteFile(p, f.data, 0o644); err != nil {
			return Result{}, err
		}
		logf("wrote %s", p)
	}
	return Result{Plan: plan, RunDir: runOutDir}, nil
}

func buildRunOutDir(outRoot string, platform types.Platform, topic string, now time.Time, suffix string) string {
	name := normalizePathSegment(topic)
	if name == "" {
		name = "plan"
	}
	if len(name) > 48 {
		name = strings.TrimRight(name[:48], "-")
	}
	ts := now.UTC().Format("20060102-150405Z")
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s-%s", name, platform, ts, suffix))
}

func runSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

var _ ports.ScriptWriter = (*openrouter.Adapter)(nil)
var _ ports.ScriptWriter = script.TemplateWriter{}
