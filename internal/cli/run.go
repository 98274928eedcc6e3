package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/forPelevin/reelplan/internal/config"
	"github.com/forPelevin/reelplan/internal/logging"
	"github.com/forPelevin/reelplan/internal/pipeline"
	"github.com/forPelevin/reelplan/internal/types"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build a video plan and print it as JSON",
		Long: "Build a video plan for --topic. Without --script the narration is drafted\n" +
			"by the configured script writer. With --out the plan, an ASS caption track\n" +
			"and the voiceover text are written into a new run directory.",
		Args: cobra.NoArgs,
		RunE: runPlan,
	}

	f := cmd.Flags()
	f.String("topic", "", "What the video is about (required)")
	f.String("script", "", "Narration to use instead of drafting one")
	f.String("script-file", "", "Read the narration from a file (- for stdin)")
	f.String("duration", "", "Video length in seconds (default from policy)")
	f.String("platform", "", "youtube-shorts, tiktok, instagram-reels, facebook-reels or linkedin")
	f.String("gender", "", "Voice gender: female, male or neutral")
	f.String("tone", "", "Voice tone: high-energy, calm, friendly, authoritative or dramatic")
	f.String("avatar", "", "Avatar style for visual prompts")
	f.String("out", "", "Write a run directory here instead of printing JSON")
	f.String("writer", "", "Script writer: template or openrouter (default from "+config.EnvScriptWriter+")")
	_ = cmd.MarkFlagRequired("topic")
	cmd.MarkFlagsMutuallyExclusive("script", "script-file")

	return cmd
}

func runPlan(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	topic, _ := f.GetString("topic")
	scriptText, _ := f.GetString("script")
	scriptFile, _ := f.GetString("script-file")
	duration, _ := f.GetString("duration")
	platform, _ := f.GetString("platform")
	gender, _ := f.GetString("gender")
	tone, _ := f.GetString("tone")
	avatar, _ := f.GetString("avatar")
	outDir, _ := f.GetString("out")
	writer, _ := f.GetString("writer")

	if scriptFile != "" {
		b, err := readScriptFile(cmd.InOrStdin(), scriptFile)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		scriptText = string(b)
	}

	settings, policy, err := loadConfig(writer)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger := logging.WithComponent(logging.NewLoggerTo(cmd.ErrOrStderr(), settings.LogLevel), "plan")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := pipeline.Config{
		Request: types.RawRequest{
			Topic:       topic,
			Script:      scriptText,
			Duration:    duration,
			Platform:    platform,
			VoiceGender: gender,
			VoiceTone:   tone,
			AvatarStyle: avatar,
		},
		OutDir:   outDir,
		Stdout:   cmd.OutOrStdout(),
		Logf:     logging.Logf(logger),
		Settings: settings,
		Policy:   policy,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	res, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}
	if res.RunDir != "" {
		fmt.Fprintln(cmd.OutOrStdout(), res.RunDir)
	}
	return nil
}

func readScriptFile(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(io.LimitReader(stdin, 1<<20))
	}
	return os.ReadFile(path)
}

// loadConfig reads settings from the environment, applies the writer
// override and loads the policy file if one is configured.
func loadConfig(writer string) (config.Settings, config.Policy, error) {
	settings, err := config.FromEnv()
	if err != nil {
		return config.Settings{}, config.Policy{}, err
	}
	if writer != "" {
		settings.ScriptWriter = strings.ToLower(strings.TrimSpace(writer))
	}
	if err := settings.Validate(); err != nil {
		return config.Settings{}, config.Policy{}, err
	}

	policy := config.DefaultPolicy()
	if settings.PolicyFile != "" {
		policy, err = config.LoadPolicy(settings.PolicyFile)
		if err != nil {
			return config.Settings{}, config.Policy{}, err
		}
	}
	return settings, policy, nil
}
