package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/forPelevin/reelplan/internal/config"
	"github.com/forPelevin/reelplan/internal/domain/script"
	"github.com/forPelevin/reelplan/internal/types"
)

// Adapter drafts narration through OpenRouter's OpenAI-compatible chat API.
type Adapter struct {
	key     string
	model   string
	baseURL string
	client  openai.Client
	policy  config.Policy
}

const (
	// Narration speed used to size the requested script.
	wordsPerSecond = 2.6
	minLines       = 4
	maxLines       = 6
)

func New(apiKey, model, baseURL string, p config.Policy) *Adapter {
	if model == "" {
		model = config.DefaultModel
	}
	if p.MaxDuration == 0 {
		p = config.DefaultPolicy()
	}
	baseURL = normalizeBaseURL(baseURL)
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL+"/api/v1/"),
		option.WithHTTPClient(&http.Client{Timeout: 2 * time.Minute}),
		option.WithMaxRetries(0),
		option.WithHeader("X-Title", "reelplan"),
	)
	return &Adapter{key: apiKey, model: model, baseURL: baseURL, client: client, policy: p}
}

// Write asks the model for spoken lines and composes them into beats. The
// caller's deadline bounds the request; hitting it yields a GenerationTimeout.
func (a *Adapter) Write(ctx context.Context, req types.PlanningRequest) ([]types.Beat, error) {
	started := time.Now()

	pb, err := json.Marshal(brief(req, a.policy))
	if err != nil {
		return nil, fmt.Errorf("marshal prompt: %w", err)
	}

	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(string(buildPrompt(pb))),
		},
		Model:       a.model,
		Temperature: openai.Float(0.7),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{Type: "json_object"},
		},
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &types.GenerationTimeout{After: time.Since(started).Round(time.Millisecond)}
		}
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("openrouter status %d: %s", apiErr.StatusCode, truncate(redactSecrets(apiErr.RawJSON(), a.key), 400))
		}
		return nil, fmt.Errorf("openrouter: %s", redactSecrets(err.Error(), a.key))
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openrouter: no choices in response")
	}

	lines, err := parseLines(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	return script.Compose(strings.Join(lines, "\n"), a.policy)
}

type promptBrief struct {
	Topic       string `json:"topic"`
	DurationSec int    `json:"durationSec"`
	Platform    string `json:"platform"`
	VoiceTone   string `json:"voiceTone"`
	VoiceGender string `json:"voiceGender"`
	TargetWords int    `json:"targetWords"`
	MinLines    int    `json:"minLines"`
	MaxLines    int    `json:"maxLines"`
}

func brief(req types.PlanningRequest, p config.Policy) promptBrief {
	hi := maxLines
	if p.MaxBeats > 0 && p.MaxBeats < hi {
		hi = p.MaxBeats
	}
	lo := minLines
	if lo > hi {
		lo = hi
	}
	return promptBrief{
		Topic:       req.Topic,
		DurationSec: req.Duration,
		Platform:    req.Platform.Label(),
		VoiceTone:   req.VoiceTone.Label(),
		VoiceGender: req.VoiceGender.Label(),
		TargetWords: int(math.Round(float64(req.Duration) * wordsPerSecond)),
		MinLines:    lo,
		MaxLines:    hi,
	}
}

const systemPrompt = "You write voiceover scripts for short vertical videos. Reply with JSON only."

func buildPrompt(briefJSON []byte) []byte {
	var b bytes.Buffer
	b.WriteString("Return ONLY a JSON object of the form {\"lines\": [string]}.\n")
	b.WriteString("Rules:\n")
	b.WriteString("- Each line is one spoken sentence ending with . ! or ?\n")
	b.WriteString("- The first line is a scroll-stopping hook; the last line asks viewers to comment or follow.\n")
	b.WriteString("- Stay between minLines and maxLines lines and close to targetWords words in total.\n")
	b.WriteString("- Match the requested tone. No emojis, hashtags, stage directions or speaker labels.\n")
	b.WriteString("Brief JSON:\n")
	b.Write(briefJSON)
	return b.Bytes()
}

func parseLines(content string) ([]string, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("openrouter: empty content")
	}
	clean, err := extractJSONObject(content)
	if err != nil {
		return nil, err
	}
	var out struct {
		Lines []string `json:"lines"`
	}
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return nil, fmt.Errorf("openrouter: decode script: %w", err)
	}
	lines := make([]string, 0, len(out.Lines))
	for _, ln := range out.Lines {
		ln = strings.Join(strings.Fields(ln), " ")
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) == 0 {
		return nil, errors.New("openrouter: script has no lines")
	}
	return lines, nil
}

func extractJSONObject(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", errors.New("openrouter: empty content")
	}

	if strings.HasPrefix(t, "```") {
		if i := strings.Index(t, "\n"); i >= 0 {
			t = t[i+1:]
		}
		if j := strings.LastIndex(t, "```"); j >= 0 {
			t = t[:j]
		}
		t = strings.TrimSpace(t)
	}

	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start >= 0 && end > start {
		return t[start : end+1], nil
	}
	return "", fmt.Errorf("openrouter: could not locate JSON object in: %q", truncate(t, 200))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var (
	bearerTokenRE = regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9._-]+\b`)
	authHeaderRE  = regexp.MustCompile(`(?i)(authorization\s*[:=]\s*)([^\n\r,;]+)`)
	apiKeyFieldRE = regexp.MustCompile(`(?i)(api[_-]?key\s*[:=]\s*)([^\n\r,;]+)`)
)

func redactSecrets(s, apiKey string) string {
	if s == "" {
		return s
	}
	out := s
	if apiKey != "" {
		out = strings.ReplaceAll(out, apiKey, "[REDACTED]")
	}
	out = bearerTokenRE.ReplaceAllString(out, "Bearer [REDACTED]")
	out = authHeaderRE.ReplaceAllString(out, "${1}[REDACTED]")
	out = apiKeyFieldRE.ReplaceAllString(out, "${1}[REDACTED]")
	return out
}
