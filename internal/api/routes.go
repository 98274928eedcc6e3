package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/forPelevin/reelplan/internal/config"
	"github.com/forPelevin/reelplan/internal/logging"
	"github.com/forPelevin/reelplan/internal/types"
)

const maxBodyBytes = 64 << 10

func NewRouter(cfg ServerConfig) *chi.Mux {
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	if cfg.Policy.MaxDuration == 0 {
		cfg.Policy = config.DefaultPolicy()
	}
	if cfg.StartTime.IsZero() {
		cfg.StartTime = time.Now()
	}

	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))

	r.Route("/api", func(r chi.Router) {
		r.Get("/options", optionsHandler(cfg))
		r.Post("/generate", generateHandler(cfg))
		r.Get("/generate/ws", streamHandler(cfg))
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: config.Version,
			UptimeS: int64(time.Since(cfg.StartTime).Seconds()),
		})
	}
}

// optionsHandler lists the choices the policy accepts, in display order.
func optionsHandler(cfg ServerConfig) http.HandlerFunc {
	p := cfg.Policy
	resp := OptionsResponse{
		Platforms: filterOptions(types.PlatformOptions(), func(v string) bool {
			return p.AllowsPlatform(types.Platform(v))
		}),
		VoiceGenders: filterOptions(types.VoiceGenderOptions(), func(v string) bool {
			return p.AllowsVoiceGender(types.VoiceGender(v))
		}),
		VoiceTones: filterOptions(types.VoiceToneOptions(), func(v string) bool {
			return p.AllowsVoiceTone(types.VoiceTone(v))
		}),
		AvatarStyles:    filterOptions(types.AvatarStyleOptions(), nil),
		MinDuration:     p.MinDuration,
		MaxDuration:     p.MaxDuration,
		DefaultDuration: p.DefaultDuration,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, resp)
	}
}

func filterOptions(opts []types.Option, keep func(string) bool) []OptionResponse {
	out := make([]OptionResponse, 0, len(opts))
	for _, o := range opts {
		if keep != nil && !keep(o.Value) {
			continue
		}
		out = append(out, OptionResponse{Value: o.Value, Label: o.Label})
	}
	return out
}

func generateHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := logging.WithRequestID(logging.WithComponent(cfg.Logger, "generate"), RequestID(r.Context()))

		var raw types.RawRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			msg := "invalid JSON body"
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				msg = "request body too large"
			} else if errors.Is(err, io.EOF) {
				msg = "request body is empty"
			}
			WriteError(w, http.StatusBadRequest, msg, CodeBadRequest)
			return
		}

		plan, err := cfg.Planner.Build(r.Context(), raw)
		if err != nil {
			writePlanError(w, logger, err)
			return
		}
		logger.Info("plan generated",
			"platform", plan.Platform,
			"duration", plan.Duration,
			"segments", len(plan.Segments),
			"captions", len(plan.Captions),
		)
		WriteJSON(w, http.StatusOK, plan)
	}
}

func writePlanError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status, resp := classifyError(logger, err)
	WriteJSON(w, status, resp)
}

// classifyError maps a planning failure to an HTTP status and a client-safe
// body. Unexpected errors are logged and hidden.
func classifyError(logger *slog.Logger, err error) (int, ErrorResponse) {
	var (
		validation  *types.ValidationError
		composition *types.CompositionError
		timeout     *types.GenerationTimeout
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeValidation, Field: validation.Field}
	case errors.As(err, &composition):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeComposition}
	case errors.As(err, &timeout):
		logger.Warn("script generation timed out", "after", timeout.After.String())
		return http.StatusGatewayTimeout, ErrorResponse{Error: err.Error(), Code: CodeTimeout}
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads this.
		return 499, ErrorResponse{Error: "request canceled", Code: CodeCanceled}
	default:
		logger.Error("plan failed", "error", err)
		return http.StatusInternalServerError, ErrorResponse{Error: "failed to generate plan", Code: CodeInternal}
	}
}
