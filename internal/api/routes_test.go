package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/forPelevin/reelplan/internal/config"
	"github.com/forPelevin/reelplan/internal/types"
	"github.com/forPelevin/reelplan/internal/usecase"
)

type fakePlanner struct {
	err error
}

func (f fakePlanner) Build(_ context.Context, raw types.RawRequest) (types.VideoPlan, error) {
	if f.err != nil {
		return types.VideoPlan{}, f.err
	}
	return types.VideoPlan{Hook: raw.Topic, Duration: 30}, nil
}

func testRouter(p Planner) http.Handler {
	return NewRouter(ServerConfig{Planner: p})
}

func decodeJSONBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rr, req)
	return rr
}

func TestGenerate_ReturnsPlan(t *testing.T) {
	h := testRouter(usecase.New(usecase.Deps{}))

	rr := post(h, `{"topic":"AI side hustle","duration":"30","platform":"tiktok","voiceGender":"female","voiceTone":"high-energy","avatarStyle":"neon-hologram"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}

	var plan types.VideoPlan
	if err := json.NewDecoder(rr.Body).Decode(&plan); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if plan.Duration != 30 || plan.Platform != types.PlatformTikTok {
		t.Fatalf("unexpected plan header: %d %s", plan.Duration, plan.Platform)
	}
	if len(plan.Segments) < 2 || plan.Segments[len(plan.Segments)-1].End != 30 {
		t.Fatalf("segments do not cover the video: %+v", plan.Segments)
	}
	if len(plan.Captions) == 0 || len(plan.ExportChecklist) == 0 {
		t.Fatalf("plan is missing captions or checklist")
	}
}

func TestGenerate_NumericDuration(t *testing.T) {
	h := testRouter(usecase.New(usecase.Deps{}))

	rr := post(h, `{"topic":"budget travel","duration":45}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d: %s", rr.Code, rr.Body.String())
	}
}

func TestGenerate_ValidationErrors(t *testing.T) {
	h := testRouter(usecase.New(usecase.Deps{}))

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"blank topic", `{"topic":"   "}`, "topic"},
		{"short duration", `{"topic":"x","duration":5}`, "duration"},
		{"fractional duration", `{"topic":"x","duration":30.5}`, "duration"},
		{"unknown platform", `{"topic":"x","platform":"myspace"}`, "platform"},
		{"unknown tone", `{"topic":"x","voiceTone":"whisper"}`, "voiceTone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(h, tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
			}
			body := decodeJSONBody(t, rr)
			if body["code"] != CodeValidation {
				t.Fatalf("code = %v, want %s", body["code"], CodeValidation)
			}
			if body["field"] != tt.wantField {
				t.Fatalf("field = %v, want %s", body["field"], tt.wantField)
			}
		})
	}
}

func TestGenerate_CompositionError(t *testing.T) {
	h := testRouter(usecase.New(usecase.Deps{}))

	rr := post(h, `{"topic":"x","script":"!!! ..."}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if body := decodeJSONBody(t, rr); body["code"] != CodeComposition {
		t.Fatalf("code = %v, want %s", body["code"], CodeComposition)
	}
}

func TestGenerate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"timeout", &types.GenerationTimeout{After: 20 * time.Second}, http.StatusGatewayTimeout, CodeTimeout},
		{"wrapped timeout", errors.Join(errors.New("x"), &types.GenerationTimeout{}), http.StatusGatewayTimeout, CodeTimeout},
		{"internal", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(testRouter(fakePlanner{err: tt.err}), `{"topic":"x"}`)
			if rr.Code != tt.wantCode {
				t.Fatalf("status code = %d, want %d", rr.Code, tt.wantCode)
			}
			body := decodeJSONBody(t, rr)
			if body["code"] != tt.wantErr {
				t.Fatalf("code = %v, want %s", body["code"], tt.wantErr)
			}
			if tt.wantCode == http.StatusInternalServerError && strings.Contains(body["error"].(string), "boom") {
				t.Fatalf("internal error details leaked: %v", body["error"])
			}
		})
	}
}

func TestGenerate_BadBodies(t *testing.T) {
	h := testRouter(fakePlanner{})

	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"not json", "topic=x"},
		{"wrong type", `{"topic":42}`},
		{"too large", `{"topic":"` + strings.Repeat("a", maxBodyBytes) + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(h, tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
			}
			if body := decodeJSONBody(t, rr); body["code"] != CodeBadRequest {
				t.Fatalf("code = %v, want %s", body["code"], CodeBadRequest)
			}
		})
	}
}

func TestOptions_RespectsPolicy(t *testing.T) {
	p := config.DefaultPolicy()
	p.Platforms = []string{"tiktok", "linkedin"}
	h := NewRouter(ServerConfig{Planner: fakePlanner{}, Policy: p})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/options", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d", rr.Code)
	}

	var resp OptionsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Platforms) != 2 || resp.Platforms[0].Value != "tiktok" || resp.Platforms[1].Label != "LinkedIn" {
		t.Fatalf("platforms = %+v", resp.Platforms)
	}
	if len(resp.VoiceGenders) != 3 || len(resp.VoiceTones) != 5 || len(resp.AvatarStyles) != 4 {
		t.Fatalf("unexpected option counts: %+v", resp)
	}
	if resp.MinDuration != 15 || resp.MaxDuration != 60 || resp.DefaultDuration != 30 {
		t.Fatalf("unexpected duration bounds: %+v", resp)
	}
}

func TestHealth(t *testing.T) {
	h := NewRouter(ServerConfig{Planner: fakePlanner{}, StartTime: time.Now().Add(-time.Minute)})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d", rr.Code)
	}
	body := decodeJSONBody(t, rr)
	if body["status"] != "ok" || body["version"] != config.Version {
		t.Fatalf("unexpected health body: %v", body)
	}
	if up, _ := body["uptime_s"].(float64); up < 60 {
		t.Fatalf("uptime_s = %v, want >= 60", body["uptime_s"])
	}
}

func TestGenerate_MethodNotAllowed(t *testing.T) {
	rr := httptest.NewRecorder()
	testRouter(fakePlanner{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/generate", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}
