package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/forPelevin/reelplan/internal/logging"
	"github.com/forPelevin/reelplan/internal/types"
)

// StagedPlanner reports progress while it builds. usecase.Usecase satisfies it.
type StagedPlanner interface {
	Planner
	BuildStaged(ctx context.Context, raw types.RawRequest, onStage func(types.Stage)) (types.VideoPlan, error)
}

const (
	EventStage = "stage"
	EventPlan  = "plan"
	EventError = "error"
)

// StreamEvent is one websocket message sent by /api/generate/ws.
type StreamEvent struct {
	Type   string           `json:"type"`
	Stage  types.Stage      `json:"stage,omitempty"`
	Plan   *types.VideoPlan `json:"plan,omitempty"`
	Error  *ErrorResponse   `json:"error,omitempty"`
	Status int              `json:"status,omitempty"`
}

const (
	streamReadWait  = 10 * time.Second
	streamWriteWait = 10 * time.Second
)

// Nil CheckOrigin keeps gorilla's same-origin check.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4 << 10,
	WriteBufferSize: 16 << 10,
}

// streamHandler reads one RawRequest message, pushes a stage event per
// finished step and ends with either a plan or an error event.
func streamHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := logging.WithRequestID(logging.WithComponent(cfg.Logger, "stream"), RequestID(r.Context()))

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already replied with an HTTP error.
			logger.Warn("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()
		conn.SetReadLimit(maxBodyBytes)

		send := func(ev StreamEvent) error {
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			return conn.WriteJSON(ev)
		}

		_ = conn.SetReadDeadline(time.Now().Add(streamReadWait))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			logger.Warn("websocket read failed", "error", err)
			return
		}
		var raw types.RawRequest
		if err := decodeRaw(msg, &raw); err != nil {
			_ = send(StreamEvent{
				Type:   EventError,
				Status: http.StatusBadRequest,
				Error:  &ErrorResponse{Error: "invalid JSON body", Code: CodeBadRequest},
			})
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		// The client only closes from here on; a failed read means it left.
		_ = conn.SetReadDeadline(time.Time{})
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		onStage := func(s types.Stage) {
			if err := send(StreamEvent{Type: EventStage, Stage: s}); err != nil {
				cancel()
			}
		}

		var plan types.VideoPlan
		if sp, ok := cfg.Planner.(StagedPlanner); ok {
			plan, err = sp.BuildStaged(ctx, raw, onStage)
		} else {
			plan, err = cfg.Planner.Build(ctx, raw)
		}
		if err != nil {
			status, resp := classifyError(logger, err)
			_ = send(StreamEvent{Type: EventError, Status: status, Error: &resp})
			return
		}

		logger.Info("plan streamed", "platform", plan.Platform, "segments", len(plan.Segments))
		if err := send(StreamEvent{Type: EventPlan, Plan: &plan}); err != nil {
			return
		}
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"),
			time.Now().Add(streamWriteWait))
	}
}

func decodeRaw(b []byte, raw *types.RawRequest) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return dec.Decode(raw)
}
