package http

import (
	"context"
	"encoding/json"
	"net/http"

	"clap-quiz/internal/app"
	"clap-quiz/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewWSHandler(service *app.QuizService, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log.With().Str("component", "ws_handler").Logger(),
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Text string `json:"text"`
}

type questionPayload struct {
	SessionID string `json:"sessionId"`
	Prompt    string `json:"prompt"`
}

type answerResult struct {
	Outcome domain.Outcome `json:"outcome"`
	Correct int            `json:"correct"`
	Total   int            `json:"total"`
	Prompt  string         `json:"prompt"`
}

type scorePayload struct {
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
	Message string `json:"message"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and runs one quiz session per connection.
// The session ends, and its score is reported, when the connection closes.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	bankID := r.URL.Query().Get("bank")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	var prompt string
	if sessionID == "" {
		sessionID, prompt, err = h.service.StartNew(r.Context(), bankID)
	} else {
		prompt, err = h.service.Start(r.Context(), sessionID, bankID)
	}
	if err != nil {
		_ = conn.WriteJSON(outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer func() {
		// The request context is done once the client is gone.
		if _, err := h.service.End(context.WithoutCancel(r.Context()), sessionID); err != nil {
			h.log.Warn().Err(err).Str("session_id", sessionID).Msg("end session")
		}
	}()

	if err := conn.WriteJSON(outboundMessage{Type: "question", Payload: questionPayload{SessionID: sessionID, Prompt: prompt}}); err != nil {
		return
	}

	// Reads and writes stay on this goroutine, so there are no concurrent writers.
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		if err := conn.WriteJSON(h.handle(r.Context(), sessionID, inbound)); err != nil {
			h.log.Warn().Err(err).Str("session_id", sessionID).Msg("ws write error")
			return
		}
	}
}

func (h *WSHandler) handle(ctx context.Context, sessionID string, inbound inboundMessage) outboundMessage {
	switch inbound.Type {
	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return outboundMessage{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
		}
		result, err := h.service.SubmitAnswer(ctx, sessionID, payload.Text)
		if err != nil {
			return outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}}
		}
		return outboundMessage{Type: "answerResult", Payload: answerResult{
			Outcome: result.Outcome,
			Correct: result.Score.Correct,
			Total:   result.Score.Total,
			Prompt:  result.Prompt,
		}}
	case "question":
		prompt, err := h.service.CurrentPrompt(ctx, sessionID)
		if err != nil {
			return outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}}
		}
		return outboundMessage{Type: "question", Payload: questionPayload{SessionID: sessionID, Prompt: prompt}}
	case "score":
		score, err := h.service.Score(ctx, sessionID)
		if err != nil {
			return outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}}
		}
		return outboundMessage{Type: "score", Payload: scorePayload{
			Correct: score.Correct,
			Total:   score.Total,
			Message: score.Message(),
		}}
	default:
		return outboundMessage{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
	}
}
